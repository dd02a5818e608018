package registrar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const njallaEndpoint = "https://njal.la/api/1/"

// Njalla pushes nameservers through Njalla's JSON-RPC style API.
type Njalla struct {
	http     *http.Client
	endpoint string
	token    string
}

func NewNjalla(token string) *Njalla {
	return &Njalla{
		http:     &http.Client{Timeout: 30 * time.Second},
		endpoint: njallaEndpoint,
		token:    token,
	}
}

type njallaResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (n *Njalla) SetNameservers(ctx context.Context, domain string, nameservers []string) error {
	payload := map[string]any{
		"method": "edit-domain",
		"params": map[string]any{
			"domain":      domain,
			"nameservers": nameservers,
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Njalla "+n.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var out njallaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("njalla: decoding response: %w", err)
	}
	if out.Error != nil {
		return fmt.Errorf("njalla: %s", out.Error.Message)
	}
	return nil
}
