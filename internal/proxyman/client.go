package proxyman

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"domainpilot/internal/models"
)

// Client is a thin wrapper over an NPM-shaped reverse-proxy-manager API.
// The nginx configuration itself is entirely the manager's concern.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
}

func New(baseURL, token string) *Client {
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}
}

// Configured reports whether a proxy manager endpoint was set at all.
func (c *Client) Configured() bool {
	return c != nil && c.baseURL != ""
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("proxy manager: %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// CreateProxyHost mirrors the given host to the proxy manager and returns the
// remote ID it was assigned.
func (c *Client) CreateProxyHost(ctx context.Context, host models.ProxyHost) (int, error) {
	payload := map[string]any{
		"domain_names":    []string{host.DomainName},
		"forward_scheme":  "http",
		"forward_host":    host.ForwardHost,
		"forward_port":    host.ForwardPort,
		"ssl_forced":      host.SSL,
		"block_exploits":  true,
		"allow_websocket": true,
	}
	var out struct {
		ID int `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/nginx/proxy-hosts", payload, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

// DeleteProxyHost removes the host with the given remote ID.
func (c *Client) DeleteProxyHost(ctx context.Context, remoteID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/nginx/proxy-hosts/%d", remoteID), nil, nil)
}
