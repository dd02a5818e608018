package cloudflare

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"domainpilot/internal/provisioning"
)

const defaultBaseURL = "https://api.cloudflare.com/client/v4"

// Client is a thin wrapper over the Cloudflare v4 API, covering only the
// calls the provisioning orchestrator makes. It satisfies
// provisioning.ZoneAPI.
type Client struct {
	http    *http.Client
	baseURL string
	token   string
}

func New(token string) *Client {
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultBaseURL,
		token:   token,
	}
}

// NewWithBaseURL is used by tests to point the client at a local server.
func NewWithBaseURL(token, baseURL string) *Client {
	c := New(token)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Success bool            `json:"success"`
	Errors  []apiError      `json:"errors"`
	Result  json.RawMessage `json:"result"`
}

// do issues a request and decodes the v4 envelope. API failures come back as
// plain errors carrying the vendor's message.
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

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("cloudflare: decoding %s %s: %w", method, path, err)
	}
	if !env.Success {
		msgs := make([]string, 0, len(env.Errors))
		for _, e := range env.Errors {
			msgs = append(msgs, e.Message)
		}
		if len(msgs) == 0 {
			msgs = append(msgs, resp.Status)
		}
		return fmt.Errorf("cloudflare: %s", strings.Join(msgs, "; "))
	}
	if out != nil {
		return json.Unmarshal(env.Result, out)
	}
	return nil
}

// CreateZone registers the domain as a new zone and returns its ID and
// assigned nameservers.
func (c *Client) CreateZone(ctx context.Context, domain string) (provisioning.Zone, error) {
	payload := map[string]any{"name": domain, "jump_start": false}
	var result struct {
		ID          string   `json:"id"`
		NameServers []string `json:"name_servers"`
	}
	if err := c.do(ctx, http.MethodPost, "/zones", payload, &result); err != nil {
		return provisioning.Zone{}, err
	}
	return provisioning.Zone{ID: result.ID, Nameservers: result.NameServers}, nil
}

// CreateDNSRecord creates one record in the zone. Record names are relative
// to the zone apex; "@" means the apex itself.
func (c *Client) CreateDNSRecord(ctx context.Context, zoneID string, rec provisioning.DNSRecord) error {
	payload := map[string]any{
		"type":    rec.Type,
		"name":    rec.Name,
		"content": rec.Content,
		"proxied": rec.Proxied,
		"ttl":     1, // automatic
	}
	return c.do(ctx, http.MethodPost, "/zones/"+zoneID+"/dns_records", payload, nil)
}

// PatchZoneSetting updates a single zone setting. value may be a string or a
// structured object (e.g. the security_header block).
func (c *Client) PatchZoneSetting(ctx context.Context, zoneID, setting string, value any) error {
	payload := map[string]any{"value": value}
	return c.do(ctx, http.MethodPatch, "/zones/"+zoneID+"/settings/"+setting, payload, nil)
}

// CreateWAFRule adds a firewall rule with the given filter expression.
func (c *Client) CreateWAFRule(ctx context.Context, zoneID, expression, action string) error {
	payload := []map[string]any{{
		"filter": map[string]any{"expression": expression},
		"action": action,
	}}
	return c.do(ctx, http.MethodPost, "/zones/"+zoneID+"/firewall/rules", payload, nil)
}
