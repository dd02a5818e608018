package cloudflare

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domainpilot/internal/provisioning"
)

func TestCreateZone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/zones", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "example.com", body["name"])

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"result": map[string]any{
				"id":           "abc123",
				"name_servers": []string{"ada.ns.cloudflare.com", "bob.ns.cloudflare.com"},
			},
		})
	}))
	defer srv.Close()

	c := NewWithBaseURL("test-token", srv.URL)
	zone, err := c.CreateZone(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, "abc123", zone.ID)
	assert.Equal(t, []string{"ada.ns.cloudflare.com", "bob.ns.cloudflare.com"}, zone.Nameservers)
}

func TestCreateZoneAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"errors":  []map[string]any{{"code": 971, "message": "rate limited"}},
		})
	}))
	defer srv.Close()

	c := NewWithBaseURL("test-token", srv.URL)
	_, err := c.CreateZone(context.Background(), "example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestCreateDNSRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/zones/abc123/dns_records", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "CNAME", body["type"])
		assert.Equal(t, "www", body["name"])
		assert.Equal(t, "example.com", body["content"])
		assert.Equal(t, true, body["proxied"])

		json.NewEncoder(w).Encode(map[string]any{"success": true, "result": map[string]any{"id": "rec1"}})
	}))
	defer srv.Close()

	c := NewWithBaseURL("test-token", srv.URL)
	err := c.CreateDNSRecord(context.Background(), "abc123", provisioning.DNSRecord{
		Type: "CNAME", Name: "www", Content: "example.com", Proxied: true,
	})
	require.NoError(t, err)
}

func TestPatchZoneSetting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/zones/abc123/settings/ssl", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "strict", body["value"])

		json.NewEncoder(w).Encode(map[string]any{"success": true, "result": map[string]any{}})
	}))
	defer srv.Close()

	c := NewWithBaseURL("test-token", srv.URL)
	require.NoError(t, c.PatchZoneSetting(context.Background(), "abc123", "ssl", "strict"))
}

func TestCreateWAFRule(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/zones/abc123/firewall/rules", r.URL.Path)

		var body []map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body, 1)
		assert.Equal(t, "managed_challenge", body[0]["action"])

		json.NewEncoder(w).Encode(map[string]any{"success": true, "result": []any{}})
	}))
	defer srv.Close()

	c := NewWithBaseURL("test-token", srv.URL)
	require.NoError(t, c.CreateWAFRule(context.Background(), "abc123", "(cf.client.bot)", "managed_challenge"))
}
