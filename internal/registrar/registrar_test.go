package registrar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domainpilot/internal/models"
)

func TestFromAccount(t *testing.T) {
	nc, err := FromAccount(models.RegistrarAccount{Provider: models.ProviderNamecheap})
	require.NoError(t, err)
	assert.IsType(t, &Namecheap{}, nc)

	nj, err := FromAccount(models.RegistrarAccount{Provider: models.ProviderNjalla})
	require.NoError(t, err)
	assert.IsType(t, &Njalla{}, nj)

	_, err = FromAccount(models.RegistrarAccount{Provider: "godaddy"})
	assert.Error(t, err)
}

func TestNamecheapSetNameservers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "namecheap.domains.dns.setCustom", q.Get("Command"))
		assert.Equal(t, "example", q.Get("SLD"))
		assert.Equal(t, "co.uk", q.Get("TLD"))
		assert.Equal(t, "ns1.example.net,ns2.example.net", q.Get("Nameservers"))
		assert.Equal(t, "apiuser", q.Get("ApiUser"))

		w.Write([]byte(`<?xml version="1.0"?><ApiResponse Status="OK"></ApiResponse>`))
	}))
	defer srv.Close()

	nc := NewNamecheap("apiuser", "key", "user", "1.2.3.4")
	nc.endpoint = srv.URL

	err := nc.SetNameservers(context.Background(), "example.co.uk", []string{"ns1.example.net", "ns2.example.net"})
	require.NoError(t, err)
}

func TestNamecheapErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?><ApiResponse Status="ERROR"><Errors><Error>Invalid API key</Error></Errors></ApiResponse>`))
	}))
	defer srv.Close()

	nc := NewNamecheap("apiuser", "key", "user", "1.2.3.4")
	nc.endpoint = srv.URL

	err := nc.SetNameservers(context.Background(), "example.com", []string{"ns1.example.net"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestNamecheapRejectsBareLabel(t *testing.T) {
	nc := NewNamecheap("apiuser", "key", "user", "1.2.3.4")
	err := nc.SetNameservers(context.Background(), "localhost", []string{"ns1.example.net"})
	assert.Error(t, err)
}

func TestNjallaSetNameservers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Njalla secret", r.Header.Get("Authorization"))

		var body struct {
			Method string `json:"method"`
			Params struct {
				Domain      string   `json:"domain"`
				Nameservers []string `json:"nameservers"`
			} `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "edit-domain", body.Method)
		assert.Equal(t, "example.com", body.Params.Domain)
		assert.Equal(t, []string{"ns1.example.net"}, body.Params.Nameservers)

		json.NewEncoder(w).Encode(map[string]any{"result": map[string]any{}})
	}))
	defer srv.Close()

	nj := NewNjalla("secret")
	nj.endpoint = srv.URL

	require.NoError(t, nj.SetNameservers(context.Background(), "example.com", []string{"ns1.example.net"}))
}

func TestNjallaErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 403, "message": "invalid token"},
		})
	}))
	defer srv.Close()

	nj := NewNjalla("secret")
	nj.endpoint = srv.URL

	err := nj.SetNameservers(context.Background(), "example.com", []string{"ns1.example.net"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}
