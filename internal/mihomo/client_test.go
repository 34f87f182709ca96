// SPDX-License-Identifier: MIT

package mihomo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "s3cret", 2*time.Second)
}

func TestRules(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rules", r.URL.Path)
		assert.Equal(t, "Bearer s3cret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"rules":[{"type":"DOMAIN-SUFFIX","payload":"example.com","proxy":"DIRECT","size":0}]}`))
	})

	rules, err := c.Rules(context.Background())
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "DOMAIN-SUFFIX", rules[0].Type)
	assert.Equal(t, "example.com", rules[0].Payload)
	assert.Equal(t, "DIRECT", rules[0].Proxy)
}

func TestRuleProviders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/providers/rules", r.URL.Path)
		_, _ = w.Write([]byte(`{"providers":{"ads":{"name":"ads","behavior":"domain","vehicleType":"HTTP","ruleCount":120}}}`))
	})

	providers, err := c.RuleProviders(context.Background())
	require.NoError(t, err)
	require.Contains(t, providers, "ads")
	assert.Equal(t, 120, providers["ads"].RuleCount)
	assert.Equal(t, "HTTP", providers["ads"].VehicleType)
}

func TestUpdateRuleProviderEscapesName(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.UpdateRuleProvider(context.Background(), "my rules/v2"))
	assert.Equal(t, "/providers/rules/my%20rules%2Fv2", gotPath)
}

func TestReloadConfigsSendsPathAndForce(t *testing.T) {
	var body struct {
		Path string `json:"path"`
	}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/configs", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("force"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.ReloadConfigs(context.Background(), "/etc/mihomo/config.yaml", true))
	assert.Equal(t, "/etc/mihomo/config.yaml", body.Path)
}

func TestNonSuccessStatusBecomesAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"config error"}`, http.StatusBadRequest)
	})

	err := c.ReloadConfigs(context.Background(), "/etc/mihomo/config.yaml", false)
	require.Error(t, err)

	var ae *APIError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, http.StatusBadRequest, ae.Status)
	assert.Contains(t, ae.Body, "config error")
}

func TestMissingSecretOmitsAuthorization(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"rules":[]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	_, err := c.Rules(context.Background())
	require.NoError(t, err)
}
