// SPDX-License-Identifier: MIT

// Package mihomo is a minimal client for the proxy daemon's external
// controller API: listing rules and rule providers, refreshing a provider and
// asking the daemon to reload its configuration file.
package mihomo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mofeiss/metacubexd/internal/httpx"
)

// APIError reports a non-success status from the daemon's control API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("daemon API status %d: %s", e.Status, e.Body)
}

// Client talks to one daemon's external controller.
type Client struct {
	baseURL string
	secret  string
	http    *http.Client
}

// NewClient returns a client for the controller at baseURL. secret may be
// empty when the controller is unauthenticated.
func NewClient(baseURL, secret string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		http:    httpx.NewClient(timeout),
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode daemon request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build daemon request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.secret != "" {
		req.Header.Set("Authorization", "Bearer "+c.secret)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode daemon response: %w", err)
	}
	return nil
}

// Rules returns the daemon's active routing rules.
func (c *Client) Rules(ctx context.Context) ([]Rule, error) {
	var resp rulesResponse
	if err := c.do(ctx, http.MethodGet, "/rules", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Rules, nil
}

// RuleProviders returns the daemon's rule providers keyed by name.
func (c *Client) RuleProviders(ctx context.Context) (map[string]RuleProvider, error) {
	var resp ruleProvidersResponse
	if err := c.do(ctx, http.MethodGet, "/providers/rules", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Providers, nil
}

// UpdateRuleProvider asks the daemon to refresh the named provider.
func (c *Client) UpdateRuleProvider(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodPut, "/providers/rules/"+url.PathEscape(name), nil, nil)
}

// ReloadConfigs asks the daemon to reload its configuration from path.
// force skips the daemon's config-unchanged shortcut.
func (c *Client) ReloadConfigs(ctx context.Context, path string, force bool) error {
	target := "/configs"
	if force {
		target += "?force=true"
	}
	body := struct {
		Path string `json:"path"`
	}{Path: path}
	return c.do(ctx, http.MethodPut, target, body, nil)
}
