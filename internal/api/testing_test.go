// SPDX-License-Identifier: MIT

package api

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/mofeiss/metacubexd/internal/config"
	"github.com/mofeiss/metacubexd/internal/configfile"
	"github.com/mofeiss/metacubexd/internal/mihomo"
)

// stubDaemon is a canned DaemonClient for handler tests.
type stubDaemon struct {
	rules     []mihomo.Rule
	providers map[string]mihomo.RuleProvider
	err       error

	updatedProvider string
	reloadedPath    string
	reloadForce     bool
}

func (d *stubDaemon) Rules(ctx context.Context) ([]mihomo.Rule, error) {
	return d.rules, d.err
}

func (d *stubDaemon) RuleProviders(ctx context.Context) (map[string]mihomo.RuleProvider, error) {
	return d.providers, d.err
}

func (d *stubDaemon) UpdateRuleProvider(ctx context.Context, name string) error {
	d.updatedProvider = name
	return d.err
}

func (d *stubDaemon) ReloadConfigs(ctx context.Context, path string, force bool) error {
	d.reloadedPath = path
	d.reloadForce = force
	return d.err
}

func newTestServer(t *testing.T, daemon *stubDaemon) (http.Handler, *configfile.Store) {
	t.Helper()
	if daemon == nil {
		daemon = &stubDaemon{}
	}
	store := configfile.NewStore(filepath.Join(t.TempDir(), "config.yaml"))
	cfg := config.AppConfig{
		Listen:         ":0",
		ConfigPath:     store.Path(),
		ControllerURL:  "http://127.0.0.1:9090",
		WriteRateLimit: 1000,
	}
	return New(cfg, store, daemon).Handler(), store
}
