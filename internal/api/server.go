// SPDX-License-Identifier: MIT

// Package api exposes the dashboard backend over HTTP: the config-file
// read/write pair plus thin proxies onto the daemon's control API.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mofeiss/metacubexd/internal/api/middleware"
	"github.com/mofeiss/metacubexd/internal/config"
	"github.com/mofeiss/metacubexd/internal/configfile"
	"github.com/mofeiss/metacubexd/internal/mihomo"
)

// DaemonClient is the slice of the daemon control API the server needs.
// Satisfied by *mihomo.Client; tests substitute a stub.
type DaemonClient interface {
	Rules(ctx context.Context) ([]mihomo.Rule, error)
	RuleProviders(ctx context.Context) (map[string]mihomo.RuleProvider, error)
	UpdateRuleProvider(ctx context.Context, name string) error
	ReloadConfigs(ctx context.Context, path string, force bool) error
}

// Server is the dashboard backend's HTTP surface.
type Server struct {
	cfg    config.AppConfig
	store  *configfile.Store
	daemon DaemonClient
}

// New wires a Server from its collaborators.
func New(cfg config.AppConfig, store *configfile.Store, daemon DaemonClient) *Server {
	return &Server{cfg: cfg, store: store, daemon: daemon}
}

// Handler builds the chi router with the full middleware stack.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(accessLog)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/config", s.handleConfigGet)
		r.With(middleware.WriteRateLimit(s.cfg.WriteRateLimit)).
			Put("/config", s.handleConfigPut)
		r.Post("/config/reload", s.handleConfigReload)

		r.Get("/rules", s.handleRules)
		r.Get("/rules/providers", s.handleRuleProviders)
		r.Put("/rules/providers/{name}", s.handleRuleProviderUpdate)
	})

	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
