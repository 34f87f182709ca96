// SPDX-License-Identifier: MIT

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mofeiss/metacubexd/internal/mihomo"
)

func (s *Server) handleRules(w http.ResponseWriter, r *http.Request) {
	rules, err := s.daemon.Rules(r.Context())
	recordDaemonRequest("rules", err)
	if err != nil {
		writeDaemonError(w, err)
		return
	}
	if rules == nil {
		rules = []mihomo.Rule{}
	}
	writeJSON(w, http.StatusOK, map[string][]mihomo.Rule{"rules": rules})
}

func (s *Server) handleRuleProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := s.daemon.RuleProviders(r.Context())
	recordDaemonRequest("rule_providers", err)
	if err != nil {
		writeDaemonError(w, err)
		return
	}
	if providers == nil {
		providers = map[string]mihomo.RuleProvider{}
	}
	writeJSON(w, http.StatusOK, map[string]map[string]mihomo.RuleProvider{"providers": providers})
}

func (s *Server) handleRuleProviderUpdate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	err := s.daemon.UpdateRuleProvider(r.Context(), name)
	recordDaemonRequest("update_rule_provider", err)
	if err != nil {
		writeDaemonError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
