// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	xglog "github.com/mofeiss/metacubexd/internal/log"

	"github.com/mofeiss/metacubexd/internal/configfile"
)

// maxBodyBytes caps the PUT body. JSON string escaping can inflate content
// well past its decoded size, so the transport cap is looser than the store's
// content ceiling; the store still enforces the real 2 MiB limit.
const maxBodyBytes = 4 * configfile.MaxSize

type configResponse struct {
	Content string `json:"content"`
	MTimeMS int64  `json:"mtimeMs"`
}

type writeRequest struct {
	Content *string `json:"content"`
}

type writeResponse struct {
	OK      bool  `json:"ok"`
	MTimeMS int64 `json:"mtimeMs"`
}

func (s *Server) handleConfigGet(w http.ResponseWriter, r *http.Request) {
	snap, err := s.store.Read(r.Context())
	if err != nil {
		recordConfigRead("error")
		logger := xglog.WithComponentFromContext(r.Context(), "config")
		logger.Warn().Err(err).Str("event", "config.read_failed").Msg("config read failed")
		writeStoreError(w, err)
		return
	}
	recordConfigRead("ok")
	writeJSON(w, http.StatusOK, configResponse{Content: snap.Content, MTimeMS: snap.MTimeMS})
}

func (s *Server) handleConfigPut(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req writeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			recordConfigWrite("too_large", 0, 0)
			writeContentTooLarge(w, "request body exceeds the size limit")
			return
		}
		recordConfigWrite("invalid", 0, 0)
		writeInvalidContent(w, "request body must be JSON with a string content field")
		return
	}
	if req.Content == nil {
		recordConfigWrite("invalid", 0, 0)
		writeInvalidContent(w, "content field is required and must be a string")
		return
	}

	start := time.Now()
	mtime, err := s.store.Write(r.Context(), *req.Content)
	if err != nil {
		recordConfigWrite("error", 0, 0)
		logger := xglog.WithComponentFromContext(r.Context(), "config")
		logger.Warn().Err(err).Str("event", "config.write_failed").Msg("config write failed")
		writeStoreError(w, err)
		return
	}

	recordConfigWrite("ok", len(*req.Content), time.Since(start))
	logger := xglog.WithComponentFromContext(r.Context(), "config")
	logger.Info().
		Str("event", "config.written").
		Int("bytes", len(*req.Content)).
		Int64("mtime_ms", mtime).
		Msg("config file replaced")
	writeJSON(w, http.StatusOK, writeResponse{OK: true, MTimeMS: mtime})
}

func (s *Server) handleConfigReload(w http.ResponseWriter, r *http.Request) {
	err := s.daemon.ReloadConfigs(r.Context(), s.store.Path(), false)
	recordDaemonRequest("reload_configs", err)
	if err != nil {
		logger := xglog.WithComponentFromContext(r.Context(), "daemon")
		logger.Warn().Err(err).Str("event", "daemon.reload_failed").Msg("daemon config reload failed")
		writeDaemonError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
