// SPDX-License-Identifier: MIT

package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mofeiss/metacubexd/internal/configfile"
	"github.com/mofeiss/metacubexd/internal/mihomo"
)

// errorPayload is the wire shape of every error response.
type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeStoreError maps a classified config-file error to its fixed status
// code and kind payload. Anything unrecognized becomes a generic 500.
func writeStoreError(w http.ResponseWriter, err error) {
	var ce *configfile.Error
	if errors.As(err, &ce) {
		writeJSON(w, ce.Kind.StatusCode(), errorPayload{
			Code:    string(ce.Kind),
			Message: ce.Error(),
		})
		return
	}
	writeInternalError(w)
}

// writeDaemonError maps daemon control-API failures. A status reported by
// the daemon itself passes through; transport failures become 502.
func writeDaemonError(w http.ResponseWriter, err error) {
	var ae *mihomo.APIError
	if errors.As(err, &ae) {
		writeJSON(w, ae.Status, errorPayload{Code: "DAEMON_ERROR", Message: ae.Error()})
		return
	}
	writeJSON(w, http.StatusBadGateway, errorPayload{Code: "DAEMON_UNREACHABLE", Message: err.Error()})
}

func writeInvalidContent(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorPayload{
		Code:    string(configfile.KindInvalidContent),
		Message: msg,
	})
}

func writeContentTooLarge(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusRequestEntityTooLarge, errorPayload{
		Code:    string(configfile.KindContentTooLarge),
		Message: msg,
	})
}

func writeInternalError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, errorPayload{
		Code:    "INTERNAL",
		Message: "internal server error",
	})
}
