// SPDX-License-Identifier: MIT

// Package fetch retrieves remote text resources with the same 2 MiB ceiling
// the config store enforces, checked twice: once against the declared
// Content-Length before the body is read, and once against the actual number
// of decoded bytes.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mofeiss/metacubexd/internal/configfile"
)

// ErrTooLarge reports a remote payload over the size ceiling. Callers at the
// HTTP boundary map it to 413.
var ErrTooLarge = errors.New("remote content exceeds size limit")

// Fetch GETs url and returns the body as text. The declared Content-Length,
// if present, is rejected before any body bytes are read; otherwise the body
// is read through a limited reader so an unbounded or lying server cannot
// push more than the ceiling into memory.
func Fetch(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build fetch request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	if resp.ContentLength > configfile.MaxSize {
		return "", fmt.Errorf("fetch %s: declared length %d: %w", url, resp.ContentLength, ErrTooLarge)
	}

	// Read one byte past the ceiling to distinguish "exactly at the limit"
	// from "over it".
	data, err := io.ReadAll(io.LimitReader(resp.Body, configfile.MaxSize+1))
	if err != nil {
		return "", fmt.Errorf("read fetch body: %w", err)
	}
	if len(data) > configfile.MaxSize {
		return "", fmt.Errorf("fetch %s: %w", url, ErrTooLarge)
	}

	return string(data), nil
}
