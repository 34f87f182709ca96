// SPDX-License-Identifier: MIT

package configfile

import (
	"context"
	"fmt"

	"github.com/google/renameio/v2"
	xglog "github.com/mofeiss/metacubexd/internal/log"
)

// writeAtomic replaces the file at path with data using a temp-sibling plus
// rename protocol. A concurrent reader of path sees either the complete old
// content or the complete new content, never a mix. The pending temp file is
// cleaned up on every exit path; cleanup failures never mask the primary
// result.
func writeAtomic(ctx context.Context, path string, data []byte) error {
	logger := xglog.FromContext(ctx)

	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending config file: %w", err)
	}
	defer func() {
		// No-op after a successful CloseAtomicallyReplace; removes the
		// orphaned temp file otherwise.
		if err := pending.Cleanup(); err != nil {
			logger.Debug().Err(err).Str("path", path).Msg("cleanup pending config file")
		}
	}()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("write pending config file: %w", err)
	}

	// fsync + rename: durable and atomic.
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace config file: %w", err)
	}

	return nil
}
