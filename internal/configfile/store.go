// SPDX-License-Identifier: MIT

// Package configfile owns the daemon's on-disk configuration file: reading it
// with a captured modification timestamp and replacing it atomically under a
// fixed size ceiling. Content is opaque text; no YAML parsing happens here.
package configfile

import (
	"context"
	"os"
	"unicode/utf8"
)

// MaxSize is the largest accepted content size in UTF-8 bytes.
const MaxSize = 2 * 1024 * 1024

// Snapshot is the result of a read: the file's content and its modification
// time in milliseconds since epoch.
type Snapshot struct {
	Content string
	MTimeMS int64
}

// Store reads and writes a single configuration file. It keeps no state
// between calls; the filesystem is the sole source of truth. Concurrent
// writes are last-writer-wins — callers wanting "save only if unchanged"
// semantics must compare the returned MTimeMS themselves.
type Store struct {
	path string
}

// NewStore returns a Store bound to path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file path the store is bound to.
func (s *Store) Path() string { return s.path }

// Read returns the file's current content and mtime. Failures are classified:
// a missing file yields KindNotFound, access failures KindPermissionDenied,
// anything else KindIOError. No size limit applies on read.
func (s *Store) Read(ctx context.Context) (Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Snapshot{}, Classify("read", s.path, err)
	}
	info, err := os.Stat(s.path)
	if err != nil {
		return Snapshot{}, Classify("read", s.path, err)
	}
	return Snapshot{Content: string(data), MTimeMS: info.ModTime().UnixMilli()}, nil
}

// Write validates content, persists it atomically and returns the file's new
// mtime in milliseconds. Invalid UTF-8 is rejected with KindInvalidContent
// and oversize content with KindContentTooLarge, both before storage is
// touched — a rejected write leaves the file byte-for-byte unchanged. The
// file is created if absent, replaced if present.
func (s *Store) Write(ctx context.Context, content string) (int64, error) {
	if !utf8.ValidString(content) {
		return 0, &Error{
			Kind:    KindInvalidContent,
			Op:      "write",
			Path:    s.path,
			Message: "content is not valid UTF-8 text",
		}
	}
	if len(content) > MaxSize {
		return 0, &Error{
			Kind:    KindContentTooLarge,
			Op:      "write",
			Path:    s.path,
			Message: "content exceeds the 2 MiB limit",
		}
	}

	if err := writeAtomic(ctx, s.path, []byte(content)); err != nil {
		return 0, Classify("write", s.path, err)
	}

	info, err := os.Stat(s.path)
	if err != nil {
		return 0, Classify("write", s.path, err)
	}
	return info.ModTime().UnixMilli(), nil
}
