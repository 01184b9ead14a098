// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bikeshare

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// A Loader loads datasets from files and caches them for the life of
// the Loader. A Loader is safe for concurrent use; concurrent loads of
// the same file parse it once.
//
// Cached datasets are never invalidated, even if the file changes.
type Loader struct {
	mu      sync.Mutex
	entries map[string]*loadEntry
}

type loadEntry struct {
	done chan struct{}
	d    *Dataset
	err  error
}

// Load returns the dataset in the file at path, parsing it on first
// use. If ctx is done while waiting for another caller's load, Load
// returns ctx.Err(); the load itself is not interrupted.
//
// Failed loads are not cached, so a later call retries.
func (l *Loader) Load(ctx context.Context, path string) (*Dataset, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	if l.entries == nil {
		l.entries = make(map[string]*loadEntry)
	}
	e, ok := l.entries[key]
	if !ok {
		e = &loadEntry{done: make(chan struct{})}
		l.entries[key] = e
		l.mu.Unlock()

		e.d, e.err = l.load(key)
		if e.err != nil {
			l.mu.Lock()
			delete(l.entries, key)
			l.mu.Unlock()
		}
		close(e.done)
		return e.d, e.err
	}
	l.mu.Unlock()

	select {
	case <-e.done:
		return e.d, e.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Loaded reports whether the file at path has been loaded
// successfully.
func (l *Loader) Loaded(path string) bool {
	key, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	l.mu.Lock()
	e, ok := l.entries[key]
	l.mu.Unlock()
	if !ok {
		return false
	}
	select {
	case <-e.done:
		return e.err == nil
	default:
		return false
	}
}

func (l *Loader) load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return NewDataset(rows), nil
}
