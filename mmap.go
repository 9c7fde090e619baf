// Copyright 2026 The cdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cdb

import (
	"bytes"
	"fmt"

	"github.com/constdb/cdb/internal/mmap"
)

// Open memory-maps the database at path and returns a Reader over it.
// Reads served from the page cache skip a syscall per record, which is
// what you want for lookup-heavy use.
//
// The Reader is strictly read-only: AsWriter on it fails, because a
// mapping cannot be truncated.  Call Close to drop the mapping.
func Open(path string) (*Reader, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mmap.Open(%s): %w", path, err)
	}
	r, err := NewReader(bytes.NewReader(m.Data()))
	if err != nil {
		_ = m.Close()
		return nil, err
	}
	r.closer = m
	return r, nil
}
