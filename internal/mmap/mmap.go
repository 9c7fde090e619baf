// Copyright 2026 The cdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package mmap memory-maps files read-only.  Lookups in a constant
// database touch a handful of scattered pages, so mappings are advised
// MADV_RANDOM.
package mmap

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// ReaderAt is a read-only memory mapping of a whole file.
type ReaderAt struct {
	data []byte
}

// Open maps the file at path.  The file descriptor is not kept; the
// mapping stays valid until Close.
func Open(path string) (*ReaderAt, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s): %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("f.Stat: %w", err)
	}
	size := stat.Size()
	if size == 0 {
		return &ReaderAt{}, nil
	}
	if size != int64(int(size)) {
		return nil, fmt.Errorf("file %q too large to map", path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap(%s): %w", path, err)
	}
	if err := unix.Madvise(data, unix.MADV_RANDOM); err != nil {
		_ = unix.Munmap(data)
		return nil, fmt.Errorf("madvise: %w", err)
	}
	return &ReaderAt{data: data}, nil
}

// Data exposes the mapped bytes.  The slice must not be written to, and
// is invalid after Close.
func (r *ReaderAt) Data() []byte {
	return r.data
}

// Len reports the mapped file's size.
func (r *ReaderAt) Len() int {
	return len(r.data)
}

// ReadAt implements io.ReaderAt against the mapping.
func (r *ReaderAt) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(r.data)) {
		return 0, fmt.Errorf("offset %d out of range (len %d)", off, len(r.data))
	}
	n := copy(p, r.data[off:])
	if n < len(p) {
		return n, fmt.Errorf("short read of %d at %d", len(p), off)
	}
	return n, nil
}

// Close unmaps the file.  Closing twice is fine.
func (r *ReaderAt) Close() error {
	if r.data == nil {
		return nil
	}
	data := r.data
	r.data = nil
	return unix.Munmap(data)
}
