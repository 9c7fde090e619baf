// Copyright 2026 The cdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cdb

import (
	"errors"
	"fmt"
	"io"
)

// memFile is an in-memory seekable file for tests: everything a Writer or
// a converted Reader needs, without touching disk.
type memFile struct {
	buf []byte
	off int64
}

var _ TruncateFile = &memFile{}

func (f *memFile) Read(p []byte) (int, error) {
	if f.off >= int64(len(f.buf)) {
		return 0, io.EOF
	}
	n := copy(p, f.buf[f.off:])
	f.off += int64(n)
	return n, nil
}

func (f *memFile) Write(p []byte) (int, error) {
	end := f.off + int64(len(p))
	if end > int64(len(f.buf)) {
		grown := make([]byte, end)
		copy(grown, f.buf)
		f.buf = grown
	}
	copy(f.buf[f.off:end], p)
	f.off = end
	return len(p), nil
}

func (f *memFile) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = f.off + offset
	case io.SeekEnd:
		abs = int64(len(f.buf)) + offset
	default:
		return 0, errors.New("invalid whence")
	}
	if abs < 0 {
		return 0, errors.New("negative position")
	}
	f.off = abs
	return abs, nil
}

func (f *memFile) Truncate(size int64) error {
	if size < 0 {
		return errors.New("negative size")
	}
	if size <= int64(len(f.buf)) {
		f.buf = f.buf[:size]
		return nil
	}
	grown := make([]byte, size)
	copy(grown, f.buf)
	f.buf = grown
	return nil
}

// buildDB writes pairs into a fresh in-memory database and reopens it for
// reads.
func buildDB(pairs [][2]string) (*memFile, *Reader, error) {
	f := &memFile{}
	w, err := NewWriter(f)
	if err != nil {
		return nil, nil, err
	}
	for _, p := range pairs {
		if err := w.Put([]byte(p[0]), []byte(p[1])); err != nil {
			return nil, nil, fmt.Errorf("put %q: %w", p[0], err)
		}
	}
	r, err := w.AsReader()
	if err != nil {
		return nil, nil, err
	}
	return f, r, nil
}
