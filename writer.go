// Copyright 2026 The cdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cdb

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

const defaultBufferSize = 4 * 1024 * 1024

var errTooLarge = errors.New("database would exceed the format's 4 GiB limit")

// WriterOption configures a Writer.
type WriterOption func(*writerOptions)

type writerOptions struct {
	logger *slog.Logger
}

// WithLogger sets an optional logger the Writer uses for progress updates
// during Finalize.  If not provided, no logging output is produced.
func WithLogger(logger *slog.Logger) WriterOption {
	return func(opts *writerOptions) {
		opts.logger = logger
	}
}

// Writer builds a new database by appending records and then, in Finalize,
// laying out the 256 on-disk hash tables.  The table layout can only be
// computed once every record is known, so slots accumulate in memory until
// then.
//
// A Writer owns its resource exclusively.  Forgetting to call Finalize
// (or AsReader, or Close) leaves the database without hash tables and a
// zeroed header; there is no implicit flush.
type Writer struct {
	f         WriteFile
	w         *bufio.Writer
	off       uint64
	index     [numBuckets][]slot
	finalized bool
	owned     *os.File
	logger    *slog.Logger
}

// NewWriter starts a fresh database in f, reserving a zeroed header that
// Finalize later overwrites with the real bucket descriptors.
func NewWriter(f WriteFile, opts ...WriterOption) (*Writer, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek start: %w", err)
	}
	w := newWriterWithIndex(f, [numBuckets][]slot{}, 0, opts...)
	var zero [headerSize]byte
	if _, err := w.w.Write(zero[:]); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	w.off = headerSize
	return w, nil
}

// Create is a convenience wrapper creating (or truncating) the file at
// path and starting a Writer over it.
func Create(path string, opts ...WriterOption) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("os.OpenFile(%s): %w", path, err)
	}
	w, err := NewWriter(f, opts...)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.owned = f
	return w, nil
}

// newWriterWithIndex seeds a Writer from pre-assigned buckets.  Used by
// Reader.AsWriter, which hands over the slots of an existing database with
// the resource positioned (and truncated) at off.
func newWriterWithIndex(f WriteFile, index [numBuckets][]slot, off uint64, opts ...WriterOption) *Writer {
	var options writerOptions
	options.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	for _, opt := range opts {
		opt(&options)
	}
	return &Writer{
		f:      f,
		w:      bufio.NewWriterSize(f, defaultBufferSize),
		off:    off,
		index:  index,
		logger: options.logger,
	}
}

// Put appends a record for key.  Keys need not be unique: putting the same
// key again adds another occurrence, retrievable in write order through
// Reader.GetAt.
func (w *Writer) Put(key, value []byte) error {
	if w.finalized || w.f == nil {
		return ErrFinalized
	}
	recordLen := uint64(recordHeaderSize) + uint64(len(key)) + uint64(len(value))
	if w.off+recordLen > maxFileSize {
		return errTooLarge
	}

	var hdr [recordHeaderSize]byte
	pack(hdr[:4], uint32(len(key)))
	pack(hdr[4:], uint32(len(value)))
	if _, err := w.w.Write(hdr[:]); err != nil {
		return fmt.Errorf("write record header: %w", err)
	}
	if _, err := w.w.Write(key); err != nil {
		return fmt.Errorf("write key: %w", err)
	}
	if _, err := w.w.Write(value); err != nil {
		return fmt.Errorf("write value: %w", err)
	}

	h := Hash(key)
	w.index[h&0xff] = append(w.index[h&0xff], slot{hash: h, pos: uint32(w.off)})
	w.off += recordLen
	return nil
}

// Finalize lays out the hash tables after the last record and rewrites the
// header, completing the database.  Calling it again is a no-op.
func (w *Writer) Finalize() error {
	if w.finalized {
		return nil
	}
	if w.f == nil {
		return ErrFinalized
	}

	records := 0
	var header [headerSize]byte
	var buf [slotSize]byte
	for b := range w.index {
		entries := w.index[b]
		records += len(entries)
		// twice as many slots as entries keeps the load factor at 50%
		nslots := uint32(len(entries)) * 2
		if w.off+uint64(nslots)*slotSize > maxFileSize {
			return errTooLarge
		}
		pack(header[b*bucketDescSize:], uint32(w.off))
		pack(header[b*bucketDescSize+4:], nslots)
		if nslots == 0 {
			continue
		}

		// place entries in insertion order: lookups replay the same
		// probe sequence, which is what keeps duplicate keys ordered
		ordered := make([]slot, nslots)
		for _, e := range entries {
			i := (e.hash >> 8) % nslots
			for ordered[i].pos != 0 {
				i = (i + 1) % nslots
			}
			ordered[i] = e
		}
		for _, s := range ordered {
			pack(buf[:4], s.hash)
			pack(buf[4:], s.pos)
			if _, err := w.w.Write(buf[:]); err != nil {
				return fmt.Errorf("write slot: %w", err)
			}
		}
		w.off += uint64(nslots) * slotSize
		w.index[b] = nil
	}

	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	if _, err := w.f.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seek start: %w", err)
	}
	if _, err := w.f.Write(header[:]); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	w.finalized = true
	w.logger.Debug("finalized database", "records", records, "size", w.off)
	return nil
}

// Close finalizes the database and, if the Writer owns the underlying
// file (it was constructed with Create), closes it.
func (w *Writer) Close() error {
	if err := w.Finalize(); err != nil {
		return err
	}
	w.f = nil
	if w.owned != nil {
		f := w.owned
		w.owned = nil
		return f.Close()
	}
	return nil
}

// AsReader finalizes the database and reopens it for reads over the same
// resource.  AsReader consumes the Writer: it must not be used afterwards.
func (w *Writer) AsReader() (*Reader, error) {
	if w.f == nil {
		return nil, ErrFinalized
	}
	if err := w.Finalize(); err != nil {
		return nil, err
	}
	f := w.f
	w.f = nil
	r, err := NewReader(f)
	if err != nil {
		return nil, err
	}
	if w.owned != nil {
		// the file was opened by Create; the Reader takes over closing it
		r.closer = w.owned
		w.owned = nil
	}
	return r, nil
}
