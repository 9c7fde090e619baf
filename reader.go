// Copyright 2026 The cdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cdb

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Reader serves lookups and iteration over an existing database.  The
// header is parsed once at construction; the resource is only touched for
// record and slot reads after that.
//
// A Reader owns its resource exclusively.  Lookups and iteration share the
// resource's cursor, so use one access mode at a time.
type Reader struct {
	f          io.ReadSeeker
	index      [numBuckets]bucketDesc
	tableStart uint32
	length     int
	size       int64
	closer     io.Closer
}

// NewReader parses the header of the database in f and returns a Reader
// over it.  It fails with ErrTooSmall if f cannot hold a header, and with
// ErrCorrupt if the header points outside the file.
func NewReader(f io.ReadSeeker) (*Reader, error) {
	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("seek end: %w", err)
	}
	if size < headerSize {
		return nil, ErrTooSmall
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek start: %w", err)
	}

	var header [headerSize]byte
	if _, err := io.ReadFull(f, header[:]); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	r := &Reader{f: f, size: size}
	tableStart := uint32(maxFileSize)
	for i := range r.index {
		pos := unpack(header[i*bucketDescSize:])
		nslots := unpack(header[i*bucketDescSize+4:])
		r.index[i] = bucketDesc{pos: pos, nslots: nslots}
		r.length += int(nslots >> 1)
		if pos < tableStart {
			tableStart = pos
		}
	}
	if tableStart < headerSize || int64(tableStart) > size {
		return nil, ErrCorrupt
	}
	r.tableStart = tableStart
	return r, nil
}

// Len reports how many records the database holds, counting duplicate
// keys once per occurrence.
func (r *Reader) Len() int {
	return r.length
}

// IsEmpty reports whether the database holds no records.
func (r *Reader) IsEmpty() bool {
	return r.length == 0
}

// GetFirst returns the value of the first record written under key.
func (r *Reader) GetFirst(key []byte) ([]byte, error) {
	return r.GetAt(key, 0)
}

// Get returns every value stored under key, in the order the records were
// written.  A missing key is not an error: it yields no values.
func (r *Reader) Get(key []byte) ([][]byte, error) {
	var values [][]byte
	for i := uint32(0); ; i++ {
		v, err := r.GetAt(key, i)
		if errors.Is(err, ErrNotFound) {
			return values, nil
		}
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
}

// GetAt returns the value of the n'th record written under key (0-based).
// It fails with ErrNotFound when key has fewer than n+1 occurrences.
func (r *Reader) GetAt(key []byte, n uint32) ([]byte, error) {
	h := Hash(key)
	b := r.index[h&0xff]
	// a bucket can never hold more matches than it has slots
	if n >= b.nslots {
		return nil, ErrNotFound
	}
	if int64(b.pos)+int64(b.nslots)*slotSize > r.size {
		return nil, ErrCorrupt
	}

	var buf [slotSize]byte
	start := (h >> 8) % b.nslots
	found := uint32(0)
	// probing is confined to this bucket's own slots, wrapping at its end
	for i := uint32(0); i < b.nslots; i++ {
		slotOff := int64(b.pos) + int64((start+i)%b.nslots)*slotSize
		if _, err := r.f.Seek(slotOff, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seek slot: %w", err)
		}
		if _, err := io.ReadFull(r.f, buf[:]); err != nil {
			return nil, fmt.Errorf("read slot: %w", err)
		}
		storedHash, pos := unpack(buf[:4]), unpack(buf[4:])
		if pos == 0 {
			// empty slot: the probe sequence for this key is over
			return nil, ErrNotFound
		}
		if storedHash != h {
			continue
		}

		keyLen, valueLen, err := r.readRecordHeader(pos)
		if err != nil {
			return nil, err
		}
		if int(keyLen) != len(key) {
			continue
		}
		storedKey := make([]byte, keyLen)
		if _, err := io.ReadFull(r.f, storedKey); err != nil {
			return nil, fmt.Errorf("read key: %w", err)
		}
		if !bytes.Equal(storedKey, key) {
			continue
		}
		if found < n {
			found++
			continue
		}
		value := make([]byte, valueLen)
		if _, err := io.ReadFull(r.f, value); err != nil {
			return nil, fmt.Errorf("read value: %w", err)
		}
		return value, nil
	}
	return nil, ErrNotFound
}

// readRecordHeader seeks to the record at pos and decodes its length
// prefix, leaving the cursor at the first key byte.  Lengths are checked
// against the file size before anyone trusts them.
func (r *Reader) readRecordHeader(pos uint32) (keyLen, valueLen uint32, err error) {
	if int64(pos)+recordHeaderSize > r.size {
		return 0, 0, ErrCorrupt
	}
	if _, err := r.f.Seek(int64(pos), io.SeekStart); err != nil {
		return 0, 0, fmt.Errorf("seek record: %w", err)
	}
	var buf [recordHeaderSize]byte
	if _, err := io.ReadFull(r.f, buf[:]); err != nil {
		return 0, 0, fmt.Errorf("read record header: %w", err)
	}
	keyLen, valueLen = unpack(buf[:4]), unpack(buf[4:])
	if int64(pos)+recordHeaderSize+int64(keyLen)+int64(valueLen) > r.size {
		return 0, 0, ErrCorrupt
	}
	return keyLen, valueLen, nil
}

// Keys returns the key of every record in storage order.  Duplicate keys
// appear once per occurrence.
func (r *Reader) Keys() ([][]byte, error) {
	var keys [][]byte
	it := r.Iter()
	for item, ok := it.Next(); ok; item, ok = it.Next() {
		keys = append(keys, item.Key)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

// AsWriter converts this Reader into a Writer over the same resource so
// more records can be appended.  The stale hash tables are read back into
// memory and truncated off the file; the next Finalize rebuilds them with
// the old and new records combined.
//
// The resource must support truncation (*os.File does; the memory-mapped
// readers returned by Open do not).  AsWriter consumes the Reader: it must
// not be used afterwards.
func (r *Reader) AsWriter() (*Writer, error) {
	f, ok := r.f.(TruncateFile)
	if !ok {
		return nil, errors.New("resource does not support truncation")
	}
	if _, err := f.Seek(int64(r.tableStart), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek tables: %w", err)
	}

	var index [numBuckets][]slot
	br := bufio.NewReader(f)
	var buf [slotSize]byte
	for {
		_, err := io.ReadFull(br, buf[:])
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			return nil, ErrCorrupt
		}
		if err != nil {
			return nil, fmt.Errorf("read slot: %w", err)
		}
		h, pos := unpack(buf[:4]), unpack(buf[4:])
		if pos == 0 {
			// empty slot, not a record reference
			continue
		}
		index[h&0xff] = append(index[h&0xff], slot{hash: h, pos: pos})
	}

	if err := f.Truncate(int64(r.tableStart)); err != nil {
		return nil, fmt.Errorf("truncate: %w", err)
	}
	if _, err := f.Seek(int64(r.tableStart), io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek end: %w", err)
	}

	r.f = nil
	return newWriterWithIndex(f, index, uint64(r.tableStart)), nil
}

// Close releases any resource the Reader owns.  Readers constructed over a
// caller-provided io.ReadSeeker own nothing, and Close is a no-op for them.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	c := r.closer
	r.closer = nil
	return c.Close()
}
