// Copyright 2026 The cdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cdb

import (
	"fmt"
	"io"
)

// Item is a single key/value record yielded by an Iterator.
type Item struct {
	Key   []byte
	Value []byte
}

// Iterator is a cursor over a database's records in storage order.  It
// holds its own position, so restarting with Reset replays the identical
// sequence.  The records region ends where the hash tables begin; there is
// no explicit end marker.
//
// An Iterator reads through its Reader's resource.  Interleaving Get calls
// with iteration on the same Reader is fine (every read re-seeks), but two
// goroutines must not share one Reader.
type Iterator struct {
	r   *Reader
	off int64
	err error
}

// Iter starts a new iteration from the first record.
func (r *Reader) Iter() *Iterator {
	return &Iterator{r: r, off: headerSize}
}

// Next yields the next record, or false when the records region is
// exhausted or an error occurred.  Check Err after the loop to tell the
// two apart.
func (it *Iterator) Next() (Item, bool) {
	if it.err != nil || it.off >= int64(it.r.tableStart) {
		return Item{}, false
	}

	if _, err := it.r.f.Seek(it.off, io.SeekStart); err != nil {
		it.err = fmt.Errorf("seek record: %w", err)
		return Item{}, false
	}
	var buf [recordHeaderSize]byte
	if _, err := io.ReadFull(it.r.f, buf[:]); err != nil {
		it.err = fmt.Errorf("read record header: %w", err)
		return Item{}, false
	}
	keyLen, valueLen := unpack(buf[:4]), unpack(buf[4:])
	end := it.off + recordHeaderSize + int64(keyLen) + int64(valueLen)
	if end > int64(it.r.tableStart) {
		// the record would run into the hash tables
		it.err = ErrCorrupt
		return Item{}, false
	}

	item := Item{
		Key:   make([]byte, keyLen),
		Value: make([]byte, valueLen),
	}
	if _, err := io.ReadFull(it.r.f, item.Key); err != nil {
		it.err = fmt.Errorf("read key: %w", err)
		return Item{}, false
	}
	if _, err := io.ReadFull(it.r.f, item.Value); err != nil {
		it.err = fmt.Errorf("read value: %w", err)
		return Item{}, false
	}

	it.off = end
	return item, true
}

// Err reports the first error encountered by Next, if any.
func (it *Iterator) Err() error {
	return it.err
}

// Reset rewinds the cursor to the first record.
func (it *Iterator) Reset() {
	it.off = headerSize
	it.err = nil
}
