// Copyright 2026 The cdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cdb

import "io"

const (
	// headerSize is the fixed space reserved at the start of every
	// database for the 256 bucket descriptors.
	headerSize = numBuckets * bucketDescSize

	// numBuckets is fixed by the format: a key belongs to bucket
	// Hash(key)&0xff.
	numBuckets = 256

	// bucketDescSize is one header entry: u32 table position + u32 slot count.
	bucketDescSize = 8

	// slotSize is one hash table slot: u32 stored hash + u32 record position.
	slotSize = 8

	// recordHeaderSize is the u32 key length + u32 value length prefix
	// in front of every record.
	recordHeaderSize = 8

	// maxFileSize is inherent to the format: every position on disk is a
	// 32-bit offset.
	maxFileSize = 1<<32 - 1
)

// A slot pairs a key's hash with the absolute offset of its record.  A
// position of 0 marks an empty slot; real records never start before
// offset 2048.
type slot struct {
	hash uint32
	pos  uint32
}

// bucketDesc locates one bucket's hash table on disk.
type bucketDesc struct {
	pos    uint32
	nslots uint32
}

// WriteFile is the resource a Writer builds into: sequential writes plus
// the seeks needed to come back and fill in the header.  AsReader
// additionally needs reads, so the full interface is required up front.
// *os.File satisfies it.
type WriteFile interface {
	io.Reader
	io.Writer
	io.Seeker
}

// TruncateFile is the resource Reader.AsWriter needs: everything a Writer
// needs, plus the ability to discard the stale hash tables.  *os.File
// satisfies it.
type TruncateFile interface {
	WriteFile
	Truncate(size int64) error
}
