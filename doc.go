// Copyright 2026 The cdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package cdb reads and writes constant databases in DJB's cdb format,
// an immutable on-disk hash table mapping byte-string keys to byte-string
// values.  Lookups touch at most two regions of the file, and duplicate
// keys are preserved as an ordered multi-value group.
//
// A cdb file looks like:
//
//	┌──────────────────────────────┐
//	│ header: 256 × (pos, nslots)  │  2048 bytes
//	├──────────────────────────────┤
//	│ records: klen, vlen, key,    │
//	│ value — repeated, unaligned  │
//	├──────────────────────────────┤
//	│ 256 hash tables, each        │
//	│ nslots × (hash, pos)         │
//	└──────────────────────────────┘
//
// All integers are 32-bit little-endian, which caps a database at 4 GiB.
// A record position of 0 in a hash table slot means the slot is empty;
// genuine records always live at or after offset 2048.
//
// Databases are built with a Writer and queried with a Reader.  The two can
// exchange ownership of the same underlying file: Writer.AsReader finalizes
// the hash tables and reopens the result, and Reader.AsWriter strips the
// hash tables so more records can be appended.  The format has no in-place
// update or delete; rebuild and atomically rename instead.
//
// See http://cr.yp.to/cdb.html for the original design.
package cdb
