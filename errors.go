// Copyright 2026 The cdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cdb

import "errors"

var (
	// ErrTooSmall means the resource is under 2048 bytes and cannot hold
	// even an empty database's header.
	ErrTooSmall = errors.New("file too small to be a cdb")

	// ErrNotFound means a lookup matched no record.  It is an expected
	// condition, not a fault: Get stops collecting values on it, and
	// GetAt reports it when the occurrence index runs past the last
	// duplicate.
	ErrNotFound = errors.New("key not found")

	// ErrCorrupt means a length or position field points outside the
	// file.  Length fields are otherwise trusted, so this only catches
	// truncation and gross corruption, not bit rot.
	ErrCorrupt = errors.New("cdb file corrupted")

	// ErrFinalized means a Writer was used after Finalize (or after
	// AsReader consumed it).
	ErrFinalized = errors.New("writer already finalized")
)
