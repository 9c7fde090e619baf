// Copyright 2026 The cdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cdb

import "encoding/binary"

// Hash is the DJB string hash used throughout the cdb format:
// h = ((h << 5) + h) ^ c with a starting value of 5381, wrapping at 32
// bits.  Readers and writers must agree on it bit-for-bit, so it is fixed
// forever.
func Hash(data []byte) uint32 {
	h := uint32(5381)
	for _, c := range data {
		h = ((h << 5) + h) ^ uint32(c)
	}
	return h
}

// pack encodes a u32 the way cdb stores every integer: little-endian,
// fixed width.
func pack(buf []byte, v uint32) {
	binary.LittleEndian.PutUint32(buf, v)
}

// unpack is the inverse of pack.
func unpack(buf []byte) uint32 {
	return binary.LittleEndian.Uint32(buf)
}
