// Copyright 2026 The cdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cdb

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderTooSmall(t *testing.T) {
	_, err := NewReader(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrTooSmall)

	_, err = NewReader(bytes.NewReader(make([]byte, headerSize-1)))
	assert.ErrorIs(t, err, ErrTooSmall)
}

func TestReaderCorruptHeader(t *testing.T) {
	// every bucket descriptor points past the end of the file
	header := make([]byte, headerSize)
	for i := 0; i < numBuckets; i++ {
		pack(header[i*bucketDescSize:], 5000)
	}
	_, err := NewReader(bytes.NewReader(header))
	assert.ErrorIs(t, err, ErrCorrupt)

	// a table can never start inside the header
	for i := 0; i < numBuckets; i++ {
		pack(header[i*bucketDescSize:], 100)
	}
	_, err = NewReader(bytes.NewReader(header))
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestReaderMissingKey(t *testing.T) {
	_, r, err := buildDB([][2]string{{"key", "value"}})
	require.NoError(t, err)

	_, err = r.GetFirst([]byte("absent"))
	assert.ErrorIs(t, err, ErrNotFound)

	// occurrences past the last duplicate are not found either
	_, err = r.GetAt([]byte("key"), 1)
	assert.ErrorIs(t, err, ErrNotFound)

	values, err := r.Get([]byte("absent"))
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestReaderKeys(t *testing.T) {
	_, r, err := buildDB([][2]string{
		{"a", "1"},
		{"b", "2"},
		{"a", "3"},
	})
	require.NoError(t, err)

	keys, err := r.Keys()
	require.NoError(t, err)
	require.Len(t, keys, 3)
	// storage order, duplicates included
	assert.Equal(t, "a", string(keys[0]))
	assert.Equal(t, "b", string(keys[1]))
	assert.Equal(t, "a", string(keys[2]))
}

func TestIteratorOrderAndRestart(t *testing.T) {
	var pairs [][2]string
	for i := 0; i < 100; i++ {
		pairs = append(pairs, [2]string{fmt.Sprintf("key-%d", i), fmt.Sprintf("value-%d", i)})
	}
	_, r, err := buildDB(pairs)
	require.NoError(t, err)

	collect := func(it *Iterator) [][2]string {
		var got [][2]string
		for item, ok := it.Next(); ok; item, ok = it.Next() {
			got = append(got, [2]string{string(item.Key), string(item.Value)})
		}
		require.NoError(t, it.Err())
		return got
	}

	it := r.Iter()
	first := collect(it)
	require.Len(t, first, r.Len())
	assert.Equal(t, pairs, first)

	// restarting replays the identical sequence
	it.Reset()
	assert.Equal(t, first, collect(it))

	// iteration and lookups share the resource without confusing each other
	it.Reset()
	item, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, "key-0", string(item.Key))
	v, err := r.GetFirst([]byte("key-50"))
	require.NoError(t, err)
	assert.Equal(t, "value-50", string(v))
	item, ok = it.Next()
	require.True(t, ok)
	assert.Equal(t, "key-1", string(item.Key))
}

func TestReaderCorruptRecordLength(t *testing.T) {
	f, r, err := buildDB([][2]string{{"key", "value"}})
	require.NoError(t, err)

	// blow up the key length of the first (and only) record
	pack(f.buf[headerSize:], 1<<30)

	_, err = r.GetFirst([]byte("key"))
	assert.ErrorIs(t, err, ErrCorrupt)

	it := r.Iter()
	_, ok := it.Next()
	assert.False(t, ok)
	assert.ErrorIs(t, it.Err(), ErrCorrupt)
}

func TestReaderCloseWithoutOwnership(t *testing.T) {
	_, r, err := buildDB([][2]string{{"key", "value"}})
	require.NoError(t, err)
	// nothing owned, nothing to close
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
}

func BenchmarkReaderGet(b *testing.B) {
	f := &memFile{}
	w, err := NewWriter(f)
	if err != nil {
		b.Fatal(err)
	}
	const n = 1000
	for i := 0; i < n; i++ {
		if err := w.Put([]byte(fmt.Sprintf("key-%d", i)), []byte(fmt.Sprintf("value-%d", i))); err != nil {
			b.Fatal(err)
		}
	}
	r, err := w.AsReader()
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := []byte(fmt.Sprintf("key-%d", i%n))
		if _, err := r.GetFirst(key); err != nil {
			b.Fatal(err)
		}
	}
}
