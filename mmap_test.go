// Copyright 2026 The cdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cdb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.cdb")

	w, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, w.Put([]byte("key"), []byte("value")))
	require.NoError(t, w.Put([]byte("key"), []byte("value 2")))
	require.NoError(t, w.Put([]byte("hi"), []byte("asdf")))
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer func() {
		_ = r.Close()
	}()

	assert.Equal(t, 3, r.Len())
	values, err := r.Get([]byte("key"))
	require.NoError(t, err)
	require.Len(t, values, 2)
	assert.Equal(t, "value", string(values[0]))
	assert.Equal(t, "value 2", string(values[1]))

	// a memory mapping can't be truncated, so conversion must refuse
	_, err = r.AsWriter()
	assert.Error(t, err)

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
}

func TestOpenErrors(t *testing.T) {
	_, err := Open("/doesnt/exist")
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.cdb")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, err = Open(empty)
	assert.ErrorIs(t, err, ErrTooSmall)
}

func TestCreateThenAsReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.cdb")

	w, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, w.Put([]byte("key"), []byte("value")))

	// AsReader hands the file over to the Reader, including closing it
	r, err := w.AsReader()
	require.NoError(t, err)
	v, err := r.GetFirst([]byte("key"))
	require.NoError(t, err)
	assert.Equal(t, "value", string(v))
	require.NoError(t, r.Close())
}
