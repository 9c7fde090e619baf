// Copyright 2026 The cdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// special case of SplitN that doesn't require allocation
func split2(s []byte, sep byte) (l []byte, r []byte, ok bool) {
	m := bytes.IndexByte(s, sep)
	if m < 0 {
		return nil, nil, false
	}

	l = s[:m]
	r = s[m+1:]
	ok = true
	return
}

// putLines feeds key:value lines from in into put, one record per line.
type putter interface {
	Put(key, value []byte) error
}

func putLines(in io.Reader, w putter) (int, error) {
	n := 0
	s := bufio.NewScanner(bufio.NewReaderSize(in, 16*1024))
	for s.Scan() {
		line := s.Bytes()
		if len(line) == 0 {
			continue
		}
		k, v, ok := split2(line, ':')
		if !ok {
			return n, fmt.Errorf("line %d: expected key:value, got %q", n+1, line)
		}
		if err := w.Put(k, v); err != nil {
			return n, err
		}
		n++
	}
	if err := s.Err(); err != nil {
		return n, err
	}
	return n, nil
}
