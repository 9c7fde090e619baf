// Copyright 2026 The cdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package main

import "github.com/constdb/cdb/cmd/cdb/cmd"

func main() {
	cmd.Execute()
}
