// Copyright 2026 The cdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/constdb/cdb"
)

// keysCmd represents the keys command
var keysCmd = &cobra.Command{
	Use:   "keys FILE",
	Short: "Print every key in storage order",
	Long: `Print every key in storage order, one per line.  Duplicate keys
appear once per occurrence.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := cdb.Open(args[0])
		if err != nil {
			return err
		}
		defer func() {
			_ = r.Close()
		}()

		keys, err := r.Keys()
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Printf("%s\n", k)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
}
