// Copyright 2026 The cdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/constdb/cdb"
)

// countCmd represents the count command
var countCmd = &cobra.Command{
	Use:   "count FILE",
	Short: "Print how many records a database holds",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := cdb.Open(args[0])
		if err != nil {
			return err
		}
		defer func() {
			_ = r.Close()
		}()

		fmt.Printf("%d\n", r.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countCmd)
}
