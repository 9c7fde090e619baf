// Copyright 2026 The cdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/constdb/cdb"
)

var getOccurrence int

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get FILE KEY",
	Short: "Print the values stored under a key",
	Long: `Print every value stored under a key, in write order.

Example:
  cdb get passwords.cdb letmein`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := cdb.Open(args[0])
		if err != nil {
			return err
		}
		defer func() {
			_ = r.Close()
		}()

		key := []byte(args[1])
		if getOccurrence >= 0 {
			v, err := r.GetAt(key, uint32(getOccurrence))
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", v)
			return nil
		}

		values, err := r.Get(key)
		if err != nil {
			return err
		}
		if len(values) == 0 {
			return fmt.Errorf("no values under %q", args[1])
		}
		for _, v := range values {
			fmt.Printf("%s\n", v)
		}
		return nil
	},
}

func init() {
	getCmd.Flags().IntVarP(&getOccurrence, "occurrence", "n", -1,
		"print only the n'th value (0-based) instead of all of them")
	rootCmd.AddCommand(getCmd)
}
