// Copyright 2026 The cdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/constdb/cdb"
)

var (
	dumpTop  int
	dumpTail int
)

// dumpCmd represents the dump command
var dumpCmd = &cobra.Command{
	Use:   "dump FILE",
	Short: "Print records as key:value lines",
	Long: `Print records as key:value lines in storage order.  The output
round-trips through "cdb create".  --top and --tail limit the dump to the
first or last N records.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := cdb.Open(args[0])
		if err != nil {
			return err
		}
		defer func() {
			_ = r.Close()
		}()

		skip, limit := 0, r.Len()
		if dumpTop > 0 {
			limit = dumpTop
		}
		if dumpTail > 0 {
			skip = r.Len() - dumpTail
		}

		i := 0
		it := r.Iter()
		for item, ok := it.Next(); ok && limit > 0; item, ok = it.Next() {
			if i < skip {
				i++
				continue
			}
			fmt.Printf("%s:%s\n", item.Key, item.Value)
			limit--
		}
		return it.Err()
	},
}

func init() {
	dumpCmd.Flags().IntVar(&dumpTop, "top", 0, "only dump the first N records")
	dumpCmd.Flags().IntVar(&dumpTail, "tail", 0, "only dump the last N records")
	dumpCmd.MarkFlagsMutuallyExclusive("top", "tail")
	rootCmd.AddCommand(dumpCmd)
}
