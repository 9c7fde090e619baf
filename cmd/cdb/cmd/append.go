// Copyright 2026 The cdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/constdb/cdb"
)

// appendCmd represents the append command
var appendCmd = &cobra.Command{
	Use:   "append FILE",
	Short: "Append key:value lines from stdin to an existing database",
	Long: `Append key:value lines read on stdin to an existing database.
The old hash tables are stripped, the new records are written after the
old ones, and the tables are rebuilt over both.

Readers opened before an append keep seeing the old contents; there is no
coordination.  For live data, build a fresh file and rename it over the
old one instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.OpenFile(args[0], os.O_RDWR, 0)
		if err != nil {
			return err
		}
		defer func() {
			_ = f.Close()
		}()

		r, err := cdb.NewReader(f)
		if err != nil {
			return err
		}
		w, err := r.AsWriter()
		if err != nil {
			return err
		}

		n, err := putLines(cmd.InOrStdin(), w)
		if err != nil {
			_ = w.Finalize()
			return err
		}
		if err := w.Finalize(); err != nil {
			return err
		}
		fmt.Printf("appended %d records to %s\n", n, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(appendCmd)
}
