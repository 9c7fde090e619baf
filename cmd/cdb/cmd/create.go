// Copyright 2026 The cdb Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/constdb/cdb"
)

var createVerbose bool

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create FILE",
	Short: "Build a database from key:value lines on stdin",
	Long: `Build a database from key:value lines read on stdin.  Repeating
a key stores another occurrence, retrievable in write order.

Example:
  printf 'one:1\ntwo:2\n' | cdb create numbers.cdb`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts []cdb.WriterOption
		if createVerbose {
			opts = append(opts, cdb.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}))))
		}
		w, err := cdb.Create(args[0], opts...)
		if err != nil {
			return err
		}

		n, err := putLines(cmd.InOrStdin(), w)
		if err != nil {
			_ = w.Close()
			return err
		}
		if err := w.Close(); err != nil {
			return err
		}
		fmt.Printf("wrote %d records to %s\n", n, args[0])
		return nil
	},
}

func init() {
	createCmd.Flags().BoolVarP(&createVerbose, "verbose", "v", false, "log build progress to stderr")
	rootCmd.AddCommand(createCmd)
}
