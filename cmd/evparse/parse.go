// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mdhender/evparse/lang"
	"github.com/mdhender/evparse/lang/cst"
)

// fs is the filesystem the parse subcommand reads from. Routing file
// access through afero.Fs rather than calling os directly lets tests
// substitute an in-memory filesystem instead of writing fixtures to disk.
var fs afero.Fs = afero.NewOsFs()

func cmdParse() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "parse FILE",
		Short: "parse a demo-language source file and print its tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := afero.ReadFile(fs, args[0])
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			log := slog.Default().With("request_id", uuid.NewString(), "file", args[0])

			b := cst.NewBuilder()
			lang.ParseWithLogger(src, b, log)
			root := b.Root()

			fmt.Print(cst.Dump(root))
			fmt.Printf("%s diagnostic(s)\n", humanize.Comma(int64(len(b.Diagnostics))))
			for _, d := range b.Diagnostics {
				if d.Message != nil {
					fmt.Printf("  error: %s\n", *d.Message)
					continue
				}
				fmt.Printf("  error: expected one of %d kind(s)\n", len(d.Expected))
			}
			if len(b.Diagnostics) > 0 {
				os.Exit(1)
			}
			return nil
		},
	}
	return cmd
}
