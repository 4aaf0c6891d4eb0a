// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"fmt"

	"github.com/mdhender/phrases/v2"
	"github.com/spf13/cobra"
)

// cmdPhrase is a small easter egg carried over from the teacher's CLI:
// a source of short, memorable identifiers (for naming scratch files,
// test fixtures, and the like) with nothing parse-related about it.
func cmdPhrase() *cobra.Command {
	length := 6
	var cmd = &cobra.Command{
		Use:   "phrase",
		Short: "print a random phrase",
		RunE: func(cmd *cobra.Command, args []string) error {
			if length < 1 {
				length = 1
			} else if length > 16 {
				length = 16
			}
			fmt.Println(phrases.Generate(length))
			return nil
		},
	}
	cmd.Flags().IntVar(&length, "length", length, "number of words in phrase")
	return cmd
}
