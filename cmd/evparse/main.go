// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	evparse "github.com/mdhender/evparse"
)

func main() {
	addFlags := func(cmd *cobra.Command) error {
		cmd.PersistentFlags().Bool("debug", false, "log debugging information")
		cmd.PersistentFlags().Bool("log-with-shortfile", true, "log with short file name")
		cmd.PersistentFlags().Bool("log-with-timestamp", false, "log with timestamp")
		cmd.PersistentFlags().Bool("quiet", false, "log less information")
		return nil
	}

	var cmdRoot = &cobra.Command{
		Use:   "evparse",
		Short: "event-based parsing framework utility",
		Long:  `Parse demo-language source, generate typed-tree bindings for a grammar, and report diagnostics.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logFlags := 0
			if shortFile, _ := cmd.Flags().GetBool("log-with-shortfile"); shortFile {
				logFlags |= log.Lshortfile
			}
			if withTime, _ := cmd.Flags().GetBool("log-with-timestamp"); withTime {
				logFlags |= log.Ltime
			}
			if logFlags == 0 {
				logFlags = log.LstdFlags
			}
			log.SetFlags(logFlags)
			return nil
		},
	}
	cmdRoot.AddCommand(cmdParse())
	cmdRoot.AddCommand(cmdGen())
	cmdRoot.AddCommand(cmdPhrase())
	cmdRoot.AddCommand(cmdVersion())
	if err := addFlags(cmdRoot); err != nil {
		log.Fatal(err)
	}

	if err := cmdRoot.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func cmdVersion() *cobra.Command {
	showBuildInfo := false
	var cmd = &cobra.Command{
		Use:   "version",
		Short: "display the application's version number",
		RunE: func(cmd *cobra.Command, args []string) error {
			if showBuildInfo {
				fmt.Println(evparse.Version().String())
				return nil
			}
			fmt.Println(evparse.Version().Core())
			return nil
		},
	}
	cmd.Flags().BoolVar(&showBuildInfo, "build-info", showBuildInfo, "show build information")
	return cmd
}
