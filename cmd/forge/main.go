// Copyright 2026 The forge Authors
// SPDX-License-Identifier: Apache-2.0

// Command forge is the CLI front-end: a thin cobra wiring layer over
// internal/orchestrator. Grounded on marcelocantos-mk's cmd/mk/main.go
// for the flag surface (-f, -v, -B, -n, why, graph), translated from
// the stdlib `flag` package into cobra subcommands, and on
// wharflab-tally's cmd/ layering for keeping the binary itself free of
// build logic.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/declbuild/forge/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "forge",
		Short:         "A declarative build tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newBuildCmd(), newWhyCmd(), newGraphCmd())
	return root
}

func bindCommonFlags(cmd *cobra.Command) (file *string, verbose, force, dryRun *bool) {
	file = cmd.Flags().StringP("file", "f", "build.forge", "build description file to read")
	verbose = cmd.Flags().BoolP("verbose", "v", false, "verbose output")
	force = cmd.Flags().BoolP("force", "B", false, "unconditional rebuild")
	dryRun = cmd.Flags().BoolP("dry-run", "n", false, "print commands without executing")
	return
}

func fail(err error) error {
	fmt.Fprintln(os.Stderr, "forge:", err)
	return err
}

func init() {
	logging.Configure(false)
}
