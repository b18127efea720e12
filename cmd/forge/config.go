package main

import (
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
)

// envPrefix is the prefix for environment variable overrides, e.g.
// FORGE_FILE, FORGE_VERBOSE.
const envPrefix = "FORGE_"

func envKeyTransform(key, value string) (string, any) {
	return strings.ToLower(strings.TrimPrefix(key, envPrefix)), value
}

// applyEnvOverrides layers FORGE_-prefixed environment variables over
// any common flag the user did not explicitly set on the command line.
// Grounded on SPEC_FULL.md's domain stack wiring table ("koanf --
// cmd/forge env var overrides") and on wharflab-tally's
// internal/config/config.go, which loads the same
// `env.Provider(prefix, delim, transformFunc)` shape for its own
// TALLY_*-prefixed overrides.
func applyEnvOverrides(cmd *cobra.Command, file *string, verbose, force, dryRun *bool) error {
	k := koanf.New(".")
	if err := k.Load(env.Provider(envPrefix, ".", envKeyTransform), nil); err != nil {
		return err
	}

	if !cmd.Flags().Changed("file") && k.Exists("file") {
		*file = k.String("file")
	}
	if !cmd.Flags().Changed("verbose") && k.Exists("verbose") {
		*verbose = k.Bool("verbose")
	}
	if !cmd.Flags().Changed("force") && k.Exists("force") {
		*force = k.Bool("force")
	}
	if !cmd.Flags().Changed("dry-run") && k.Exists("dry_run") {
		*dryRun = k.Bool("dry_run")
	}
	return nil
}
