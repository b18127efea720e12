package main

import (
	"github.com/spf13/cobra"

	"github.com/declbuild/forge/internal/gateway"
	"github.com/declbuild/forge/internal/logging"
	"github.com/declbuild/forge/internal/orchestrator"
	"github.com/declbuild/forge/internal/runner"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [target...]",
		Short: "Build one or more targets, or the default rule",
	}
	file, verbose, force, dryRun := bindCommonFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runBuild(cmd, args, file, verbose, force, dryRun)
	}
	return cmd
}

func runBuild(cmd *cobra.Command, args []string, file *string, verbose, force, dryRun *bool) error {
	if err := applyEnvOverrides(cmd, file, verbose, force, dryRun); err != nil {
		return fail(err)
	}
	logging.Configure(*verbose)

	fs := gateway.NewOSFileSystem()
	spawner := gateway.NewOSProcessSpawner()

	o, err := orchestrator.New(fs, spawner, *file,
		runner.WithForce(*force), runner.WithDryRun(*dryRun), runner.WithVerbose(*verbose))
	if err != nil {
		return fail(err)
	}

	targets := args
	if len(targets) == 0 {
		targets = []string{o.DefaultRule()}
	}
	for _, t := range targets {
		if err := o.RunRule(t); err != nil {
			return fail(err)
		}
	}
	return nil
}
