package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/declbuild/forge/internal/gateway"
	"github.com/declbuild/forge/internal/orchestrator"
)

// newWhyCmd explains staleness for a target, the cobra counterpart of
// the teacher's `-why` flag in cmd/mk/main.go.
func newWhyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "why <target>",
		Short: "Explain whether a target would be rebuilt, and why",
		Args:  cobra.ExactArgs(1),
	}
	file, verbose, force, dryRun := bindCommonFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runWhy(cmd, args[0], file, verbose, force, dryRun)
	}
	return cmd
}

func runWhy(cmd *cobra.Command, target string, file *string, verbose, force, dryRun *bool) error {
	if err := applyEnvOverrides(cmd, file, verbose, force, dryRun); err != nil {
		return fail(err)
	}

	fs := gateway.NewOSFileSystem()
	o, err := orchestrator.New(fs, gateway.NewOSProcessSpawner(), *file)
	if err != nil {
		return fail(err)
	}

	rl, err := o.Graph.GetRule(target)
	if err != nil {
		return fail(err)
	}
	run, err := rl.ShouldRun(fs)
	if err != nil {
		return fail(err)
	}
	if run {
		fmt.Printf("%s: would rebuild\n", target)
	} else {
		fmt.Printf("%s: up to date\n", target)
	}
	for _, dep := range rl.Deps() {
		exists := fs.Exists(dep)
		fmt.Printf("  depends on %s (exists=%v)\n", dep, exists)
	}
	return nil
}
