package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/declbuild/forge/internal/gateway"
	"github.com/declbuild/forge/internal/orchestrator"
)

// newGraphCmd prints rule dependency edges, one `name -> dep` line per
// edge, the cobra counterpart of the teacher's `-graph` flag.
func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph [target...]",
		Short: "Print rule dependency edges",
	}
	file, verbose, force, dryRun := bindCommonFlags(cmd)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runGraph(cmd, args, file, verbose, force, dryRun)
	}
	return cmd
}

func runGraph(cmd *cobra.Command, args []string, file *string, verbose, force, dryRun *bool) error {
	if err := applyEnvOverrides(cmd, file, verbose, force, dryRun); err != nil {
		return fail(err)
	}

	fs := gateway.NewOSFileSystem()
	o, err := orchestrator.New(fs, gateway.NewOSProcessSpawner(), *file)
	if err != nil {
		return fail(err)
	}

	targets := args
	if len(targets) == 0 {
		targets = []string{o.DefaultRule()}
	}
	seen := map[string]bool{}
	var walk func(name string) error
	walk = func(name string) error {
		if seen[name] || !o.Graph.IsRule(name) {
			return nil
		}
		seen[name] = true
		deps, err := o.Graph.Dependencies(name)
		if err != nil {
			return err
		}
		for _, dep := range deps {
			fmt.Printf("%s -> %s\n", name, dep)
			if err := walk(dep); err != nil {
				return err
			}
		}
		return nil
	}
	for _, t := range targets {
		if err := walk(t); err != nil {
			return fail(err)
		}
	}
	return nil
}
