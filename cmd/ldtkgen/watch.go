package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TheNeikos/spicy-ldtk/internal/config"
	"github.com/TheNeikos/spicy-ldtk/pkg/ldtk"
)

func watchCmd() *cobra.Command {
	var out string
	var pkgName string
	cmd := &cobra.Command{
		Use:   "watch <project.ldtk>",
		Short: "Regenerate bindings whenever the project file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &config.Config{Project: args[0], Out: out, Package: pkgName}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runWatch(cfg)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default <project>_gen.go)")
	cmd.Flags().StringVarP(&pkgName, "package", "p", "", "Package name for the generated file (default ldtkgen)")
	return cmd
}

func runWatch(cfg *config.Config) error {
	// One generation up front so the output exists before the first edit.
	if err := runGenerate(cfg); err != nil {
		return err
	}

	loader := ldtk.New(ldtk.WithoutCaching())
	watcher, err := loader.Watch(cfg.Project)
	if err != nil {
		return err
	}
	defer watcher.Close()

	fmt.Fprintf(os.Stdout, "Watching %s...\n", cfg.Project)

	for {
		select {
		case _, ok := <-watcher.Worlds:
			if !ok {
				return nil
			}
			if err := runGenerate(cfg); err != nil {
				fmt.Fprintf(os.Stderr, "regeneration failed: %v\n", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "reload failed: %v\n", err)
		}
	}
}
