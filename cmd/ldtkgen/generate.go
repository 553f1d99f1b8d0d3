package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TheNeikos/spicy-ldtk/internal/codegen"
	"github.com/TheNeikos/spicy-ldtk/internal/config"
	"github.com/TheNeikos/spicy-ldtk/pkg/ldtk"
)

func generateCmd() *cobra.Command {
	var configPath string
	var out string
	var pkgName string
	cmd := &cobra.Command{
		Use:   "generate [project.ldtk]",
		Short: "Generate typed Go bindings from a project file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(configPath, args, out, pkgName)
			if err != nil {
				return err
			}
			return runGenerate(cfg)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Generator config file (YAML)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default <project>_gen.go)")
	cmd.Flags().StringVarP(&pkgName, "package", "p", "", "Package name for the generated file (default ldtkgen)")
	return cmd
}

// resolveConfig builds the generator configuration from either a config
// file or the command line.
func resolveConfig(configPath string, args []string, out, pkgName string) (*config.Config, error) {
	if configPath != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("cannot combine --config with a project argument")
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		// Flags take precedence over file values.
		if out != "" {
			cfg.Out = out
		}
		if pkgName != "" {
			cfg.Package = pkgName
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("a project file or --config is required")
	}
	cfg := &config.Config{Project: args[0], Out: out, Package: pkgName}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runGenerate(cfg *config.Config) error {
	schema, err := ldtk.CompileFile(cfg.Project)
	if err != nil {
		return err
	}

	src, err := codegen.Generate(schema, codegen.Options{Package: cfg.Package})
	if err != nil {
		return err
	}

	if err := os.WriteFile(cfg.Out, src, 0644); err != nil {
		return fmt.Errorf("writing generated file: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Generated %s: %d enums, %d entities, %d tilesets.\n",
		cfg.Out, len(schema.Enums), len(schema.Entities), len(schema.Tilesets))
	return nil
}
