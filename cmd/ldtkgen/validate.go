package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TheNeikos/spicy-ldtk/pkg/ldtk"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <project.ldtk>",
		Short: "Run the full binding pipeline against a project file",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate,
	}
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	world, err := ldtk.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "No issues found.")
	fmt.Fprintf(os.Stdout, "  Levels:     %d\n", len(world.Levels))
	fmt.Fprintf(os.Stdout, "  Layer defs: %d\n", len(world.LayerDefs()))
	fmt.Fprintf(os.Stdout, "  Tilesets:   %d\n", len(world.Tilesets()))
	return nil
}
