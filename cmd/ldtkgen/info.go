package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/TheNeikos/spicy-ldtk/pkg/ldtk"
	"github.com/TheNeikos/spicy-ldtk/pkg/ldtkschema"
)

func infoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <project.ldtk>",
		Short: "Print the compiled schema of a project file",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}
	return cmd
}

func runInfo(cmd *cobra.Command, args []string) error {
	schema, err := ldtk.CompileFile(args[0])
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	if len(schema.Enums) > 0 {
		fmt.Fprintln(w, "ENUM\tVALUES")
		for _, e := range schema.Enums {
			names := make([]string, len(e.Values))
			for i, v := range e.Values {
				names[i] = v.Ident
			}
			fmt.Fprintf(w, "%s\t%s\n", e.Ident, strings.Join(names, ", "))
		}
		fmt.Fprintln(w)
	}

	if len(schema.Entities) > 0 {
		fmt.Fprintln(w, "ENTITY\tFIELD\tTYPE")
		for _, e := range schema.Entities {
			printRecord(w, e.Ident, e.Fields)
		}
		fmt.Fprintln(w)
	}

	if len(schema.Level.Fields) > 0 {
		fmt.Fprintln(w, "LEVEL FIELD\tTYPE")
		for _, f := range schema.Level.Fields {
			fmt.Fprintf(w, "%s\t%s\n", f.Ident, f.Type)
		}
		fmt.Fprintln(w)
	}

	if len(schema.Layers) > 0 {
		fmt.Fprintln(w, "LAYER\tKIND\tGRID")
		for _, l := range schema.Layers {
			fmt.Fprintf(w, "%s\t%s\t%d\n", l.Ident, l.Kind, l.GridSize)
		}
		fmt.Fprintln(w)
	}

	if len(schema.Tilesets) > 0 {
		fmt.Fprintln(w, "TILESET\tCELLS\tTILE\tPATH")
		for _, t := range schema.Tilesets {
			fmt.Fprintf(w, "%s\t%dx%d\t%dpx\t%s\n", t.Ident, t.CellSize.X, t.CellSize.Y, t.GridSize, t.RelPath)
		}
	}

	return nil
}

// printRecord emits one row per field, naming the owner on the first.
func printRecord(w *tabwriter.Writer, owner string, rec *ldtkschema.RecordType) {
	if len(rec.Fields) == 0 {
		fmt.Fprintf(w, "%s\t\t\n", owner)
		return
	}
	for i, f := range rec.Fields {
		name := owner
		if i > 0 {
			name = ""
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", name, f.Ident, f.Type)
	}
}
