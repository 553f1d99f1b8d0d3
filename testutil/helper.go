// Package testutil holds shared helpers for tests across the module.
package testutil

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/TheNeikos/spicy-ldtk/pkg/ldtkjson"
	"github.com/TheNeikos/spicy-ldtk/pkg/ldtkschema"
	"github.com/TheNeikos/spicy-ldtk/pkg/ldtkworld"
)

// ParseProject parses a raw project document, failing the test on error.
func ParseProject(t *testing.T, src []byte) *ldtkjson.Project {
	t.Helper()
	project, err := ldtkjson.Parse(src)
	require.NoError(t, err)
	return project
}

// CompileSchema parses src and compiles its definitions into a schema.
func CompileSchema(t *testing.T, src []byte) *ldtkschema.Schema {
	t.Helper()
	schema, err := ldtkschema.Compile(&ParseProject(t, src).Defs)
	require.NoError(t, err)
	return schema
}

// LoadWorld runs the full binding pipeline over src.
func LoadWorld(t *testing.T, src []byte) *ldtkworld.World {
	t.Helper()
	project := ParseProject(t, src)
	schema, err := ldtkschema.Compile(&project.Defs)
	require.NoError(t, err)
	world, err := ldtkworld.Load(context.Background(), project, schema)
	require.NoError(t, err)
	return world
}

// Diff reports a structural diff between want and got, treating nil and
// empty slices or maps as equal. An empty string means no difference.
func Diff(want, got any) string {
	return cmp.Diff(want, got, cmpopts.EquateEmpty())
}
