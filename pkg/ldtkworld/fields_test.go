package ldtkworld

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheNeikos/spicy-ldtk/pkg/geo"
	"github.com/TheNeikos/spicy-ldtk/pkg/ldtkjson"
	"github.com/TheNeikos/spicy-ldtk/pkg/ldtkschema"
)

// fieldSchema compiles a schema whose level record carries the given
// field declarations, next to a small enum the tests can reference.
func fieldSchema(t *testing.T, defs ...ldtkjson.FieldDef) *ldtkschema.Schema {
	t.Helper()
	schema, err := ldtkschema.Compile(&ldtkjson.Definitions{
		Enums: []ldtkjson.EnumDef{
			{Identifier: "Biome", UID: 1, Values: []ldtkjson.EnumValueDef{{ID: "Forest"}, {ID: "Desert"}}},
		},
		LevelFields: defs,
	})
	require.NoError(t, err)
	return schema
}

func inst(ident, typ, value string) ldtkjson.FieldInstance {
	return ldtkjson.FieldInstance{Identifier: ident, Type: typ, Value: json.RawMessage(value)}
}

func TestDecodeFields_NullableArray(t *testing.T) {
	schema := fieldSchema(t, ldtkjson.FieldDef{
		Identifier: "tags", Type: "Array<LocalEnum.Biome>", IsArray: true, CanBeNull: true, UID: 10,
	})

	t.Run("null", func(t *testing.T) {
		f, err := decodeFields("level 'L'", schema.Level, []ldtkjson.FieldInstance{
			inst("tags", "Array<LocalEnum.Biome>", `null`),
		}, schema)
		require.NoError(t, err)

		tags, ok := f.Get("tags")
		require.True(t, ok)
		assert.True(t, tags.IsNull())
		_, ok = tags.Array()
		assert.False(t, ok)
	})

	t.Run("present", func(t *testing.T) {
		f, err := decodeFields("level 'L'", schema.Level, []ldtkjson.FieldInstance{
			inst("tags", "Array<LocalEnum.Biome>", `["Forest"]`),
		}, schema)
		require.NoError(t, err)

		tags, _ := f.Get("tags")
		elems, ok := tags.Array()
		require.True(t, ok)
		require.Len(t, elems, 1)
		v, ok := elems[0].Enum()
		require.True(t, ok)
		assert.Equal(t, "Forest", v.Ident)
	})
}

func TestDecodeFields_NullArrayElement(t *testing.T) {
	schema := fieldSchema(t, ldtkjson.FieldDef{
		Identifier: "tags", Type: "Array<LocalEnum.Biome>", IsArray: true, UID: 10,
	})

	_, err := decodeFields("level 'L'", schema.Level, []ldtkjson.FieldInstance{
		inst("tags", "Array<LocalEnum.Biome>", `["Forest", null]`),
	}, schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "level 'L': field 'tags': null element at index 1")
}

func TestDecodeFields_ArrayElementError(t *testing.T) {
	schema := fieldSchema(t, ldtkjson.FieldDef{
		Identifier: "tags", Type: "Array<LocalEnum.Biome>", IsArray: true, UID: 10,
	})

	_, err := decodeFields("level 'L'", schema.Level, []ldtkjson.FieldInstance{
		inst("tags", "Array<LocalEnum.Biome>", `["Forest", "Swamp"]`),
	}, schema)
	require.Error(t, err)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, UnmatchedEnumValue, de.Kind)
	assert.Equal(t, "Swamp", de.Raw)
	assert.Contains(t, err.Error(), "field 'tags' element 1")
}

func TestDecodeFields_TypeMismatch(t *testing.T) {
	schema := fieldSchema(t, ldtkjson.FieldDef{Identifier: "hp", Type: "Int", UID: 10})

	t.Run("scalar", func(t *testing.T) {
		_, err := decodeFields("level 'L'", schema.Level, []ldtkjson.FieldInstance{
			inst("hp", "Int", `"full"`),
		}, schema)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "field 'hp': decoding Int")
	})

	t.Run("array for scalar", func(t *testing.T) {
		arraySchema := fieldSchema(t, ldtkjson.FieldDef{
			Identifier: "tags", Type: "Array<LocalEnum.Biome>", IsArray: true, UID: 10,
		})
		_, err := decodeFields("level 'L'", arraySchema.Level, []ldtkjson.FieldInstance{
			inst("tags", "Array<LocalEnum.Biome>", `5`),
		}, arraySchema)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "field 'tags': decoding array")
	})
}

func TestDecodePoint(t *testing.T) {
	t.Run("pair", func(t *testing.T) {
		v, err := decodePoint(json.RawMessage(`[1.5, 2.5]`))
		require.NoError(t, err)
		assert.Equal(t, geo.V(1.5, 2.5), v)
	})

	t.Run("object", func(t *testing.T) {
		v, err := decodePoint(json.RawMessage(`{"cx": 3, "cy": 4}`))
		require.NoError(t, err)
		assert.Equal(t, geo.V(3, 4), v)
	})

	t.Run("wrong arity", func(t *testing.T) {
		_, err := decodePoint(json.RawMessage(`[1]`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "want 2 components, got 1")

		_, err = decodePoint(json.RawMessage(`[1, 2, 3]`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "want 2 components, got 3")
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := decodePoint(json.RawMessage(`"north"`))
		require.Error(t, err)
	})
}

func TestValue_AccessorMismatch(t *testing.T) {
	schema := fieldSchema(t, ldtkjson.FieldDef{Identifier: "hp", Type: "Int", UID: 10})
	f, err := decodeFields("level 'L'", schema.Level, []ldtkjson.FieldInstance{
		inst("hp", "Int", `7`),
	}, schema)
	require.NoError(t, err)

	hp, ok := f.Get("hp")
	require.True(t, ok)
	assert.False(t, hp.IsNull())
	assert.Equal(t, ldtkschema.KindInt, hp.Type().Kind)

	n, ok := hp.Int()
	require.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = hp.Float()
	assert.False(t, ok)
	_, ok = hp.Text()
	assert.False(t, ok)
	_, ok = hp.Bool()
	assert.False(t, ok)
	_, ok = hp.Color()
	assert.False(t, ok)
	_, ok = hp.Point()
	assert.False(t, ok)
	_, ok = hp.Enum()
	assert.False(t, ok)
	_, ok = hp.Array()
	assert.False(t, ok)
}

func TestDecodeScalar_UncompiledEnum(t *testing.T) {
	schema := fieldSchema(t)
	_, err := decodeScalar(ldtkschema.FieldType{Kind: ldtkschema.KindEnum, Enum: "Ghost"},
		json.RawMessage(`"x"`), schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enum 'Ghost' is not part of the compiled schema")
}
