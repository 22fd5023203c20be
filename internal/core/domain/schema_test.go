package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchema_FieldScalar(t *testing.T) {
	node, err := ParseSchema([]byte(`"question"`))

	require.NoError(t, err)
	assert.Equal(t, KindField, node.Kind)
	assert.Equal(t, "question", node.Field)
}

func TestParseSchema_LiteralScalar(t *testing.T) {
	node, err := ParseSchema([]byte(`"literal:a"`))

	require.NoError(t, err)
	assert.Equal(t, KindLiteral, node.Kind)
	assert.Equal(t, "a", node.Literal)
}

func TestParseSchema_LiteralKeepsColons(t *testing.T) {
	node, err := ParseSchema([]byte(`"literal:a:b"`))

	require.NoError(t, err)
	assert.Equal(t, "a:b", node.Literal)
}

func TestParseSchema_MapPreservesKeyOrder(t *testing.T) {
	node, err := ParseSchema([]byte(`{"z": "z_field", "a": "a_field", "m": "m_field"}`))

	require.NoError(t, err)
	require.Equal(t, KindMap, node.Kind)
	require.Len(t, node.Entries, 3)
	assert.Equal(t, "z", node.Entries[0].Key)
	assert.Equal(t, "a", node.Entries[1].Key)
	assert.Equal(t, "m", node.Entries[2].Key)
}

func TestParseSchema_List(t *testing.T) {
	node, err := ParseSchema([]byte(`[{"id": "literal:a", "text": "opt_a"}, "tag1"]`))

	require.NoError(t, err)
	require.Equal(t, KindList, node.Kind)
	require.Len(t, node.Items, 2)
	assert.Equal(t, KindMap, node.Items[0].Kind)
	assert.Equal(t, KindField, node.Items[1].Kind)
}

func TestParseSchema_KeyedNode(t *testing.T) {
	node, err := ParseSchema([]byte(`{
		"key_column": "id",
		"structure": {"question": "question", "answer": "answer"}
	}`))

	require.NoError(t, err)
	require.Equal(t, KindKeyed, node.Kind)
	assert.Equal(t, "id", node.KeyColumn)
	require.NotNil(t, node.Structure)
	assert.Equal(t, KindMap, node.Structure.Kind)
}

func TestParseSchema_NestedKeyedNodes(t *testing.T) {
	node, err := ParseSchema([]byte(`{
		"key_column": "region",
		"structure": {
			"key_column": "city",
			"structure": {"population": "pop"}
		}
	}`))

	require.NoError(t, err)
	require.Equal(t, KindKeyed, node.Kind)
	assert.Equal(t, "region", node.KeyColumn)
	require.Equal(t, KindKeyed, node.Structure.Kind)
	assert.Equal(t, "city", node.Structure.KeyColumn)
}

func TestParseSchema_StructureWithoutKeyColumnIsPlainMap(t *testing.T) {
	node, err := ParseSchema([]byte(`{"structure": {"a": "a"}}`))

	require.NoError(t, err)
	assert.Equal(t, KindMap, node.Kind)
}

func TestParseSchema_KeyColumnWithoutStructureFails(t *testing.T) {
	_, err := ParseSchema([]byte(`{"key_column": "id"}`))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSchema)
}

func TestParseSchema_NonStringKeyColumnFails(t *testing.T) {
	_, err := ParseSchema([]byte(`{"key_column": 5, "structure": {"a": "a"}}`))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSchema)
}

func TestParseSchema_UnrecognisedScalarShapes(t *testing.T) {
	node, err := ParseSchema([]byte(`{"n": 42, "b": true, "x": null}`))

	require.NoError(t, err)
	for _, e := range node.Entries {
		assert.Equal(t, KindInvalid, e.Node.Kind, "key %s", e.Key)
	}
}

func TestParseSchema_MalformedJSON(t *testing.T) {
	_, err := ParseSchema([]byte(`{"oops":`))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSchema)
}

func TestParseSchema_TrailingContent(t *testing.T) {
	_, err := ParseSchema([]byte(`{"a": "a"} {"b": "b"}`))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSchema)
}

func TestSchemaNode_Entry(t *testing.T) {
	node, err := ParseSchema([]byte(`{"a": "x", "b": "literal:y"}`))
	require.NoError(t, err)

	assert.Equal(t, "x", node.Entry("a").Field)
	assert.Equal(t, KindLiteral, node.Entry("b").Kind)
	assert.Nil(t, node.Entry("missing"))
}
