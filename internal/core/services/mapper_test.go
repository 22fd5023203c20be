package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fireload-cli/internal/core/domain"
)

func mustSchema(t *testing.T, src string) *domain.SchemaNode {
	t.Helper()
	node, err := domain.ParseSchema([]byte(src))
	require.NoError(t, err)
	return node
}

func TestApplyMapping_FieldAndLiteral(t *testing.T) {
	schema := mustSchema(t, `{"name": "customer", "kind": "literal:retail"}`)
	row := domain.TypedRow{"customer": "Acme", "ignored": int64(1)}

	got := ApplyMapping(row, schema)
	assert.Equal(t, map[string]any{"name": "Acme", "kind": "retail"}, got)
}

func TestApplyMapping_MissingFieldProjectsNil(t *testing.T) {
	schema := mustSchema(t, `{"name": "customer"}`)

	got := ApplyMapping(domain.TypedRow{}, schema)
	assert.Equal(t, map[string]any{"name": nil}, got)
}

func TestApplyMapping_NestedMaps(t *testing.T) {
	schema := mustSchema(t, `{
		"contact": {
			"email": "email",
			"address": {"city": "city", "zip": "zip"}
		}
	}`)
	row := domain.TypedRow{"email": "a@b.c", "city": "Oslo", "zip": "0150"}

	got := ApplyMapping(row, schema)
	assert.Equal(t, map[string]any{
		"contact": map[string]any{
			"email": "a@b.c",
			"address": map[string]any{"city": "Oslo", "zip": "0150"},
		},
	}, got)
}

func TestApplyMapping_ListPrunesEmptyCandidates(t *testing.T) {
	schema := mustSchema(t, `{"tags": ["tag1", "tag2", "tag3"]}`)
	row := domain.TypedRow{"tag1": "go", "tag2": "", "tag3": "db"}

	got := ApplyMapping(row, schema)
	assert.Equal(t, map[string]any{"tags": []any{"go", "db"}}, got)
}

func TestApplyMapping_ListKeepsZeroAndFalse(t *testing.T) {
	schema := mustSchema(t, `{"values": ["a", "b"]}`)
	row := domain.TypedRow{"a": int64(0), "b": false}

	got := ApplyMapping(row, schema)
	assert.Equal(t, map[string]any{"values": []any{int64(0), false}}, got)
}

func TestApplyMapping_ListOfMapsPrunesLiteralOnlyEntries(t *testing.T) {
	// A map whose only surviving content is its literal constant is
	// still empty and gets pruned from the list.
	schema := mustSchema(t, `{
		"lines": [
			{"sku": "sku1", "source": "literal:csv"},
			{"sku": "sku2", "source": "literal:csv"}
		]
	}`)
	row := domain.TypedRow{"sku1": "A-100", "sku2": ""}

	got := ApplyMapping(row, schema)
	assert.Equal(t, map[string]any{
		"lines": []any{
			map[string]any{"sku": "A-100", "source": "csv"},
		},
	}, got)
}

func TestApplyMapping_MapNodesAreNeverPruned(t *testing.T) {
	schema := mustSchema(t, `{"meta": {"note": "note"}}`)

	got := ApplyMapping(domain.TypedRow{"note": ""}, schema)
	assert.Equal(t, map[string]any{"meta": map[string]any{"note": ""}}, got)
}

func TestIsEffectivelyEmpty(t *testing.T) {
	tests := []struct {
		name  string
		value any
		node  *domain.SchemaNode
		want  bool
	}{
		{"nil", nil, nil, true},
		{"empty string", "", nil, true},
		{"blank string", "   ", nil, true},
		{"nonempty string", "x", nil, false},
		{"zero int", int64(0), nil, false},
		{"false bool", false, nil, false},
		{"zero float", 0.0, nil, false},
		{"empty map", map[string]any{}, nil, true},
		{"map of empties", map[string]any{"a": "", "b": nil}, nil, true},
		{"map with value no schema", map[string]any{"key": "value"}, nil, false},
		{"empty list", []any{}, nil, true},
		{"list of empties", []any{"", nil}, nil, true},
		{"list with value", []any{"", "x"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isEffectivelyEmpty(tt.value, tt.node))
		})
	}
}

func TestIsEffectivelyEmpty_LiteralEntriesSkipped(t *testing.T) {
	node := mustSchema(t, `{"sku": "sku", "source": "literal:csv"}`)

	assert.True(t, isEffectivelyEmpty(map[string]any{"sku": "", "source": "csv"}, node))
	assert.False(t, isEffectivelyEmpty(map[string]any{"sku": "A", "source": "csv"}, node))
}

func TestApplyKeyed_SingleLevel(t *testing.T) {
	schema := mustSchema(t, `{
		"key_column": "quarter",
		"structure": {"revenue": "revenue", "units": "units"}
	}`)

	target := make(map[string]any)
	ApplyKeyed(domain.TypedRow{"quarter": "Q1", "revenue": 1000.0, "units": int64(50)}, schema, target)
	ApplyKeyed(domain.TypedRow{"quarter": "Q2", "revenue": 1200.0, "units": int64(60)}, schema, target)

	assert.Equal(t, map[string]any{
		"Q1": map[string]any{"revenue": 1000.0, "units": int64(50)},
		"Q2": map[string]any{"revenue": 1200.0, "units": int64(60)},
	}, target)
}

func TestApplyKeyed_LastRowWins(t *testing.T) {
	schema := mustSchema(t, `{"key_column": "k", "structure": {"v": "v"}}`)

	target := make(map[string]any)
	ApplyKeyed(domain.TypedRow{"k": "x", "v": int64(1)}, schema, target)
	ApplyKeyed(domain.TypedRow{"k": "x", "v": int64(2)}, schema, target)

	assert.Equal(t, map[string]any{"x": map[string]any{"v": int64(2)}}, target)
}

func TestApplyKeyed_NestedChains(t *testing.T) {
	schema := mustSchema(t, `{
		"key_column": "region",
		"structure": {
			"key_column": "quarter",
			"structure": {"revenue": "revenue"}
		}
	}`)

	target := make(map[string]any)
	rows := []domain.TypedRow{
		{"region": "EU", "quarter": "Q1", "revenue": 10.0},
		{"region": "EU", "quarter": "Q2", "revenue": 20.0},
		{"region": "US", "quarter": "Q1", "revenue": 30.0},
	}
	for _, row := range rows {
		ApplyKeyed(row, schema, target)
	}

	assert.Equal(t, map[string]any{
		"EU": map[string]any{
			"Q1": map[string]any{"revenue": 10.0},
			"Q2": map[string]any{"revenue": 20.0},
		},
		"US": map[string]any{
			"Q1": map[string]any{"revenue": 30.0},
		},
	}, target)
}

func TestApplyKeyed_NonStringKeysStringify(t *testing.T) {
	schema := mustSchema(t, `{"key_column": "year", "structure": {"v": "v"}}`)

	target := make(map[string]any)
	ApplyKeyed(domain.TypedRow{"year": int64(2024), "v": "a"}, schema, target)

	assert.Contains(t, target, "2024")
}

func TestApplyKeyed_MissingOrEmptyKeySkipsRow(t *testing.T) {
	schema := mustSchema(t, `{"key_column": "k", "structure": {"v": "v"}}`)

	target := make(map[string]any)
	ApplyKeyed(domain.TypedRow{"v": "a"}, schema, target)
	ApplyKeyed(domain.TypedRow{"k": "", "v": "b"}, schema, target)
	ApplyKeyed(domain.TypedRow{"k": nil, "v": "c"}, schema, target)

	assert.Empty(t, target)
}
