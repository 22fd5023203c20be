package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/fireload-cli/internal/core/domain"
	"github.com/custodia-labs/fireload-cli/internal/logger"
)

// itemsField is the accumulator key used when no schema is supplied:
// each row becomes one entry of an "items" array.
const itemsField = "items"

// AssembledDocument is one output document with its identifier.
type AssembledDocument struct {
	ID     string
	Fields map[string]any
}

// Assembler groups raw rows by the identifier column and folds each
// group into one nested document.
type Assembler struct {
	// IdentifierColumn is the reserved grouping column. Empty selects
	// domain.DefaultIdentifierColumn.
	IdentifierColumn string

	// IncludeIdentifier retains the identifier field inside typed rows
	// so schema field references can pick it up. Only consulted when a
	// schema is present; the no-schema items fallback always excludes
	// the identifier.
	IncludeIdentifier bool
}

// identifier returns the configured grouping column name.
func (a *Assembler) identifier() string {
	if a.IdentifierColumn != "" {
		return a.IdentifierColumn
	}
	return domain.DefaultIdentifierColumn
}

// assembleState counts the recoverable conditions hit during one
// Assemble call: rows skipped for a missing identifier and per-row
// schema contributions that could not be merged.
type assembleState struct {
	warnings int
}

// Assemble builds one document per identifier group.
//
// Groups are emitted in first-seen order; rows fold into their group in
// file order. A source whose header line lacks the identifier column
// entirely is fatal; a row with a blank identifier value is skipped
// with a warning.
func (a *Assembler) Assemble(rows []domain.Row, schema *domain.SchemaNode) ([]AssembledDocument, int, error) {
	idColumn := a.identifier()
	state := &assembleState{}

	var order []string
	groups := make(map[string]map[string]any)

	for i, row := range rows {
		if !rowHasIdentifierColumn(row, idColumn) {
			return nil, state.warnings, fmt.Errorf("%w: %q", domain.ErrMissingIdentifier, idColumn)
		}

		id := identifierValue(row, idColumn)
		if id == "" {
			logger.Warn("Skipping row %d: %q value is empty", i+1, idColumn)
			state.warnings++
			continue
		}

		acc, seen := groups[id]
		if !seen {
			acc = make(map[string]any)
			if schema == nil {
				acc[itemsField] = []any{}
			}
			groups[id] = acc
			order = append(order, id)
		}

		typed := a.typeRow(row, idColumn, schema != nil)
		a.foldRow(typed, schema, acc, id, state)
	}

	docs := make([]AssembledDocument, 0, len(order))
	for _, id := range order {
		docs = append(docs, AssembledDocument{ID: id, Fields: groups[id]})
	}
	return docs, state.warnings, nil
}

// foldRow merges one typed row into its group accumulator.
func (a *Assembler) foldRow(typed domain.TypedRow, schema *domain.SchemaNode, acc map[string]any, id string, state *assembleState) {
	if schema == nil {
		items, _ := acc[itemsField].([]any)
		acc[itemsField] = append(items, map[string]any(typed))
		return
	}

	if schema.Kind == domain.KindKeyed {
		ApplyKeyed(typed, schema, acc)
		return
	}

	// A non-keyed schema has no merge key: each row re-applies the
	// template and later rows overwrite earlier ones per top-level
	// field. Warn when that ambiguity actually bites.
	if len(acc) > 0 {
		logger.Warn("Document %q has multiple rows but the schema declares no key_column; later rows overwrite earlier ones", id)
		state.warnings++
	}

	result := ApplyMapping(typed, schema)
	fields, ok := result.(map[string]any)
	if !ok {
		logger.Warn("Schema for document %q does not produce a field map, skipping row", id)
		state.warnings++
		return
	}
	for k, v := range fields {
		acc[k] = v
	}
}

// typeRow converts every cell of a raw row through the header and
// value parsers. The identifier field is dropped unless a schema is
// present and configured to reference it.
func (a *Assembler) typeRow(row domain.Row, idColumn string, schemaPresent bool) domain.TypedRow {
	typed := make(domain.TypedRow, len(row.Headers))

	for _, header := range row.Headers {
		field, hint := ParseHeader(header)
		if field == idColumn && !(schemaPresent && a.IncludeIdentifier) {
			continue
		}
		typed[field] = ParseValue(row.Values[header], hint)
	}

	return typed
}

// fieldName strips any type hint suffix from a header without the
// hint validation (and warning) that ParseHeader performs.
func fieldName(header string) string {
	name, _, _ := strings.Cut(header, ":")
	return strings.TrimSpace(name)
}

// rowHasIdentifierColumn reports whether the row's header line carries
// the identifier column, ignoring any type hint suffix.
func rowHasIdentifierColumn(row domain.Row, idColumn string) bool {
	for _, header := range row.Headers {
		if fieldName(header) == idColumn {
			return true
		}
	}
	return false
}

// identifierValue extracts the raw identifier cell for grouping.
func identifierValue(row domain.Row, idColumn string) string {
	for _, header := range row.Headers {
		if fieldName(header) == idColumn {
			return strings.TrimSpace(row.Values[header])
		}
	}
	return ""
}
