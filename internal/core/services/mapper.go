package services

import (
	"strings"

	"github.com/custodia-labs/fireload-cli/internal/core/domain"
	"github.com/custodia-labs/fireload-cli/internal/logger"
)

// ApplyMapping projects a typed row into the structure described by a
// schema node. It is pure: the only side effect is warning logs.
//
//   - map nodes recurse per entry, in declared key order, no pruning
//   - list nodes keep only candidates that are not effectively empty
//   - literal scalars inject their constant
//   - field scalars copy the named typed-row value (missing -> nil)
//   - anything else projects to nil
func ApplyMapping(row domain.TypedRow, node *domain.SchemaNode) any {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case domain.KindMap:
		out := make(map[string]any, len(node.Entries))
		for _, e := range node.Entries {
			out[e.Key] = ApplyMapping(row, e.Node)
		}
		return out

	case domain.KindList:
		out := make([]any, 0, len(node.Items))
		for _, item := range node.Items {
			candidate := ApplyMapping(row, item)
			if !isEffectivelyEmpty(candidate, item) {
				out = append(out, candidate)
			}
		}
		return out

	case domain.KindLiteral:
		return node.Literal

	case domain.KindField:
		if v, ok := row[node.Field]; ok {
			return v
		}
		return nil

	case domain.KindKeyed:
		// Grouping levels are folded by ApplyKeyed; reaching one here
		// means the schema nests key_column somewhere it cannot group.
		logger.Warn("Grouping node for column %q found outside a grouping chain, projecting nil", node.KeyColumn)
		return nil

	default:
		return nil
	}
}

// ApplyKeyed folds one row into target through a chain of grouping
// levels. The row's value for the node's key column becomes a map key;
// nested keyed structures recurse to arbitrary depth, and the leaf
// structure's projection overwrites any earlier value for that key
// chain (last row wins).
//
// Rows without a usable key value contribute nothing.
func ApplyKeyed(row domain.TypedRow, node *domain.SchemaNode, target map[string]any) {
	keyValue, ok := row[node.KeyColumn]
	if !ok || isEffectivelyEmpty(keyValue, nil) {
		logger.Warn("Row has no value for key column %q, skipping its contribution", node.KeyColumn)
		return
	}

	// Map keys must be strings downstream.
	key := domain.KeyString(keyValue)

	if node.Structure != nil && node.Structure.Kind == domain.KindKeyed {
		inner, ok := target[key].(map[string]any)
		if !ok {
			inner = make(map[string]any)
			target[key] = inner
		}
		ApplyKeyed(row, node.Structure, inner)
		return
	}

	target[key] = ApplyMapping(row, node.Structure)
}

// isEffectivelyEmpty decides whether a mapped candidate is pruned from
// a list node's output.
//
// nil and blank strings are empty. A map is empty when every entry is
// empty under its matching sub-schema, except entries whose sub-schema
// is a literal: a constant alone never keeps a map alive. A list is
// empty when all elements are. Numbers (including 0) and booleans
// (including false) are never empty.
func isEffectivelyEmpty(value any, node *domain.SchemaNode) bool {
	switch v := value.(type) {
	case nil:
		return true

	case string:
		return strings.TrimSpace(v) == ""

	case map[string]any:
		for key, entry := range v {
			sub := node.Entry(key)
			if sub != nil && sub.Kind == domain.KindLiteral {
				continue
			}
			if !isEffectivelyEmpty(entry, sub) {
				return false
			}
		}
		return true

	case []any:
		for i, element := range v {
			var sub *domain.SchemaNode
			if node != nil && node.Kind == domain.KindList && i < len(node.Items) {
				sub = node.Items[i]
			}
			if !isEffectivelyEmpty(element, sub) {
				return false
			}
		}
		return true

	default:
		return false
	}
}
