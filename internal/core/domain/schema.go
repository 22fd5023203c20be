package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Reserved keys that turn a mapping node into a grouping level.
const (
	schemaKeyColumn    = "key_column"
	schemaKeyStructure = "structure"
)

// LiteralPrefix marks a scalar schema node that injects a constant.
const LiteralPrefix = "literal:"

// NodeKind discriminates the schema node variants.
type NodeKind int

const (
	// KindInvalid marks nodes of an unrecognised JSON shape (numbers,
	// booleans, null). The mapper projects them to nil.
	KindInvalid NodeKind = iota

	// KindMap is a JSON object: each entry produces one output map entry.
	KindMap

	// KindList is a JSON array: each item is a candidate, pruned when
	// effectively empty.
	KindList

	// KindField is a scalar string naming a typed-row field to copy.
	KindField

	// KindLiteral is a "literal:<value>" scalar injecting a constant.
	KindLiteral

	// KindKeyed is a mapping node carrying key_column and structure,
	// signalling a grouping level rather than a field projection.
	KindKeyed
)

// MapEntry is one target key and its sub-schema, in declared order.
type MapEntry struct {
	Key  string
	Node *SchemaNode
}

// SchemaNode is the tagged union over all schema shapes. Exactly the
// fields for the node's Kind are populated.
type SchemaNode struct {
	Kind NodeKind

	// Entries holds map-node children in the order the schema declares
	// them. JSON object order is preserved during decoding so output
	// maps are built in declaration order.
	Entries []MapEntry

	// Items holds list-node candidates.
	Items []*SchemaNode

	// Field is the typed-row field name for KindField.
	Field string

	// Literal is the constant after "literal:" for KindLiteral.
	Literal string

	// KeyColumn and Structure describe a KindKeyed grouping level.
	KeyColumn string
	Structure *SchemaNode
}

// Entry returns the sub-schema for a map-node key, or nil.
func (n *SchemaNode) Entry(key string) *SchemaNode {
	if n == nil || n.Kind != KindMap {
		return nil
	}
	for _, e := range n.Entries {
		if e.Key == key {
			return e.Node
		}
	}
	return nil
}

// ParseSchema decodes a schema document from JSON bytes.
// Object key order is preserved, which is why this walks the token
// stream instead of unmarshalling into map[string]any.
func ParseSchema(data []byte) (*SchemaNode, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	node, err := decodeNode(dec, tok)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	if _, err := dec.Token(); err == nil {
		return nil, fmt.Errorf("%w: trailing content after schema document", ErrInvalidSchema)
	}

	return node, nil
}

// decodeNode builds a SchemaNode from the token just read.
func decodeNode(dec *json.Decoder, tok json.Token) (*SchemaNode, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeMapNode(dec)
		case '[':
			return decodeListNode(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case string:
		if rest, ok := strings.CutPrefix(t, LiteralPrefix); ok {
			return &SchemaNode{Kind: KindLiteral, Literal: rest}, nil
		}
		return &SchemaNode{Kind: KindField, Field: t}, nil
	default:
		// Numbers, booleans and nulls have no mapping semantics.
		return &SchemaNode{Kind: KindInvalid}, nil
	}
}

func decodeMapNode(dec *json.Decoder) (*SchemaNode, error) {
	node := &SchemaNode{Kind: KindMap}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			break
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", tok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		child, err := decodeNode(dec, valTok)
		if err != nil {
			return nil, err
		}

		node.Entries = append(node.Entries, MapEntry{Key: key, Node: child})
	}

	return promoteKeyedNode(node)
}

// promoteKeyedNode rewrites a mapping node carrying both reserved keys
// into a KindKeyed grouping node.
func promoteKeyedNode(node *SchemaNode) (*SchemaNode, error) {
	var keyCol *SchemaNode
	var structure *SchemaNode
	for _, e := range node.Entries {
		switch e.Key {
		case schemaKeyColumn:
			keyCol = e.Node
		case schemaKeyStructure:
			structure = e.Node
		}
	}

	if keyCol == nil {
		// A lone "structure" key is an ordinary field mapping.
		return node, nil
	}
	if structure == nil {
		return nil, fmt.Errorf("%s requires a %s node", schemaKeyColumn, schemaKeyStructure)
	}
	if keyCol.Kind != KindField {
		return nil, fmt.Errorf("%s must be a column name string", schemaKeyColumn)
	}

	return &SchemaNode{
		Kind:      KindKeyed,
		KeyColumn: keyCol.Field,
		Structure: structure,
	}, nil
}

func decodeListNode(dec *json.Decoder) (*SchemaNode, error) {
	node := &SchemaNode{Kind: KindList}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			break
		}

		child, err := decodeNode(dec, tok)
		if err != nil {
			return nil, err
		}
		node.Items = append(node.Items, child)
	}

	return node, nil
}
