package domain

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// CollectionSpec binds a CSV file to its target collection, merge
// behaviour and optional schema file.
//
// The schema is loaded at most once per spec and cached for the
// lifetime of the process; a load failure is fatal and never retried.
type CollectionSpec struct {
	// FilePath is the CSV source file.
	FilePath string

	// Name overrides the target collection name. When empty the CSV
	// file stem is used.
	Name string

	// SchemaPath overrides the schema file location. When empty the
	// CSV path with a .json extension is probed.
	SchemaPath string

	// Merge selects merge (true) or overwrite (false) upload semantics.
	Merge bool

	once      sync.Once
	schema    *SchemaNode
	schemaErr error
}

// CollectionName returns the explicit name or the CSV file stem.
func (s *CollectionSpec) CollectionName() string {
	if s.Name != "" {
		return s.Name
	}
	base := filepath.Base(s.FilePath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// SchemaFilePath returns the explicit schema path or the CSV path with
// its extension replaced by .json.
func (s *CollectionSpec) SchemaFilePath() string {
	if s.SchemaPath != "" {
		return s.SchemaPath
	}
	ext := filepath.Ext(s.FilePath)
	return strings.TrimSuffix(s.FilePath, ext) + ".json"
}

// Schema returns the parsed schema tree, loading it on first access.
// A missing schema file yields (nil, nil): the caller falls back to the
// flat items structure. A malformed schema file is a fatal error.
func (s *CollectionSpec) Schema() (*SchemaNode, error) {
	s.once.Do(func() {
		path := s.SchemaFilePath()

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				// No schema is a supported configuration.
				return
			}
			s.schemaErr = err
			return
		}

		s.schema, s.schemaErr = ParseSchema(data)
	})
	return s.schema, s.schemaErr
}
