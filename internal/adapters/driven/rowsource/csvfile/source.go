// Package csvfile reads upload rows from local CSV files.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/custodia-labs/fireload-cli/internal/core/domain"
	"github.com/custodia-labs/fireload-cli/internal/core/ports/driven"
)

// Ensure the adapter implements the interfaces.
var (
	_ driven.RowSourceFactory = (*Factory)(nil)
	_ driven.RowSource        = (*Source)(nil)
)

// Factory opens CSV files as row sources.
type Factory struct {
	// Comma overrides the column delimiter. Zero means comma.
	Comma rune
}

// NewFactory creates a factory with the default comma delimiter.
func NewFactory() *Factory {
	return &Factory{}
}

// Open reads and parses the whole file up front. Cells are kept as raw
// strings; typing happens downstream.
func (f *Factory) Open(path string) (driven.RowSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	if f.Comma != 0 {
		reader.Comma = f.Comma
	}
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: csv file %s has no header line", domain.ErrInvalidInput, path)
	}

	return &Source{headers: records[0], records: records[1:]}, nil
}

// Source is a fully-read CSV file.
type Source struct {
	headers []string
	records [][]string
}

// Headers returns the first line's column names in file order.
func (s *Source) Headers(context.Context) ([]string, error) {
	return s.headers, nil
}

// Rows returns every data row in file order. Short records leave their
// missing cells as empty strings; extra cells are dropped.
func (s *Source) Rows(ctx context.Context) ([]domain.Row, error) {
	rows := make([]domain.Row, 0, len(s.records))
	for _, record := range s.records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		values := make(map[string]string, len(s.headers))
		for i, header := range s.headers {
			if i < len(record) {
				values[header] = record[i]
			} else {
				values[header] = ""
			}
		}
		rows = append(rows, domain.Row{Headers: s.headers, Values: values})
	}
	return rows, nil
}
