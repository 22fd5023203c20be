package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fireload-cli/internal/core/domain"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFactory_Open(t *testing.T) {
	path := writeCSV(t, "DocumentId,name,age:int\nu1,Alice,30\nu2,Bob,25\n")

	source, err := NewFactory().Open(path)
	require.NoError(t, err)

	headers, err := source.Headers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"DocumentId", "name", "age:int"}, headers)

	rows, err := source.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Alice", rows[0].Values["name"])
	assert.Equal(t, "25", rows[1].Values["age:int"])
}

func TestFactory_OpenMissingFile(t *testing.T) {
	_, err := NewFactory().Open(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFactory_OpenEmptyFile(t *testing.T) {
	path := writeCSV(t, "")

	_, err := NewFactory().Open(path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSource_HeaderOnlyFileYieldsNoRows(t *testing.T) {
	path := writeCSV(t, "DocumentId,name\n")

	source, err := NewFactory().Open(path)
	require.NoError(t, err)

	rows, err := source.Rows(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSource_ShortRecordsPadWithEmptyCells(t *testing.T) {
	path := writeCSV(t, "DocumentId,name,age\nu1,Alice\n")

	source, err := NewFactory().Open(path)
	require.NoError(t, err)

	rows, err := source.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Values["age"])
}

func TestSource_QuotedCellsKeepQuotesStripped(t *testing.T) {
	path := writeCSV(t, "DocumentId,note\nu1,\"hello, world\"\n")

	source, err := NewFactory().Open(path)
	require.NoError(t, err)

	rows, err := source.Rows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hello, world", rows[0].Values["note"])
}

func TestFactory_CustomDelimiter(t *testing.T) {
	path := writeCSV(t, "DocumentId;name\nu1;Alice\n")

	source, err := (&Factory{Comma: ';'}).Open(path)
	require.NoError(t, err)

	rows, err := source.Rows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Alice", rows[0].Values["name"])
}

func TestSource_CancelledContext(t *testing.T) {
	path := writeCSV(t, "DocumentId,name\nu1,Alice\n")

	source, err := NewFactory().Open(path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = source.Rows(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
