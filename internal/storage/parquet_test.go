package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zakazai/ulin-lite/internal/storage"
	"github.com/zakazai/ulin-lite/internal/types"
)

func TestParquetExport(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, storage.ExportParquet(populatedCatalog(t), dir))

	rows, err := storage.ReadParquetTable(dir, "teams")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, storage.Row{types.NewInt(1), types.NewText("Engineering")}, rows[0])
	assert.Equal(t, storage.Row{types.NewInt(2), types.NewText("Ops")}, rows[1])
}

func TestParquetExportEmptyTable(t *testing.T) {
	dir := t.TempDir()
	c := storage.NewCatalog()
	_, err := c.CreateTable("empty", types.Schema{{Name: "id", Kind: types.IntKind}})
	require.NoError(t, err)

	require.NoError(t, storage.ExportParquet(c, dir))
	rows, err := storage.ReadParquetTable(dir, "empty")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParquetReadMissingTable(t *testing.T) {
	rows, err := storage.ReadParquetTable(t.TempDir(), "nope")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
