package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zakazai/ulin-lite/internal/storage"
	"github.com/zakazai/ulin-lite/internal/types"
)

func newTestJSONStore(t *testing.T) (*storage.JSONStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "db.json")
	store, err := storage.NewJSONStore(path)
	require.NoError(t, err)
	return store, path
}

func populatedCatalog(t *testing.T) *storage.Catalog {
	t.Helper()
	c := storage.NewCatalog()
	table, err := c.CreateTable("teams", teamsSchema())
	require.NoError(t, err)
	require.NoError(t, table.Insert(storage.Row{types.NewInt(1), types.NewText("Engineering")}))
	require.NoError(t, table.Insert(storage.Row{types.NewInt(2), types.NewText("Ops")}))
	return c
}

func TestJSONStoreRoundTrip(t *testing.T) {
	store, _ := newTestJSONStore(t)
	require.NoError(t, store.Save(populatedCatalog(t)))

	loaded, err := store.Load()
	require.NoError(t, err)

	table, err := loaded.Table("teams")
	require.NoError(t, err)
	assert.Equal(t, teamsSchema(), table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, storage.Row{types.NewInt(1), types.NewText("Engineering")}, table.Rows[0])
	assert.Equal(t, storage.Row{types.NewInt(2), types.NewText("Ops")}, table.Rows[1])

	// Indexes are rebuilt from rows: the loaded table still enforces
	// uniqueness without ever having serialized an index.
	err = table.Insert(storage.Row{types.NewInt(1), types.NewText("Design")})
	var violation *types.ConstraintViolationError
	assert.True(t, errors.As(err, &violation))
}

func TestJSONStoreRoundTripIsIdempotent(t *testing.T) {
	store, _ := newTestJSONStore(t)
	require.NoError(t, store.Save(populatedCatalog(t)))

	for i := 0; i < 3; i++ {
		loaded, err := store.Load()
		require.NoError(t, err)
		require.NoError(t, store.Save(loaded))
	}

	loaded, err := store.Load()
	require.NoError(t, err)
	table, err := loaded.Table("teams")
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
	assert.True(t, table.HasValue(0, types.NewInt(1)))
	assert.True(t, table.HasValue(0, types.NewInt(2)))
	assert.False(t, table.HasValue(0, types.NewInt(3)))
}

func TestJSONStoreMissingFileStartsEmpty(t *testing.T) {
	store, _ := newTestJSONStore(t)
	catalog, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, catalog.TableNames())
}

func TestJSONStoreRejectsCorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "Truncated document", content: `{"tables": {"teams": {"name": "teams", "col`},
		{name: "Empty file", content: ""},
		{name: "Not JSON", content: "hello world"},
		{name: "Unknown field", content: `{"tables": {}, "indexes": {}}`},
		{
			name: "Row violates schema arity",
			content: `{"tables": {"t": {"name": "t",
				"columns": [{"name": "id", "kind": "INT", "primary": true}],
				"rows": [[{"int": 1}, {"int": 2}]]}}}`,
		},
		{
			name: "Duplicate constrained values",
			content: `{"tables": {"t": {"name": "t",
				"columns": [{"name": "id", "kind": "INT", "primary": true}],
				"rows": [[{"int": 1}], [{"int": 1}]]}}}`,
		},
		{
			name: "Unknown column kind",
			content: `{"tables": {"t": {"name": "t",
				"columns": [{"name": "id", "kind": "FLOAT"}],
				"rows": []}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "db.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			store, err := storage.NewJSONStore(path)
			require.NoError(t, err)

			_, err = store.Load()
			require.Error(t, err)
			var formatErr *types.FormatError
			assert.True(t, errors.As(err, &formatErr), "expected FormatError, got %v", err)
		})
	}
}

func TestStorageFactory(t *testing.T) {
	s, err := storage.New(storage.Config{Type: storage.MemoryStoreType})
	require.NoError(t, err)
	assert.IsType(t, &storage.MemoryStore{}, s)

	s, err = storage.New(storage.Config{Type: storage.JSONStoreType, Path: filepath.Join(t.TempDir(), "db.json")})
	require.NoError(t, err)
	assert.IsType(t, &storage.JSONStore{}, s)

	_, err = storage.New(storage.Config{Type: storage.JSONStoreType})
	assert.Error(t, err)

	_, err = storage.New(storage.Config{Type: "btree"})
	assert.Error(t, err)
}
