package storage_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zakazai/ulin-lite/internal/storage"
	"github.com/zakazai/ulin-lite/internal/types"
)

func teamsSchema() types.Schema {
	return types.Schema{
		{Name: "id", Kind: types.IntKind, Primary: true},
		{Name: "name", Kind: types.TextKind, Unique: true},
	}
}

func TestCatalogCreateTable(t *testing.T) {
	c := storage.NewCatalog()

	table, err := c.CreateTable("teams", teamsSchema())
	require.NoError(t, err)
	assert.Equal(t, "teams", table.Name)
	assert.Equal(t, []int{0, 1}, table.IndexedColumns())

	// Duplicate table name
	_, err = c.CreateTable("teams", teamsSchema())
	var dupTable *types.DuplicateTableError
	require.True(t, errors.As(err, &dupTable))
	assert.Equal(t, "teams", dupTable.Table)

	// Duplicate column name
	_, err = c.CreateTable("bad", types.Schema{
		{Name: "id", Kind: types.IntKind},
		{Name: "id", Kind: types.TextKind},
	})
	var dupCol *types.DuplicateColumnError
	require.True(t, errors.As(err, &dupCol))
	assert.Equal(t, "id", dupCol.Column)

	// More than one primary key
	_, err = c.CreateTable("bad", types.Schema{
		{Name: "a", Kind: types.IntKind, Primary: true},
		{Name: "b", Kind: types.IntKind, Primary: true},
	})
	var multi *types.MultiplePrimaryKeysError
	assert.True(t, errors.As(err, &multi))

	// Failed creates must not leave the table behind
	_, err = c.Table("bad")
	assert.Error(t, err)
}

func TestTableInsertValidation(t *testing.T) {
	c := storage.NewCatalog()
	table, err := c.CreateTable("teams", teamsSchema())
	require.NoError(t, err)

	tests := []struct {
		name    string
		row     storage.Row
		wantErr interface{}
	}{
		{
			name:    "Too few values",
			row:     storage.Row{types.NewInt(1)},
			wantErr: &types.ArityMismatchError{},
		},
		{
			name:    "Too many values",
			row:     storage.Row{types.NewInt(1), types.NewText("a"), types.NewText("b")},
			wantErr: &types.ArityMismatchError{},
		},
		{
			name:    "Kind mismatch",
			row:     storage.Row{types.NewText("1"), types.NewText("a")},
			wantErr: &types.TypeMismatchError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := table.Insert(tt.row)
			require.Error(t, err)
			assert.IsType(t, tt.wantErr, err)
			assert.Empty(t, table.Rows)
		})
	}
}

func TestTableUniqueness(t *testing.T) {
	c := storage.NewCatalog()
	table, err := c.CreateTable("teams", teamsSchema())
	require.NoError(t, err)

	require.NoError(t, table.Insert(storage.Row{types.NewInt(1), types.NewText("Engineering")}))
	require.NoError(t, table.Insert(storage.Row{types.NewInt(2), types.NewText("Ops")}))

	// Duplicate primary key
	err = table.Insert(storage.Row{types.NewInt(1), types.NewText("Design")})
	var violation *types.ConstraintViolationError
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, "id", violation.Column)
	assert.Equal(t, types.NewInt(1), violation.Value)
	assert.Len(t, table.Rows, 2)

	// A rejected row must not leak index entries for its other columns:
	// "Design" was never inserted, so it is still available.
	require.NoError(t, table.Insert(storage.Row{types.NewInt(3), types.NewText("Design")}))

	// Duplicate unique column
	err = table.Insert(storage.Row{types.NewInt(4), types.NewText("Ops")})
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, "name", violation.Column)
	assert.Len(t, table.Rows, 3)
}

func TestTableInsertionOrderPreserved(t *testing.T) {
	c := storage.NewCatalog()
	table, err := c.CreateTable("nums", types.Schema{{Name: "n", Kind: types.IntKind, Unique: true}})
	require.NoError(t, err)

	for _, n := range []int64{5, 3, 9, 1} {
		require.NoError(t, table.Insert(storage.Row{types.NewInt(n)}))
	}

	got := make([]int64, 0, len(table.Rows))
	for _, row := range table.Rows {
		got = append(got, row[0].Int)
	}
	assert.Equal(t, []int64{5, 3, 9, 1}, got)
}

func TestTableRemoveLast(t *testing.T) {
	c := storage.NewCatalog()
	table, err := c.CreateTable("teams", teamsSchema())
	require.NoError(t, err)

	require.NoError(t, table.Insert(storage.Row{types.NewInt(1), types.NewText("Engineering")}))
	require.NoError(t, table.Insert(storage.Row{types.NewInt(2), types.NewText("Ops")}))

	table.RemoveLast()
	assert.Len(t, table.Rows, 1)
	assert.False(t, table.HasValue(0, types.NewInt(2)))
	assert.True(t, table.HasValue(0, types.NewInt(1)))

	// The removed values are free again
	require.NoError(t, table.Insert(storage.Row{types.NewInt(2), types.NewText("Ops")}))
}

func TestMismatchedKindsNeverEqual(t *testing.T) {
	assert.False(t, types.NewInt(1).Equal(types.NewText("1")))
	assert.True(t, types.NewInt(1).Equal(types.NewInt(1)))
	assert.True(t, types.NewText("a").Equal(types.NewText("a")))
	assert.False(t, types.NewText("a").Equal(types.NewText("b")))
}
