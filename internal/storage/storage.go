package storage

import (
	"sort"

	"github.com/zakazai/ulin-lite/internal/types"
)

// Row is an ordered sequence of values positionally aligned to the owning
// table's schema.
type Row []types.Value

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// Table owns a schema, its rows in insertion order, and one index set per
// constrained column. The index sets are derived state: they are populated
// only by Insert and never persisted.
type Table struct {
	Name    string
	Columns types.Schema
	Rows    []Row

	// column position -> set of values currently present in that column
	indexes map[int]map[types.Value]struct{}
}

// NewTable creates an empty table with one empty index per constrained
// column. The schema is assumed valid; Catalog.CreateTable validates it.
func NewTable(name string, columns types.Schema) *Table {
	t := &Table{
		Name:    name,
		Columns: columns,
		indexes: make(map[int]map[types.Value]struct{}),
	}
	for i, col := range columns {
		if col.Constrained() {
			t.indexes[i] = make(map[types.Value]struct{})
		}
	}
	return t
}

// Insert validates the row against the schema and its constraints, then
// appends it and updates every constrained column's index. The check phase
// precedes any mutation, so a failed insert leaves the table untouched.
func (t *Table) Insert(row Row) error {
	if len(row) != len(t.Columns) {
		return &types.ArityMismatchError{Table: t.Name, Want: len(t.Columns), Got: len(row)}
	}
	for i, v := range row {
		if v.Kind != t.Columns[i].Kind {
			return &types.TypeMismatchError{Column: t.Columns[i].Name, Want: t.Columns[i].Kind, Got: v.Kind}
		}
	}
	for i, index := range t.indexes {
		if _, exists := index[row[i]]; exists {
			return &types.ConstraintViolationError{Column: t.Columns[i].Name, Value: row[i]}
		}
	}

	for i, index := range t.indexes {
		index[row[i]] = struct{}{}
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// RemoveLast undoes the most recent Insert, removing the row and its index
// entries. The engine uses it to roll back a mutation whose persistence
// write failed.
func (t *Table) RemoveLast() {
	if len(t.Rows) == 0 {
		return
	}
	last := t.Rows[len(t.Rows)-1]
	for i, index := range t.indexes {
		delete(index, last[i])
	}
	t.Rows = t.Rows[:len(t.Rows)-1]
}

// HasValue reports whether the constrained column at position col currently
// contains v.
func (t *Table) HasValue(col int, v types.Value) bool {
	index, ok := t.indexes[col]
	if !ok {
		return false
	}
	_, exists := index[v]
	return exists
}

// IndexedColumns returns the positions of the constrained columns, sorted.
func (t *Table) IndexedColumns() []int {
	cols := make([]int, 0, len(t.indexes))
	for i := range t.indexes {
		cols = append(cols, i)
	}
	sort.Ints(cols)
	return cols
}

// Catalog is the root of the in-memory state: a mapping from table name to
// table. It is not safe for concurrent use; the engine serializes access.
type Catalog struct {
	Tables map[string]*Table
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{Tables: make(map[string]*Table)}
}

// CreateTable validates the schema and adds an empty table. The schema must
// have unique column names and at most one primary key column.
func (c *Catalog) CreateTable(name string, columns types.Schema) (*Table, error) {
	if _, exists := c.Tables[name]; exists {
		return nil, &types.DuplicateTableError{Table: name}
	}

	seen := make(map[string]bool)
	primaries := 0
	for _, col := range columns {
		if seen[col.Name] {
			return nil, &types.DuplicateColumnError{Table: name, Column: col.Name}
		}
		seen[col.Name] = true
		if col.Primary {
			primaries++
		}
	}
	if primaries > 1 {
		return nil, &types.MultiplePrimaryKeysError{Table: name}
	}

	t := NewTable(name, columns)
	c.Tables[name] = t
	return t, nil
}

// Table returns the named table.
func (c *Catalog) Table(name string) (*Table, error) {
	t, ok := c.Tables[name]
	if !ok {
		return nil, &types.UnknownTableError{Table: name}
	}
	return t, nil
}

// DropTable removes a table. Only the engine's persistence rollback uses it;
// there is no DROP TABLE statement.
func (c *Catalog) DropTable(name string) {
	delete(c.Tables, name)
}

// TableNames returns all table names sorted.
func (c *Catalog) TableNames() []string {
	names := make([]string, 0, len(c.Tables))
	for name := range c.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Store persists a catalog to durable storage and loads it back. Indexes are
// never part of the durable form; Load rebuilds them from the rows.
type Store interface {
	// Load reads the durable document. A missing document yields an empty
	// catalog; a corrupt or truncated one yields a FormatError.
	Load() (*Catalog, error)
	// Save writes the full catalog (schemas and rows only).
	Save(c *Catalog) error
	Close() error
}

// MemoryStore is a Store without durability, for embedding and tests.
type MemoryStore struct{}

// NewMemoryStore creates a memory-only store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns an empty catalog.
func (s *MemoryStore) Load() (*Catalog, error) {
	return NewCatalog(), nil
}

// Save is a no-op.
func (s *MemoryStore) Save(c *Catalog) error {
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
