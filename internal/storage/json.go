package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zakazai/ulin-lite/internal/types"
)

// JSONStore persists the catalog as one JSON document. The document carries
// schemas and rows only; constraint indexes are rebuilt from the rows on
// every load.
type JSONStore struct {
	path string
}

// NewJSONStore creates a JSON store at path, creating the parent directory
// if needed. The file itself is created on the first Save.
func NewJSONStore(path string) (*JSONStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	return &JSONStore{path: path}, nil
}

type jsonTable struct {
	Name    string       `json:"name"`
	Columns types.Schema `json:"columns"`
	Rows    []Row        `json:"rows"`
}

type jsonDatabase struct {
	Tables map[string]*jsonTable `json:"tables"`
}

// Save writes the full catalog. The document is written to a temporary file
// and renamed into place so a crash mid-write cannot truncate the previous
// document.
func (s *JSONStore) Save(c *Catalog) error {
	doc := &jsonDatabase{Tables: make(map[string]*jsonTable)}
	for name, table := range c.Tables {
		rows := table.Rows
		if rows == nil {
			rows = []Row{}
		}
		doc.Tables[name] = &jsonTable{
			Name:    table.Name,
			Columns: table.Columns,
			Rows:    rows,
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize database: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write database file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace database file: %w", err)
	}
	return nil
}

// Load reads the document and reconstructs the catalog. Every row is
// re-inserted through Table.Insert, which both rebuilds the constraint
// indexes and re-validates arity, kinds, and uniqueness; any violation means
// the file does not describe a consistent database and fails with a
// FormatError rather than silently loading part of it.
func (s *JSONStore) Load() (*Catalog, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return NewCatalog(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read database file: %w", err)
	}

	var doc jsonDatabase
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, &types.FormatError{Path: s.path, Err: err}
	}
	if dec.More() {
		return nil, &types.FormatError{Path: s.path, Err: fmt.Errorf("trailing data after document")}
	}

	catalog := NewCatalog()
	for name, jt := range doc.Tables {
		if jt == nil || jt.Name != name {
			return nil, &types.FormatError{Path: s.path, Err: fmt.Errorf("table entry %q is inconsistent", name)}
		}
		table, err := catalog.CreateTable(name, jt.Columns)
		if err != nil {
			return nil, &types.FormatError{Path: s.path, Err: err}
		}
		for _, row := range jt.Rows {
			if err := table.Insert(row); err != nil {
				return nil, &types.FormatError{Path: s.path, Err: err}
			}
		}
	}
	return catalog, nil
}

// Close is a no-op; every Save already leaves a complete document on disk.
func (s *JSONStore) Close() error {
	return nil
}
