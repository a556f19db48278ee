// Package engine ties the parser, catalog, and persistence together behind
// a statement-at-a-time call surface that multiple callers may share.
package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/zakazai/ulin-lite/internal/parser"
	"github.com/zakazai/ulin-lite/internal/storage"
	"github.com/zakazai/ulin-lite/internal/types"
)

// ResultKind identifies what an executed statement produced.
type ResultKind int

const (
	// TableCreated acknowledges a CREATE TABLE
	TableCreated ResultKind = iota
	// RowInserted acknowledges an INSERT
	RowInserted
	// RowSet carries the rows of a SELECT or SHOW TABLES
	RowSet
)

// Result is the outcome of one successfully executed statement. RowSet
// results carry ordered headers and rows; the other kinds carry a message.
type Result struct {
	Kind    ResultKind
	Message string
	Headers []string
	Rows    []storage.Row
}

// Engine executes statements against one shared catalog. A single
// reader/writer lock spans the whole catalog: selects take the read side,
// mutations hold the write side across validation, mutation, and the
// persistence write, so any state a later caller observes is already
// durable.
type Engine struct {
	mu      sync.RWMutex
	catalog *storage.Catalog
	store   storage.Store
	log     *types.Logger
}

// New loads the catalog from the store and returns an engine over it. A
// corrupt durable document fails construction; callers must treat that as
// fatal rather than starting empty over unread data.
func New(store storage.Store) (*Engine, error) {
	catalog, err := store.Load()
	if err != nil {
		return nil, err
	}
	return &Engine{
		catalog: catalog,
		store:   store,
		log:     types.GlobalLogger,
	}, nil
}

// SetLogger replaces the engine's logger.
func (e *Engine) SetLogger(log *types.Logger) {
	e.log = log
}

// Submit parses and executes one statement. This is the single entry point
// shared by every front-end.
func (e *Engine) Submit(input string) (*Result, error) {
	stmt, err := parser.Parse(input)
	if err != nil {
		return nil, err
	}
	return e.Execute(stmt)
}

// Execute runs a parsed statement under the appropriate lock.
func (e *Engine) Execute(stmt parser.Statement) (*Result, error) {
	switch s := stmt.(type) {
	case *parser.CreateTableStatement:
		e.mu.Lock()
		defer e.mu.Unlock()
		return e.execCreateTable(s)
	case *parser.InsertStatement:
		e.mu.Lock()
		defer e.mu.Unlock()
		return e.execInsert(s)
	case *parser.SelectStatement:
		e.mu.RLock()
		defer e.mu.RUnlock()
		return e.execSelect(s)
	case *parser.ShowTablesStatement:
		e.mu.RLock()
		defer e.mu.RUnlock()
		return e.execShowTables()
	}
	return nil, fmt.Errorf("unsupported statement type %T", stmt)
}

// TableSnapshot is an independent copy of one table's schema and rows.
type TableSnapshot struct {
	Name    string
	Columns types.Schema
	Rows    []storage.Row
}

// Snapshot returns a deep copy of every table, sorted by name, for
// dashboard-style rendering without holding the engine's lock.
func (e *Engine) Snapshot() []TableSnapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	tables := make([]TableSnapshot, 0, len(e.catalog.Tables))
	for _, name := range e.catalog.TableNames() {
		t := e.catalog.Tables[name]
		columns := make(types.Schema, len(t.Columns))
		copy(columns, t.Columns)
		rows := make([]storage.Row, len(t.Rows))
		for i, row := range t.Rows {
			rows[i] = row.Clone()
		}
		tables = append(tables, TableSnapshot{Name: t.Name, Columns: columns, Rows: rows})
	}
	sort.Slice(tables, func(i, j int) bool { return tables[i].Name < tables[j].Name })
	return tables
}

// ExportParquet writes a parquet snapshot of every table under dir.
func (e *Engine) ExportParquet(dir string) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return storage.ExportParquet(e.catalog, dir)
}

// Close releases the underlying store.
func (e *Engine) Close() error {
	return e.store.Close()
}
