package parser

import "github.com/zakazai/ulin-lite/internal/types"

// Statement is the typed AST for exactly one parsed SQL statement. Parsing
// performs no semantic validation; arity, type, and constraint checks belong
// to the executor.
type Statement interface {
	statementNode()
}

// CreateTableStatement represents a CREATE TABLE SQL statement
type CreateTableStatement struct {
	Table   string
	Columns types.Schema
}

// InsertStatement represents an INSERT SQL statement. Values are positional
// literals in declaration order.
type InsertStatement struct {
	Table  string
	Values []types.Value
}

// SelectStatement represents a SELECT SQL statement. Star selects the full
// schema; otherwise Columns lists an explicit projection. A join select is
// always a star select.
type SelectStatement struct {
	Table   string
	Star    bool
	Columns []string
	Join    *JoinClause
}

// JoinClause represents the JOIN ... ON left = right part of a select. The
// left column belongs to the FROM table, the right column to the joined one.
type JoinClause struct {
	Table       string
	LeftColumn  string
	RightColumn string
}

// ShowTablesStatement represents a SHOW TABLES statement.
type ShowTablesStatement struct{}

func (*CreateTableStatement) statementNode() {}
func (*InsertStatement) statementNode()      {}
func (*SelectStatement) statementNode()      {}
func (*ShowTablesStatement) statementNode()  {}
