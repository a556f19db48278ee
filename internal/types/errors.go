package types

import "fmt"

// LexError reports an unrecognized character or unterminated literal at a
// byte position in the statement text.
type LexError struct {
	Pos   int
	Found string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at position %d: unexpected %s", e.Pos, e.Found)
}

// ParseError reports the first token that did not match the grammar.
type ParseError struct {
	Pos      int
	Expected string
	Found    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: expected %s, got %s", e.Pos, e.Expected, e.Found)
}

// UnknownTableError reports a reference to a table that does not exist.
type UnknownTableError struct {
	Table string
}

func (e *UnknownTableError) Error() string {
	return fmt.Sprintf("table %s does not exist", e.Table)
}

// UnknownColumnError reports a reference to a column absent from the schema.
type UnknownColumnError struct {
	Table  string
	Column string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("column %s does not exist in table %s", e.Column, e.Table)
}

// DuplicateTableError reports a CREATE TABLE naming an existing table.
type DuplicateTableError struct {
	Table string
}

func (e *DuplicateTableError) Error() string {
	return fmt.Sprintf("table %s already exists", e.Table)
}

// DuplicateColumnError reports a schema declaring the same column twice.
type DuplicateColumnError struct {
	Table  string
	Column string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("duplicate column %s in table %s", e.Column, e.Table)
}

// MultiplePrimaryKeysError reports a schema with more than one PRIMARY column.
type MultiplePrimaryKeysError struct {
	Table string
}

func (e *MultiplePrimaryKeysError) Error() string {
	return fmt.Sprintf("table %s declares more than one primary key column", e.Table)
}

// ArityMismatchError reports a row whose length differs from the schema.
type ArityMismatchError struct {
	Table string
	Want  int
	Got   int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("table %s expects %d values, got %d", e.Table, e.Want, e.Got)
}

// TypeMismatchError reports a value whose kind differs from its column.
type TypeMismatchError struct {
	Column string
	Want   ValueKind
	Got    ValueKind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("column %s expects %s, got %s", e.Column, e.Want, e.Got)
}

// ConstraintViolationError reports an insert that would duplicate a value in
// a PRIMARY or UNIQUE column.
type ConstraintViolationError struct {
	Column string
	Value  Value
}

func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("unique constraint violation on column %s: value %s already exists", e.Column, e.Value)
}

// FormatError reports a corrupt or truncated durable document. Callers must
// treat it as fatal to startup rather than falling back to an empty database.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("corrupt database file %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
