package engine

import (
	"fmt"

	"github.com/zakazai/ulin-lite/internal/parser"
	"github.com/zakazai/ulin-lite/internal/storage"
	"github.com/zakazai/ulin-lite/internal/types"
)

// execCreateTable adds the table, then persists. If the persistence write
// fails the table is dropped again so the acknowledged state and the durable
// state never diverge.
func (e *Engine) execCreateTable(stmt *parser.CreateTableStatement) (*Result, error) {
	if _, err := e.catalog.CreateTable(stmt.Table, stmt.Columns); err != nil {
		return nil, err
	}
	if err := e.store.Save(e.catalog); err != nil {
		e.catalog.DropTable(stmt.Table)
		e.log.Error("persisting CREATE TABLE %s failed: %v", stmt.Table, err)
		return nil, err
	}
	e.log.Info("table %s created", stmt.Table)
	return &Result{Kind: TableCreated, Message: fmt.Sprintf("table %s created", stmt.Table)}, nil
}

// execInsert appends the row, then persists. A failed write rolls the append
// back, index entries included.
func (e *Engine) execInsert(stmt *parser.InsertStatement) (*Result, error) {
	table, err := e.catalog.Table(stmt.Table)
	if err != nil {
		return nil, err
	}
	if err := table.Insert(storage.Row(stmt.Values)); err != nil {
		return nil, err
	}
	if err := e.store.Save(e.catalog); err != nil {
		table.RemoveLast()
		e.log.Error("persisting INSERT into %s failed: %v", stmt.Table, err)
		return nil, err
	}
	e.log.Info("1 row inserted into %s", stmt.Table)
	return &Result{Kind: RowInserted, Message: "1 row inserted"}, nil
}

func (e *Engine) execSelect(stmt *parser.SelectStatement) (*Result, error) {
	table, err := e.catalog.Table(stmt.Table)
	if err != nil {
		return nil, err
	}
	if stmt.Join != nil {
		return e.execJoin(table, stmt.Join)
	}

	positions := make([]int, 0, len(table.Columns))
	if stmt.Star {
		for i := range table.Columns {
			positions = append(positions, i)
		}
	} else {
		for _, name := range stmt.Columns {
			pos := table.Columns.ColumnIndex(name)
			if pos < 0 {
				return nil, &types.UnknownColumnError{Table: table.Name, Column: name}
			}
			positions = append(positions, pos)
		}
	}

	headers := make([]string, len(positions))
	for i, pos := range positions {
		headers[i] = table.Columns[pos].Name
	}

	rows := make([]storage.Row, 0, len(table.Rows))
	for _, row := range table.Rows {
		projected := make(storage.Row, len(positions))
		for i, pos := range positions {
			projected[i] = row[pos]
		}
		rows = append(rows, projected)
	}

	e.log.Debug("select from %s returned %d rows", table.Name, len(rows))
	return &Result{Kind: RowSet, Headers: headers, Rows: rows}, nil
}

// execJoin runs a nested-loop inner equality join. Both tables are scanned
// in insertion order, outer loop over the FROM table, so the result order is
// deterministic. Values of different kinds never match and never error. The
// constraint indexes are deliberately not used here; they exist only for
// uniqueness enforcement.
func (e *Engine) execJoin(left *storage.Table, join *parser.JoinClause) (*Result, error) {
	right, err := e.catalog.Table(join.Table)
	if err != nil {
		return nil, err
	}

	leftCol := left.Columns.ColumnIndex(join.LeftColumn)
	if leftCol < 0 {
		return nil, &types.UnknownColumnError{Table: left.Name, Column: join.LeftColumn}
	}
	rightCol := right.Columns.ColumnIndex(join.RightColumn)
	if rightCol < 0 {
		return nil, &types.UnknownColumnError{Table: right.Name, Column: join.RightColumn}
	}

	headers := make([]string, 0, len(left.Columns)+len(right.Columns))
	for _, c := range left.Columns {
		headers = append(headers, fmt.Sprintf("%s.%s", left.Name, c.Name))
	}
	for _, c := range right.Columns {
		headers = append(headers, fmt.Sprintf("%s.%s", right.Name, c.Name))
	}

	var rows []storage.Row
	for _, lrow := range left.Rows {
		for _, rrow := range right.Rows {
			if !lrow[leftCol].Equal(rrow[rightCol]) {
				continue
			}
			combined := make(storage.Row, 0, len(lrow)+len(rrow))
			combined = append(combined, lrow...)
			combined = append(combined, rrow...)
			rows = append(rows, combined)
		}
	}
	if rows == nil {
		rows = []storage.Row{}
	}

	e.log.Debug("join %s with %s returned %d rows", left.Name, right.Name, len(rows))
	return &Result{Kind: RowSet, Headers: headers, Rows: rows}, nil
}

func (e *Engine) execShowTables() (*Result, error) {
	names := e.catalog.TableNames()
	rows := make([]storage.Row, len(names))
	for i, name := range names {
		rows[i] = storage.Row{types.NewText(name)}
	}
	return &Result{Kind: RowSet, Headers: []string{"table"}, Rows: rows}, nil
}
