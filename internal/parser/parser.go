package parser

import (
	"strconv"

	"github.com/zakazai/ulin-lite/internal/lexer"
	"github.com/zakazai/ulin-lite/internal/types"
)

// Parser consumes a token sequence and produces a Statement. It stops at the
// first mismatch and reports what it expected against what it found.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// New creates a parser over a token sequence produced by lexer.Lex.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse tokenizes and parses one SQL statement.
func Parse(input string) (Statement, error) {
	tokens, err := lexer.Lex(input)
	if err != nil {
		return nil, err
	}
	return New(tokens).Parse()
}

// Parse parses the token sequence into exactly one statement. A trailing
// semicolon is tolerated; anything else after the statement is an error.
func (p *Parser) Parse() (Statement, error) {
	tok := p.current()
	if tok.Type == lexer.EOF {
		return nil, p.errExpected("a statement", tok)
	}

	var stmt Statement
	var err error
	switch {
	case p.isKeyword("CREATE"):
		stmt, err = p.parseCreateTable()
	case p.isKeyword("INSERT"):
		stmt, err = p.parseInsert()
	case p.isKeyword("SELECT"):
		stmt, err = p.parseSelect()
	case p.isKeyword("SHOW"):
		stmt, err = p.parseShowTables()
	default:
		return nil, p.errExpected("CREATE, INSERT, SELECT or SHOW", tok)
	}
	if err != nil {
		return nil, err
	}

	if p.current().Type == lexer.SEMICOLON {
		p.advance()
	}
	if tok := p.current(); tok.Type != lexer.EOF {
		return nil, p.errExpected("end of statement", tok)
	}
	return stmt, nil
}

// CreateTable ::= CREATE TABLE ident '(' ColumnDef (',' ColumnDef)* ')'
// ColumnDef   ::= ident (INT|TEXT) (PRIMARY | UNIQUE)?
func (p *Parser) parseCreateTable() (*CreateTableStatement, error) {
	p.advance() // CREATE

	if err := p.expectKeyword("TABLE"); err != nil {
		return nil, err
	}

	name, err := p.expectIdentifier("table name")
	if err != nil {
		return nil, err
	}
	stmt := &CreateTableStatement{Table: name}

	if err := p.expectType(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}

	for {
		col, err := p.parseColumnDef()
		if err != nil {
			return nil, err
		}
		stmt.Columns = append(stmt.Columns, col)

		tok := p.current()
		if tok.Type == lexer.RPAREN {
			p.advance()
			return stmt, nil
		}
		if err := p.expectType(lexer.COMMA, "',' or ')'"); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseColumnDef() (types.Column, error) {
	name, err := p.expectIdentifier("column name")
	if err != nil {
		return types.Column{}, err
	}
	col := types.Column{Name: name}

	tok := p.current()
	switch {
	case p.isKeyword("INT"):
		col.Kind = types.IntKind
	case p.isKeyword("TEXT"):
		col.Kind = types.TextKind
	default:
		return types.Column{}, p.errExpected("column type INT or TEXT", tok)
	}
	p.advance()

	switch {
	case p.isKeyword("PRIMARY"):
		col.Primary = true
		p.advance()
	case p.isKeyword("UNIQUE"):
		col.Unique = true
		p.advance()
	}
	return col, nil
}

// Insert ::= INSERT INTO ident VALUES '(' Literal (',' Literal)* ')'
func (p *Parser) parseInsert() (*InsertStatement, error) {
	p.advance() // INSERT

	if err := p.expectKeyword("INTO"); err != nil {
		return nil, err
	}

	name, err := p.expectIdentifier("table name")
	if err != nil {
		return nil, err
	}
	stmt := &InsertStatement{Table: name}

	if err := p.expectKeyword("VALUES"); err != nil {
		return nil, err
	}
	if err := p.expectType(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}

	for {
		val, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		stmt.Values = append(stmt.Values, val)

		tok := p.current()
		if tok.Type == lexer.RPAREN {
			p.advance()
			return stmt, nil
		}
		if err := p.expectType(lexer.COMMA, "',' or ')'"); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseLiteral() (types.Value, error) {
	tok := p.current()
	switch tok.Type {
	case lexer.NUMBER:
		n, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return types.Value{}, p.errExpected("integer literal", tok)
		}
		p.advance()
		return types.NewInt(n), nil
	case lexer.STRING:
		p.advance()
		return types.NewText(tok.Literal), nil
	}
	return types.Value{}, p.errExpected("integer or string literal", tok)
}

// Select ::= SELECT ('*' | ident (',' ident)*) FROM ident
//            (JOIN ident ON ident '=' ident)?
//
// A join select must project '*'; explicit column lists are only valid on a
// single table.
func (p *Parser) parseSelect() (*SelectStatement, error) {
	p.advance() // SELECT

	stmt := &SelectStatement{}
	if p.current().Type == lexer.ASTERISK {
		stmt.Star = true
		p.advance()
	} else {
		for {
			name, err := p.expectIdentifier("column name or '*'")
			if err != nil {
				return nil, err
			}
			stmt.Columns = append(stmt.Columns, name)
			if p.current().Type != lexer.COMMA {
				break
			}
			p.advance()
		}
	}

	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}

	name, err := p.expectIdentifier("table name")
	if err != nil {
		return nil, err
	}
	stmt.Table = name

	if !p.isKeyword("JOIN") {
		return stmt, nil
	}
	if !stmt.Star {
		return nil, p.errExpected("end of statement", p.current())
	}
	p.advance() // JOIN

	join := &JoinClause{}
	if join.Table, err = p.expectIdentifier("table name"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("ON"); err != nil {
		return nil, err
	}
	if join.LeftColumn, err = p.expectIdentifier("column name"); err != nil {
		return nil, err
	}
	if err := p.expectType(lexer.EQUALS, "'='"); err != nil {
		return nil, err
	}
	if join.RightColumn, err = p.expectIdentifier("column name"); err != nil {
		return nil, err
	}
	stmt.Join = join
	return stmt, nil
}

// ShowTables ::= SHOW TABLES
func (p *Parser) parseShowTables() (*ShowTablesStatement, error) {
	p.advance() // SHOW
	if err := p.expectKeyword("TABLES"); err != nil {
		return nil, err
	}
	return &ShowTablesStatement{}, nil
}

func (p *Parser) current() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() {
	p.pos++
}

func (p *Parser) isKeyword(kw string) bool {
	tok := p.current()
	return tok.Type == lexer.KEYWORD && tok.Literal == kw
}

func (p *Parser) expectKeyword(kw string) error {
	tok := p.current()
	if !p.isKeyword(kw) {
		return p.errExpected(kw, tok)
	}
	p.advance()
	return nil
}

func (p *Parser) expectType(t lexer.TokenType, expected string) error {
	tok := p.current()
	if tok.Type != t {
		return p.errExpected(expected, tok)
	}
	p.advance()
	return nil
}

func (p *Parser) expectIdentifier(expected string) (string, error) {
	tok := p.current()
	if tok.Type != lexer.IDENTIFIER {
		return "", p.errExpected(expected, tok)
	}
	p.advance()
	return tok.Literal, nil
}

func (p *Parser) errExpected(expected string, tok lexer.Token) error {
	return &types.ParseError{Pos: tok.Pos, Expected: expected, Found: tok.Display()}
}
