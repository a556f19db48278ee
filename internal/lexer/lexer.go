package lexer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/zakazai/ulin-lite/internal/types"
)

// TokenType represents the type of a token
type TokenType int

const (
	// EOF represents the end of the input
	EOF TokenType = iota
	// KEYWORD represents a keyword token
	KEYWORD
	// IDENTIFIER represents an identifier token
	IDENTIFIER
	// NUMBER represents an integer literal token
	NUMBER
	// STRING represents a quoted text literal token
	STRING
	// LPAREN represents a left parenthesis
	LPAREN
	// RPAREN represents a right parenthesis
	RPAREN
	// COMMA represents a comma
	COMMA
	// SEMICOLON represents a semicolon
	SEMICOLON
	// ASTERISK represents an asterisk
	ASTERISK
	// EQUALS represents an equals sign
	EQUALS
)

// Token represents a lexical token. Pos is the byte offset of the token's
// first character in the statement text, used for error reporting.
type Token struct {
	Type    TokenType
	Literal string
	Pos     int
}

func (t Token) String() string {
	return fmt.Sprintf("Token{Type: %v, Literal: %q, Pos: %d}", t.Type, t.Literal, t.Pos)
}

// Display renders the token for error messages.
func (t Token) Display() string {
	if t.Type == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.Literal)
}

// Lexer represents a lexical analyzer
type Lexer struct {
	input        string
	position     int
	readPosition int
	ch           byte
}

// New creates a new lexer with the given input
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// Lex tokenizes the whole input, appending a trailing EOF token. It is a
// pure function of the input text.
func Lex(input string) ([]Token, error) {
	l := New(input)
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

// NextToken returns the next token in the input, or a LexError on an
// unterminated string literal or unrecognized character.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()

	pos := l.position
	var tok Token

	switch l.ch {
	case '(':
		tok = Token{Type: LPAREN, Literal: string(l.ch), Pos: pos}
	case ')':
		tok = Token{Type: RPAREN, Literal: string(l.ch), Pos: pos}
	case ',':
		tok = Token{Type: COMMA, Literal: string(l.ch), Pos: pos}
	case ';':
		tok = Token{Type: SEMICOLON, Literal: string(l.ch), Pos: pos}
	case '*':
		tok = Token{Type: ASTERISK, Literal: string(l.ch), Pos: pos}
	case '=':
		tok = Token{Type: EQUALS, Literal: string(l.ch), Pos: pos}
	case 0:
		return Token{Type: EOF, Literal: "", Pos: pos}, nil
	case '\'':
		l.readChar()
		literal, ok := l.readString()
		if !ok {
			return Token{}, &types.LexError{Pos: pos, Found: "unterminated string literal"}
		}
		return Token{Type: STRING, Literal: literal, Pos: pos}, nil
	default:
		if isLetter(l.ch) {
			tok = Token{Literal: l.readIdentifier(), Pos: pos}
			upperLiteral := strings.ToUpper(tok.Literal)
			if isKeyword(upperLiteral) {
				tok.Type = KEYWORD
				tok.Literal = upperLiteral
			} else {
				tok.Type = IDENTIFIER
			}
			return tok, nil
		} else if isDigit(l.ch) || l.ch == '-' {
			return Token{Type: NUMBER, Literal: l.readNumber(), Pos: pos}, nil
		}
		return Token{}, &types.LexError{Pos: pos, Found: fmt.Sprintf("character %q", string(l.ch))}
	}

	l.readChar()
	return tok, nil
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}
	return l.input[position:l.position]
}

func (l *Lexer) readNumber() string {
	position := l.position
	if l.ch == '-' {
		l.readChar()
	}
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readString consumes up to the closing quote and reports whether the
// literal was terminated. The cursor is left past the closing quote.
func (l *Lexer) readString() (string, bool) {
	position := l.position
	for l.ch != '\'' {
		if l.ch == 0 {
			return "", false
		}
		l.readChar()
	}
	literal := l.input[position:l.position]
	l.readChar()
	return literal, true
}

func isLetter(ch byte) bool {
	return unicode.IsLetter(rune(ch))
}

func isDigit(ch byte) bool {
	return unicode.IsDigit(rune(ch))
}

func isKeyword(word string) bool {
	keywords := []string{
		"CREATE", "TABLE", "INSERT", "INTO", "VALUES",
		"SELECT", "FROM", "JOIN", "ON",
		"INT", "TEXT", "PRIMARY", "UNIQUE",
		"SHOW", "TABLES",
	}
	for _, keyword := range keywords {
		if word == keyword {
			return true
		}
	}
	return false
}
