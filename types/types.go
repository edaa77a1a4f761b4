package types

import (
	"fmt"
)

type Position struct {
	Line     int
	Column   int
	Filename string
}

type Span struct {
	From Position
	To   Position
}

type TokenKind int

const (
	EOF TokenKind = iota
	ILLEGAL

	COLON
	LPAREN
	RPAREN
	COMMA
	ASSIGN

	PLUS
	MINUS
	STAR
	SLASH

	LESS
	GREATER
	EQUALS
	NOTEQUALS

	EOS
	INDENT
	DEDENT

	INT
	FLOAT
	IDENT
	STRING

	WHILE
	TRUE
	FALSE
	NONE
)

func (t TokenKind) String() string {
	data := map[TokenKind]string{
		EOF:       "EOF",
		ILLEGAL:   "ILLEGAL",
		COLON:     "COLON",
		LPAREN:    "LPAREN",
		RPAREN:    "RPAREN",
		COMMA:     "COMMA",
		ASSIGN:    "ASSIGN",
		PLUS:      "PLUS",
		MINUS:     "MINUS",
		STAR:      "STAR",
		SLASH:     "SLASH",
		LESS:      "LESS",
		GREATER:   "GREATER",
		EQUALS:    "EQUALS",
		NOTEQUALS: "NOTEQUALS",
		EOS:       "EOS",
		INDENT:    "INDENT",
		DEDENT:    "DEDENT",
		INT:       "INT",
		FLOAT:     "FLOAT",
		IDENT:     "IDENT",
		STRING:    "STRING",
		WHILE:     "WHILE",
		TRUE:      "TRUE",
		FALSE:     "FALSE",
		NONE:      "NONE",
	}
	if s, ok := data[t]; ok {
		return s
	}
	return fmt.Sprintf("TokenKind(%d)", int(t))
}

func (p Position) String() string {
	if p.Filename == "" {
		p.Filename = "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.From, s.To.Line, s.To.Column)
}

func SingleCharSpan(p Position) Span {
	return Span{p, p}
}

type Token struct {
	Kind     TokenKind
	Location Span
}
