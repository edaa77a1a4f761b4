package lexer

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"github.com/pontaoski/nodewalk/errors"
	"github.com/pontaoski/nodewalk/types"
)

type lexed struct {
	tok types.Token
	lit string
}

// Lexer turns indentation-structured source into tokens. Blocks are
// delimited by INDENT and DEDENT, logical lines end with EOS. Newlines
// inside parentheses don't end a line.
type Lexer struct {
	pos    types.Position
	reader *bufio.Reader

	peeked  []lexed
	pending []lexed

	indents       []int
	depth         int
	atLineStart   bool
	lineHasTokens bool
	done          bool
}

func NewLexer(reader io.Reader, filename string) *Lexer {
	return &Lexer{
		pos:         types.Position{Line: 1, Column: 0, Filename: filename},
		reader:      bufio.NewReader(reader),
		indents:     []int{0},
		atLineStart: true,
	}
}

func (l *Lexer) newline() {
	l.pos.Line++
	l.pos.Column = 0
}

func (l *Lexer) read() (rune, bool) {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return 0, false
		}
		panic(err)
	}

	l.pos.Column++
	return r, true
}

func (l *Lexer) backup() {
	if err := l.reader.UnreadRune(); err != nil {
		panic(err)
	}

	l.pos.Column--
}

func (l *Lexer) peekRune() (rune, bool) {
	r, ok := l.read()
	if ok {
		l.backup()
	}
	return r, ok
}

func (l *Lexer) match(want rune) bool {
	r, ok := l.read()
	if !ok {
		return false
	}
	if r != want {
		l.backup()
		return false
	}
	return true
}

func (l *Lexer) kinded(t types.TokenKind) types.Token {
	return types.Token{
		Location: types.SingleCharSpan(l.pos),
		Kind:     t,
	}
}

func firstChar(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func otherChar(r rune) bool {
	return firstChar(r) || unicode.IsDigit(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func (l *Lexer) lexIdent() (types.Position, types.Position, string) {
	var lit strings.Builder

	r, _ := l.read()
	from := l.pos
	to := l.pos
	lit.WriteRune(r)

	for {
		r, ok := l.read()
		if !ok {
			return from, to, lit.String()
		}
		if !otherChar(r) {
			l.backup()
			return from, to, lit.String()
		}

		lit.WriteRune(r)
		to = l.pos
	}
}

func (l *Lexer) readDigits(lit *strings.Builder) {
	for {
		r, ok := l.read()
		if !ok {
			return
		}
		if !isDigit(r) {
			l.backup()
			return
		}
		lit.WriteRune(r)
	}
}

// lexNumber is called with the first character already consumed.
func (l *Lexer) lexNumber(r rune) lexed {
	var lit strings.Builder
	kind := types.INT

	from := l.pos
	lit.WriteRune(r)

	if r == '.' {
		kind = types.FLOAT
		l.readDigits(&lit)
	} else {
		l.readDigits(&lit)
		if l.match('.') {
			kind = types.FLOAT
			lit.WriteRune('.')
			l.readDigits(&lit)
		}
	}

	if r, ok := l.peekRune(); ok && (r == 'e' || r == 'E') {
		byt, _ := l.reader.Peek(3)
		at := 1
		if len(byt) > 1 && (byt[1] == '+' || byt[1] == '-') {
			at = 2
		}
		if len(byt) > at && isDigit(rune(byt[at])) {
			kind = types.FLOAT
			for i := 0; i < at; i++ {
				r, _ := l.read()
				lit.WriteRune(r)
			}
			l.readDigits(&lit)
		}
	}

	return lexed{types.Token{Kind: kind, Location: types.Span{From: from, To: l.pos}}, lit.String()}
}

func (l *Lexer) lexString(quote rune) lexed {
	var lit strings.Builder
	from := l.pos

	unterminated := func() {
		panic(errors.UnterminatedString{Location: types.Span{From: from, To: l.pos}})
	}

	for {
		r, ok := l.read()
		if !ok || r == '\n' {
			unterminated()
		}

		switch r {
		case quote:
			return lexed{types.Token{Kind: types.STRING, Location: types.Span{From: from, To: l.pos}}, lit.String()}
		case '\\':
			e, ok := l.read()
			if !ok {
				unterminated()
			}
			switch e {
			case 'n':
				lit.WriteRune('\n')
			case 't':
				lit.WriteRune('\t')
			case 'r':
				lit.WriteRune('\r')
			case '0':
				lit.WriteRune(0)
			case '\\', '\'', '"':
				lit.WriteRune(e)
			case '\n':
				l.newline()
			default:
				lit.WriteRune('\\')
				lit.WriteRune(e)
			}
		default:
			lit.WriteRune(r)
		}
	}
}

func (l *Lexer) skipComment() {
	for {
		r, ok := l.read()
		if !ok {
			return
		}
		if r == '\n' {
			l.backup()
			return
		}
	}
}

// lexIndentation measures the indentation of the next non-blank line and
// reports an INDENT or DEDENT when it changes.
func (l *Lexer) lexIndentation() (lexed, bool) {
	for {
		width := 0
		var r rune
		var ok bool
		for {
			r, ok = l.read()
			if !ok {
				return lexed{}, false
			}
			if r == ' ' {
				width++
			} else if r == '\t' {
				width += 8 - width%8
			} else if r != '\r' && r != '\f' {
				break
			}
		}

		switch r {
		case '\n':
			l.newline()
			continue
		case '#':
			l.skipComment()
			continue
		}

		l.backup()
		l.atLineStart = false

		top := l.indents[len(l.indents)-1]
		switch {
		case width > top:
			l.indents = append(l.indents, width)
			return lexed{l.kinded(types.INDENT), ""}, true
		case width < top:
			for width < l.indents[len(l.indents)-1] {
				l.indents = l.indents[:len(l.indents)-1]
				l.pending = append(l.pending, lexed{l.kinded(types.DEDENT), ""})
			}
			if width != l.indents[len(l.indents)-1] {
				panic(errors.BadIndentation{Location: types.SingleCharSpan(l.pos)})
			}
			next := l.pending[0]
			l.pending = l.pending[1:]
			return next, true
		}

		return lexed{}, false
	}
}

func (l *Lexer) lexEOF() lexed {
	l.done = true

	if l.lineHasTokens {
		l.lineHasTokens = false
		l.pending = append(l.pending, lexed{l.kinded(types.EOS), "\n"})
	}
	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.pending = append(l.pending, lexed{l.kinded(types.DEDENT), ""})
	}
	l.pending = append(l.pending, lexed{l.kinded(types.EOF), ""})

	next := l.pending[0]
	l.pending = l.pending[1:]
	return next
}

func (l *Lexer) Peek() (types.Token, string) {
	return l.PeekAt(0)
}

// PeekAt looks n tokens past the next one without consuming anything.
func (l *Lexer) PeekAt(n int) (types.Token, string) {
	for len(l.peeked) <= n {
		l.peeked = append(l.peeked, l.lex())
	}

	return l.peeked[n].tok, l.peeked[n].lit
}

func (l *Lexer) PeekIs(k ...types.TokenKind) bool {
	token, _ := l.Peek()
	for _, kind := range k {
		if token.Kind == kind {
			return true
		}
	}

	return false
}

func (l *Lexer) PeekIsWithRet(k ...types.TokenKind) (bool, types.Token, string) {
	token, lit := l.Peek()
	for _, kind := range k {
		if token.Kind == kind {
			return true, token, lit
		}
	}

	return false, types.Token{}, ""
}

func (l *Lexer) LexExpecting(k ...types.TokenKind) (types.Token, string) {
	token, lit := l.Lex()
	for _, kind := range k {
		if token.Kind == kind {
			return token, lit
		}
	}

	panic(errors.ExpectedOneOfKindGotKind{
		Expected: k,
		Got:      token.Kind,
		Location: token.Location,
	})
}

func (l *Lexer) Lex() (types.Token, string) {
	if len(l.peeked) > 0 {
		next := l.peeked[0]
		l.peeked = l.peeked[1:]
		return next.tok, next.lit
	}

	next := l.lex()
	return next.tok, next.lit
}

func (l *Lexer) lex() lexed {
	if len(l.pending) > 0 {
		next := l.pending[0]
		l.pending = l.pending[1:]
		return next
	}
	if l.done {
		return lexed{l.kinded(types.EOF), ""}
	}

	if l.atLineStart && l.depth == 0 {
		if tok, ok := l.lexIndentation(); ok {
			return tok
		}
	}

	data := map[rune]types.TokenKind{
		':': types.COLON,
		'(': types.LPAREN,
		')': types.RPAREN,
		',': types.COMMA,
		';': types.EOS,
		'+': types.PLUS,
		'-': types.MINUS,
		'*': types.STAR,
		'/': types.SLASH,
		'<': types.LESS,
		'>': types.GREATER,
	}

	keywords := map[string]types.TokenKind{
		"while": types.WHILE,
		"True":  types.TRUE,
		"False": types.FALSE,
		"None":  types.NONE,
	}

	for {
		r, ok := l.read()
		if !ok {
			return l.lexEOF()
		}

		switch r {
		case ' ', '\t', '\r', '\f':
			continue
		case '#':
			l.skipComment()
			continue
		case '\n':
			if l.depth > 0 {
				l.newline()
				continue
			}
			tok := l.kinded(types.EOS)
			l.newline()
			l.atLineStart = true
			l.lineHasTokens = false
			return lexed{tok, "\n"}
		}

		l.lineHasTokens = true
		from := l.pos

		switch {
		case r == '=':
			if l.match('=') {
				return lexed{types.Token{Kind: types.EQUALS, Location: types.Span{From: from, To: l.pos}}, "=="}
			}
			return lexed{l.kinded(types.ASSIGN), "="}
		case r == '!':
			if l.match('=') {
				return lexed{types.Token{Kind: types.NOTEQUALS, Location: types.Span{From: from, To: l.pos}}, "!="}
			}
			panic(errors.UnexpectedCharacter{Char: r, Location: types.SingleCharSpan(from)})
		case r == '"' || r == '\'':
			return l.lexString(r)
		case isDigit(r):
			return l.lexNumber(r)
		case r == '.':
			if next, ok := l.peekRune(); ok && isDigit(next) {
				return l.lexNumber(r)
			}
		case firstChar(r):
			l.backup()
			from, to, lit := l.lexIdent()

			if kind, ok := keywords[lit]; ok {
				return lexed{types.Token{Kind: kind, Location: types.Span{From: from, To: to}}, lit}
			}

			return lexed{types.Token{Kind: types.IDENT, Location: types.Span{From: from, To: to}}, lit}
		}

		if kind, ok := data[r]; ok {
			switch kind {
			case types.LPAREN:
				l.depth++
			case types.RPAREN:
				if l.depth > 0 {
					l.depth--
				}
			}
			return lexed{l.kinded(kind), string(r)}
		}

		panic(errors.UnexpectedCharacter{Char: r, Location: types.SingleCharSpan(from)})
	}
}

type testToken struct {
	t types.Token
	s string
}

func (l *Lexer) lexToEOF() (ret []testToken) {
	t, s := l.Lex()
	for t.Kind != types.EOF {
		ret = append(ret, testToken{
			t: t,
			s: s,
		})
		t, s = l.Lex()
	}
	return
}
