package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pontaoski/nodewalk/errors"
	"github.com/pontaoski/nodewalk/types"
)

func kinds(tokens []testToken) []types.TokenKind {
	ret := make([]types.TokenKind, 0, len(tokens))
	for _, tok := range tokens {
		ret = append(ret, tok.t.Kind)
	}
	return ret
}

func lits(tokens []testToken) []string {
	ret := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		ret = append(ret, tok.s)
	}
	return ret
}

func TestLexer(t *testing.T) {
	l := NewLexer(strings.NewReader("x = 1 + 2.5\nprint(x, 'hi')"), "stdin")
	tokens := l.lexToEOF()

	require.Equal(t, []types.TokenKind{
		types.IDENT, types.ASSIGN, types.INT, types.PLUS, types.FLOAT, types.EOS,
		types.IDENT, types.LPAREN, types.IDENT, types.COMMA, types.STRING, types.RPAREN, types.EOS,
	}, kinds(tokens))
	require.Equal(t, "2.5", tokens[4].s)
	require.Equal(t, "hi", tokens[10].s)
}

func TestLexerPositions(t *testing.T) {
	l := NewLexer(strings.NewReader("x = 1\n  \nfoo"), "prog.nw")
	tokens := l.lexToEOF()

	require.Equal(t, types.Position{Line: 1, Column: 1, Filename: "prog.nw"}, tokens[0].t.Location.From)
	require.Equal(t, "foo", tokens[4].s)
	require.Equal(t, types.Position{Line: 3, Column: 1, Filename: "prog.nw"}, tokens[4].t.Location.From)
	require.Equal(t, types.Position{Line: 3, Column: 3, Filename: "prog.nw"}, tokens[4].t.Location.To)
}

func TestLexerIndentation(t *testing.T) {
	src := "while x:\n    a\n\n    # comment\n    while y:\n        b\nc\n"
	l := NewLexer(strings.NewReader(src), "stdin")

	require.Equal(t, []types.TokenKind{
		types.WHILE, types.IDENT, types.COLON, types.EOS,
		types.INDENT, types.IDENT, types.EOS,
		types.WHILE, types.IDENT, types.COLON, types.EOS,
		types.INDENT, types.IDENT, types.EOS,
		types.DEDENT, types.DEDENT,
		types.IDENT, types.EOS,
	}, kinds(l.lexToEOF()))
}

func TestLexerClosesBlocksAtEOF(t *testing.T) {
	l := NewLexer(strings.NewReader("while x:\n\tprint(x)"), "stdin")

	require.Equal(t, []types.TokenKind{
		types.WHILE, types.IDENT, types.COLON, types.EOS,
		types.INDENT, types.IDENT, types.LPAREN, types.IDENT, types.RPAREN, types.EOS,
		types.DEDENT,
	}, kinds(l.lexToEOF()))
}

func TestLexerParensJoinLines(t *testing.T) {
	l := NewLexer(strings.NewReader("print(1,\n      2)\n"), "stdin")

	require.Equal(t, []types.TokenKind{
		types.IDENT, types.LPAREN, types.INT, types.COMMA, types.INT, types.RPAREN, types.EOS,
	}, kinds(l.lexToEOF()))
}

func TestLexerOperators(t *testing.T) {
	l := NewLexer(strings.NewReader("a == b != c < d > e - f * g / h; i"), "stdin")
	tokens := l.lexToEOF()

	require.Equal(t, []types.TokenKind{
		types.IDENT, types.EQUALS, types.IDENT, types.NOTEQUALS, types.IDENT,
		types.LESS, types.IDENT, types.GREATER, types.IDENT, types.MINUS,
		types.IDENT, types.STAR, types.IDENT, types.SLASH, types.IDENT,
		types.EOS, types.IDENT, types.EOS,
	}, kinds(tokens))
	require.Equal(t, "==", tokens[1].s)
	require.Equal(t, "!=", tokens[3].s)
}

func TestLexerNumbers(t *testing.T) {
	l := NewLexer(strings.NewReader("12 3.25 .5 7. 1e3 2.5E-2 4e"), "stdin")
	tokens := l.lexToEOF()

	require.Equal(t, []string{"12", "3.25", ".5", "7.", "1e3", "2.5E-2", "4", "e", "\n"}, lits(tokens))
	require.Equal(t, []types.TokenKind{
		types.INT, types.FLOAT, types.FLOAT, types.FLOAT, types.FLOAT, types.FLOAT,
		types.INT, types.IDENT, types.EOS,
	}, kinds(tokens))
}

func TestLexerStrings(t *testing.T) {
	l := NewLexer(strings.NewReader(`"a\tb" 'it\'s' "x\qy"`), "stdin")

	require.Equal(t, []string{"a\tb", "it's", `x\qy`, "\n"}, lits(l.lexToEOF()))
}

func TestLexerKeywords(t *testing.T) {
	l := NewLexer(strings.NewReader("True False None while whiles"), "stdin")

	require.Equal(t, []types.TokenKind{
		types.TRUE, types.FALSE, types.NONE, types.WHILE, types.IDENT, types.EOS,
	}, kinds(l.lexToEOF()))
}

func TestLexerPeekAt(t *testing.T) {
	l := NewLexer(strings.NewReader("x = 1"), "stdin")

	tok, _ := l.PeekAt(1)
	require.Equal(t, types.ASSIGN, tok.Kind)
	require.True(t, l.PeekIs(types.IDENT))

	tok, lit := l.Lex()
	require.Equal(t, types.IDENT, tok.Kind)
	require.Equal(t, "x", lit)
}

func TestLexerErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"bang", "a ! b", errors.UnexpectedCharacter{}},
		{"unknown", "a @ b", errors.UnexpectedCharacter{}},
		{"unterminated", "'abc\n", errors.UnterminatedString{}},
		{"dedent", "while x:\n    a\n  b\n", errors.BadIndentation{}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l := NewLexer(strings.NewReader(c.src), "stdin")
			defer func() {
				r := recover()
				require.NotNil(t, r)
				require.IsType(t, c.want, r)
			}()
			l.lexToEOF()
		})
	}
}
