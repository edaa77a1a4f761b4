package errors

import (
	"fmt"

	"github.com/pontaoski/nodewalk/types"
)

// UnsupportedStatement is returned when a node carries a missing or unknown
// type tag.
type UnsupportedStatement struct {
	Type string
}

func (e UnsupportedStatement) Error() string {
	if e.Type == "" {
		return "interpreter does not support statements without a type"
	}
	return fmt.Sprintf("interpreter does not support statements of type %q", e.Type)
}

// UnsupportedOperation is returned for an operator outside the set allowed by
// the node that carries it.
type UnsupportedOperation struct {
	Node string
	Op   string
}

func (e UnsupportedOperation) Error() string {
	return fmt.Sprintf("unsupported %s operator %q", e.Node, e.Op)
}

type UnsupportedFunctionCall struct {
	Name string
}

func (e UnsupportedFunctionCall) Error() string {
	return fmt.Sprintf("unsupported function call: %s", e.Name)
}

// ArithmeticFailure is what an operator reports when its operands can't be
// combined: division by zero, overflow, or incompatible kinds.
type ArithmeticFailure struct {
	Op     string
	Left   string
	Right  string
	Reason string
}

func (e ArithmeticFailure) Error() string {
	return fmt.Sprintf("%s %s %s: %s", e.Left, e.Op, e.Right, e.Reason)
}

type FormatIndexOutOfRange struct {
	Index int
	Count int
}

func (e FormatIndexOutOfRange) Error() string {
	return fmt.Sprintf("Format placeholder $%d out of range: %d argument(s) after the template", e.Index, e.Count)
}

type InvalidArgument struct {
	Function string
	Reason   string
}

func (e InvalidArgument) Error() string {
	return fmt.Sprintf("%s: %s", e.Function, e.Reason)
}

// MalformedNode reports input that doesn't have the shape of a node sequence.
// Path points at the offending value, e.g. /0/body/2/args.
type MalformedNode struct {
	Path   string
	Reason string
}

func (e MalformedNode) Error() string {
	path := e.Path
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("malformed node at %s: %s", path, e.Reason)
}

type ExpectedOneOfKindGotKind struct {
	Expected []types.TokenKind
	Got      types.TokenKind
	Location types.Span
}

func (e ExpectedOneOfKindGotKind) Error() string {
	return fmt.Sprintf("got a %s, expected one of %s. %s", e.Got, e.Expected, e.Location)
}

type UnexpectedCharacter struct {
	Char     rune
	Location types.Span
}

func (e UnexpectedCharacter) Error() string {
	return fmt.Sprintf("unexpected character %q. %s", e.Char, e.Location)
}

type UnterminatedString struct {
	Location types.Span
}

func (e UnterminatedString) Error() string {
	return fmt.Sprintf("unterminated string literal. %s", e.Location)
}

type BadIndentation struct {
	Location types.Span
}

func (e BadIndentation) Error() string {
	return fmt.Sprintf("unindent does not match any outer indentation level. %s", e.Location)
}

// NotAStatement is returned for a line holding only a name or a literal,
// which has no node form.
type NotAStatement struct {
	Location types.Span
}

func (e NotAStatement) Error() string {
	return fmt.Sprintf("expression is not a statement. %s", e.Location)
}

type BadLiteral struct {
	Literal  string
	Location types.Span
}

func (e BadLiteral) Error() string {
	return fmt.Sprintf("invalid number literal %s. %s", e.Literal, e.Location)
}
