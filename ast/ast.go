// Package ast holds the node tree: the tagged records a program is made of,
// plus the wire codec that reads and writes them.
//
// Expression and the literal types are generated from expression.decl.
package ast

//go:generate sh -c "cd ../tool && go run . ../ast/expression.decl ../ast/expression_gen.go ast"

// Node is one tagged record of the tree.
type Node interface {
	Expression
	is_Node()
	Type() string
}

const (
	TypeAssignment      = "variable_assignment"
	TypeBinaryOperation = "binary_operation"
	TypeComparison      = "comparison"
	TypeFunctionCall    = "function_call"
	TypeWhileLoop       = "while_loop"
)

type Operator string

const (
	Add      Operator = "+"
	Subtract Operator = "-"
	Multiply Operator = "*"
	Divide   Operator = "/"

	Less     Operator = "<"
	Greater  Operator = ">"
	Equal    Operator = "=="
	NotEqual Operator = "!="
)

type Assignment struct {
	Name  string
	Value Expression
}

func (v Assignment) is_Expression() {}
func (v Assignment) is_Node()       {}
func (v Assignment) Type() string   { return TypeAssignment }

type BinaryOperation struct {
	Left  Expression
	Op    Operator
	Right Expression
}

func (v BinaryOperation) is_Expression() {}
func (v BinaryOperation) is_Node()       {}
func (v BinaryOperation) Type() string   { return TypeBinaryOperation }

type Comparison struct {
	Left  Expression
	Op    Operator
	Right Expression
}

func (v Comparison) is_Expression() {}
func (v Comparison) is_Node()       {}
func (v Comparison) Type() string   { return TypeComparison }

type FunctionCall struct {
	Name string
	Args []Expression
}

func (v FunctionCall) is_Expression() {}
func (v FunctionCall) is_Node()       {}
func (v FunctionCall) Type() string   { return TypeFunctionCall }

type WhileLoop struct {
	Condition Expression
	Body      []Node
}

func (v WhileLoop) is_Expression() {}
func (v WhileLoop) is_Node()       {}
func (v WhileLoop) Type() string   { return TypeWhileLoop }

// Unsupported keeps a record whose tag is missing or unknown, so the
// interpreter can reject it when execution reaches it.
type Unsupported struct {
	Tag string
}

func (v Unsupported) is_Expression() {}
func (v Unsupported) is_Node()       {}
func (v Unsupported) Type() string   { return v.Tag }
