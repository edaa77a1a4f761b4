// Package interpreter evaluates nodes against a single global environment.
//
// Every failure is fatal for the run: errors are returned to the caller
// immediately and nothing in this package recovers from them.
package interpreter

import (
	"fmt"
	"io"
	"os"

	"github.com/coreos/pkg/capnslog"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/nodewalk/ast"
	"github.com/pontaoski/nodewalk/console"
	"github.com/pontaoski/nodewalk/errors"
	"github.com/pontaoski/nodewalk/runtime"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/nodewalk", "interpreter")

type Interpreter struct {
	env      *runtime.Environment
	out      io.Writer
	console  console.Console
	builtins map[string]builtin
}

type Option func(*Interpreter)

// WithOutput redirects print and input prompts. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		i.out = w
	}
}

// WithConsole sets where input reads lines from. Defaults to a plain reader
// on os.Stdin that prompts on the interpreter's output.
func WithConsole(c console.Console) Option {
	return func(i *Interpreter) {
		i.console = c
	}
}

func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		env: runtime.NewEnvironment(),
		out: os.Stdout,
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.console == nil {
		i.console = console.NewPlain(os.Stdin, i.out)
	}
	i.builtins = addBuiltins()

	return i
}

func (i *Interpreter) Environment() *runtime.Environment {
	return i.env
}

// Run interprets each top-level node in order and stops at the first error.
func (i *Interpreter) Run(nodes []ast.Node) error {
	plog.Debugf("running %d top-level statement(s)", len(nodes))

	for idx, node := range nodes {
		if _, err := i.Interpret(node); err != nil {
			plog.Debugf("top-level statement %d (%s) failed: %v", idx, node.Type(), err)
			return err
		}
	}

	plog.Debugf("finished with %d binding(s)", i.env.Len())
	return nil
}

// Interpret executes one node. Statements that produce nothing return
// runtime.Void.
func (i *Interpreter) Interpret(node ast.Node) (runtime.Value, error) {
	if plog.LevelAt(capnslog.TRACE) {
		plog.Tracef("interpret %s", node)
	}

	switch n := node.(type) {
	case ast.Assignment:
		return i.interpretAssignment(n)
	case ast.BinaryOperation:
		return i.interpretBinaryOperation(n)
	case ast.Comparison:
		return i.interpretComparison(n)
	case ast.FunctionCall:
		return i.interpretFunctionCall(n)
	case ast.WhileLoop:
		return i.interpretWhileLoop(n)
	case ast.Unsupported:
		return nil, tracerr.Wrap(errors.UnsupportedStatement{Type: n.Tag})
	case nil:
		return nil, tracerr.Wrap(errors.UnsupportedStatement{})
	default:
		return nil, tracerr.Wrap(errors.UnsupportedStatement{Type: fmt.Sprintf("%T", node)})
	}
}

// Evaluate turns an expression into a value. A bare string is a variable
// read when the environment has that name, and a literal otherwise.
func (i *Interpreter) Evaluate(expr ast.Expression) (runtime.Value, error) {
	switch e := expr.(type) {
	case ast.Node:
		return i.Interpret(e)
	case ast.String:
		if v, ok := i.env.Lookup(string(e)); ok {
			return v, nil
		}
		return runtime.String(string(e)), nil
	case ast.Integer:
		return runtime.Integer(int64(e)), nil
	case ast.Float:
		return runtime.Float(float64(e)), nil
	case ast.Boolean:
		return runtime.Bool(bool(e)), nil
	case ast.Null, nil:
		return runtime.Void, nil
	default:
		return nil, tracerr.Errorf("unhandled expression %T", expr)
	}
}

func (i *Interpreter) interpretAssignment(a ast.Assignment) (runtime.Value, error) {
	val, err := i.Evaluate(a.Value)
	if err != nil {
		return nil, err
	}

	i.env.Define(a.Name, val)

	return runtime.Void, nil
}

func (i *Interpreter) interpretFunctionCall(call ast.FunctionCall) (runtime.Value, error) {
	args := make([]runtime.Value, 0, len(call.Args))
	for _, arg := range call.Args {
		val, err := i.Evaluate(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}

	fn, ok := i.builtins[call.Name]
	if !ok {
		return nil, tracerr.Wrap(errors.UnsupportedFunctionCall{Name: call.Name})
	}

	return fn(i, args)
}

func (i *Interpreter) interpretWhileLoop(loop ast.WhileLoop) (runtime.Value, error) {
	result := runtime.Void

	for {
		cond, err := i.Evaluate(loop.Condition)
		if err != nil {
			return nil, err
		}
		if !runtime.Truthy(cond) {
			return result, nil
		}

		for _, stmt := range loop.Body {
			result, err = i.Interpret(stmt)
			if err != nil {
				return nil, err
			}
		}
	}
}
