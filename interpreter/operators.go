package interpreter

import (
	"math"
	"strings"

	"github.com/ztrue/tracerr"

	"github.com/pontaoski/nodewalk/ast"
	"github.com/pontaoski/nodewalk/errors"
	"github.com/pontaoski/nodewalk/runtime"
)

const maxRepeatedLen = 1 << 30

func (i *Interpreter) operands(left, right ast.Expression) (runtime.Value, runtime.Value, error) {
	l, err := i.Evaluate(left)
	if err != nil {
		return nil, nil, err
	}
	r, err := i.Evaluate(right)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

func (i *Interpreter) interpretBinaryOperation(b ast.BinaryOperation) (runtime.Value, error) {
	left, right, err := i.operands(b.Left, b.Right)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case ast.Add:
		return add(left, right)
	case ast.Subtract:
		return numeric(b.Op, left, right, subInt, func(a, b float64) float64 { return a - b })
	case ast.Multiply:
		return multiply(left, right)
	case ast.Divide:
		return divide(left, right)
	}

	return nil, tracerr.Wrap(errors.UnsupportedOperation{Node: ast.TypeBinaryOperation, Op: string(b.Op)})
}

func (i *Interpreter) interpretComparison(c ast.Comparison) (runtime.Value, error) {
	left, right, err := i.operands(c.Left, c.Right)
	if err != nil {
		return nil, err
	}

	switch c.Op {
	case ast.Equal:
		return runtime.Bool(runtime.Equal(left, right)), nil
	case ast.NotEqual:
		return runtime.Bool(!runtime.Equal(left, right)), nil
	case ast.Less, ast.Greater:
		cmp, err := order(c.Op, left, right)
		if err != nil {
			return nil, err
		}
		if c.Op == ast.Less {
			return runtime.Bool(cmp < 0), nil
		}
		return runtime.Bool(cmp > 0), nil
	}

	return nil, tracerr.Wrap(errors.UnsupportedOperation{Node: ast.TypeComparison, Op: string(c.Op)})
}

func failure(op ast.Operator, left, right runtime.Value, reason string) error {
	return tracerr.Wrap(errors.ArithmeticFailure{
		Op:     string(op),
		Left:   runtime.KindName(left),
		Right:  runtime.KindName(right),
		Reason: reason,
	})
}

func add(left, right runtime.Value) (runtime.Value, error) {
	if ls, ok := left.(runtime.StringValue); ok {
		if rs, ok := right.(runtime.StringValue); ok {
			return runtime.String(ls.Val + rs.Val), nil
		}
	}

	return numeric(ast.Add, left, right, addInt, func(a, b float64) float64 { return a + b })
}

func multiply(left, right runtime.Value) (runtime.Value, error) {
	if s, ok := left.(runtime.StringValue); ok {
		if n, ok := right.(runtime.IntegerValue); ok {
			return repeat(left, right, s.Val, n.Val)
		}
	}
	if n, ok := left.(runtime.IntegerValue); ok {
		if s, ok := right.(runtime.StringValue); ok {
			return repeat(left, right, s.Val, n.Val)
		}
	}

	return numeric(ast.Multiply, left, right, mulInt, func(a, b float64) float64 { return a * b })
}

func repeat(left, right runtime.Value, s string, n int64) (runtime.Value, error) {
	if n <= 0 || s == "" {
		return runtime.String(""), nil
	}
	if n > int64(maxRepeatedLen/len(s)) {
		return nil, failure(ast.Multiply, left, right, "repeated string is too long")
	}
	return runtime.String(strings.Repeat(s, int(n))), nil
}

func divide(left, right runtime.Value) (runtime.Value, error) {
	l, lok := runtime.ToFloat(left)
	r, rok := runtime.ToFloat(right)
	if !lok || !rok {
		return nil, failure(ast.Divide, left, right, "unsupported operand types")
	}
	if r == 0 {
		return nil, failure(ast.Divide, left, right, "division by zero")
	}

	return runtime.Float(l / r), nil
}

// numeric applies an arithmetic operator, staying in integers when both
// operands are integers and widening to float otherwise.
func numeric(op ast.Operator, left, right runtime.Value, ints func(a, b int64) (int64, bool), floats func(a, b float64) float64) (runtime.Value, error) {
	if !runtime.IsNumber(left) || !runtime.IsNumber(right) {
		return nil, failure(op, left, right, "unsupported operand types")
	}

	li, lok := left.(runtime.IntegerValue)
	ri, rok := right.(runtime.IntegerValue)
	if lok && rok {
		v, ok := ints(li.Val, ri.Val)
		if !ok {
			return nil, failure(op, left, right, "integer overflow")
		}
		return runtime.Integer(v), nil
	}

	l, _ := runtime.ToFloat(left)
	r, _ := runtime.ToFloat(right)
	return runtime.Float(floats(l, r)), nil
}

func addInt(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

func subInt(a, b int64) (int64, bool) {
	if (b < 0 && a > math.MaxInt64+b) || (b > 0 && a < math.MinInt64+b) {
		return 0, false
	}
	return a - b, true
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	c := a * b
	if c/b != a {
		return 0, false
	}
	return c, true
}

// order returns -1, 0 or 1. Numbers order exactly and strings by code
// point; anything else can't be ordered.
func order(op ast.Operator, left, right runtime.Value) (int, error) {
	if runtime.IsNumber(left) && runtime.IsNumber(right) {
		// NaN is unordered: neither < nor > holds.
		cmp, _ := runtime.Compare(left, right)
		return cmp, nil
	}

	if ls, ok := left.(runtime.StringValue); ok {
		if rs, ok := right.(runtime.StringValue); ok {
			return strings.Compare(ls.Val, rs.Val), nil
		}
	}

	return 0, failure(op, left, right, "ordering not supported between these types")
}
