package ast

import (
	"fmt"
	"strconv"
	"strings"
)

func expressionToString(e Expression) string {
	if e == nil {
		return "<nil>"
	}

	switch v := e.(type) {
	case Integer:
		return strconv.FormatInt(int64(v), 10)
	case Float:
		s := strconv.FormatFloat(float64(v), 'g', -1, 64)
		if !strings.ContainsAny(s, ".eIN") {
			s += ".0"
		}
		return s
	case String:
		return string(v)
	case Boolean:
		if v {
			return "True"
		}
		return "False"
	case Null:
		return "None"
	case fmt.Stringer:
		return v.String()
	}

	return fmt.Sprintf("%#v", e)
}

func (a Assignment) String() string {
	return fmt.Sprintf("%s = %s", a.Name, expressionToString(a.Value))
}

func (b BinaryOperation) String() string {
	return fmt.Sprintf("(%s %s %s)", expressionToString(b.Left), b.Op, expressionToString(b.Right))
}

func (c Comparison) String() string {
	return fmt.Sprintf("(%s %s %s)", expressionToString(c.Left), c.Op, expressionToString(c.Right))
}

func (f FunctionCall) String() string {
	var args []string
	for _, arg := range f.Args {
		args = append(args, expressionToString(arg))
	}
	return fmt.Sprintf("%s(%s)", f.Name, strings.Join(args, ", "))
}

// String renders only the loop header; bodies can be arbitrarily long.
func (w WhileLoop) String() string {
	return fmt.Sprintf("while %s: [%d statement(s)]", expressionToString(w.Condition), len(w.Body))
}

func (u Unsupported) String() string {
	return fmt.Sprintf("<%s>", u.Tag)
}
