package runtime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindInteger Kind = iota
	KindFloat
	KindString
	KindBool
	KindVoid
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "str"
	case KindBool:
		return "bool"
	case KindVoid:
		return "None"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is a dynamically typed runtime value.
type Value interface {
	Kind() Kind
}

type IntegerValue struct {
	Val int64
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// VoidValue is both the null literal and the result of statements that
// produce nothing.
type VoidValue struct{}

func (VoidValue) Kind() Kind { return KindVoid }

var Void Value = VoidValue{}

func Integer(i int64) Value { return IntegerValue{Val: i} }
func Float(f float64) Value { return FloatValue{Val: f} }
func String(s string) Value { return StringValue{Val: s} }
func Bool(b bool) Value     { return BoolValue{Val: b} }

func IsNumber(v Value) bool {
	k := kindOf(v)
	return k == KindInteger || k == KindFloat
}

func IsVoid(v Value) bool { return kindOf(v) == KindVoid }

// KindName names the kind of v, treating a nil Value as Void.
func KindName(v Value) string { return kindOf(v).String() }

func kindOf(v Value) Kind {
	if v == nil {
		return KindVoid
	}
	return v.Kind()
}

// ToFloat widens a number to float64.
func ToFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case IntegerValue:
		return float64(n.Val), true
	case FloatValue:
		return n.Val, true
	}
	return 0, false
}

// Truthy reports whether v counts as true in a loop condition.
func Truthy(v Value) bool {
	switch n := v.(type) {
	case IntegerValue:
		return n.Val != 0
	case FloatValue:
		return n.Val != 0
	case StringValue:
		return n.Val != ""
	case BoolValue:
		return n.Val
	default:
		return false
	}
}

// Compare orders two numbers exactly, without widening integers to float.
// ok is false when either side isn't a number or a NaN is involved.
func Compare(a, b Value) (cmp int, ok bool) {
	switch av := a.(type) {
	case IntegerValue:
		switch bv := b.(type) {
		case IntegerValue:
			return compareInts(av.Val, bv.Val), true
		case FloatValue:
			return compareIntFloat(av.Val, bv.Val)
		}
	case FloatValue:
		switch bv := b.(type) {
		case IntegerValue:
			cmp, ok := compareIntFloat(bv.Val, av.Val)
			return -cmp, ok
		case FloatValue:
			if math.IsNaN(av.Val) || math.IsNaN(bv.Val) {
				return 0, false
			}
			switch {
			case av.Val < bv.Val:
				return -1, true
			case av.Val > bv.Val:
				return 1, true
			}
			return 0, true
		}
	}

	return 0, false
}

func compareInts(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// two63 is 2^63, the first float64 above math.MaxInt64.
const two63 = float64(1 << 63)

func compareIntFloat(i int64, f float64) (int, bool) {
	switch {
	case math.IsNaN(f):
		return 0, false
	case f >= two63:
		return -1, true
	case f < -two63:
		return 1, true
	}

	whole := math.Trunc(f)
	if cmp := compareInts(i, int64(whole)); cmp != 0 {
		return cmp, true
	}

	switch frac := f - whole; {
	case frac > 0:
		return -1, true
	case frac < 0:
		return 1, true
	}
	return 0, true
}

// Equal compares numbers exactly and everything else by kind and value.
func Equal(a, b Value) bool {
	if IsNumber(a) && IsNumber(b) {
		cmp, ok := Compare(a, b)
		return ok && cmp == 0
	}

	if kindOf(a) != kindOf(b) {
		return false
	}

	switch av := a.(type) {
	case StringValue:
		return av.Val == b.(StringValue).Val
	case BoolValue:
		return av.Val == b.(BoolValue).Val
	}

	return IsVoid(a)
}

// Stringify renders a value the way print and Format show it.
func Stringify(v Value) string {
	switch n := v.(type) {
	case IntegerValue:
		return strconv.FormatInt(n.Val, 10)
	case FloatValue:
		return formatFloat(n.Val)
	case StringValue:
		return n.Val
	case BoolValue:
		if n.Val {
			return "True"
		}
		return "False"
	default:
		return "None"
	}
}

// formatFloat prints the shortest round-trip form, switching to exponent
// notation below 1e-4 and from 1e16 up.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(s[strings.LastIndexByte(s, 'e')+1:])
	if err == nil && f != 0 && (exp < -4 || exp >= 16) {
		return s
	}

	s = strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
