package runtime

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStringify(t *testing.T) {
	cases := []struct {
		in   Value
		want string
	}{
		{Integer(-12), "-12"},
		{Float(3), "3.0"},
		{Float(0), "0.0"},
		{Float(-0.5), "-0.5"},
		{Float(0.0001), "0.0001"},
		{Float(0.00001), "1e-05"},
		{Float(123456789012345.0), "123456789012345.0"},
		{Float(1e16), "1e+16"},
		{Float(2.5e-7), "2.5e-07"},
		{Float(math.Inf(1)), "inf"},
		{Float(math.Inf(-1)), "-inf"},
		{Float(math.NaN()), "nan"},
		{String("hi"), "hi"},
		{Bool(true), "True"},
		{Bool(false), "False"},
		{Void, "None"},
		{nil, "None"},
	}

	for _, c := range cases {
		require.Equal(t, c.want, Stringify(c.in))
	}
}

func TestTruthy(t *testing.T) {
	truthy := []Value{Integer(1), Integer(-1), Float(0.1), String("0"), Bool(true)}
	falsy := []Value{Integer(0), Float(0), String(""), Bool(false), Void, nil}

	for _, v := range truthy {
		require.True(t, Truthy(v), "%#v", v)
	}
	for _, v := range falsy {
		require.False(t, Truthy(v), "%#v", v)
	}
}

func TestEqual(t *testing.T) {
	require.True(t, Equal(Integer(2), Float(2)))
	require.True(t, Equal(Float(0.5), Float(0.5)))
	require.False(t, Equal(Float(math.NaN()), Float(math.NaN())))
	require.True(t, Equal(String("a"), String("a")))
	require.False(t, Equal(String("a"), String("b")))
	require.False(t, Equal(String("1"), Integer(1)))
	require.False(t, Equal(Bool(false), Integer(0)))
	require.True(t, Equal(Void, nil))
	require.True(t, Equal(Bool(true), Bool(true)))
	require.False(t, Equal(Integer(9007199254740993), Float(9007199254740992)))
	require.False(t, Equal(Float(9007199254740992), Integer(9007199254740993)))
	require.True(t, Equal(Integer(9007199254740992), Float(9007199254740992)))
}

func TestCompare(t *testing.T) {
	cases := []struct {
		a, b Value
		cmp  int
	}{
		{Integer(3), Float(3), 0},
		{Integer(2), Integer(5), -1},
		{Float(2.5), Integer(2), 1},
		{Float(-2.5), Integer(-2), -1},
		{Integer(-3), Float(-2.5), -1},
		{Integer(9007199254740993), Float(9007199254740992), 1},
		{Integer(math.MaxInt64), Float(1 << 63), -1},
		{Integer(math.MinInt64), Float(-(1 << 63)), 0},
		{Integer(math.MinInt64), Float(math.Inf(-1)), 1},
		{Float(math.Inf(1)), Integer(math.MaxInt64), 1},
		{Float(0.5), Float(0.25), 1},
	}
	for _, c := range cases {
		cmp, ok := Compare(c.a, c.b)
		require.True(t, ok, "%v vs %v", c.a, c.b)
		require.Equal(t, c.cmp, cmp, "%v vs %v", c.a, c.b)
	}

	_, ok := Compare(Integer(1), Float(math.NaN()))
	require.False(t, ok)
	_, ok = Compare(Float(math.NaN()), Float(1))
	require.False(t, ok)
	_, ok = Compare(String("1"), Integer(1))
	require.False(t, ok)
}

func TestKinds(t *testing.T) {
	require.Equal(t, "int", KindName(Integer(1)))
	require.Equal(t, "float", KindName(Float(1)))
	require.Equal(t, "str", KindName(String("")))
	require.Equal(t, "bool", KindName(Bool(true)))
	require.Equal(t, "None", KindName(nil))
	require.True(t, IsNumber(Float(1)))
	require.False(t, IsNumber(Bool(true)))
	require.True(t, IsVoid(Void))

	f, ok := ToFloat(Integer(3))
	require.True(t, ok)
	require.Equal(t, 3.0, f)
	_, ok = ToFloat(String("3"))
	require.False(t, ok)
}

func TestEnvironment(t *testing.T) {
	env := NewEnvironment()
	require.Equal(t, 0, env.Len())

	_, ok := env.Lookup("x")
	require.False(t, ok)

	env.Define("x", Integer(1))
	env.Define("a", String("s"))
	env.Define("x", Float(2))

	v, ok := env.Lookup("x")
	require.True(t, ok)
	require.Equal(t, Float(2), v)
	_, ok = env.Lookup("a")
	require.True(t, ok)
	require.Equal(t, []string{"a", "x"}, env.Keys())
	require.Equal(t, 2, env.Len())
}
