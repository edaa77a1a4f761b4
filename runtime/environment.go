package runtime

import (
	"sort"
)

// Environment is the single global scope of one interpretation run.
type Environment struct {
	values map[string]Value
}

func NewEnvironment() *Environment {
	return &Environment{
		values: make(map[string]Value),
	}
}

// Define inserts or overwrites a binding.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

func (e *Environment) Lookup(name string) (Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Keys returns the bound names in sorted order.
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (e *Environment) Len() int {
	return len(e.values)
}
