package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/pontaoski/nodewalk/errors"
)

// UnmarshalJSON decodes a JSON array of nodes.
func UnmarshalJSON(data []byte) ([]Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.MalformedNode{Reason: err.Error()}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.MalformedNode{Reason: "trailing data after the node list"}
	}

	return Decode(raw)
}

// UnmarshalYAML decodes a YAML sequence of nodes with the same shape as the
// JSON wire format.
func UnmarshalYAML(data []byte) ([]Node, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.MalformedNode{Reason: err.Error()}
	}

	return Decode(raw)
}

// Decode converts generically decoded data (from encoding/json with
// UseNumber, or from yaml.v2) into nodes. Only the shape is checked; unknown
// type tags decode to Unsupported.
func Decode(raw interface{}) ([]Node, error) {
	return decodeBody(raw, "")
}

func malformed(path string, msg string, fmts ...interface{}) error {
	return errors.MalformedNode{
		Path:   path,
		Reason: fmt.Sprintf(msg, fmts...),
	}
}

func describe(raw interface{}) string {
	switch raw.(type) {
	case nil:
		return "null"
	case []interface{}:
		return "a list"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case map[string]interface{}, map[interface{}]interface{}:
		return "an object"
	default:
		return "a number"
	}
}

func asObject(raw interface{}) (map[string]interface{}, bool) {
	switch v := raw.(type) {
	case map[string]interface{}:
		return v, true
	case map[interface{}]interface{}:
		obj := make(map[string]interface{}, len(v))
		for key, val := range v {
			name, ok := key.(string)
			if !ok {
				return nil, false
			}
			obj[name] = val
		}
		return obj, true
	}

	return nil, false
}

func decodeBody(raw interface{}, path string) ([]Node, error) {
	list, ok := raw.([]interface{})
	if !ok {
		return nil, malformed(path, "expected a list of nodes, got %s", describe(raw))
	}

	nodes := make([]Node, 0, len(list))
	for idx, item := range list {
		itemPath := fmt.Sprintf("%s/%d", path, idx)
		obj, ok := asObject(item)
		if !ok {
			return nil, malformed(itemPath, "expected a node object, got %s", describe(item))
		}
		node, err := decodeNode(obj, itemPath)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}

	return nodes, nil
}

func field(obj map[string]interface{}, name string, path string) (interface{}, error) {
	val, ok := obj[name]
	if !ok {
		return nil, malformed(path, "missing field %q", name)
	}
	return val, nil
}

func stringField(obj map[string]interface{}, name string, path string) (string, error) {
	val, err := field(obj, name, path)
	if err != nil {
		return "", err
	}
	str, ok := val.(string)
	if !ok {
		return "", malformed(path+"/"+name, "expected a string, got %s", describe(val))
	}
	return str, nil
}

func expressionField(obj map[string]interface{}, name string, path string) (Expression, error) {
	val, err := field(obj, name, path)
	if err != nil {
		return nil, err
	}
	return decodeExpression(val, path+"/"+name)
}

func decodeNode(obj map[string]interface{}, path string) (Node, error) {
	rawType, present := obj["type"]
	typ, isString := rawType.(string)
	if present && !isString && rawType != nil {
		typ = fmt.Sprint(rawType)
	}

	switch typ {
	case TypeAssignment:
		name, err := stringField(obj, "value_1", path)
		if err != nil {
			return nil, err
		}
		value, err := expressionField(obj, "value_2", path)
		if err != nil {
			return nil, err
		}
		return Assignment{Name: name, Value: value}, nil
	case TypeBinaryOperation, TypeComparison:
		left, err := expressionField(obj, "left", path)
		if err != nil {
			return nil, err
		}
		op, err := stringField(obj, "op", path)
		if err != nil {
			return nil, err
		}
		right, err := expressionField(obj, "right", path)
		if err != nil {
			return nil, err
		}
		if typ == TypeComparison {
			return Comparison{Left: left, Op: Operator(op), Right: right}, nil
		}
		return BinaryOperation{Left: left, Op: Operator(op), Right: right}, nil
	case TypeFunctionCall:
		name, err := stringField(obj, "name", path)
		if err != nil {
			return nil, err
		}
		rawArgs, err := field(obj, "args", path)
		if err != nil {
			return nil, err
		}
		list, ok := rawArgs.([]interface{})
		if !ok {
			return nil, malformed(path+"/args", "expected a list, got %s", describe(rawArgs))
		}
		args := make([]Expression, 0, len(list))
		for idx, item := range list {
			arg, err := decodeExpression(item, fmt.Sprintf("%s/args/%d", path, idx))
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return FunctionCall{Name: name, Args: args}, nil
	case TypeWhileLoop:
		cond, err := expressionField(obj, "condition", path)
		if err != nil {
			return nil, err
		}
		rawBody, err := field(obj, "body", path)
		if err != nil {
			return nil, err
		}
		body, err := decodeBody(rawBody, path+"/body")
		if err != nil {
			return nil, err
		}
		return WhileLoop{Condition: cond, Body: body}, nil
	}

	return Unsupported{Tag: typ}, nil
}

func decodeExpression(raw interface{}, path string) (Expression, error) {
	switch v := raw.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Boolean(v), nil
	case string:
		return String(v), nil
	case json.Number:
		return decodeNumber(v.String(), path)
	case int:
		return Integer(v), nil
	case int64:
		return Integer(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, malformed(path, "integer literal %d out of range", v)
		}
		return Integer(v), nil
	case float64:
		return Float(v), nil
	case []interface{}:
		return nil, malformed(path, "a list is not an expression")
	}

	if obj, ok := asObject(raw); ok {
		return decodeNode(obj, path)
	}

	return nil, malformed(path, "unexpected value of type %T", raw)
}

func decodeNumber(lit string, path string) (Expression, error) {
	if !strings.ContainsAny(lit, ".eE") {
		i, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return nil, malformed(path, "integer literal %s out of range", lit)
		}
		return Integer(i), nil
	}

	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, malformed(path, "bad number literal %s", lit)
	}
	return Float(f), nil
}

type wireAssignment struct {
	Type   string      `json:"type" yaml:"type"`
	Value1 string      `json:"value_1" yaml:"value_1"`
	Value2 interface{} `json:"value_2" yaml:"value_2"`
}

type wireOperation struct {
	Type  string      `json:"type" yaml:"type"`
	Left  interface{} `json:"left" yaml:"left"`
	Op    string      `json:"op" yaml:"op"`
	Right interface{} `json:"right" yaml:"right"`
}

type wireCall struct {
	Type string        `json:"type" yaml:"type"`
	Name string        `json:"name" yaml:"name"`
	Args []interface{} `json:"args" yaml:"args"`
}

type wireLoop struct {
	Type      string        `json:"type" yaml:"type"`
	Condition interface{}   `json:"condition" yaml:"condition"`
	Body      []interface{} `json:"body" yaml:"body"`
}

type wireUnsupported struct {
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// wireFloat keeps integral floats distinguishable from integers in JSON.
type wireFloat float64

func (f wireFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil, fmt.Errorf("float literal %v has no JSON representation", v)
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return []byte(s), nil
}

func (f wireFloat) MarshalYAML() (interface{}, error) {
	return float64(f), nil
}

func toWire(e Expression) interface{} {
	switch v := e.(type) {
	case Integer:
		return int64(v)
	case Float:
		return wireFloat(v)
	case String:
		return string(v)
	case Boolean:
		return bool(v)
	case Null, nil:
		return nil
	case Assignment:
		return wireAssignment{Type: TypeAssignment, Value1: v.Name, Value2: toWire(v.Value)}
	case BinaryOperation:
		return wireOperation{Type: TypeBinaryOperation, Left: toWire(v.Left), Op: string(v.Op), Right: toWire(v.Right)}
	case Comparison:
		return wireOperation{Type: TypeComparison, Left: toWire(v.Left), Op: string(v.Op), Right: toWire(v.Right)}
	case FunctionCall:
		args := make([]interface{}, 0, len(v.Args))
		for _, arg := range v.Args {
			args = append(args, toWire(arg))
		}
		return wireCall{Type: TypeFunctionCall, Name: v.Name, Args: args}
	case WhileLoop:
		return wireLoop{Type: TypeWhileLoop, Condition: toWire(v.Condition), Body: bodyToWire(v.Body)}
	case Unsupported:
		return wireUnsupported{Type: v.Tag}
	}

	panic(fmt.Sprintf("unhandled expression %T", e))
}

func bodyToWire(nodes []Node) []interface{} {
	out := make([]interface{}, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, toWire(node))
	}
	return out
}

// MarshalJSON encodes nodes in the wire format, indented by four spaces.
func MarshalJSON(nodes []Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(bodyToWire(nodes)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func MarshalYAML(nodes []Node) ([]byte, error) {
	return yaml.Marshal(bodyToWire(nodes))
}
