package raw

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the dynamic type held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// TypeName returns the type name used in user-facing messages. Model authors
// know these from the scripting tools they write configuration with.
func (k Kind) TypeName() string {
	switch k {
	case KindNull:
		return "NoneType"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "str"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "dict"
	default:
		return "object"
	}
}

// Field is a single key/value pair of a map Value. Maps keep the order in
// which keys appeared in the source document.
type Field struct {
	Key   string
	Value Value
}

// Value is one node of a loosely-typed configuration tree.
type Value struct {
	kind   Kind
	i      int
	f      float64
	s      string
	b      bool
	list   []Value
	fields []Field
}

// Null is the zero Value.
var Null = Value{}

func Int(i int) Value { return Value{kind: KindInt, i: i} }
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }
func String(s string) Value { return Value{kind: KindString, s: s} }
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }
func KV(key string, v Value) Field { return Field{Key: key, Value: v} }

// List builds a list Value. The items are copied.
func List(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindList, list: cp}
}

// Map builds a map Value from ordered fields. A later field with a key that
// was already seen replaces the earlier value but keeps its position.
func Map(fields ...Field) Value {
	cp := make([]Field, 0, len(fields))
	index := make(map[string]int, len(fields))
	for _, f := range fields {
		if i, ok := index[f.Key]; ok {
			cp[i].Value = f.Value
			continue
		}
		index[f.Key] = len(cp)
		cp = append(cp, f)
	}
	return Value{kind: KindMap, fields: cp}
}

// Ints builds a list of integer Values.
func Ints(items ...int) Value {
	vals := make([]Value, len(items))
	for i, n := range items {
		vals[i] = Int(n)
	}
	return Value{kind: KindList, list: vals}
}

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsInt() (int, bool) { return v.i, v.kind == KindInt }
func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// Items returns a copy of the elements of a list Value, or nil.
func (v Value) Items() []Value {
	if v.kind != KindList {
		return nil
	}
	cp := make([]Value, len(v.list))
	copy(cp, v.list)
	return cp
}

// Len returns the number of list items or map fields.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindMap:
		return len(v.fields)
	default:
		return 0
	}
}

// Fields returns a copy of the fields of a map Value in document order.
func (v Value) Fields() []Field {
	if v.kind != KindMap {
		return nil
	}
	cp := make([]Field, len(v.fields))
	copy(cp, v.fields)
	return cp
}

// Keys returns the map keys in document order.
func (v Value) Keys() []string {
	if v.kind != KindMap {
		return nil
	}
	keys := make([]string, len(v.fields))
	for i, f := range v.fields {
		keys[i] = f.Key
	}
	return keys
}

// Get looks up a key of a map Value.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindMap {
		return Null, false
	}
	for _, f := range v.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Null, false
}

// Has reports whether a map Value has the given key.
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Equal reports deep equality. Map comparison ignores field order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindBool:
		return v.b == o.b
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.fields) != len(o.fields) {
			return false
		}
		for _, f := range v.fields {
			other, ok := o.Get(f.Key)
			if !ok || !f.Value.Equal(other) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders the value the way it appears in messages: strings verbatim,
// lists in brackets, maps in braces.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "None"
	case KindInt:
		return strconv.Itoa(v.i)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.quoted()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		parts := make([]string, len(v.fields))
		for i, f := range v.fields {
			parts[i] = strconv.Quote(f.Key) + ": " + f.Value.quoted()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return ""
}

func (v Value) quoted() string {
	if v.kind == KindString {
		return "'" + v.s + "'"
	}
	return v.String()
}

// Of converts plain Go values into a Value. It accepts nil, Value, the
// integer and float types, string, bool, slices of those and
// map[string]any (keys sorted). It panics on anything else, since callers
// pass literals.
func Of(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null
	case Value:
		return t
	case int:
		return Int(t)
	case int32:
		return Int(int(t))
	case int64:
		return Int(int(t))
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case []int:
		return Ints(t...)
	case []string:
		vals := make([]Value, len(t))
		for i, s := range t {
			vals[i] = String(s)
		}
		return Value{kind: KindList, list: vals}
	case []Value:
		return List(t...)
	case []any:
		vals := make([]Value, len(t))
		for i, item := range t {
			vals[i] = Of(item)
		}
		return Value{kind: KindList, list: vals}
	case []Field:
		return Map(t...)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]Field, len(keys))
		for i, k := range keys {
			fields[i] = KV(k, Of(t[k]))
		}
		return Map(fields...)
	default:
		panic(fmt.Sprintf("raw: unsupported value of type %T", x))
	}
}
