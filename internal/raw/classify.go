package raw

import "strings"

// Class is the shape of a single configuration entry, decided once up front
// so validators can dispatch on it instead of probing types repeatedly.
type Class int

const (
	// ClassMalformed covers every shape no validator accepts (floats, bools,
	// maps, nulls).
	ClassMalformed Class = iota
	ClassInteger
	// ClassIntegerList is a list whose items are all integers, including the
	// empty list.
	ClassIntegerList
	// ClassRangeExpression is a string mentioning "range".
	ClassRangeExpression
	// ClassLabel is any other string.
	ClassLabel
	// ClassList is a list holding at least one non-integer item.
	ClassList
)

func (c Class) String() string {
	switch c {
	case ClassInteger:
		return "integer"
	case ClassIntegerList:
		return "integer list"
	case ClassRangeExpression:
		return "range expression"
	case ClassLabel:
		return "label"
	case ClassList:
		return "list"
	default:
		return "malformed"
	}
}

// Classify decides the Class of v.
func Classify(v Value) Class {
	switch v.kind {
	case KindInt:
		return ClassInteger
	case KindString:
		if strings.Contains(v.s, "range") {
			return ClassRangeExpression
		}
		return ClassLabel
	case KindList:
		for _, item := range v.list {
			if item.kind != KindInt {
				return ClassList
			}
		}
		return ClassIntegerList
	default:
		return ClassMalformed
	}
}

// SameKind reports whether all values share one Kind. Empty and
// single-element slices are trivially homogeneous.
func SameKind(values []Value) bool {
	for i := 1; i < len(values); i++ {
		if values[i].kind != values[0].kind {
			return false
		}
	}
	return true
}

// IntsOf returns the integers of an integer list Value.
func IntsOf(v Value) ([]int, bool) {
	if Classify(v) != ClassIntegerList {
		return nil, false
	}
	out := make([]int, len(v.list))
	for i, item := range v.list {
		out[i] = item.i
	}
	return out, true
}
