// Package story defines the in-memory representation of a branching-narrative
// document: tagged values, namespaced state, positions, sections, and the
// authored line tree a Story is built from.
package story

import "strconv"

// Kind tags the variant held by a [Value].
type Kind int

const (
	KindNone Kind = iota
	KindBool
	KindNumber
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a tagged scalar: None, Bool, Number (float64), or String. Only one
// of the payload fields is meaningful, selected by Kind.
type Value struct {
	Kind Kind
	Bool bool
	Num  float64
	Str  string
}

// None is the zero Value.
var None = Value{}

// Boolean constructs a Bool value.
func Boolean(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Number constructs a Number value.
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// String constructs a String value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// SameType reports whether v and o are both Bool, both Number, or both
// String. None is same-type with nothing, including another None.
func (v Value) SameType(o Value) bool {
	if v.Kind == KindNone || o.Kind == KindNone {
		return false
	}

	return v.Kind == o.Kind
}

// Native unwraps v into the underlying Go value expr-lang operates on
// natively: nil, bool, float64, or string.
func (v Value) Native() any {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindNumber:
		return v.Num
	case KindString:
		return v.Str
	default:
		return nil
	}
}

// FromNative wraps a Go value produced by expr-lang back into a Value.
func FromNative(v any) Value {
	switch n := v.(type) {
	case nil:
		return None
	case bool:
		return Boolean(n)
	case float64:
		return Number(n)
	case int:
		return Number(float64(n))
	case string:
		return String(n)
	default:
		return None
	}
}

// String renders v for text substitution (§4.8) and log output.
func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindString:
		return v.Str
	default:
		return ""
	}
}

// Set implements the SET operator (§4.1): assignment between same-type
// values succeeds; assignment between disparate scalar types yields None.
func (v Value) Set(rhs Value) Value {
	if v.SameType(rhs) {
		return rhs
	}

	return None
}

// Add implements the ADD operator (§4.1). Per the reference implementation's
// AddAssign, ADD on anything but a (Number, Number) pair is a silent no-op:
// the receiver is returned unchanged, including when the receiver is None.
func (v Value) Add(rhs Value) Value {
	if v.Kind == KindNumber && rhs.Kind == KindNumber {
		return Number(v.Num + rhs.Num)
	}

	return v
}

// Sub implements the SUB operator (§4.1). Per the reference implementation's
// SubAssign, SUB on anything but a (Number, Number) pair sets the receiver to
// None -- unlike Add, this is NOT a no-op. This asymmetry between Add and Sub
// is intentional: it mirrors the original operator overloads verbatim rather
// than inventing a symmetric rule the reference never implements.
func (v Value) Sub(rhs Value) Value {
	if v.Kind == KindNumber && rhs.Kind == KindNumber {
		return Number(v.Num - rhs.Num)
	}

	return None
}
