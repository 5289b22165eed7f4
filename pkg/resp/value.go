package resp

import (
	"bytes"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	// KindInvalid is the zero Kind. It is never produced by the decoder and
	// cannot be encoded.
	KindInvalid Kind = iota
	KindNull
	KindString
	KindInteger
	KindError
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindError:
		return "error"
	case KindArray:
		return "array"
	default:
		return "invalid(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is a decoded frame: one of ByteString, Integer, ErrorMessage,
// Array or Null. The zero Value is invalid.
type Value struct {
	kind  Kind
	str   []byte
	num   int64
	elems []Value
}

// Null returns the Null value. Null is distinct from an empty ByteString.
func Null() Value {
	return Value{kind: KindNull}
}

// Bytes returns a ByteString holding b. A nil b is an empty ByteString,
// not Null.
func Bytes(b []byte) Value {
	return Value{kind: KindString, str: b}
}

// String returns a ByteString holding s.
func String(s string) Value {
	return Value{kind: KindString, str: []byte(s)}
}

// Int returns an Integer value.
func Int(n int64) Value {
	return Value{kind: KindInteger, num: n}
}

// Error returns an ErrorMessage value. msg must not contain a line
// terminator.
func Error(msg string) Value {
	return Value{kind: KindError, str: []byte(msg)}
}

// Array returns an Array of the given elements.
func Array(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindArray, elems: elems}
}

// Strings returns an Array of ByteStrings, the shape of every request.
func Strings(args ...string) Value {
	elems := make([]Value, len(args))
	for i, a := range args {
		elems[i] = String(a)
	}
	return Array(elems...)
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bytes returns the payload of a ByteString or the message of an error.
func (v Value) Bytes() []byte { return v.str }

// Str returns Bytes as a string.
func (v Value) Str() string { return string(v.str) }

// Int returns the integer held by v; zero for other kinds.
func (v Value) Int() int64 { return v.num }

// Err returns the message of an ErrorMessage; empty for other kinds.
func (v Value) Err() string {
	if v.kind != KindError {
		return ""
	}
	return string(v.str)
}

// Elems returns the elements of an Array.
func (v Value) Elems() []Value { return v.elems }

// Len returns the number of elements of an Array or the length of a
// ByteString.
func (v Value) Len() int {
	if v.kind == KindArray {
		return len(v.elems)
	}
	return len(v.str)
}

// Clone returns a deep copy of v that shares no memory with it.
func (v Value) Clone() Value {
	out := Value{kind: v.kind, num: v.num}
	if v.str != nil {
		out.str = bytes.Clone(v.str)
	}
	if v.elems != nil {
		out.elems = make([]Value, len(v.elems))
		for i, e := range v.elems {
			out.elems[i] = e.Clone()
		}
	}
	return out
}

// Equal reports whether v and o hold the same variant and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString, KindError:
		return bytes.Equal(v.str, o.str)
	case KindInteger:
		return v.num == o.num
	case KindArray:
		if len(v.elems) != len(o.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(o.elems[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// String renders v for logs and test failures.
func (v Value) String() string {
	var sb strings.Builder
	v.format(&sb)
	return sb.String()
}

func (v Value) format(sb *strings.Builder) {
	switch v.kind {
	case KindNull:
		sb.WriteString("nil")
	case KindString:
		sb.WriteString(strconv.Quote(string(v.str)))
	case KindInteger:
		sb.WriteString(strconv.FormatInt(v.num, 10))
	case KindError:
		sb.WriteString("error(")
		sb.WriteString(strconv.Quote(string(v.str)))
		sb.WriteString(")")
	case KindArray:
		sb.WriteByte('[')
		for i, e := range v.elems {
			if i > 0 {
				sb.WriteByte(' ')
			}
			e.format(sb)
		}
		sb.WriteByte(']')
	default:
		sb.WriteString("<invalid>")
	}
}
