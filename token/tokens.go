package token

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// A Token is an item in a stream that encodes a JSON value.  For example the
// JSON value
//
//	{"id": 123, "tags": ["new"]}
//
// is represented by the stream of tokens (in pseudocode for clarity):
//
//	{        -> StartObject
//	"id":    -> Scalar("id", String, key)
//	123,     -> Scalar(123, Number)
//	"tags":  -> Scalar("tags", String, key)
//	[        -> StartArray
//	"new"    -> Scalar("new", String)
//	]        -> EndArray
//	}        -> EndObject
type Token interface {
	fmt.Stringer
}

// StartObject represents the start of a JSON object (introduced by '{').
type StartObject struct{}

func (s *StartObject) String() string {
	return "StartObject"
}

var _ Token = &StartObject{}

// EndObject represents the end of a JSON object (introduced by '}').
type EndObject struct{}

func (e *EndObject) String() string {
	return "EndObject"
}

var _ Token = &EndObject{}

// StartArray represents the start of a JSON array (introduced by '[').
type StartArray struct{}

func (s *StartArray) String() string {
	return "StartArray"
}

var _ Token = &StartArray{}

// EndArray represents the end of a JSON array (introduced by ']').
type EndArray struct{}

func (e *EndArray) String() string {
	return "EndArray"
}

var _ Token = &EndArray{}

// Scalar is the type used to represent all scalar JSON values, i.e. strings,
// numbers, booleans and null.
//
// The type is encoded in the TypeAndFlags field, while the Bytes field
// contains the literal representation of the value as found in the input.
type Scalar struct {

	// Literal representation of the value, e.g.
	// - the string "foo" is represented as []byte("\"foo\"")
	// - the number 123.5 is represented as []byte("123.5")
	// - the boolean true is represented as []byte("true")
	Bytes []byte

	// Type of the value plus flags
	TypeAndFlags uint8
}

func NewScalar(tp ScalarType, bytes []byte) *Scalar {
	return &Scalar{
		Bytes:        bytes,
		TypeAndFlags: uint8(tp),
	}
}

func NewKey(tp ScalarType, bytes []byte) *Scalar {
	return &Scalar{
		Bytes:        bytes,
		TypeAndFlags: uint8(tp) | KeyMask,
	}
}

func (s *Scalar) Type() ScalarType {
	return ScalarType(s.TypeAndFlags & TypeMask)
}

func (s *Scalar) IsKey() bool {
	return KeyMask&s.TypeAndFlags != 0
}

func (s *Scalar) IsUnescaped() bool {
	return UnescapedMask&s.TypeAndFlags != 0
}

func (s *Scalar) String() string {
	return fmt.Sprintf("Scalar(%s)", s.Bytes)
}

func (s *Scalar) Equal(t *Scalar) bool {
	if s == nil || t == nil {
		return false
	}
	if s.Type() != t.Type() {
		return false
	}
	switch s.Type() {
	case Null:
		return true
	case Boolean:
		// The bytes are "true" or "false", comparing the first is enough
		return s.Bytes[0] == t.Bytes[0]
	case String, Number:
		if bytes.Equal(s.Bytes, t.Bytes) {
			return true
		}
	default:
		panic("invalid scalar type")
	}
	// Fall back to slower conversion
	return parseLiteralBytes(s.Bytes) == parseLiteralBytes(t.Bytes)
}

// ToString returns the Go string a String scalar represents.  It panics if
// the scalar is not a string.
func (s *Scalar) ToString() string {
	if s.IsUnescaped() {
		return string(s.Bytes[1 : len(s.Bytes)-1])
	}
	return parseLiteralBytes(s.Bytes).(string)
}

// ToGo returns the plain Go value the scalar represents: nil, bool, float64
// or string.
func (s *Scalar) ToGo() any {
	if s.IsUnescaped() {
		return string(s.Bytes[1 : len(s.Bytes)-1])
	}
	return parseLiteralBytes(s.Bytes)
}

func parseLiteralBytes(b []byte) json.Token {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		panic(err)
	}
	return tok
}

// ScalarType encodes the four possible JSON scalar types.
type ScalarType uint8

const (
	Null               = 0x0 // the type of JSON null
	Boolean            = 0x1 // a JSON boolean
	Number             = 0x2 // a JSON number
	String  ScalarType = 0x3 // a JSON string
)

const (
	TypeMask      = 0b00011
	KeyMask       = 0b00100
	UnescapedMask = 0b01000
)

var (
	TrueScalar  = NewScalar(Boolean, []byte("true"))
	FalseScalar = NewScalar(Boolean, []byte("false"))
	NullScalar  = NewScalar(Null, []byte("null"))
)
