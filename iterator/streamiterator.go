// Package iterator provides value-level iteration over a stream of JSON
// tokens, turning the flat token sequence back into scalars, arrays and
// objects that can be walked or materialized into plain Go values.
package iterator

import (
	"fmt"

	"github.com/mfeurer/smacread/token"
)

// An Iterator walks the successive top-level values of a token stream.
type Iterator struct {
	stream       token.ReadStream
	currentValue Value
}

func New(stream token.ReadStream) *Iterator {
	return &Iterator{stream: stream}
}

// Advance moves to the next top-level value, reporting whether there is one.
func (i *Iterator) Advance() (ok bool) {
	if i.currentValue != nil {
		i.currentValue.Discard()
	}
	nextItem := i.stream.Next()
	if nextItem == nil {
		i.currentValue = nil
		return false
	}
	i.currentValue = nextStreamedValue(nextItem, i.stream)
	return true
}

func (i *Iterator) CurrentValue() Value {
	return i.currentValue
}

// A Value is a streamed JSON value: a *Scalar, *Array or *Object.
type Value interface {
	// Discard consumes the remainder of the value without keeping it.
	Discard()
	// ToGo materializes the value into plain Go data: nil, bool, float64,
	// string, []any or map[string]any.
	ToGo() any
}

type Scalar token.Scalar

var _ Value = &Scalar{}

func (s *Scalar) Discard() {}

func (s *Scalar) ToGo() any {
	return (*token.Scalar)(s).ToGo()
}

func (s *Scalar) Scalar() *token.Scalar {
	return (*token.Scalar)(s)
}

// A Collection is a Value with elements that can be visited one at a time.
type Collection interface {
	Value
	Advance() bool
	Done() bool
	CurrentValue() Value
}

type collectionBase struct {
	stream token.ReadStream

	started bool
	done    bool

	currentValue Value
}

func (c *collectionBase) Done() bool {
	return c.done
}

func (c *collectionBase) Discard() {
	if c.done {
		return
	}
	if c.started {
		c.currentValue.Discard()
	}
	c.done = true
	depth := 0
	for {
		item := c.stream.Next()
		if item == nil {
			return
		}
		switch item.(type) {
		case *token.StartArray, *token.StartObject:
			depth++
		case *token.EndArray, *token.EndObject:
			depth--
		}
		if depth < 0 {
			return
		}
	}
}

func (c *collectionBase) CurrentValue() Value {
	if c.done {
		panic("iterator done")
	}
	return c.currentValue
}

// An Object iterates over the key-value pairs of a JSON object.
type Object struct {
	collectionBase
	currentKey *token.Scalar
}

var _ Collection = &Object{}

func (o *Object) CurrentKeyVal() (*token.Scalar, Value) {
	if o.done {
		panic("iterator done")
	}
	return o.currentKey, o.currentValue
}

func (o *Object) Advance() bool {
	if o.done {
		return false
	}
	if o.started {
		o.currentValue.Discard()
	}
	item := o.stream.Next()
	if item == nil {
		panic("stream ended inside object - expected key")
	}
	switch v := item.(type) {
	case *token.Scalar:
		o.started = true
		o.currentKey = v
		item := o.stream.Next()
		if item == nil {
			panic("stream ended inside object - expected value")
		}
		o.currentValue = nextStreamedValue(item, o.stream)
		return true
	case *token.EndObject:
		o.done = true
		return false
	default:
		panic(fmt.Sprintf("invalid stream %#v", item))
	}
}

func (o *Object) ToGo() any {
	obj := make(map[string]any)
	for o.Advance() {
		key, value := o.CurrentKeyVal()
		obj[key.ToString()] = value.ToGo()
	}
	return obj
}

// An Array iterates over the elements of a JSON array.
type Array struct {
	collectionBase
}

var _ Collection = &Array{}

func (a *Array) Advance() bool {
	if a.done {
		return false
	}
	if a.started {
		a.currentValue.Discard()
	}
	item := a.stream.Next()
	if item == nil {
		panic("stream ended inside array")
	}
	switch item.(type) {
	case *token.EndArray:
		a.done = true
		return false
	default:
		a.started = true
		a.currentValue = nextStreamedValue(item, a.stream)
		return true
	}
}

func (a *Array) ToGo() any {
	arr := []any{}
	for a.Advance() {
		arr = append(arr, a.CurrentValue().ToGo())
	}
	return arr
}

func nextStreamedValue(firstItem token.Token, stream token.ReadStream) Value {
	switch v := firstItem.(type) {
	case *token.StartArray:
		return &Array{
			collectionBase: collectionBase{stream: stream},
		}
	case *token.StartObject:
		return &Object{
			collectionBase: collectionBase{stream: stream},
		}
	case *token.Scalar:
		return (*Scalar)(v)
	default:
		panic(fmt.Sprintf("invalid stream %#v", firstItem))
	}
}
