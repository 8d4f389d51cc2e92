package iterator

import (
	"reflect"
	"strings"
	"testing"

	json "github.com/mfeurer/smacread/encoding/json"
	"github.com/mfeurer/smacread/token"
)

func iterateString(t *testing.T, input string) *Iterator {
	t.Helper()
	acc := token.NewAccumulatorStream()
	if err := json.NewDecoder(strings.NewReader(input)).Produce(acc); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	return New(token.NewSliceReadStream(acc.GetTokens()))
}

func TestIteratorToGo(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected any
	}{
		{"null", "null", nil},
		{"bool", "true", true},
		{"number", "-1.5e2", -150.0},
		{"string", `"hello"`, "hello"},
		{"empty array", "[]", []any{}},
		{"empty object", "{}", map[string]any{}},
		{
			name:     "array",
			input:    `[1, "two", false]`,
			expected: []any{1.0, "two", false},
		},
		{
			name:  "nested",
			input: `{"a": [1, {"b": null}], "c": "d"}`,
			expected: map[string]any{
				"a": []any{1.0, map[string]any{"b": nil}},
				"c": "d",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := iterateString(t, tt.input)
			if !it.Advance() {
				t.Fatal("expected a value")
			}
			got := it.CurrentValue().ToGo()
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %#v, got %#v", tt.expected, got)
			}
			if it.Advance() {
				t.Error("expected a single value")
			}
		})
	}
}

func TestIteratorMultipleValues(t *testing.T) {
	it := iterateString(t, `{"a": 1} [2] "three"`)
	var got []any
	for it.Advance() {
		got = append(got, it.CurrentValue().ToGo())
	}
	expected := []any{
		map[string]any{"a": 1.0},
		[]any{2.0},
		"three",
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %#v, got %#v", expected, got)
	}
}

// Advancing past a composite value without visiting it must discard the
// whole value, leaving the stream at the next one.
func TestIteratorDiscards(t *testing.T) {
	it := iterateString(t, `{"deep": {"deeper": [1, [2, 3]]}} 42`)
	if !it.Advance() {
		t.Fatal("expected first value")
	}
	if !it.Advance() {
		t.Fatal("expected second value")
	}
	s, ok := it.CurrentValue().(*Scalar)
	if !ok {
		t.Fatalf("expected scalar, got %T", it.CurrentValue())
	}
	if got := s.ToGo(); got != 42.0 {
		t.Errorf("expected 42, got %#v", got)
	}
}

func TestObjectKeyVal(t *testing.T) {
	it := iterateString(t, `{"x": 10, "y": 20}`)
	if !it.Advance() {
		t.Fatal("expected a value")
	}
	obj, ok := it.CurrentValue().(*Object)
	if !ok {
		t.Fatalf("expected object, got %T", it.CurrentValue())
	}
	keys := []string{}
	vals := []any{}
	for obj.Advance() {
		key, val := obj.CurrentKeyVal()
		keys = append(keys, key.ToString())
		vals = append(vals, val.ToGo())
	}
	if !reflect.DeepEqual(keys, []string{"x", "y"}) {
		t.Errorf("unexpected keys %v", keys)
	}
	if !reflect.DeepEqual(vals, []any{10.0, 20.0}) {
		t.Errorf("unexpected values %v", vals)
	}
	if !obj.Done() {
		t.Error("object should be done")
	}
}
