package json

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/mfeurer/smacread/token"
)

func decodeString(t *testing.T, input string) []token.Token {
	t.Helper()
	acc := token.NewAccumulatorStream()
	err := NewDecoder(strings.NewReader(input)).Produce(acc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return acc.GetTokens()
}

func tokenWithBytes(tp token.ScalarType, bytes string) *token.Scalar {
	return token.NewScalar(tp, []byte(bytes))
}

func assertTokensEqual(t *testing.T, got, expected []token.Token) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("expected %d tokens, got %d (%v)", len(expected), len(got), got)
	}
	for i, xtok := range expected {
		switch xv := xtok.(type) {
		case *token.Scalar:
			gv, ok := got[i].(*token.Scalar)
			if !ok || !gv.Equal(xv) {
				t.Errorf("token %d: expected %s, got %s", i, xtok, got[i])
			}
		default:
			if got[i].String() != xtok.String() {
				t.Errorf("token %d: expected %s, got %s", i, xtok, got[i])
			}
		}
	}
}

func TestDecoderSimpleValues(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []token.Token
	}{
		{
			name:     "true",
			input:    "true",
			expected: []token.Token{token.TrueScalar},
		},
		{
			name:     "false",
			input:    "false",
			expected: []token.Token{token.FalseScalar},
		},
		{
			name:     "null",
			input:    "null",
			expected: []token.Token{token.NullScalar},
		},
		{
			name:     "integer",
			input:    "42",
			expected: []token.Token{tokenWithBytes(token.Number, "42")},
		},
		{
			name:     "negative integer",
			input:    "-123",
			expected: []token.Token{tokenWithBytes(token.Number, "-123")},
		},
		{
			name:     "float",
			input:    "3.14",
			expected: []token.Token{tokenWithBytes(token.Number, "3.14")},
		},
		{
			name:     "scientific notation",
			input:    "1.5e10",
			expected: []token.Token{tokenWithBytes(token.Number, "1.5e10")},
		},
		{
			name:     "simple string",
			input:    `"hello"`,
			expected: []token.Token{tokenWithBytes(token.String, `"hello"`)},
		},
		{
			name:     "empty string",
			input:    `""`,
			expected: []token.Token{tokenWithBytes(token.String, `""`)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := decodeString(t, tt.input)
			assertTokensEqual(t, tokens, tt.expected)
		})
	}
}

func TestDecoderComposites(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []token.Token
	}{
		{
			name:     "empty array",
			input:    "[]",
			expected: []token.Token{&token.StartArray{}, &token.EndArray{}},
		},
		{
			name:     "empty object",
			input:    "{}",
			expected: []token.Token{&token.StartObject{}, &token.EndObject{}},
		},
		{
			name:  "array of numbers",
			input: "[1, 2, 3]",
			expected: []token.Token{
				&token.StartArray{},
				tokenWithBytes(token.Number, "1"),
				tokenWithBytes(token.Number, "2"),
				tokenWithBytes(token.Number, "3"),
				&token.EndArray{},
			},
		},
		{
			name:  "object with values",
			input: `{"a": 1, "b": [true, null]}`,
			expected: []token.Token{
				&token.StartObject{},
				tokenWithBytes(token.String, `"a"`),
				tokenWithBytes(token.Number, "1"),
				tokenWithBytes(token.String, `"b"`),
				&token.StartArray{},
				token.TrueScalar,
				token.NullScalar,
				&token.EndArray{},
				&token.EndObject{},
			},
		},
		{
			name:  "nested objects",
			input: `{"outer": {"inner": "value"}}`,
			expected: []token.Token{
				&token.StartObject{},
				tokenWithBytes(token.String, `"outer"`),
				&token.StartObject{},
				tokenWithBytes(token.String, `"inner"`),
				tokenWithBytes(token.String, `"value"`),
				&token.EndObject{},
				&token.EndObject{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := decodeString(t, tt.input)
			assertTokensEqual(t, tokens, tt.expected)
		})
	}
}

func TestDecoderMultipleDocuments(t *testing.T) {
	tokens := decodeString(t, "{\"a\": 1}\n\n  {\"b\": 2}\n")
	expected := []token.Token{
		&token.StartObject{},
		tokenWithBytes(token.String, `"a"`),
		tokenWithBytes(token.Number, "1"),
		&token.EndObject{},
		&token.StartObject{},
		tokenWithBytes(token.String, `"b"`),
		tokenWithBytes(token.Number, "2"),
		&token.EndObject{},
	}
	assertTokensEqual(t, tokens, expected)
}

func TestDecoderObjectKeysAreMarked(t *testing.T) {
	tokens := decodeString(t, `{"k": "v"}`)
	key, ok := tokens[1].(*token.Scalar)
	if !ok || !key.IsKey() {
		t.Errorf("expected key scalar, got %s", tokens[1])
	}
	val, ok := tokens[2].(*token.Scalar)
	if !ok || val.IsKey() {
		t.Errorf("expected non-key scalar, got %s", tokens[2])
	}
}

// Truncated inputs are valid prefixes of a JSON value; the decoder must
// report them as *TruncatedError, distinct from syntax errors.
func TestDecoderTruncatedInput(t *testing.T) {
	tests := []string{
		`{`,
		`{"a"`,
		`{"a":`,
		`{"a": 1`,
		`{"a": 1,`,
		`[`,
		`[1, 2`,
		`"unterminated`,
		`"esc\`,
		`tru`,
		`-`,
		`12.`,
		`1e`,
		`1e+`,
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			err := NewDecoder(strings.NewReader(input)).Produce(token.NewAccumulatorStream())
			var truncErr *TruncatedError
			if !errors.As(err, &truncErr) {
				t.Fatalf("expected *TruncatedError, got %v", err)
			}
			if !errors.Is(err, io.ErrUnexpectedEOF) {
				t.Fatalf("expected error to match io.ErrUnexpectedEOF")
			}
		})
	}
}

func TestDecoderSyntaxErrors(t *testing.T) {
	tests := []string{
		`{1: 2}`,
		`{"a" 1}`,
		`[1; 2]`,
		`tree`,
		`nul!`,
		`01x`,
		`12.x`,
		`1ex`,
		`"bad \q escape"`,
		`not-json`,
		`,`,
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			err := NewDecoder(strings.NewReader(input)).Produce(token.NewAccumulatorStream())
			var synErr *SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("expected *SyntaxError, got %v", err)
			}
			if errors.Is(err, io.ErrUnexpectedEOF) {
				t.Fatalf("syntax error must not match io.ErrUnexpectedEOF")
			}
		})
	}
}

func TestDecoderSyntaxErrorPosition(t *testing.T) {
	err := NewDecoder(strings.NewReader("{\"a\": 1,\n :}")).Produce(token.NewAccumulatorStream())
	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("expected *SyntaxError, got %v", err)
	}
	if synErr.Pos.Line != 1 {
		t.Errorf("expected error on line 1, got line %d", synErr.Pos.Line)
	}
	if !strings.Contains(err.Error(), "L2") {
		t.Errorf("expected 1-based line in message, got %q", err.Error())
	}
}

// The decoded tokens must not depend on the chunk size.
func TestDecoderChunkSizeInvariance(t *testing.T) {
	input := `{"a": [1, 2.5, "x"], "b": {"c": null}} true "tail"`
	reference := decodeString(t, input)
	for chunkSize := 1; chunkSize <= len(input); chunkSize++ {
		acc := token.NewAccumulatorStream()
		err := NewDecoderSize(strings.NewReader(input), chunkSize).Produce(acc)
		if err != nil {
			t.Fatalf("chunk size %d: unexpected error: %v", chunkSize, err)
		}
		assertTokensEqual(t, acc.GetTokens(), reference)
	}
}

func TestDecoderEmptyInput(t *testing.T) {
	for _, input := range []string{"", "  \n\t  "} {
		acc := token.NewAccumulatorStream()
		err := NewDecoder(strings.NewReader(input)).Produce(acc)
		if err != nil {
			t.Fatalf("input %q: unexpected error: %v", input, err)
		}
		if len(acc.GetTokens()) != 0 {
			t.Fatalf("input %q: expected no tokens, got %d", input, len(acc.GetTokens()))
		}
	}
}
