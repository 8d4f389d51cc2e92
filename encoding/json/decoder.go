package json

import (
	"fmt"
	"io"

	"github.com/mfeurer/smacread/internal/scanner"
	"github.com/mfeurer/smacread/token"
)

// A Decoder reads JSON input incrementally and writes it to a token stream.
// The input may hold any number of JSON values separated by optional
// whitespace.
type Decoder struct {
	scanr *scanner.Scanner
}

// NewDecoder sets up a new Decoder instance to read from the given input.
func NewDecoder(in io.Reader) *Decoder {
	return &Decoder{scanr: scanner.NewScanner(in)}
}

// NewDecoderSize is like NewDecoder but reads the input in chunks of at most
// chunkSize bytes.
func NewDecoderSize(in io.Reader, chunkSize int) *Decoder {
	return &Decoder{scanr: scanner.NewScannerSize(in, chunkSize)}
}

// More skips whitespace and reports whether another value follows before the
// end of input.
func (d *Decoder) More() (bool, error) {
	b, err := d.scanr.SkipSpaceAndPeek()
	if err != nil {
		return false, err
	}
	return b != scanner.EOF, nil
}

// Produce reads JSON values and writes their tokens to out until it runs out
// of input.  It returns a *SyntaxError on invalid JSON and a *TruncatedError
// when the input ends in the middle of a value.
func (d *Decoder) Produce(out token.WriteStream) error {
	for {
		more, err := d.More()
		if err != nil || !more {
			return err
		}
		if err := d.ParseValue(out); err != nil {
			return err
		}
	}
}

// ParseValue reads a single JSON value and writes its tokens to out.
func (d *Decoder) ParseValue(out token.WriteStream) error {
	b, err := d.scanr.SkipSpaceAndPeek()
	if err != nil {
		return err
	}
	switch b {
	case scanner.EOF:
		return &TruncatedError{Pos: d.scanr.CurrentPos()}
	case '"':
		s, err := ParseString(d.scanr)
		if err != nil {
			return err
		}
		out.Put(s)
		return nil
	case '[':
		return d.parseArray(out)
	case '{':
		return d.parseObject(out)
	case 't':
		if err := checkBytes(d.scanr, trueBytes); err != nil {
			return err
		}
		out.Put(token.TrueScalar)
		return nil
	case 'f':
		if err := checkBytes(d.scanr, falseBytes); err != nil {
			return err
		}
		out.Put(token.FalseScalar)
		return nil
	case 'n':
		if err := checkBytes(d.scanr, nullBytes); err != nil {
			return err
		}
		out.Put(token.NullScalar)
		return nil
	default:
		if b == '-' || b >= '0' && b <= '9' {
			n, err := ParseNumber(d.scanr)
			if err != nil {
				return err
			}
			out.Put(n)
			return nil
		}
		return unexpectedByte(d.scanr, "invalid start of value")
	}
}

func (d *Decoder) parseArray(out token.WriteStream) error {
	if err := expectByte(d.scanr, '['); err != nil {
		return err
	}
	out.Put(&token.StartArray{})
	b, err := d.scanr.SkipSpaceAndPeek()
	if err != nil {
		return err
	}
	if b == ']' {
		d.scanr.Read()
		out.Put(&token.EndArray{})
		return nil
	}
	for {
		if err := d.ParseValue(out); err != nil {
			return err
		}
		b, err = d.scanr.SkipSpaceAndPeek()
		if err != nil {
			return err
		}
		switch b {
		case ']':
			d.scanr.Read()
			out.Put(&token.EndArray{})
			return nil
		case ',':
			d.scanr.Read()
		default:
			return unexpectedByte(d.scanr, "expected ']' or ',', got")
		}
	}
}

func (d *Decoder) parseObject(out token.WriteStream) error {
	if err := expectByte(d.scanr, '{'); err != nil {
		return err
	}
	out.Put(&token.StartObject{})
	b, err := d.scanr.SkipSpaceAndPeek()
	if err != nil {
		return err
	}
	if b == '}' {
		d.scanr.Read()
		out.Put(&token.EndObject{})
		return nil
	}
	for {
		key, err := ParseString(d.scanr)
		if err != nil {
			return err
		}
		key.TypeAndFlags |= token.KeyMask
		out.Put(key)
		b, err = d.scanr.SkipSpaceAndPeek()
		if err != nil {
			return err
		}
		if b != ':' {
			return unexpectedByte(d.scanr, "expected ':', got")
		}
		d.scanr.Read()
		if err := d.ParseValue(out); err != nil {
			return err
		}
		b, err = d.scanr.SkipSpaceAndPeek()
		if err != nil {
			return err
		}
		switch b {
		case '}':
			d.scanr.Read()
			out.Put(&token.EndObject{})
			return nil
		case ',':
			d.scanr.Read()
			if _, err = d.scanr.SkipSpaceAndPeek(); err != nil {
				return err
			}
		default:
			return unexpectedByte(d.scanr, "expected '}' or ',', got")
		}
	}
}

// ParseString parses a JSON string from the scanner, including the
// surrounding quotes.
func ParseString(scanr *scanner.Scanner) (*token.Scalar, error) {
	scanr.StartToken()
	if err := expectByte(scanr, '"'); err != nil {
		return nil, err
	}
	isUnescaped := true
	for {
		b, err := scanr.Read()
		if err != nil {
			return nil, err
		}
		switch b {
		case scanner.EOF:
			return nil, &TruncatedError{Pos: scanr.CurrentPos()}
		case '\\':
			isUnescaped = false
			x, err := scanr.Read()
			if err != nil {
				return nil, err
			}
			switch x {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				continue
			case 'u':
				for i := 0; i < 4; i++ {
					b, err = scanr.Read()
					if err != nil {
						return nil, err
					}
					if !isHex(b) {
						scanr.Back()
						return nil, unexpectedByte(scanr, "expected hex digit, got")
					}
				}
			case scanner.EOF:
				return nil, &TruncatedError{Pos: scanr.CurrentPos()}
			default:
				scanr.Back()
				return nil, unexpectedByte(scanr, "invalid escape character")
			}
		case '"':
			scalar := token.NewScalar(token.String, scanr.EndToken())
			if isUnescaped {
				scalar.TypeAndFlags |= token.UnescapedMask
			}
			return scalar, nil
		default:
			if scanner.IsCtrl(b) {
				scanr.Back()
				return nil, unexpectedByte(scanr, "invalid control character in string")
			}
		}
	}
}

// ParseNumber parses a JSON number from the scanner.
func ParseNumber(scanr *scanner.Scanner) (*token.Scalar, error) {
	scanr.StartToken()
	var n int
	b, err := scanr.Read()

	// Sign part
	if b == '-' {
		b, err = scanr.Read()
	}
	if err != nil {
		return nil, err
	}

	// Integer part
	if b == '0' {
		b, err = scanr.Read()
		if err != nil {
			return nil, err
		}
	} else if b >= '1' && b <= '9' {
		b, _, err = readDigits(scanr)
		if err != nil {
			return nil, err
		}
	} else {
		scanr.Back()
		return nil, unexpectedByte(scanr, "expected digit, got")
	}

	// Fraction part
	if b == '.' {
		b, n, err = readDigits(scanr)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			scanr.Back()
			return nil, unexpectedByte(scanr, "expected digit, got")
		}
	}

	// Exponent part
	if b == 'e' || b == 'E' {
		b, err = scanr.Peek()
		if err != nil {
			return nil, err
		}
		if b == '-' || b == '+' {
			scanr.Read()
		}
		_, n, err = readDigits(scanr)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			scanr.Back()
			return nil, unexpectedByte(scanr, "expected digit, got")
		}
	}
	scanr.Back()
	return token.NewScalar(token.Number, scanr.EndToken()), nil
}

func readDigits(scanr *scanner.Scanner) (byte, int, error) {
	var n int
	for {
		b, err := scanr.Read()
		if err != nil {
			return 0, n, err
		}
		if !scanner.IsDigit(b) {
			return b, n, nil
		}
		n++
	}
}

func expectByte(scanr *scanner.Scanner, xb byte) error {
	b, err := scanr.Read()
	if err != nil {
		return err
	}
	if b != xb {
		scanr.Back()
		return unexpectedByte(scanr, "expected %q, got", xb)
	}
	return nil
}

func checkBytes(scanr *scanner.Scanner, expected []byte) error {
	for _, xb := range expected {
		if err := expectByte(scanr, xb); err != nil {
			return err
		}
	}
	return nil
}

// unexpectedByte consumes the offending byte and turns it into an error: a
// *TruncatedError when the input ended, a *SyntaxError otherwise.
func unexpectedByte(scanr *scanner.Scanner, expected string, args ...interface{}) error {
	pos := scanr.CurrentPos()
	b, err := scanr.Read()
	if err != nil {
		return err
	}
	if b == scanner.EOF {
		return &TruncatedError{Pos: pos}
	}
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf("%s: %q", fmt.Sprintf(expected, args...), b)}
}

func isHex(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'f' || b >= 'A' && b <= 'F'
}

var (
	trueBytes  = []byte("true")
	falseBytes = []byte("false")
	nullBytes  = []byte("null")
)
