package json

import (
	"fmt"
	"io"

	"github.com/mfeurer/smacread/internal/scanner"
)

// A SyntaxError reports input that cannot be part of any valid JSON value.
// It is fatal: reading more input cannot fix it.
type SyntaxError struct {
	Pos scanner.Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at L%d,C%d: %s", e.Pos.Line+1, e.Pos.Col+1, e.Msg)
}

// A TruncatedError reports input that ended in the middle of a JSON value,
// i.e. the input so far is a valid prefix of some value.  It matches
// errors.Is(err, io.ErrUnexpectedEOF).
type TruncatedError struct {
	Pos scanner.Pos
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("unexpected end of input at L%d,C%d", e.Pos.Line+1, e.Pos.Col+1)
}

func (e *TruncatedError) Unwrap() error {
	return io.ErrUnexpectedEOF
}
