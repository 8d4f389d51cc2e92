package scanner

import (
	"io"
	"slices"
)

// Pos is a 0-based position in the input.
type Pos struct {
	Line int
	Col  int
}

// A Scanner reads bytes from a sequential source in chunks of a fixed size,
// keeping the not-yet-consumed bytes in a working buffer.  The buffer grows
// by appending chunks as they are needed and shrinks by discarding the
// consumed prefix, so memory usage is proportional to the largest recorded
// token plus one chunk.
//
// A chunk is only requested from the source when a byte is asked for and the
// buffer is exhausted, so the Scanner never reads ahead of what its caller
// needs.
type Scanner struct {
	src   io.Reader
	chunk []byte

	// Working buffer.  buf[pos:] is the unconsumed input.
	buf []byte
	pos int

	// Start of the currently recorded token in buf, -1 when not recording.
	tokenStart int

	// Line and column of the current and previous position.  prev.Line is
	// -1 when going back is not possible.
	cur, prev Pos

	err error

	// Number of EOFs read past the end of input, so that Back works after
	// the EOF sentinel has been returned.
	eofCount int
}

// NewScanner returns a Scanner reading from src with the default chunk size.
func NewScanner(src io.Reader) *Scanner {
	return NewScannerSize(src, DefaultChunkSize)
}

// NewScannerSize returns a Scanner reading from src in chunks of at most
// chunkSize bytes.  It panics if chunkSize is not positive.
func NewScannerSize(src io.Reader, chunkSize int) *Scanner {
	if chunkSize <= 0 {
		panic("scanner: chunk size must be positive")
	}
	return &Scanner{
		src:        src,
		chunk:      make([]byte, chunkSize),
		tokenStart: -1,
		prev:       Pos{Line: -1},
	}
}

// fill appends one chunk from the source to the working buffer, first
// discarding the consumed prefix.  On end of input or failure s.err is set.
func (s *Scanner) fill() {
	if s.err != nil {
		return
	}
	s.discardConsumed()
	for i := maxConsecutiveEmptyReads; i > 0; i-- {
		n, err := s.src.Read(s.chunk)
		if n > 0 {
			s.buf = append(s.buf, s.chunk[:n]...)
		}
		if err != nil {
			s.err = err
			return
		}
		if n > 0 {
			return
		}
	}
	s.err = io.ErrNoProgress
}

// discardConsumed shifts out the part of the buffer that can no longer be
// reached, i.e. everything before the recorded token start and the one byte
// of lookback needed by Back.
func (s *Scanner) discardConsumed() {
	keep := s.pos - lookBackSize
	if s.tokenStart >= 0 && s.tokenStart < keep {
		keep = s.tokenStart
	}
	if keep <= 0 {
		return
	}
	n := copy(s.buf, s.buf[keep:])
	s.buf = s.buf[:n]
	s.pos -= keep
	if s.tokenStart >= 0 {
		s.tokenStart -= keep
	}
}

// Read consumes and returns the next byte.  At the end of input it returns
// the EOF sentinel with a nil error; a read failure is returned as is.
func (s *Scanner) Read() (byte, error) {
	if s.pos >= len(s.buf) {
		s.fill()
	}
	if s.pos < len(s.buf) {
		b := s.buf[s.pos]
		s.pos++
		s.prev = s.cur
		switch {
		case b == '\n':
			s.cur.Line++
			s.cur.Col = 0
		case b < 0xC0:
			// Last byte of a utf8-encoded codepoint
			s.cur.Col++
		}
		return b, nil
	}
	if s.err == io.EOF {
		s.eofCount++
		return EOF, nil
	}
	return 0, s.err
}

// Peek returns the next byte without consuming it.
func (s *Scanner) Peek() (byte, error) {
	if s.pos >= len(s.buf) {
		s.fill()
	}
	if s.pos < len(s.buf) {
		return s.buf[s.pos], nil
	}
	return s.atEnd()
}

// Back steps back by one byte.  It panics if there is no byte to step back
// over or if Back is called twice in a row.
func (s *Scanner) Back() {
	if s.eofCount > 0 {
		s.eofCount--
		return
	}
	if s.pos <= 0 || s.pos <= s.tokenStart {
		panic("cannot go back from start")
	}
	if s.prev.Line < 0 {
		panic("cannot go back twice")
	}
	s.pos--
	s.cur = s.prev
	s.prev.Line = -1
}

// CurrentPos returns the position of the next byte to be read.
func (s *Scanner) CurrentPos() Pos {
	return s.cur
}

// StartToken starts recording a token at the current position.  Recorded
// bytes are kept in the working buffer until EndToken is called.
func (s *Scanner) StartToken() Pos {
	if s.tokenStart >= 0 {
		panic("already recording a token")
	}
	s.tokenStart = s.pos
	return s.cur
}

// EndToken stops recording and returns a copy of the bytes read since the
// matching StartToken.
func (s *Scanner) EndToken() []byte {
	if s.tokenStart < 0 {
		panic("not recording a token")
	}
	tok := slices.Clone(s.buf[s.tokenStart:s.pos])
	s.tokenStart = -1
	return tok
}

// SkipSpaceAndPeek consumes ASCII whitespace and returns the first byte
// after it without consuming it.
func (s *Scanner) SkipSpaceAndPeek() (byte, error) {
	for {
		for s.pos < len(s.buf) {
			b := s.buf[s.pos]
			switch b {
			case '\n':
				s.cur.Line++
				s.cur.Col = 0
			case ' ', '\t', '\r':
				s.cur.Col++
			default:
				return b, nil
			}
			s.pos++
		}
		s.fill()
		if s.pos >= len(s.buf) {
			return s.atEnd()
		}
	}
}

func (s *Scanner) atEnd() (byte, error) {
	if s.err == io.EOF {
		return EOF, nil
	}
	return 0, s.err
}

const (
	lookBackSize             = 1
	maxConsecutiveEmptyReads = 100

	// DefaultChunkSize is the number of bytes requested from the source in
	// one read when no explicit chunk size is given.
	DefaultChunkSize = 2048
)

// EOF is a sentinel byte returned at the end of input.  0xFF cannot appear
// in a UTF-8 encoded stream of bytes.
const EOF byte = 0xFF
