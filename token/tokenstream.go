package token

// A ReadStream is a source of tokens, returning nil when exhausted.
type ReadStream interface {
	Next() Token
}

// A WriteStream is a sink of tokens.
type WriteStream interface {
	Put(Token)
}

// SliceReadStream reads tokens off a slice.
type SliceReadStream struct {
	toks []Token
}

var _ ReadStream = &SliceReadStream{}

func NewSliceReadStream(toks []Token) *SliceReadStream {
	return &SliceReadStream{toks: toks}
}

func (r *SliceReadStream) Next() (tok Token) {
	if len(r.toks) > 0 {
		tok = r.toks[0]
		r.toks = r.toks[1:]
	}
	return
}

// AccumulatorStream collects written tokens into a slice.
type AccumulatorStream struct {
	toks []Token
}

var _ WriteStream = &AccumulatorStream{}

func NewAccumulatorStream() *AccumulatorStream {
	return &AccumulatorStream{}
}

func (w *AccumulatorStream) Put(tok Token) {
	w.toks = append(w.toks, tok)
}

func (w *AccumulatorStream) GetTokens() []Token {
	return w.toks
}
