package smacread

import (
	"errors"
	"io"

	json "github.com/mfeurer/smacread/encoding/json"
	"github.com/mfeurer/smacread/iterator"
	"github.com/mfeurer/smacread/token"
)

// A DocumentParser extracts successive whole JSON values from input that
// concatenates many values back-to-back, separated only by optional
// whitespace, without knowing value boundaries in advance and without
// loading the whole input into memory.  This is the format of the
// live-rundata-xx.json files written by SMAC.
//
// It follows the bufio.Scanner pull model:
//
//	p := smacread.NewDocumentParser(f)
//	for p.Scan() {
//		doc := p.Value()
//		...
//	}
//	if err := p.Err(); err != nil {
//		...
//	}
//
// Values are produced in input order, each one materialized as nil, bool,
// float64, string, []any or map[string]any.  Input is pulled one chunk at a
// time, only when the next value needs more bytes; memory usage is bounded
// by the largest single value plus one chunk.  A DocumentParser is one-pass
// and not restartable, and must not be used from multiple goroutines.
type DocumentParser struct {
	dec *json.Decoder

	// FailOnTruncated makes Scan report an error when the input ends in
	// the middle of a value.  By default the partial tail is dropped and
	// the sequence ends cleanly, mirroring SMAC's own best-effort handling
	// of a log cut short mid-write.
	FailOnTruncated bool

	value any
	err   error
	done  bool
}

// NewDocumentParser returns a DocumentParser reading from r with the default
// chunk size.
func NewDocumentParser(r io.Reader) *DocumentParser {
	return &DocumentParser{dec: json.NewDecoder(r)}
}

// NewDocumentParserSize is like NewDocumentParser but pulls input in chunks
// of at most chunkSize bytes.  It panics if chunkSize is not positive.
func NewDocumentParserSize(r io.Reader, chunkSize int) *DocumentParser {
	return &DocumentParser{dec: json.NewDecoderSize(r, chunkSize)}
}

// Scan advances to the next JSON value in the input, reporting whether there
// is one.  It returns false at the end of input or on the first error, after
// which Err tells the two cases apart.
func (p *DocumentParser) Scan() bool {
	if p.done || p.err != nil {
		return false
	}
	more, err := p.dec.More()
	if err != nil {
		p.err = err
		return false
	}
	if !more {
		p.done = true
		return false
	}
	acc := token.NewAccumulatorStream()
	if err := p.dec.ParseValue(acc); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) && !p.FailOnTruncated {
			// Partial tail: drop it and end the sequence.
			p.done = true
			return false
		}
		p.err = err
		return false
	}
	it := iterator.New(token.NewSliceReadStream(acc.GetTokens()))
	it.Advance()
	p.value = it.CurrentValue().ToGo()
	return true
}

// Value returns the last value produced by a successful Scan.
func (p *DocumentParser) Value() any {
	return p.value
}

// Err returns the first error encountered by Scan, nil if the input ended
// cleanly.
func (p *DocumentParser) Err() error {
	return p.err
}

// DecodeDocuments reads all JSON values from r into a slice.
func DecodeDocuments(r io.Reader) ([]any, error) {
	p := NewDocumentParser(r)
	docs := []any{}
	for p.Scan() {
		docs = append(docs, p.Value())
	}
	return docs, p.Err()
}

// ReadLiveRunData reads all run records from a live-rundata-xx.json file.
func ReadLiveRunData(path string) ([]any, error) {
	in, err := OpenArtifact(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	docs, err := DecodeDocuments(in)
	if err != nil {
		return nil, decorate(err, path)
	}
	return docs, nil
}
