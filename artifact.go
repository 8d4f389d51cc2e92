package smacread

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// OpenArtifact opens a SMAC output file for sequential reading,
// transparently decompressing artifacts with a ".gz" suffix.
func OpenArtifact(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &gzipArtifact{zr: zr, f: f}, nil
}

type gzipArtifact struct {
	zr *gzip.Reader
	f  *os.File
}

func (g *gzipArtifact) Read(p []byte) (int, error) {
	return g.zr.Read(p)
}

func (g *gzipArtifact) Close() error {
	err := g.zr.Close()
	if cerr := g.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// lineScanner wraps an artifact in a line scanner with a buffer large enough
// for long configuration lines.
func lineScanner(in io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return sc
}

func decorate(err error, path string) error {
	return fmt.Errorf("%s: %w", path, err)
}
