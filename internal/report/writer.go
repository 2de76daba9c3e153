package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pierrec/lz4/v4"
)

// lz4Extension triggers transparent compression of the output file.
const lz4Extension = ".lz4"

// nopWriteCloser wraps stdout so callers can Close unconditionally.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// lz4WriteCloser closes the frame writer before the underlying file so the
// lz4 trailer is flushed.
type lz4WriteCloser struct {
	*lz4.Writer
	file *os.File
}

func (w *lz4WriteCloser) Close() error {
	if err := w.Writer.Close(); err != nil {
		_ = w.file.Close()

		return fmt.Errorf("close lz4 writer: %w", err)
	}

	if err := w.file.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}

	return nil
}

// Open returns the report output destination. An empty path means stdout;
// a path ending in .lz4 is compressed transparently.
func Open(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopWriteCloser{os.Stdout}, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}

	if strings.HasSuffix(strings.ToLower(path), lz4Extension) {
		return &lz4WriteCloser{Writer: lz4.NewWriter(file), file: file}, nil
	}

	return file, nil
}
