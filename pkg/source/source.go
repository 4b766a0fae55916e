// Package source loads constitution text from plain text, Markdown or PDF
// files.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dslipak/pdf"
)

// DefaultMaxFileSize is the largest input Load accepts.
const DefaultMaxFileSize = 50 * 1024 * 1024

var (
	// ErrUnsupportedFormat is returned for a file extension with no reader.
	ErrUnsupportedFormat = errors.New("unsupported input format")

	// ErrTooLarge is returned when an input exceeds the size limit.
	ErrTooLarge = errors.New("input exceeds size limit")
)

// Kind is the detected input type.
type Kind string

const (
	KindText    Kind = "text"
	KindPDF     Kind = "pdf"
	KindUnknown Kind = "unknown"
)

// KindOf returns the input type implied by the file extension. Files
// without an extension are read as text.
func KindOf(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case "", ".txt", ".text", ".md", ".markdown":
		return KindText
	case ".pdf":
		return KindPDF
	}
	return KindUnknown
}

// Loader reads input files.
type Loader struct {
	// MaxFileSize limits the size of an input file. Zero disables the
	// limit.
	MaxFileSize int64
}

// NewLoader creates a loader with the default size limit.
func NewLoader() *Loader {
	return &Loader{MaxFileSize: DefaultMaxFileSize}
}

// Load reads a file using the default loader.
func Load(path string) (string, error) {
	return NewLoader().Load(path)
}

// Load returns the text of the file at path. PDF files are reduced to their
// text layer.
func (l *Loader) Load(path string) (string, error) {
	kind := KindOf(path)
	if kind == KindUnknown {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("file not found: %w", err)
	}
	if l.MaxFileSize > 0 && info.Size() > l.MaxFileSize {
		return "", fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, path, info.Size())
	}

	switch kind {
	case KindPDF:
		return readPDF(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		return Read(f)
	}
}

// Read returns the text from r with a leading byte order mark removed.
func Read(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(bytes.TrimPrefix(data, []byte("\uFEFF"))), nil
}

func readPDF(path string) (string, error) {
	r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	text, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to read PDF text: %w", err)
	}
	return Read(text)
}
