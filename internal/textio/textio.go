// Package textio normalizes text coming from uploads and the upstream
// analyzer before it is analyzed or parsed.
//
// Source files arrive from browsers and editors on every platform, so the
// same program can show up with a UTF-8 BOM, CRLF line endings, invalid
// bytes, or accented letters in decomposed form. The report parser matches
// accented labels (Números, Línea) byte for byte, so everything is brought
// to NFC first.
package textio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// ErrTooLarge is returned when input exceeds the configured limit.
	ErrTooLarge = errors.New("file too large")

	// ErrEmpty is returned when input has no non-whitespace content.
	ErrEmpty = errors.New("empty file")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// bomSkippingReader drops a leading UTF-8 BOM on the first read.
type bomSkippingReader struct {
	br      *bufio.Reader
	checked bool
}

func (r *bomSkippingReader) Read(p []byte) (int, error) {
	if !r.checked {
		r.checked = true
		if b, _ := r.br.Peek(len(utf8BOM)); bytes.Equal(b, utf8BOM) {
			_, _ = r.br.Discard(len(utf8BOM))
		}
	}
	return r.br.Read(p)
}

// NewReader wraps r so that a leading BOM is skipped and the stream is
// NFC-normalized.
func NewReader(r io.Reader) io.Reader {
	return norm.NFC.Reader(&bomSkippingReader{br: bufio.NewReader(r)})
}

// ReadAll reads at most limit bytes from r and returns the normalized text.
// A limit <= 0 disables the size check.
func ReadAll(r io.Reader, limit int64) (string, error) {
	src := r
	if limit > 0 {
		src = io.LimitReader(r, limit+1)
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return "", fmt.Errorf("%w: exceeds %d bytes", ErrTooLarge, limit)
	}

	text := Normalize(string(data))
	if strings.TrimSpace(text) == "" {
		return "", ErrEmpty
	}
	return text, nil
}

// Normalize applies the same cleanup as ReadAll to an in-memory string:
// BOM removal, '?' for invalid UTF-8, NFC composition and LF line endings.
func Normalize(s string) string {
	s = strings.TrimPrefix(s, string(utf8BOM))
	s = norm.NFC.String(strings.ToValidUTF8(s, "?"))
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
