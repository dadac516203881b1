package textio

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestNewReader(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "file with BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("def main():")...),
			expected: "def main():",
		},
		{
			name:     "file without BOM",
			input:    []byte("def main():"),
			expected: "def main():",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "only BOM",
			input:    []byte{0xEF, 0xBB, 0xBF},
			expected: "",
		},
		{
			name:     "decomposed accent composed",
			input:    []byte("Nu\u0301meros"),
			expected: "N\u00fameros",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(NewReader(bytes.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.expected {
				t.Errorf("got %q, want %q", string(got), tt.expected)
			}
		})
	}
}

func TestReadAll(t *testing.T) {
	text, err := ReadAll(strings.NewReader("\xEF\xBB\xBFx = 1\r\nprint(x)\r\n"), 1024)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if text != "x = 1\nprint(x)\n" {
		t.Errorf("ReadAll() = %q", text)
	}
}

func TestReadAll_TooLarge(t *testing.T) {
	_, err := ReadAll(strings.NewReader(strings.Repeat("a", 11)), 10)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}

	if _, err := ReadAll(strings.NewReader(strings.Repeat("a", 10)), 10); err != nil {
		t.Errorf("input at the limit should pass: %v", err)
	}
}

func TestReadAll_Empty(t *testing.T) {
	for _, input := range []string{"", "   \n\t", "\xEF\xBB\xBF"} {
		if _, err := ReadAll(strings.NewReader(input), 0); !errors.Is(err, ErrEmpty) {
			t.Errorf("ReadAll(%q) error = %v, want ErrEmpty", input, err)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"invalid byte replaced", "he\x80lo", "he?lo"},
		{"crlf", "a\r\nb", "a\nb"},
		{"lone cr", "a\rb", "a\nb"},
		{"nfc", "Li\u0301nea", "L\u00ednea"},
		{"bom", "\ufeffhola", "hola"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
