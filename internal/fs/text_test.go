package fs

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestIsTextFileDetectsUTF16LE(t *testing.T) {
	content := []byte{0xFF, 0xFE, 0x41, 0x00, 0x0D, 0x00, 0x0A, 0x00}
	if !IsTextFile(content) {
		t.Fatalf("expected UTF-16 LE content to be treated as text")
	}
}

func TestIsTextFileRejectsNUL(t *testing.T) {
	if IsTextFile([]byte{'a', 0x00, 'b'}) {
		t.Fatalf("expected NUL bytes to mark content as binary")
	}
}

func TestNormalizeTextContentUTF16LE(t *testing.T) {
	content := []byte{0xFF, 0xFE, 0x41, 0x00, 0x0D, 0x00, 0x0A, 0x00}
	got := NormalizeTextContent(content)
	want := "A\n"
	if got != want {
		t.Fatalf("NormalizeTextContent returned %q, want %q", got, want)
	}
}

func TestNormalizeTextContentUTF8BOMAndCR(t *testing.T) {
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("# T\r\nbody\rend")...)
	got := NormalizeTextContent(content)
	if got != "# T\nbody\nend" {
		t.Fatalf("NormalizeTextContent returned %q", got)
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"terminated", "a\nb\n", []string{"a\n", "b\n"}},
		{"unterminated tail", "a\nb", []string{"a\n", "b"}},
		{"blank lines kept", "a\n\n\nb\n", []string{"a\n", "\n", "\n", "b\n"}},
		{"only newline", "\n", []string{"\n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitLines(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("SplitLines(%q)=%q want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFileSourceLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte("# Title\r\n\r\ntext\r\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	src := NewFileSource(" " + path + " ")
	lines, err := src.Lines()
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	want := []string{"# Title\n", "\n", "text\n"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("Lines=%q want %q", lines, want)
	}
	if src.Name() != "doc.md" {
		t.Fatalf("Name=%q", src.Name())
	}
}

func TestFileSourceErrors(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, "blob.md")
	if err := os.WriteFile(binary, []byte{0x00, 0x01, 0x02}, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		name string
		path string
		want error
	}{
		{"no selection", "", ErrNoDocument},
		{"missing file", filepath.Join(dir, "missing.md"), os.ErrNotExist},
		{"directory", dir, ErrNotText},
		{"binary", binary, ErrNotText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFileSource(tt.path).Lines()
			if !errors.Is(err, tt.want) {
				t.Fatalf("err=%v want %v", err, tt.want)
			}
		})
	}
}

func TestReadDocumentTooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.md")
	if err := os.WriteFile(path, bytes.Repeat([]byte("a"), 11), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ReadDocument(path, 10); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("err=%v want ErrTooLarge", err)
	}
	if _, err := ReadDocument(path, 11); err != nil {
		t.Fatalf("exact limit should be accepted: %v", err)
	}
}

func TestReaderSource(t *testing.T) {
	lines, err := ReaderSource{R: strings.NewReader("a\nb")}.Lines()
	if err != nil || !reflect.DeepEqual(lines, []string{"a\n", "b"}) {
		t.Fatalf("Lines=%q err=%v", lines, err)
	}
	if _, err := (ReaderSource{}).Lines(); !errors.Is(err, ErrNoDocument) {
		t.Fatalf("nil reader err=%v", err)
	}
}

func TestIsMarkdownPath(t *testing.T) {
	if !IsMarkdownPath("README.MD") || IsMarkdownPath("main.go") {
		t.Fatalf("IsMarkdownPath mismatch")
	}
}

func TestExpandHome(t *testing.T) {
	orig := userHomeDir
	userHomeDir = func() (string, error) { return "/home/reader", nil }
	defer func() { userHomeDir = orig }()

	tests := map[string]string{
		"":             "",
		"~":            "/home/reader",
		"~/notes/a.md": "/home/reader/notes/a.md",
		"~other/a.md":  "~other/a.md",
		"/abs/a.md":    "/abs/a.md",
		"docs/~a.md":   "docs/~a.md",
	}
	for in, want := range tests {
		if got := ExpandHome(in); got != filepath.FromSlash(want) {
			t.Fatalf("ExpandHome(%q)=%q want %q", in, got, want)
		}
	}
}

func TestExpandHomeKeepsPathWithoutHome(t *testing.T) {
	orig := userHomeDir
	userHomeDir = func() (string, error) { return "", errors.New("no home") }
	defer func() { userHomeDir = orig }()

	if got := ExpandHome("~/a.md"); got != "~/a.md" {
		t.Fatalf("ExpandHome=%q", got)
	}
}
