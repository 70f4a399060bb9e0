package fs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxDocumentBytes bounds how much of a file is read for one document.
const MaxDocumentBytes int64 = 4 << 20

var (
	// ErrNoDocument is returned when no file was chosen.
	ErrNoDocument = errors.New("no document selected")
	// ErrNotText is returned for files that look binary.
	ErrNotText = errors.New("not a text file")
	// ErrTooLarge is returned for files above MaxDocumentBytes.
	ErrTooLarge = errors.New("document too large")
)

// MarkdownExtensions lists the suffixes of files read as markdown. Other
// files still load; the viewer only notes the mismatch.
var MarkdownExtensions = map[string]struct{}{
	".md":       {},
	".markdown": {},
	".mdown":    {},
	".mkd":      {},
	".mkdown":   {},
	".mdwn":     {},
}

// IsMarkdownPath reports whether path has a markdown extension.
func IsMarkdownPath(path string) bool {
	_, ok := MarkdownExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

var userHomeDir = os.UserHomeDir

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
// "~user" forms are returned unchanged.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) > 1 && path[1] != '/' && path[1] != '\\' {
		return path
	}
	home, err := userHomeDir()
	if err != nil || home == "" {
		return path
	}
	if len(path) == 1 {
		return home
	}
	return filepath.Join(home, path[2:])
}

// FileSource reads a document from disk each time Lines is called.
type FileSource struct {
	Path string
}

// NewFileSource returns a source for path. An empty path yields a source
// that always reports ErrNoDocument.
func NewFileSource(path string) FileSource {
	return FileSource{Path: strings.TrimSpace(path)}
}

// Name returns the base name shown in the status line.
func (s FileSource) Name() string {
	if s.Path == "" {
		return ""
	}
	return filepath.Base(s.Path)
}

// Lines reads, decodes and splits the file.
func (s FileSource) Lines() ([]string, error) {
	if s.Path == "" {
		return nil, ErrNoDocument
	}
	content, err := ReadDocument(s.Path, MaxDocumentBytes)
	if err != nil {
		return nil, err
	}
	return SplitLines(NormalizeTextContent(content)), nil
}

// ReadDocument reads up to limit bytes of path, failing on directories,
// binary content and files larger than limit.
func ReadDocument(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: is a directory: %w", path, ErrNotText)
	}

	content, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if int64(len(content)) > limit {
		return nil, fmt.Errorf("%s: %w", path, ErrTooLarge)
	}
	if !IsTextFile(content) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotText)
	}
	return content, nil
}

// ReaderSource adapts an io.Reader, such as stdin, into a document source.
type ReaderSource struct {
	R io.Reader
}

// Lines drains the reader once.
func (s ReaderSource) Lines() ([]string, error) {
	if s.R == nil {
		return nil, ErrNoDocument
	}
	content, err := io.ReadAll(io.LimitReader(s.R, MaxDocumentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if int64(len(content)) > MaxDocumentBytes {
		return nil, ErrTooLarge
	}
	if !IsTextFile(content) {
		return nil, ErrNotText
	}
	return SplitLines(NormalizeTextContent(content)), nil
}
