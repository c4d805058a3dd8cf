package source

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// FileFlags encodes metadata about a source file.
type FileFlags uint8

const (
	// FileVirtual marks content that did not come from disk (REPL input, tests).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File is one unit of parseable input: a disk file, a line of interactive
// input, or a string handed over by a test.
type File struct {
	Name    string
	Content []byte
	Flags   FileFlags
}

// NewFile wraps in-memory content. The name may be empty for anonymous
// input such as REPL lines.
func NewFile(name string, content []byte) *File {
	return &File{Name: name, Content: content, Flags: FileVirtual}
}

// ReadFile loads path from disk and normalizes the content: a UTF-8 BOM is
// stripped and CRLF pairs become plain newlines, so the offsets a scanner
// records match what diagnostics later print.
func ReadFile(path string) (*File, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return &File{Name: path, Content: content, Flags: flags}, nil
}

// Line returns the text of the line containing p, without the trailing
// newline. It trusts p.LineOffset; out-of-range positions yield "".
func (f *File) Line(p Pos) string {
	if f == nil || p.LineOffset < 0 || p.LineOffset >= len(f.Content) {
		return ""
	}
	rest := f.Content[p.LineOffset:]
	if i := bytes.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	return strings.TrimSuffix(string(rest), "\r")
}

// normalizeCRLF replaces every \r\n with \n, leaving lone \r alone.
// Returns the result and whether anything changed.
func normalizeCRLF(content []byte) ([]byte, bool) {
	// Fast path: nothing to do without a \r.
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

// Set tracks the files a session has seen so diagnostics can show the
// offending line. Registering a name again replaces the previous entry,
// which is what a REPL needs when the same name recurs.
type Set struct {
	index map[string]*File
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{index: make(map[string]*File)}
}

// Add registers f, replacing any previous file with the same name.
func (s *Set) Add(f *File) {
	s.index[normalizeName(f.Name)] = f
}

// Lookup returns the latest file registered under name.
func (s *Set) Lookup(name string) (*File, bool) {
	f, ok := s.index[normalizeName(name)]
	return f, ok
}

// Load reads path from disk, normalizes it, and registers the result.
func (s *Set) Load(path string) (*File, error) {
	f, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	s.Add(f)
	return f, nil
}

func normalizeName(name string) string {
	if name == "" {
		return ""
	}
	// one spelling per path across platforms
	return filepath.ToSlash(filepath.Clean(name))
}
