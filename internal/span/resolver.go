package span

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/muesli/reflow/dedent"

	"github.com/tildaslashalef/redline/internal/loggy"
)

// ErrOutOfRange is returned when a span references a line past the end
// of the file.
var ErrOutOfRange = errors.New("range outside file bounds")

// Separator is placed on its own line between extracted spans that are
// not adjacent in the source file.
const Separator = "..."

// fileCacheSize bounds the number of files kept split in memory during
// one export run. Rows referencing the same file share the cached copy.
const fileCacheSize = 64

// Resolver extracts the literal text of range selectors from files
// beneath a workspace root.
type Resolver struct {
	root   string
	cache  *lru.Cache[string, []string]
	logger *loggy.Logger
}

// NewResolver creates a resolver for files relative to root.
func NewResolver(root string, logger *loggy.Logger) (*Resolver, error) {
	cache, err := lru.New[string, []string](fileCacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating file cache: %w", err)
	}
	return &Resolver{root: root, cache: cache, logger: logger}, nil
}

// Extract resolves every span of the compound selector against the
// named file and concatenates the slices in ascending document order,
// regardless of the order tokens appear in the selector. A Separator
// line is inserted between non-adjacent spans. The concatenated result
// is stripped of its common leading indentation so nested code reads
// naturally when re-embedded in a flat document.
func (r *Resolver) Extract(filename, selector string) (string, error) {
	spans, err := Parse(selector)
	if err != nil {
		return "", err
	}
	if len(spans) == 0 {
		return "", nil
	}
	Sort(spans)

	lines, err := r.fileLines(filename)
	if err != nil {
		return "", err
	}

	var parts []string
	prevEnd := 0
	for i, s := range spans {
		text, err := slice(lines, s)
		if err != nil {
			return "", fmt.Errorf("resolving %s in %s: %w", s, filename, err)
		}
		if i > 0 && s.StartLine > prevEnd+1 {
			parts = append(parts, Separator)
		}
		parts = append(parts, text)
		if s.EndLine > prevEnd {
			prevEnd = s.EndLine
		}
	}

	return strings.TrimSuffix(dedent.String(strings.Join(parts, "\n")), "\n"), nil
}

// fileLines loads and splits a workspace file, caching the result for
// subsequent rows that reference the same file.
func (r *Resolver) fileLines(filename string) ([]string, error) {
	if lines, ok := r.cache.Get(filename); ok {
		return lines, nil
	}

	path := filename
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.root, filename)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source file: %w", err)
	}

	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	r.cache.Add(filename, lines)
	return lines, nil
}

// slice extracts one span from the split file content. Lines are
// 1-indexed and must exist; columns are 0-indexed, end-exclusive, and
// clamped to the actual line length so a stale column never fails.
func slice(lines []string, s Span) (string, error) {
	if s.StartLine < 1 || s.EndLine < s.StartLine || s.EndLine > len(lines) {
		return "", fmt.Errorf("%w: lines %d-%d of %d", ErrOutOfRange, s.StartLine, s.EndLine, len(lines))
	}

	if s.StartLine == s.EndLine {
		return sliceLine(lines[s.StartLine-1], s.StartCol, s.EndCol), nil
	}

	out := make([]string, 0, s.EndLine-s.StartLine+1)
	first := []rune(lines[s.StartLine-1])
	out = append(out, string(first[clampCol(s.StartCol, len(first)):]))
	for i := s.StartLine; i < s.EndLine-1; i++ {
		out = append(out, lines[i])
	}
	last := []rune(lines[s.EndLine-1])
	out = append(out, string(last[:clampCol(s.EndCol, len(last))]))
	return strings.Join(out, "\n"), nil
}

func sliceLine(line string, startCol, endCol int) string {
	runes := []rune(line)
	start := clampCol(startCol, len(runes))
	end := clampCol(endCol, len(runes))
	if end < start {
		end = start
	}
	return string(runes[start:end])
}

func clampCol(col, length int) int {
	if col > length {
		return length
	}
	if col < 0 {
		return 0
	}
	return col
}

// EncodeBase64 reduces extracted text to a transport-safe encoding for
// embedding inside markup. Decoding is the renderer's concern.
func EncodeBase64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// DecodeBase64 reverses EncodeBase64. Invalid input is returned as-is
// rather than failing the render.
func DecodeBase64(s string) string {
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return s
	}
	return string(decoded)
}
