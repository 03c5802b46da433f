package comment

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tildaslashalef/redline/internal/loggy"
)

// The on-disk CSV stores free-text line breaks as backslash escape
// sequences so they never break row framing. The convention is
// reversible for every input string: a backslash escapes itself.
//
//	\  <-> \\
//	\n <-> newline
//	\r <-> carriage return

// Escape encodes a free-text field for CSV storage.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Unescape reverses Escape in a single left-to-right pass. Unknown
// escape sequences are preserved verbatim.
func Unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '\\' || i == len(runes)-1 {
			b.WriteRune(runes[i])
			continue
		}
		switch runes[i+1] {
		case '\\':
			b.WriteRune('\\')
			i++
		case 'n':
			b.WriteRune('\n')
			i++
		case 'r':
			b.WriteRune('\r')
			i++
		default:
			b.WriteRune('\\')
		}
	}
	return b.String()
}

// Source CSV column names. filename, lines, comment and priority are
// required; the rest are optional.
var requiredColumns = []string{"filename", "lines", "comment", "priority"}

// ErrMissingColumn is returned when the source header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// Reader reads review comment rows from a source CSV file and delivers
// them one at a time, push-style, to a caller-supplied function.
type Reader struct {
	path   string
	logger *loggy.Logger
}

// NewReader creates a reader for the given source CSV path.
func NewReader(path string, logger *loggy.Logger) *Reader {
	return &Reader{path: path, logger: logger}
}

// Each opens the source file, validates the header and invokes fn for
// every raw (un-normalized) row in file order. The first error from fn
// or from parsing halts the iteration and is returned.
func (r *Reader) Each(fn func(Row) error) error {
	f, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("opening source file: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return fmt.Errorf("source file is empty: %s", r.path)
	}
	if err != nil {
		return fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading row %d: %w", line, err)
		}
		line++

		row := Row{
			Filename:   field(record, "filename"),
			Lines:      field(record, "lines"),
			Title:      field(record, "title"),
			Comment:    field(record, "comment"),
			Category:   field(record, "category"),
			Additional: field(record, "additional"),
			SHA:        field(record, "sha"),
			URL:        field(record, "url"),
		}

		if raw := field(record, "priority"); raw != "" {
			p, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				r.logger.Warn("unparseable priority, treating as unset", "row", line, "value", raw)
			} else {
				row.Priority = p
			}
		}

		if err := fn(row); err != nil {
			return err
		}
	}
}
