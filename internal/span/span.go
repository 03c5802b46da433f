// Package span parses compound range selectors and resolves them
// against source files on disk.
//
// Selector grammar:
//
//	selector := token ('|' token)*
//	token    := LINE ':' COL '-' LINE ':' COL
//
// where LINE and COL are non-negative integers, e.g. "12:3-15:6|18:1-19:40".
//
// Indexing convention, applied identically everywhere a selector is
// interpreted: lines are 1-indexed, columns are 0-indexed and counted
// in runes, and the end column is exclusive. The token "2:0-2:5" over a
// file whose second line is "return x;" therefore selects "retur".
package span

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrMalformed is returned when a selector token does not match the grammar.
var ErrMalformed = errors.New("malformed range selector")

// Span is a single source range within one file.
type Span struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// String serializes the span back into token form.
func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.StartLine, s.StartCol, s.EndLine, s.EndCol)
}

// Before reports whether s starts before o in document order,
// comparing by start line then start column.
func (s Span) Before(o Span) bool {
	if s.StartLine != o.StartLine {
		return s.StartLine < o.StartLine
	}
	return s.StartCol < o.StartCol
}

// Parse parses a compound selector into its spans. An empty selector
// yields no spans; empty tokens (from trailing separators) are skipped.
func Parse(selector string) ([]Span, error) {
	if selector == "" {
		return nil, nil
	}

	var spans []Span
	for _, token := range strings.Split(selector, "|") {
		if token == "" {
			continue
		}
		s, err := parseToken(token)
		if err != nil {
			return nil, err
		}
		spans = append(spans, s)
	}
	return spans, nil
}

func parseToken(token string) (Span, error) {
	start, end, ok := strings.Cut(token, "-")
	if !ok {
		return Span{}, fmt.Errorf("%w: %q misses position separator", ErrMalformed, token)
	}

	startLine, startCol, err := parsePosition(start)
	if err != nil {
		return Span{}, fmt.Errorf("%w: %q: %v", ErrMalformed, token, err)
	}
	endLine, endCol, err := parsePosition(end)
	if err != nil {
		return Span{}, fmt.Errorf("%w: %q: %v", ErrMalformed, token, err)
	}

	return Span{StartLine: startLine, StartCol: startCol, EndLine: endLine, EndCol: endCol}, nil
}

func parsePosition(pos string) (line, col int, err error) {
	l, c, ok := strings.Cut(pos, ":")
	if !ok {
		return 0, 0, fmt.Errorf("position %q misses column separator", pos)
	}
	line, err = strconv.Atoi(l)
	if err != nil || line < 0 {
		return 0, 0, fmt.Errorf("invalid line number %q", l)
	}
	col, err = strconv.Atoi(c)
	if err != nil || col < 0 {
		return 0, 0, fmt.Errorf("invalid column number %q", c)
	}
	return line, col, nil
}

// Sort orders spans into ascending document order, by start line then
// start column. The sort is stable so equal starts keep input order.
func Sort(spans []Span) {
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].Before(spans[j])
	})
}

// SortSelector re-serializes a compound selector with its tokens in
// ascending document order. Ranges may have been recorded out of order
// because comments were added non-sequentially.
func SortSelector(selector string) (string, error) {
	spans, err := Parse(selector)
	if err != nil {
		return "", err
	}
	if len(spans) == 0 {
		return selector, nil
	}

	Sort(spans)

	tokens := make([]string, len(spans))
	for i, s := range spans {
		tokens[i] = s.String()
	}
	return strings.Join(tokens, "|"), nil
}
