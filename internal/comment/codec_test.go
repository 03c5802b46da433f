package comment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tildaslashalef/redline/internal/loggy"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text untouched",
			input:    "no special characters",
			expected: "no special characters",
		},
		{
			name:     "newline becomes backslash-n",
			input:    "first line\nsecond line",
			expected: `first line\nsecond line`,
		},
		{
			name:     "carriage return becomes backslash-r",
			input:    "a\r\nb",
			expected: `a\r\nb`,
		},
		{
			name:     "backslash escapes itself",
			input:    `path\to\file`,
			expected: `path\\to\\file`,
		},
		{
			name:     "literal backslash-n stays distinguishable",
			input:    `already has \n marker`,
			expected: `already has \\n marker`,
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Escape(tt.input))
		})
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "backslash-n becomes newline",
			input:    `first\nsecond`,
			expected: "first\nsecond",
		},
		{
			name:     "double backslash becomes single",
			input:    `path\\to\\file`,
			expected: `path\to\file`,
		},
		{
			name:     "escaped backslash before n is not a newline",
			input:    `literal \\n marker`,
			expected: `literal \n marker`,
		},
		{
			name:     "unknown escape preserved verbatim",
			input:    `a\tb`,
			expected: `a\tb`,
		},
		{
			name:     "trailing lone backslash preserved",
			input:    `ends with \`,
			expected: `ends with \`,
		},
		{
			name:     "no backslash fast path",
			input:    "nothing to do",
			expected: "nothing to do",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Unescape(tt.input))
		})
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"multi\nline\ntext",
		"windows\r\nline endings",
		`backslashes \ and \\ mixed`,
		"trailing newline\n",
		"\n",
		`\n`,
		"unicode: héllo wörld ✓\nsecond",
	}

	for _, input := range inputs {
		assert.Equal(t, input, Unescape(Escape(input)),
			"escape then unescape should return the original string")
	}
}

func writeSourceCSV(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "code-review.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReaderEach(t *testing.T) {
	logger := loggy.NewNoopLogger()

	t.Run("reads rows in file order", func(t *testing.T) {
		path := writeSourceCSV(t, "filename,lines,title,comment,priority,category\n"+
			"main.go,2:0-2:5,Fix this,Something is wrong,2,Bug\n"+
			"util.go,,,Needs a test,1,\n")

		var rows []Row
		err := NewReader(path, logger).Each(func(r Row) error {
			rows = append(rows, r)
			return nil
		})
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, "main.go", rows[0].Filename)
		assert.Equal(t, "2:0-2:5", rows[0].Lines)
		assert.Equal(t, "Fix this", rows[0].Title)
		assert.Equal(t, "Something is wrong", rows[0].Comment)
		assert.Equal(t, 2, rows[0].Priority)
		assert.Equal(t, "Bug", rows[0].Category)

		assert.Equal(t, "util.go", rows[1].Filename)
		assert.Equal(t, "", rows[1].Category, "raw rows are not normalized")
		assert.Equal(t, 1, rows[1].Priority)
	})

	t.Run("header columns are case insensitive", func(t *testing.T) {
		path := writeSourceCSV(t, "Filename,Lines,Comment,Priority\nmain.go,1:0-1:3,hello,0\n")

		count := 0
		err := NewReader(path, logger).Each(func(r Row) error {
			count++
			assert.Equal(t, "main.go", r.Filename)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("header only yields zero rows", func(t *testing.T) {
		path := writeSourceCSV(t, "filename,lines,comment,priority\n")

		count := 0
		err := NewReader(path, logger).Each(func(r Row) error {
			count++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("missing required column", func(t *testing.T) {
		path := writeSourceCSV(t, "filename,lines,comment\nmain.go,1:0-1:3,hello\n")

		err := NewReader(path, logger).Each(func(r Row) error { return nil })
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingColumn)
		assert.Contains(t, err.Error(), "priority")
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeSourceCSV(t, "")

		err := NewReader(path, logger).Each(func(r Row) error { return nil })
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		reader := NewReader(filepath.Join(t.TempDir(), "absent.csv"), logger)
		err := reader.Each(func(r Row) error { return nil })
		assert.Error(t, err)
	})

	t.Run("unparseable priority treated as unset", func(t *testing.T) {
		path := writeSourceCSV(t, "filename,lines,comment,priority\nmain.go,,hello,high\n")

		var rows []Row
		err := NewReader(path, logger).Each(func(r Row) error {
			rows = append(rows, r)
			return nil
		})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 0, rows[0].Priority)
	})

	t.Run("callback error halts iteration", func(t *testing.T) {
		path := writeSourceCSV(t, "filename,lines,comment,priority\n"+
			"a.go,,one,0\n"+
			"b.go,,two,0\n")

		count := 0
		err := NewReader(path, logger).Each(func(r Row) error {
			count++
			return assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, 1, count, "iteration should stop at the first callback error")
	})
}
