package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tildaslashalef/redline/internal/comment"
)

func TestHTMLDescriptor(t *testing.T) {
	rows := []comment.Row{
		{
			Filename: "a.go",
			Lines:    "1:0-2:3",
			Title:    "Fix this",
			Comment:  "body one",
			Priority: 3,
			Category: "Bug",
			SHA:      "abc1234",
			Code:     "if x < 0 {\n\treturn\n}",
		},
		{Filename: "b.go", Comment: "body two", Category: "Style"},
	}

	t.Run("renders grouped report", func(t *testing.T) {
		opts := testOptions()
		d, err := newHTMLDescriptor(opts)
		require.NoError(t, err)
		assert.Equal(t, FormatHTML, d.Format())
		assert.True(t, d.Buffered())

		var buf bytes.Buffer
		require.NoError(t, d.Begin(&buf))
		require.NoError(t, d.Finish(&buf, mustGroup(t, rows, GroupByFilename)))
		out := buf.String()

		assert.Contains(t, out, "<title>Code Review — code-review</title>")
		assert.Contains(t, out, "grouped by filename")
		assert.Contains(t, out, "2 comment(s)")
		assert.Contains(t, out, "<h2>a.go</h2>")
		assert.Contains(t, out, "<h2>b.go</h2>")
		assert.Contains(t, out, "Fix this")
		assert.Contains(t, out, "priority-3")
		assert.Contains(t, out, "Priority: High")
	})

	t.Run("category grouping still names the file", func(t *testing.T) {
		opts := testOptions()
		opts.GroupBy = GroupByCategory
		d, err := newHTMLDescriptor(opts)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, d.Finish(&buf, mustGroup(t, rows, GroupByCategory)))
		out := buf.String()

		assert.Contains(t, out, "<h2>Bug</h2>")
		assert.Contains(t, out, "File: <code>a.go</code>")
		assert.Contains(t, out, "File: <code>b.go</code>")
	})

	t.Run("code block decoded into the document", func(t *testing.T) {
		d, err := newHTMLDescriptor(testOptions())
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, d.Finish(&buf, mustGroup(t, rows, GroupByFilename)))
		out := buf.String()

		// The template decodes the base64 transport form; the document
		// carries readable, HTML-escaped source text
		assert.Contains(t, out, "if x &lt; 0 {")
		assert.NotContains(t, out, "aWYgeCA8IDAgew", "base64 form must not leak into the document")
	})

	t.Run("empty report renders the empty state", func(t *testing.T) {
		d, err := newHTMLDescriptor(testOptions())
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, d.Finish(&buf, nil))

		assert.Contains(t, buf.String(), "No review comments.")
	})

	t.Run("custom template replaces the built-in", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "custom.tmpl")
		require.NoError(t, os.WriteFile(path, []byte("rows: {{.TotalRows}}"), 0644))

		opts := testOptions()
		opts.TemplatePath = path
		d, err := newHTMLDescriptor(opts)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, d.Finish(&buf, mustGroup(t, rows, GroupByFilename)))
		assert.Equal(t, "rows: 2", buf.String())
	})

	t.Run("missing custom template fails construction", func(t *testing.T) {
		opts := testOptions()
		opts.TemplatePath = filepath.Join(t.TempDir(), "absent.tmpl")
		_, err := newHTMLDescriptor(opts)
		assert.Error(t, err)
	})

	t.Run("unparseable custom template fails construction", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.tmpl")
		require.NoError(t, os.WriteFile(path, []byte("{{.Unclosed"), 0644))

		opts := testOptions()
		opts.TemplatePath = path
		_, err := newHTMLDescriptor(opts)
		assert.Error(t, err)
	})
}
