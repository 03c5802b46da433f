package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tildaslashalef/redline/internal/comment"
)

func mustGroup(t *testing.T, rows []comment.Row, key GroupKey) []Group {
	t.Helper()
	groups, err := GroupRows(rows, key)
	require.NoError(t, err)
	return groups
}

func renderJSON(t *testing.T, d Descriptor, groups []Group) (string, []map[string]any) {
	t.Helper()
	require.True(t, d.Buffered())

	var buf bytes.Buffer
	require.NoError(t, d.Begin(&buf))
	require.NoError(t, d.Finish(&buf, groups))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	return buf.String(), decoded
}

func TestJSONDescriptor(t *testing.T) {
	rows := []comment.Row{
		{Filename: "a.go", Comment: "multi\nline", Priority: 2, Category: "Bug", Code: "x := 1"},
		{Filename: "b.go", Comment: "plain", Category: "Style"},
	}

	t.Run("renders a pretty-printed array", func(t *testing.T) {
		opts := testOptions()
		opts.IncludeCode = true
		d := newJSONDescriptor(opts)
		assert.Equal(t, FormatJSON, d.Format())

		raw, decoded := renderJSON(t, d, mustGroup(t, rows, GroupByFilename))
		require.Len(t, decoded, 2)

		assert.Equal(t, "a.go", decoded[0]["filename"])
		assert.Equal(t, "multi\nline", decoded[0]["comment"], "free text keeps real line breaks")
		assert.Equal(t, float64(2), decoded[0]["priority"])
		assert.Equal(t, "x := 1", decoded[0]["code"])

		assert.True(t, strings.HasPrefix(raw, "[\n"), "output should be indented")
		assert.True(t, strings.HasSuffix(raw, "\n"), "output should end with a newline")
	})

	t.Run("code key omitted when code inclusion is off", func(t *testing.T) {
		d := newJSONDescriptor(testOptions())

		_, decoded := renderJSON(t, d, mustGroup(t, rows, GroupByFilename))
		require.Len(t, decoded, 2)

		_, present := decoded[0]["code"]
		assert.False(t, present, "code key must be absent, not empty")
	})

	t.Run("no rows renders an empty array", func(t *testing.T) {
		d := newJSONDescriptor(testOptions())

		var buf bytes.Buffer
		require.NoError(t, d.Begin(&buf))
		require.NoError(t, d.Finish(&buf, nil))

		assert.Equal(t, "[]\n", buf.String())
	})
}
