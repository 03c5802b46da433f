package span

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tildaslashalef/redline/internal/loggy"
)

func newTestResolver(t *testing.T, files map[string]string) *Resolver {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	r, err := NewResolver(root, loggy.NewNoopLogger())
	require.NoError(t, err)
	return r
}

func TestExtract(t *testing.T) {
	t.Run("single line slice", func(t *testing.T) {
		r := newTestResolver(t, map[string]string{
			"main.go": "package main\nreturn x;\n",
		})

		// Lines are 1-indexed, columns 0-indexed with exclusive end
		text, err := r.Extract("main.go", "2:0-2:5")
		require.NoError(t, err)
		assert.Equal(t, "retur", text)
	})

	t.Run("multi line span", func(t *testing.T) {
		r := newTestResolver(t, map[string]string{
			"list.txt": "one\ntwo\nthree\nfour\nfive\n",
		})

		text, err := r.Extract("list.txt", "2:0-4:4")
		require.NoError(t, err)
		assert.Equal(t, "two\nthree\nfour", text)
	})

	t.Run("separator between non-adjacent spans", func(t *testing.T) {
		r := newTestResolver(t, map[string]string{
			"list.txt": "one\ntwo\nthree\nfour\nfive\n",
		})

		text, err := r.Extract("list.txt", "1:0-1:3|4:0-4:4")
		require.NoError(t, err)
		assert.Equal(t, "one\n...\nfour", text)
	})

	t.Run("no separator between adjacent spans", func(t *testing.T) {
		r := newTestResolver(t, map[string]string{
			"list.txt": "one\ntwo\nthree\nfour\nfive\n",
		})

		text, err := r.Extract("list.txt", "1:0-1:3|2:0-2:3")
		require.NoError(t, err)
		assert.Equal(t, "one\ntwo", text)
	})

	t.Run("out of order tokens resolved in document order", func(t *testing.T) {
		r := newTestResolver(t, map[string]string{
			"list.txt": "one\ntwo\nthree\nfour\nfive\n",
		})

		text, err := r.Extract("list.txt", "4:0-4:4|1:0-1:3")
		require.NoError(t, err)
		assert.Equal(t, "one\n...\nfour", text)
	})

	t.Run("common indentation stripped", func(t *testing.T) {
		r := newTestResolver(t, map[string]string{
			"main.go": "func main() {\n    if ready {\n        start()\n    }\n}\n",
		})

		text, err := r.Extract("main.go", "2:0-4:5")
		require.NoError(t, err)
		assert.Equal(t, "if ready {\n    start()\n}", text)
	})

	t.Run("columns clamped to line length", func(t *testing.T) {
		r := newTestResolver(t, map[string]string{
			"list.txt": "one\n",
		})

		text, err := r.Extract("list.txt", "1:0-1:99")
		require.NoError(t, err)
		assert.Equal(t, "one", text)
	})

	t.Run("line past end of file", func(t *testing.T) {
		r := newTestResolver(t, map[string]string{
			"list.txt": "one\ntwo\n",
		})

		_, err := r.Extract("list.txt", "9:0-9:3")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("missing source file", func(t *testing.T) {
		r := newTestResolver(t, nil)

		_, err := r.Extract("absent.go", "1:0-1:3")
		assert.Error(t, err)
	})

	t.Run("malformed selector", func(t *testing.T) {
		r := newTestResolver(t, map[string]string{"a.txt": "hello\n"})

		_, err := r.Extract("a.txt", "nonsense")
		assert.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("empty selector yields empty text", func(t *testing.T) {
		r := newTestResolver(t, map[string]string{"a.txt": "hello\n"})

		text, err := r.Extract("a.txt", "")
		require.NoError(t, err)
		assert.Equal(t, "", text)
	})

	t.Run("nested file path", func(t *testing.T) {
		r := newTestResolver(t, map[string]string{
			filepath.Join("internal", "deep", "file.txt"): "alpha\nbeta\n",
		})

		text, err := r.Extract(filepath.Join("internal", "deep", "file.txt"), "2:0-2:4")
		require.NoError(t, err)
		assert.Equal(t, "beta", text)
	})

	t.Run("crlf line endings normalized", func(t *testing.T) {
		r := newTestResolver(t, map[string]string{
			"dos.txt": "one\r\ntwo\r\nthree\r\n",
		})

		text, err := r.Extract("dos.txt", "2:0-2:3")
		require.NoError(t, err)
		assert.Equal(t, "two", text)
	})
}

func TestBase64RoundTrip(t *testing.T) {
	inputs := []string{"", "plain", "multi\nline", `<script>alert("x")</script>`}

	for _, input := range inputs {
		assert.Equal(t, input, DecodeBase64(EncodeBase64(input)))
	}

	t.Run("invalid input returned as-is", func(t *testing.T) {
		assert.Equal(t, "not base64 at all!", DecodeBase64("not base64 at all!"))
	})
}

func TestFenceTag(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{filename: "main.go", expected: "go"},
		{filename: "script.py", expected: "python"},
		{filename: filepath.Join("internal", "span", "span.go"), expected: "go"},
		{filename: "noextension", expected: ""},
		{filename: "strange.zzz987", expected: ""},
		{filename: "", expected: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FenceTag(tt.filename), "fence tag for %q", tt.filename)
	}
}
