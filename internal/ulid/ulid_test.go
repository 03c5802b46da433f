package ulid

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	id := Generate()

	parsed, err := ulid.Parse(id)
	require.NoError(t, err, "Generated ID should be a valid ULID")

	// Verify it contains a valid timestamp close to now
	idTime := ulid.Time(parsed.Time())
	assert.True(t, time.Since(idTime).Seconds() < 1.0, "ULID timestamp should be close to now")
}

func TestGenerateWithPrefix(t *testing.T) {
	prefixes := []string{PrefixRun, "custom"}

	for _, prefix := range prefixes {
		id := GenerateWithPrefix(prefix)

		assert.True(t, HasPrefix(id, prefix), "ID should carry the prefix %q", prefix)

		raw := id[len(prefix)+len(PrefixSeparator):]
		_, err := ulid.Parse(raw)
		assert.NoError(t, err, "the part after the prefix should be a valid ULID")
	}
}

func TestRunID(t *testing.T) {
	id := RunID()
	assert.True(t, HasPrefix(id, PrefixRun))
}

func TestHasPrefix(t *testing.T) {
	assert.True(t, HasPrefix("run-01ABC", "run"))
	assert.False(t, HasPrefix("ws-01ABC", "run"))
	assert.False(t, HasPrefix("run01ABC", "run"), "prefix requires the separator")
}

func TestGenerateIsMonotonic(t *testing.T) {
	// Same-millisecond IDs must still sort in generation order
	prev := Generate()
	for i := 0; i < 100; i++ {
		next := Generate()
		assert.True(t, prev < next, "ULIDs should be lexicographically increasing")
		prev = next
	}
}
