package idx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewIsUniqueAndOrdered(t *testing.T) {
	t.Parallel()

	seen := make(map[ID]struct{})
	var prev ID
	for range 1000 {
		id := New()
		require.False(t, id.IsZero())
		require.NotContains(t, seen, id)
		seen[id] = struct{}{}

		if prev != Zero {
			require.Greater(t, id.String(), prev.String())
		}
		prev = id
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	id := New()

	parsed, err := Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	_, err = Parse("")
	require.ErrorIs(t, err, ErrInvalid)

	_, err = Parse("not-a-ulid")
	require.ErrorIs(t, err, ErrInvalid)
}

func TestTime(t *testing.T) {
	t.Parallel()

	before := time.Now().UTC().Truncate(time.Millisecond)
	id := New()
	after := time.Now().UTC()

	ts := id.Time()
	require.False(t, ts.Before(before))
	require.False(t, ts.After(after))
}
