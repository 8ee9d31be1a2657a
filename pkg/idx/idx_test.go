package idx_test

import (
	"testing"
	"time"

	"github.com/skylight-ar/account-service/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewProducesOrderedIDs(t *testing.T) {
	t.Parallel()

	a := idx.New()
	b := idx.New()

	require.False(t, a.IsZero())
	require.False(t, b.IsZero())
	require.Less(t, a.String(), b.String())
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("round trips a generated id", func(t *testing.T) {
		id := idx.New()
		parsed, err := idx.Parse(id.String())
		require.NoError(t, err)
		require.Equal(t, id, parsed)
	})

	t.Run("rejects empty and malformed strings", func(t *testing.T) {
		for _, s := range []string{"", "   ", "not-a-ulid", "0000"} {
			_, err := idx.Parse(s)
			require.ErrorIs(t, err, idx.ErrInvalid)
		}
	})
}

func TestTimeExtraction(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	id := idx.NewAt(at)

	require.WithinDuration(t, at, id.Time(), time.Millisecond)
	require.True(t, idx.Zero.Time().IsZero())
}
