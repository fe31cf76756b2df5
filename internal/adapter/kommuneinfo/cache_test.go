package kommuneinfo

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSource struct {
	calls int
	reply []Municipality
	err   error
}

func (s *countingSource) Municipalities(context.Context) ([]Municipality, error) {
	s.calls++
	return s.reply, s.err
}

func TestCachedSource_ReusesWithinTTL(t *testing.T) {
	src := &countingSource{reply: []Municipality{{Number: "0301", Name: "Oslo"}}}
	clock := clockwork.NewFakeClock()
	cached := NewCachedSource(src, time.Hour, clock)

	first, err := cached.Municipalities(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	clock.Advance(30 * time.Minute)
	_, err = cached.Municipalities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls, "within TTL the upstream is not called again")

	clock.Advance(31 * time.Minute)
	_, err = cached.Municipalities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls, "TTL expiry triggers a refetch")
}

func TestCachedSource_DoesNotCacheFailures(t *testing.T) {
	src := &countingSource{err: assert.AnError}
	cached := NewCachedSource(src, time.Hour, clockwork.NewFakeClock())

	_, err := cached.Municipalities(context.Background())
	require.Error(t, err)
	_, err = cached.Municipalities(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, src.calls, "failures must not be pinned for the TTL")
}

func TestCachedSource_DoesNotCacheEmpty(t *testing.T) {
	src := &countingSource{}
	cached := NewCachedSource(src, time.Hour, clockwork.NewFakeClock())

	got, err := cached.Municipalities(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = cached.Municipalities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}
