package id

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsSortable(t *testing.T) {
	t.Parallel()

	ids := make([]string, 100)
	for i := range ids {
		ids[i] = New()
	}

	assert.True(t, sort.StringsAreSorted(ids))
	seen := map[string]bool{}
	for _, s := range ids {
		assert.Len(t, s, 26)
		assert.False(t, seen[s], "duplicate id %s", s)
		seen[s] = true
	}
}

func TestTime(t *testing.T) {
	t.Parallel()

	before := time.Now().UTC().Truncate(time.Millisecond)
	s := New()
	after := time.Now().UTC()

	got, err := Time(s)
	require.NoError(t, err)
	assert.False(t, got.Before(before))
	assert.False(t, got.After(after))

	_, err = Time("not-a-ulid")
	assert.Error(t, err)
}

func TestGeneratorClockStepsBack(t *testing.T) {
	t.Parallel()

	clock := []time.Time{
		time.Date(2025, 2, 24, 9, 30, 0, 0, time.UTC),
		time.Date(2025, 2, 24, 9, 29, 0, 0, time.UTC),
		time.Date(2025, 2, 24, 9, 30, 0, 0, time.UTC),
	}
	i := 0
	g := NewGenerator(func() time.Time {
		now := clock[i]
		i++
		return now
	})

	var ids []string
	for range clock {
		s, err := g.Next()
		require.NoError(t, err)
		ids = append(ids, s)
	}

	assert.True(t, sort.StringsAreSorted(ids), ids)
	assert.Less(t, ids[0], ids[1])
	assert.Less(t, ids[1], ids[2])

	got, err := Time(ids[1])
	require.NoError(t, err)
	assert.True(t, got.Equal(clock[0]))
}
