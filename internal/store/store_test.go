package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crown_transport/internal/calendar"
)

func TestAttendanceBounds(t *testing.T) {
	rng, err := calendar.NewRange("2024-03-01", "2024-03-31")
	require.NoError(t, err)

	lo, hi := attendanceBounds(rng)
	assert.Equal(t, "2024-03-01", lo)
	assert.Equal(t, "2024-04-01", hi)

	inside := func(stored string) bool { return stored >= lo && stored < hi }
	assert.True(t, inside("2024-03-01"))
	assert.True(t, inside("2024-03-31"))
	assert.True(t, inside("2024-03-31T00:00:00Z"), "timestamps on the last day stay in range")
	assert.False(t, inside("2024-04-01"))
	assert.False(t, inside("2024-02-29T23:59:59Z"))
}
