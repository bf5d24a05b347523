package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-04")
	require.NoError(t, err)
	assert.Equal(t, "monday", WeekdayName(d))

	d, err = ParseDate("2024-03-04T23:30:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", FormatDate(d), "timestamp must keep its written date")

	_, err = ParseDate("04/03/2024")
	assert.ErrorIs(t, err, ErrMalformedDate)
}

func TestSameWeekday(t *testing.T) {
	d := MustParseDate("2024-03-06")
	assert.True(t, SameWeekday("Wednesday", d))
	assert.True(t, SameWeekday(" wednesday", d))
	assert.False(t, SameWeekday("tuesday", d))
}

func TestRange(t *testing.T) {
	r, err := NewRange("2024-03-10", "2024-03-04")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", FormatDate(r.Start))
	assert.Len(t, r.Days(), 7)
	assert.True(t, r.Contains(MustParseDate("2024-03-10")))
	assert.False(t, r.Contains(MustParseDate("2024-03-11")))

	_, err = NewRange("bad", "2024-03-04")
	assert.ErrorIs(t, err, ErrMalformedDate)
}

func TestInStringRange(t *testing.T) {
	assert.True(t, InStringRange("2024-03-05", "2024-03-04", "2024-03-05"))
	assert.False(t, InStringRange("2024-03-06", "2024-03-04", "2024-03-05"))
	assert.False(t, InStringRange("2024-03-05", "", "2024-03-05"))
	assert.True(t, SameDate("2024-03-05", "2024-03-05T00:00:00Z"))
	assert.False(t, SameDate("", ""))
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		morning bool
		wantErr bool
	}{
		{"08:00", 480, true, false},
		{"11:59", 719, true, false},
		{"12:00", 720, false, false},
		{"15:30", 930, false, false},
		{"7:05", 425, true, false},
		{"24:00", 0, false, true},
		{"noon", 0, false, true},
		{"", 0, false, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrMalformedClock, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		m, err := IsMorning(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.morning, m, tt.in)
	}
}
