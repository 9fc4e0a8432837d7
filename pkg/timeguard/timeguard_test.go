package timeguard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestIsPastInstant(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		candidate time.Time
		want      bool
	}{
		{"earlier same day", time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC), true},
		{"later same day", time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC), false},
		{"equal to now", now, false},
		{"future date earlier time of day", time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC), false},
		{"past date later time of day", time.Date(2024, 3, 14, 23, 0, 0, 0, time.UTC), true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, IsPastInstant(tc.candidate, now))
		})
	}
}

func TestMinimumTimeOfDay(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

	require.Equal(t, "14:30", MinimumTimeOfDay("2024-03-15", now))
	require.Equal(t, "00:00", MinimumTimeOfDay("2024-03-16", now))
	require.Equal(t, "00:00", MinimumTimeOfDay("2024-03-14", now))
	require.Equal(t, "00:00", MinimumTimeOfDay("not-a-date", now))
}

func TestMinimumTimeOfDayZeroPadded(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 5, 0, 0, time.UTC)
	require.Equal(t, "09:05", MinimumTimeOfDay("2024-03-15", now))
}

func TestCombine(t *testing.T) {
	got, err := Combine("2024-03-15", "14:30", time.UTC)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC), got)

	_, err = Combine("2024-03-15", "25:99", time.UTC)
	require.Error(t, err)

	_, err = Combine("15.03.2024", "14:30", time.UTC)
	require.Error(t, err)
}

func TestCombineUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	got, err := Combine("2024-03-15", "14:30", loc)
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 3, 15, 11, 30, 0, 0, time.UTC), got.UTC())
}
