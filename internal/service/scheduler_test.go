package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBuildDailySpec(t *testing.T) {
	spec, err := buildDailySpec("08:30")
	require.NoError(t, err)
	require.Equal(t, "0 30 8 * * *", spec)

	spec, err = buildDailySpec("00:05")
	require.NoError(t, err)
	require.Equal(t, "0 5 0 * * *", spec)

	for _, bad := range []string{"", "8", "24:00", "12:60", "abc:10", "1:2:3"} {
		_, err := buildDailySpec(bad)
		require.Error(t, err, "expected error for %q", bad)
	}
}

func TestScheduleInterval(t *testing.T) {
	s := NewSchedulerService(time.UTC)

	_, err := s.ScheduleInterval(0, func() {})
	require.Error(t, err)
	_, err = s.ScheduleInterval(-time.Hour, func() {})
	require.Error(t, err)

	id, err := s.ScheduleInterval(90*time.Second, func() {})
	require.NoError(t, err)
	require.NotZero(t, id)
}
