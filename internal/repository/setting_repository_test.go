package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSettingGetReturnsDefaultOnMiss(t *testing.T) {
	repo := NewSettingRepository(newTestDB(t))
	ctx := context.Background()

	value, err := repo.Get(ctx, "tasks_per_day", "7")
	require.NoError(t, err)
	require.Equal(t, "7", value)
}

func TestSettingSetThenGet(t *testing.T) {
	repo := NewSettingRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "tasks_per_day", "5"))

	value, err := repo.Get(ctx, "tasks_per_day", "7")
	require.NoError(t, err)
	require.Equal(t, "5", value)
}

func TestSettingSetUpserts(t *testing.T) {
	repo := NewSettingRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "tasks_per_day", "5"))
	require.NoError(t, repo.Set(ctx, "tasks_per_day", "9"))

	value, err := repo.Get(ctx, "tasks_per_day", "7")
	require.NoError(t, err)
	require.Equal(t, "9", value)
}

func TestSettingGetIntFallsBackOnGarbage(t *testing.T) {
	repo := NewSettingRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "tasks_per_day", "banana"))

	n, err := repo.GetInt(ctx, "tasks_per_day", 7)
	require.NoError(t, err)
	require.Equal(t, 7, n)
}

func TestSettingGetIntParsesStoredValue(t *testing.T) {
	repo := NewSettingRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "tasks_per_day", "4"))

	n, err := repo.GetInt(ctx, "tasks_per_day", 7)
	require.NoError(t, err)
	require.Equal(t, 4, n)
}
