package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCompleteSetsFlagAndTimestamp(t *testing.T) {
	repos := newTestRepos(t)
	planner := NewPlannerService(repos.tasks)
	m := newWeekdayMaterializer(t, repos)
	scoring := NewScoringService(repos.tasks, repos.occs, 15)
	ctx := context.Background()

	_, err := planner.AddWeeklyTask(ctx, "meditar", "Monday")
	require.NoError(t, err)
	occs, err := m.EnsureDay(ctx, monday)
	require.NoError(t, err)

	completedAt := monday.Add(3 * time.Hour)
	occ, err := scoring.Complete(ctx, occs[0].ID, completedAt)
	require.NoError(t, err)
	require.True(t, occ.Completed)
	require.NotNil(t, occ.CompletedAt)
}

func TestCompleteTwiceIsNoOp(t *testing.T) {
	repos := newTestRepos(t)
	planner := NewPlannerService(repos.tasks)
	m := newWeekdayMaterializer(t, repos)
	scoring := NewScoringService(repos.tasks, repos.occs, 15)
	ctx := context.Background()

	_, err := planner.AddWeeklyTask(ctx, "meditar", "Monday")
	require.NoError(t, err)
	occs, err := m.EnsureDay(ctx, monday)
	require.NoError(t, err)

	first, err := scoring.Complete(ctx, occs[0].ID, monday.Add(time.Hour))
	require.NoError(t, err)
	original := *first.CompletedAt

	second, err := scoring.Complete(ctx, occs[0].ID, monday.Add(5*time.Hour))
	require.NoError(t, err)
	require.True(t, second.Completed)
	require.True(t, second.CompletedAt.Equal(original), "timestamp must not move on repeat completion")
}

func TestCompleteUnknownOccurrence(t *testing.T) {
	repos := newTestRepos(t)
	scoring := NewScoringService(repos.tasks, repos.occs, 15)

	_, err := scoring.Complete(context.Background(), 9999, time.Now())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestScoreDayDeltaNeverPositive(t *testing.T) {
	repos := newTestRepos(t)
	planner := NewPlannerService(repos.tasks)
	m := newWeekdayMaterializer(t, repos)
	scoring := NewScoringService(repos.tasks, repos.occs, 15)
	ctx := context.Background()

	for _, desc := range []string{"meditar", "ler", "treinar"} {
		_, err := planner.AddWeeklyTask(ctx, desc, "Monday")
		require.NoError(t, err)
	}
	occs, err := m.EnsureDay(ctx, monday)
	require.NoError(t, err)
	require.Len(t, occs, 3)

	score, err := scoring.ScoreDay(ctx, monday)
	require.NoError(t, err)
	require.Equal(t, 45, score.Robot)
	require.Equal(t, 0, score.User)
	require.Equal(t, -45, score.Delta)

	_, err = scoring.Complete(ctx, occs[0].ID, monday.Add(time.Hour))
	require.NoError(t, err)
	_, err = scoring.Complete(ctx, occs[1].ID, monday.Add(2*time.Hour))
	require.NoError(t, err)

	score, err = scoring.ScoreDay(ctx, monday)
	require.NoError(t, err)
	require.Equal(t, 45, score.Robot)
	require.Equal(t, 30, score.User)
	require.Equal(t, -15, score.Delta)
	require.LessOrEqual(t, score.Delta, 0)
}

func TestScoreDayUsesConfiguredPointValue(t *testing.T) {
	repos := newTestRepos(t)
	planner := NewPlannerService(repos.tasks)
	m := newWeekdayMaterializer(t, repos)
	scoring := NewScoringService(repos.tasks, repos.occs, 10)
	ctx := context.Background()

	_, err := planner.AddWeeklyTask(ctx, "meditar", "Monday")
	require.NoError(t, err)
	_, err = m.EnsureDay(ctx, monday)
	require.NoError(t, err)

	score, err := scoring.ScoreDay(ctx, monday)
	require.NoError(t, err)
	require.Equal(t, 10, score.Robot)
}

func TestResetWeekWipesTasksAndOccurrences(t *testing.T) {
	repos := newTestRepos(t)
	planner := NewPlannerService(repos.tasks)
	m := newWeekdayMaterializer(t, repos)
	scoring := NewScoringService(repos.tasks, repos.occs, 15)
	ctx := context.Background()

	_, err := planner.AddWeeklyTask(ctx, "meditar", "Monday")
	require.NoError(t, err)
	_, err = m.EnsureDay(ctx, monday)
	require.NoError(t, err)

	require.NoError(t, scoring.ResetWeek(ctx))

	occs, err := m.EnsureDay(ctx, monday)
	require.NoError(t, err)
	require.Empty(t, occs)

	score, err := scoring.ScoreDay(ctx, monday)
	require.NoError(t, err)
	require.Equal(t, Score{}, score)
}
