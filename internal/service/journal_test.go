package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dualtrack/internal/model"
	"dualtrack/internal/storage"
)

func newTestJournal(t *testing.T, repos testRepos) *JournalService {
	t.Helper()
	photos, err := storage.NewPhotoStore(t.TempDir(), 1<<20)
	require.NoError(t, err)
	return NewJournalService(repos.journal, photos, nil)
}

func TestRecordAchievement(t *testing.T) {
	repos := newTestRepos(t)
	journal := newTestJournal(t, repos)
	ctx := context.Background()
	now := time.Date(2026, time.January, 5, 20, 0, 0, 0, time.UTC)

	taskID := uint(3)
	entry, err := journal.RecordAchievement(ctx, AchievementInput{
		TaskID:     &taskID,
		Feeling:    "orgulho",
		Reflection: "consegui meditar sem interrupções",
	}, now)
	require.NoError(t, err)
	require.Equal(t, "orgulho", entry.Feeling)
	require.Nil(t, entry.PhotoPath)
	require.NotZero(t, entry.ID)
}

func TestRecordAchievementRequiresReflection(t *testing.T) {
	repos := newTestRepos(t)
	journal := newTestJournal(t, repos)

	_, err := journal.RecordAchievement(context.Background(), AchievementInput{
		Feeling:    "alegria",
		Reflection: "   ",
	}, time.Now())
	require.ErrorIs(t, err, ErrInvalidInput)

	entries, listErr := journal.ListAchievements(context.Background())
	require.NoError(t, listErr)
	require.Empty(t, entries, "failed validation must not create rows")
}

func TestRecordAchievementUnsupportedPhotoDegrades(t *testing.T) {
	repos := newTestRepos(t)
	journal := newTestJournal(t, repos)
	ctx := context.Background()

	entry, err := journal.RecordAchievement(ctx, AchievementInput{
		Reflection: "terminei o relatório",
		Photo: &PhotoUpload{
			Name:   "malware.exe",
			Reader: strings.NewReader("not an image"),
		},
	}, time.Now())
	require.NoError(t, err)
	require.Equal(t, "terminei o relatório", entry.Reflection)
	require.Nil(t, entry.PhotoPath, "rejected photo leaves the reference empty")
}

func TestRecordAchievementStoresSupportedPhoto(t *testing.T) {
	repos := newTestRepos(t)
	journal := newTestJournal(t, repos)

	entry, err := journal.RecordAchievement(context.Background(), AchievementInput{
		Reflection: "caminhada no parque",
		Photo: &PhotoUpload{
			Name:   "parque.jpg",
			Reader: strings.NewReader("jpeg-bytes"),
		},
	}, time.Now())
	require.NoError(t, err)
	require.NotNil(t, entry.PhotoPath)
	require.True(t, strings.HasSuffix(*entry.PhotoPath, ".jpg"))
}

func TestRecordMomentValidatesKind(t *testing.T) {
	repos := newTestRepos(t)
	journal := newTestJournal(t, repos)

	_, err := journal.RecordMoment(context.Background(), MomentInput{
		Title: "café da manhã",
		Kind:  "random-kind",
	}, time.Now())
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestListMomentsNewestFirstAndFiltered(t *testing.T) {
	repos := newTestRepos(t)
	journal := newTestJournal(t, repos)
	ctx := context.Background()

	base := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)
	_, err := journal.RecordMoment(ctx, MomentInput{Title: "primeiro", Kind: model.MomentGratitude}, base)
	require.NoError(t, err)
	_, err = journal.RecordMoment(ctx, MomentInput{Title: "segundo", Kind: model.MomentImportant}, base.Add(time.Hour))
	require.NoError(t, err)
	_, err = journal.RecordMoment(ctx, MomentInput{Title: "terceiro", Kind: model.MomentGratitude}, base.Add(2*time.Hour))
	require.NoError(t, err)

	all, err := journal.ListMoments(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "terceiro", all[0].Title)
	require.Equal(t, "primeiro", all[2].Title)

	gratitude, err := journal.ListMoments(ctx, model.MomentGratitude)
	require.NoError(t, err)
	require.Len(t, gratitude, 2)
	for _, m := range gratitude {
		require.Equal(t, model.MomentGratitude, m.Kind)
	}
}

func TestListMomentsRejectsUnknownKind(t *testing.T) {
	repos := newTestRepos(t)
	journal := newTestJournal(t, repos)

	_, err := journal.ListMoments(context.Background(), "angry")
	require.ErrorIs(t, err, ErrInvalidInput)
}
