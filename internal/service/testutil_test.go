package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"dualtrack/internal/repository"
)

type testRepos struct {
	db       *gorm.DB
	tasks    *repository.TaskRepository
	occs     *repository.OccurrenceRepository
	settings *repository.SettingRepository
	journal  *repository.JournalRepository
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := repository.NewDB(dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return testRepos{
		db:       db,
		tasks:    repository.NewTaskRepository(db),
		occs:     repository.NewOccurrenceRepository(db),
		settings: repository.NewSettingRepository(db),
		journal:  repository.NewJournalRepository(db),
	}
}
