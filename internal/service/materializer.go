package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"dualtrack/internal/config"
	"dualtrack/internal/metrics"
	"dualtrack/internal/model"
	"dualtrack/internal/repository"
)

// SettingTasksPerDay bounds the random-policy sample size.
const SettingTasksPerDay = "tasks_per_day"

const defaultTasksPerDay = 7

// Materializer ensures a complete, duplicate-free occurrence set for a
// given day. Two policies exist and are never mixed:
//
//   - weekday: every catalog task matching the day's weekday, plus every
//     extra task, gets exactly one occurrence.
//   - random: if the day is empty, a random subset of the whole catalog
//     (bounded by the tasks_per_day setting) is drawn once.
type Materializer struct {
	taskRepo *repository.TaskRepository
	occRepo  *repository.OccurrenceRepository
	settings *repository.SettingRepository
	policy   string

	// rng is shared between HTTP requests and the cron job and
	// math/rand sources are not goroutine-safe, hence the mutex.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewMaterializer builds a materializer for the given policy. rng may
// be nil, in which case a time-seeded source is used; tests inject a
// fixed seed for determinism.
func NewMaterializer(
	taskRepo *repository.TaskRepository,
	occRepo *repository.OccurrenceRepository,
	settings *repository.SettingRepository,
	policy string,
	rng *rand.Rand,
) *Materializer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Materializer{
		taskRepo: taskRepo,
		occRepo:  occRepo,
		settings: settings,
		policy:   policy,
		rng:      rng,
	}
}

func (m *Materializer) Policy() string {
	return m.policy
}

// EnsureDay materializes the day's occurrences and returns the full
// set. Idempotent: repeat calls create nothing new and never touch
// completion state.
func (m *Materializer) EnsureDay(ctx context.Context, day time.Time) ([]model.TaskOccurrence, error) {
	day = DateOnly(day)

	if m.policy == config.PolicyRandom {
		if err := m.ensureRandom(ctx, day); err != nil {
			return nil, err
		}
	} else {
		if err := m.ensureWeekday(ctx, day); err != nil {
			return nil, err
		}
	}

	return m.occRepo.ListByDay(ctx, day)
}

// Shuffle discards the day's occurrences and draws a fresh random
// sample. Only meaningful under the random policy.
func (m *Materializer) Shuffle(ctx context.Context, day time.Time) ([]model.TaskOccurrence, error) {
	if m.policy != config.PolicyRandom {
		return nil, ErrPolicyDisabled
	}
	day = DateOnly(day)

	if err := m.occRepo.DeleteByDay(ctx, day); err != nil {
		return nil, err
	}
	if err := m.ensureRandom(ctx, day); err != nil {
		return nil, err
	}
	return m.occRepo.ListByDay(ctx, day)
}

func (m *Materializer) ensureWeekday(ctx context.Context, day time.Time) error {
	tasks, err := m.taskRepo.ListByWeekday(ctx, day.Weekday().String())
	if err != nil {
		return err
	}
	extras, err := m.taskRepo.ListExtras(ctx)
	if err != nil {
		return err
	}

	ids := make([]uint, 0, len(tasks)+len(extras))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	for _, t := range extras {
		ids = append(ids, t.ID)
	}

	created, err := m.occRepo.CreateMissing(ctx, day, ids)
	if err != nil {
		return err
	}
	metrics.RecordMaterialized(config.PolicyWeekday, created)
	return nil
}

func (m *Materializer) ensureRandom(ctx context.Context, day time.Time) error {
	existing, err := m.occRepo.CountByDay(ctx, day)
	if err != nil {
		return err
	}
	if existing > 0 {
		return nil
	}

	tasks, err := m.taskRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		return nil
	}

	n, err := m.settings.GetInt(ctx, SettingTasksPerDay, defaultTasksPerDay)
	if err != nil {
		return err
	}
	if n < 1 {
		n = defaultTasksPerDay
	}
	if n > len(tasks) {
		n = len(tasks)
	}

	m.rngMu.Lock()
	perm := m.rng.Perm(len(tasks))
	m.rngMu.Unlock()

	ids := make([]uint, 0, n)
	for _, i := range perm[:n] {
		ids = append(ids, tasks[i].ID)
	}

	created, err := m.occRepo.CreateMissing(ctx, day, ids)
	if err != nil {
		return err
	}
	metrics.RecordMaterialized(config.PolicyRandom, created)
	return nil
}
