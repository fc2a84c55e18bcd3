package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"dualtrack/internal/model"
	"dualtrack/internal/repository"
)

// weekOrder fixes the planning view ordering, Monday first.
var weekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// WeekdayPlan is one planning-view row: a weekday with its tasks.
type WeekdayPlan struct {
	Weekday string
	Label   string
	Tasks   []model.Task
}

// PlannerService owns the weekly task catalog.
type PlannerService struct {
	taskRepo *repository.TaskRepository
}

func NewPlannerService(taskRepo *repository.TaskRepository) *PlannerService {
	return &PlannerService{taskRepo: taskRepo}
}

// AddWeeklyTask appends a template task bound to a weekday.
func (s *PlannerService) AddWeeklyTask(ctx context.Context, description, weekday string) (*model.Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	canonical, err := CanonicalWeekday(weekday)
	if err != nil {
		return nil, err
	}

	task := model.Task{Description: description, Weekday: canonical}
	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// AddExtraTask appends a template task with no fixed weekday. Extra
// tasks materialize every day.
func (s *PlannerService) AddExtraTask(ctx context.Context, description string) (*model.Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}

	task := model.Task{Description: description, Extra: true}
	if err := s.taskRepo.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *PlannerService) ListByWeekday(ctx context.Context, weekday string) ([]model.Task, error) {
	canonical, err := CanonicalWeekday(weekday)
	if err != nil {
		return nil, err
	}
	return s.taskRepo.ListByWeekday(ctx, canonical)
}

func (s *PlannerService) ListExtras(ctx context.Context) ([]model.Task, error) {
	return s.taskRepo.ListExtras(ctx)
}

// WeekPlan returns the catalog grouped by weekday in week order.
func (s *PlannerService) WeekPlan(ctx context.Context) ([]WeekdayPlan, []model.Task, error) {
	tasks, err := s.taskRepo.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	byWeekday := make(map[string][]model.Task)
	var extras []model.Task
	for _, task := range tasks {
		if task.Extra {
			extras = append(extras, task)
			continue
		}
		byWeekday[task.Weekday] = append(byWeekday[task.Weekday], task)
	}

	plan := make([]WeekdayPlan, 0, len(weekOrder))
	for _, d := range weekOrder {
		name := d.String()
		plan = append(plan, WeekdayPlan{
			Weekday: name,
			Label:   WeekdayLabel(d),
			Tasks:   byWeekday[name],
		})
	}
	return plan, extras, nil
}

// DeleteTask removes one catalog task; its occurrences cascade away.
// Achievements that referenced the task are left in place.
func (s *PlannerService) DeleteTask(ctx context.Context, taskID uint) error {
	if _, err := s.taskRepo.FindByID(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.taskRepo.Delete(ctx, taskID)
}

// ResetAll deletes every task and every occurrence. Destructive and
// irreversible; settings and journal entries survive.
func (s *PlannerService) ResetAll(ctx context.Context) error {
	return s.taskRepo.DeleteAll(ctx)
}
