package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"dualtrack/internal/metrics"
	"dualtrack/internal/model"
	"dualtrack/internal/repository"
	"dualtrack/internal/storage"
)

// PhotoUpload carries raw upload bytes plus the declared filename.
type PhotoUpload struct {
	Name   string
	Reader io.Reader
}

// AchievementInput is the data behind "record achievement".
type AchievementInput struct {
	TaskID     *uint
	Feeling    string
	Reflection string
	Photo      *PhotoUpload
}

// MomentInput is the data behind "record moment".
type MomentInput struct {
	Title       string
	Description string
	Kind        string
	Photo       *PhotoUpload
}

// JournalService appends achievements and gratitude moments. A photo
// that fails the allow-list or size cap never blocks the entry: the
// text fields are saved and the photo reference stays empty, matching
// how the rest of the system never partially mutates on bad input.
type JournalService struct {
	repo   *repository.JournalRepository
	photos *storage.PhotoStore
	log    *zap.Logger
}

func NewJournalService(repo *repository.JournalRepository, photos *storage.PhotoStore, log *zap.Logger) *JournalService {
	if log == nil {
		log = zap.NewNop()
	}
	return &JournalService{repo: repo, photos: photos, log: log}
}

func (s *JournalService) RecordAchievement(ctx context.Context, in AchievementInput, now time.Time) (*model.Achievement, error) {
	in.Reflection = strings.TrimSpace(in.Reflection)
	if in.Reflection == "" {
		return nil, fmt.Errorf("%w: reflection is required", ErrInvalidInput)
	}

	photoPath, err := s.attachPhoto(in.Photo)
	if err != nil {
		return nil, err
	}

	entry := model.Achievement{
		Date:       now,
		TaskID:     in.TaskID,
		Reflection: in.Reflection,
		Feeling:    strings.TrimSpace(in.Feeling),
		PhotoPath:  photoPath,
	}
	if err := s.repo.CreateAchievement(ctx, &entry); err != nil {
		return nil, err
	}
	metrics.JournalEntries.WithLabelValues("achievement").Inc()
	return &entry, nil
}

func (s *JournalService) RecordMoment(ctx context.Context, in MomentInput, now time.Time) (*model.Moment, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if in.Kind != model.MomentGratitude && in.Kind != model.MomentImportant {
		return nil, fmt.Errorf("%w: kind must be %q or %q", ErrInvalidInput, model.MomentGratitude, model.MomentImportant)
	}

	photoPath, err := s.attachPhoto(in.Photo)
	if err != nil {
		return nil, err
	}

	entry := model.Moment{
		Date:        now,
		Title:       in.Title,
		Description: strings.TrimSpace(in.Description),
		Kind:        in.Kind,
		PhotoPath:   photoPath,
	}
	if err := s.repo.CreateMoment(ctx, &entry); err != nil {
		return nil, err
	}
	metrics.JournalEntries.WithLabelValues(in.Kind).Inc()
	return &entry, nil
}

func (s *JournalService) ListAchievements(ctx context.Context) ([]model.Achievement, error) {
	return s.repo.ListAchievements(ctx)
}

// ListMoments returns moments newest first. kind filters when non-empty
// and must be a known kind.
func (s *JournalService) ListMoments(ctx context.Context, kind string) ([]model.Moment, error) {
	if kind != "" && kind != model.MomentGratitude && kind != model.MomentImportant {
		return nil, fmt.Errorf("%w: unknown moment kind %q", ErrInvalidInput, kind)
	}
	return s.repo.ListMoments(ctx, kind)
}

// attachPhoto stores the upload when present. Rejected uploads
// (bad extension, oversize) degrade to "no photo"; storage failures
// propagate.
func (s *JournalService) attachPhoto(photo *PhotoUpload) (*string, error) {
	if photo == nil || photo.Name == "" {
		return nil, nil
	}

	ref, err := s.photos.Save(photo.Name, photo.Reader)
	switch {
	case err == nil:
		metrics.RecordPhotoUpload("saved")
		return &ref, nil
	case errors.Is(err, storage.ErrUnsupportedType), errors.Is(err, storage.ErrTooLarge):
		s.log.Warn("photo rejected, saving entry without it",
			zap.String("filename", photo.Name),
			zap.Error(err))
		metrics.RecordPhotoUpload("rejected")
		return nil, nil
	default:
		metrics.RecordPhotoUpload("failed")
		return nil, err
	}
}
