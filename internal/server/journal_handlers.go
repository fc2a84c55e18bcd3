package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"dualtrack/internal/model"
	"dualtrack/internal/service"
)

type achievementView struct {
	ID         uint      `json:"id"`
	Date       time.Time `json:"date"`
	TaskID     *uint     `json:"task_id,omitempty"`
	Reflection string    `json:"reflection"`
	Feeling    string    `json:"feeling,omitempty"`
	PhotoPath  *string   `json:"photo,omitempty"`
}

type momentView struct {
	ID          uint      `json:"id"`
	Date        time.Time `json:"date"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Kind        string    `json:"kind"`
	PhotoPath   *string   `json:"photo,omitempty"`
}

// handleRecordAchievement accepts a multipart form: reflection,
// feeling, optional task_id and photo.
func (s *Server) handleRecordAchievement(c *gin.Context) {
	in := service.AchievementInput{
		Feeling:    c.PostForm("feeling"),
		Reflection: c.PostForm("reflection"),
	}

	if raw := c.PostForm("task_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task_id"})
			return
		}
		taskID := uint(id)
		in.TaskID = &taskID
	}

	photo, closePhoto, err := s.formPhoto(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "broken photo upload"})
		return
	}
	defer closePhoto()
	in.Photo = photo

	entry, err := s.journal.RecordAchievement(c.Request.Context(), in, s.now())
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, achievementView{
		ID:         entry.ID,
		Date:       entry.Date,
		TaskID:     entry.TaskID,
		Reflection: entry.Reflection,
		Feeling:    entry.Feeling,
		PhotoPath:  entry.PhotoPath,
	})
}

func (s *Server) handleListAchievements(c *gin.Context) {
	entries, err := s.journal.ListAchievements(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	views := make([]achievementView, 0, len(entries))
	for _, e := range entries {
		views = append(views, achievementView{
			ID:         e.ID,
			Date:       e.Date,
			TaskID:     e.TaskID,
			Reflection: e.Reflection,
			Feeling:    e.Feeling,
			PhotoPath:  e.PhotoPath,
		})
	}
	c.JSON(http.StatusOK, gin.H{"achievements": views})
}

// handleRecordMoment accepts a multipart form: title, description,
// kind ("gratitude"/"important") and an optional photo.
func (s *Server) handleRecordMoment(c *gin.Context) {
	in := service.MomentInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Kind:        c.PostForm("kind"),
	}

	photo, closePhoto, err := s.formPhoto(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "broken photo upload"})
		return
	}
	defer closePhoto()
	in.Photo = photo

	entry, err := s.journal.RecordMoment(c.Request.Context(), in, s.now())
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toMomentView(*entry))
}

func (s *Server) handleListMoments(c *gin.Context) {
	entries, err := s.journal.ListMoments(c.Request.Context(), c.Query("kind"))
	if err != nil {
		s.respondError(c, err)
		return
	}

	views := make([]momentView, 0, len(entries))
	for _, e := range entries {
		views = append(views, toMomentView(e))
	}
	c.JSON(http.StatusOK, gin.H{"moments": views})
}

func toMomentView(m model.Moment) momentView {
	return momentView{
		ID:          m.ID,
		Date:        m.Date,
		Title:       m.Title,
		Description: m.Description,
		Kind:        m.Kind,
		PhotoPath:   m.PhotoPath,
	}
}

// formPhoto extracts the optional "photo" part of a multipart form.
// Absence is not an error. The caller must invoke the returned close
// func.
func (s *Server) formPhoto(c *gin.Context) (*service.PhotoUpload, func(), error) {
	noop := func() {}

	fh, err := c.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}
	return &service.PhotoUpload{Name: fh.Filename, Reader: f}, func() { f.Close() }, nil
}
