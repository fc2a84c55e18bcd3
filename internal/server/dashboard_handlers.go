package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"dualtrack/internal/model"
	"dualtrack/internal/service"
)

type occurrenceView struct {
	ID          uint       `json:"id"`
	TaskID      uint       `json:"task_id"`
	Description string     `json:"description"`
	Extra       bool       `json:"extra"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func toOccurrenceViews(occs []model.TaskOccurrence) []occurrenceView {
	views := make([]occurrenceView, 0, len(occs))
	for _, occ := range occs {
		views = append(views, occurrenceView{
			ID:          occ.ID,
			TaskID:      occ.TaskID,
			Description: occ.Task.Description,
			Extra:       occ.Task.Extra,
			Completed:   occ.Completed,
			CompletedAt: occ.CompletedAt,
		})
	}
	return views
}

// handleDashboard materializes today and returns the day view with
// both point tracks.
func (s *Server) handleDashboard(c *gin.Context) {
	now := s.now()

	occurrences, err := s.materializer.EnsureDay(c.Request.Context(), now)
	if err != nil {
		s.respondError(c, err)
		return
	}
	score, err := s.scoring.ScoreDay(c.Request.Context(), now)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":          service.DateOnly(now).Format("2006-01-02"),
		"weekday":       now.Weekday().String(),
		"weekday_label": service.WeekdayLabel(now.Weekday()),
		"occurrences":   toOccurrenceViews(occurrences),
		"score":         score,
	})
}

func (s *Server) handleComplete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid occurrence id"})
		return
	}

	occ, err := s.scoring.Complete(c.Request.Context(), uint(id), s.now())
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           occ.ID,
		"completed":    occ.Completed,
		"completed_at": occ.CompletedAt,
	})
}

// handleShuffle re-draws today's random sample. Rejected with 409
// under the weekday policy.
func (s *Server) handleShuffle(c *gin.Context) {
	occurrences, err := s.materializer.Shuffle(c.Request.Context(), s.now())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"occurrences": toOccurrenceViews(occurrences)})
}
