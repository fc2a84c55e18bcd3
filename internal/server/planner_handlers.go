package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dualtrack/internal/model"
	"dualtrack/internal/service"
)

type taskView struct {
	ID          uint   `json:"id"`
	Description string `json:"description"`
	Weekday     string `json:"weekday,omitempty"`
	Extra       bool   `json:"extra"`
}

func toTaskViews(tasks []model.Task) []taskView {
	views := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, taskView{
			ID:          t.ID,
			Description: t.Description,
			Weekday:     t.Weekday,
			Extra:       t.Extra,
		})
	}
	return views
}

func (s *Server) handleWeekPlan(c *gin.Context) {
	plan, extras, err := s.planner.WeekPlan(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	days := make([]gin.H, 0, len(plan))
	for _, row := range plan {
		days = append(days, gin.H{
			"weekday": row.Weekday,
			"label":   row.Label,
			"tasks":   toTaskViews(row.Tasks),
		})
	}
	c.JSON(http.StatusOK, gin.H{"week": days, "extras": toTaskViews(extras)})
}

type weeklyTaskRequest struct {
	Description string `json:"description"`
	Weekday     string `json:"weekday"`
}

func (s *Server) handleAddWeeklyTask(c *gin.Context) {
	var req weeklyTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	task, err := s.planner.AddWeeklyTask(c.Request.Context(), req.Description, req.Weekday)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTaskViews([]model.Task{*task})[0])
}

type extraTaskRequest struct {
	Description string `json:"description"`
}

func (s *Server) handleAddExtraTask(c *gin.Context) {
	var req extraTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	task, err := s.planner.AddExtraTask(c.Request.Context(), req.Description)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTaskViews([]model.Task{*task})[0])
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return
	}

	if err := s.planner.DeleteTask(c.Request.Context(), uint(id)); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleReset wipes the catalog and all occurrences. No confirmation,
// no undo.
func (s *Server) handleReset(c *gin.Context) {
	if err := s.planner.ResetAll(c.Request.Context()); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleGetTasksPerDay(c *gin.Context) {
	n, err := s.settings.GetInt(c.Request.Context(), service.SettingTasksPerDay, 7)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": service.SettingTasksPerDay, "value": n})
}

type tasksPerDayRequest struct {
	// Value is either a positive integer or the sentinel "custom",
	// which substitutes CustomValue.
	Value       string `json:"value"`
	CustomValue int    `json:"custom_value"`
}

func (s *Server) handleSetTasksPerDay(c *gin.Context) {
	var req tasksPerDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	value := req.Value
	if value == "custom" {
		value = strconv.Itoa(req.CustomValue)
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value must be a positive integer"})
		return
	}

	if err := s.settings.Set(c.Request.Context(), service.SettingTasksPerDay, strconv.Itoa(n)); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": service.SettingTasksPerDay, "value": n})
}
