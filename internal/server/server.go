package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"dualtrack/internal/repository"
	"dualtrack/internal/service"
)

// Server exposes the planner, materializer, scoring and journal
// services over a JSON API.
type Server struct {
	planner      *service.PlannerService
	materializer *service.Materializer
	scoring      *service.ScoringService
	journal      *service.JournalService
	settings     *repository.SettingRepository
	maxUpload    int64
	photoDir     string
	log          *zap.Logger

	// now is swappable in tests to pin "today".
	now func() time.Time

	engine *gin.Engine
}

func New(
	planner *service.PlannerService,
	materializer *service.Materializer,
	scoring *service.ScoringService,
	journal *service.JournalService,
	settings *repository.SettingRepository,
	maxUpload int64,
	photoDir string,
	log *zap.Logger,
) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		planner:      planner,
		materializer: materializer,
		scoring:      scoring,
		journal:      journal,
		settings:     settings,
		maxUpload:    maxUpload,
		photoDir:     photoDir,
		log:          log,
		now:          time.Now,
	}
	s.engine = s.buildRouter()
	return s
}

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	r.MaxMultipartMemory = s.maxUpload

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/photos", s.photoDir)

	api := r.Group("/api")
	{
		api.GET("/dashboard", s.handleDashboard)
		api.POST("/occurrences/:id/complete", s.handleComplete)
		api.POST("/day/shuffle", s.handleShuffle)

		api.GET("/planner", s.handleWeekPlan)
		api.POST("/tasks/weekly", s.handleAddWeeklyTask)
		api.POST("/tasks/extra", s.handleAddExtraTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)
		api.POST("/reset", s.handleReset)

		api.GET("/settings/tasks_per_day", s.handleGetTasksPerDay)
		api.PUT("/settings/tasks_per_day", s.handleSetTasksPerDay)

		api.POST("/achievements", s.handleRecordAchievement)
		api.GET("/achievements", s.handleListAchievements)
		api.POST("/moments", s.handleRecordMoment)
		api.GET("/moments", s.handleListMoments)
	}

	return r
}

// Router returns the underlying gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.engine
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// respondError maps service errors onto HTTP statuses.
func (s *Server) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnsupportedFileType):
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPolicyDisabled):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		s.log.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
