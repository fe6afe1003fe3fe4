package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/studyhours-backend/internal/http/handlers"
	httpMW "github.com/yungbote/studyhours-backend/internal/http/middleware"
	"github.com/yungbote/studyhours-backend/internal/observability"
	"github.com/yungbote/studyhours-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics

	// ServiceName turns on otelgin spans when set.
	ServiceName   string
	CORSOrigins   []string
	DefaultUserID string

	StudyHandler    *httpH.StudyHandler
	TimerHandler    *httpH.TimerHandler
	RealtimeHandler *httpH.RealtimeHandler
	HealthHandler   *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.RequestIDs())
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}
	r.Use(httpMW.Metrics(cfg.Metrics))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", func(c *gin.Context) { cfg.Metrics.WriteHTTP(c.Writer, c.Request) })
	}

	api := r.Group("/api")
	api.Use(httpMW.UserIdentity(cfg.DefaultUserID))

	if h := cfg.StudyHandler; h != nil {
		api.GET("/state", h.GetState)
		api.DELETE("/state", h.ResetState)
		api.PUT("/settings", h.UpdateSettings)

		// Months
		api.POST("/months", h.CreateMonth)
		api.PATCH("/months/:id", h.RenameMonth)
		api.DELETE("/months/:id", h.DeleteMonth)
		api.POST("/months/:id/duplicate", h.DuplicateMonth)
		api.GET("/months/:id/progress", h.MonthProgress)
		api.GET("/months/:id/subjects", h.MonthSubjects)

		// Subjects
		api.POST("/subjects", h.CreateSubject)
		api.POST("/subjects/batch", h.CreateSubjects)
		api.DELETE("/subjects/:id", h.DeleteSubject)
		api.POST("/subjects/:id/subtopics", h.AddSubtopics)
		api.POST("/subjects/:id/subtopics/:subtopicId/toggle", h.ToggleSubtopic)
		api.GET("/subjects/:id/hours", h.SubjectHours)

		// Schedule
		api.POST("/schedule/months", h.AddScheduleMonth)
		api.DELETE("/schedule/months/:monthKey", h.RemoveScheduleMonth)
		api.POST("/schedule/:monthKey/subjects/:id/toggle", h.ToggleSubjectInMonth)
		api.PATCH("/schedule/:monthKey/subjects/:id", h.UpdateSubjectSchedule)
		api.POST("/schedule/:monthKey/subjects/:id/days/:date/toggle", h.TogglePlannedDay)
		api.GET("/schedule/:monthKey/stats", h.ScheduleStats)
		api.GET("/schedule/:monthKey/agenda", h.Agenda)

		// Sessions
		api.GET("/sessions", h.ListSessions)
		api.POST("/sessions", h.RecordSession)
		api.POST("/sessions/manual", h.AddManualSession)
		api.DELETE("/sessions/:id", h.DeleteSession)
		api.PATCH("/sessions/:id/status", h.UpdateSessionStatus)

		// Stats
		api.GET("/stats/streaks", h.Streaks)
		api.GET("/stats/heatmap", h.Heatmap)
		api.GET("/stats/today", h.Today)
		api.GET("/stats/subjects", h.SubjectShares)
		api.GET("/stats/calendar/:monthKey", h.CalendarMonth)
	}

	if h := cfg.TimerHandler; h != nil {
		api.GET("/timer", h.Get)
		api.POST("/timer/start", h.Start)
		api.POST("/timer/pause", h.Pause)
		api.POST("/timer/resume", h.Resume)
		api.POST("/timer/stop", h.Stop)
	}

	// Realtime (SSE)
	if cfg.RealtimeHandler != nil {
		api.GET("/events", cfg.RealtimeHandler.Stream)
	}

	return r
}
