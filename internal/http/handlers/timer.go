package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/studyhours-backend/internal/services"
)

type TimerHandler struct {
	timer services.TimerService
}

func NewTimerHandler(timerSvc services.TimerService) *TimerHandler {
	return &TimerHandler{timer: timerSvc}
}

// GET /api/timer
func (h *TimerHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"timer": h.timer.Get(c.Request.Context(), userID(c))})
}

// POST /api/timer/start
// body: { "subjectId": "..." }
func (h *TimerHandler) Start(c *gin.Context) {
	var req struct {
		SubjectID string `json:"subjectId"`
	}
	if !bind(c, &req) {
		return
	}
	st, err := h.timer.Start(c.Request.Context(), userID(c), req.SubjectID)
	reply(c, http.StatusOK, gin.H{"timer": st}, err)
}

// POST /api/timer/pause
func (h *TimerHandler) Pause(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"timer": h.timer.Pause(c.Request.Context(), userID(c))})
}

// POST /api/timer/resume
func (h *TimerHandler) Resume(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"timer": h.timer.Resume(c.Request.Context(), userID(c))})
}

// POST /api/timer/stop
// Runs of ten seconds or less come back without a session.
func (h *TimerHandler) Stop(c *gin.Context) {
	res, err := h.timer.Stop(c.Request.Context(), userID(c))
	reply(c, http.StatusOK, gin.H{"timer": res.Timer, "seconds": res.Seconds, "session": res.Session}, err)
}
