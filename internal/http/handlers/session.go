package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	study "github.com/yungbote/studyhours-backend/internal/domain/study"
	"github.com/yungbote/studyhours-backend/internal/study/timer"
)

// POST /api/sessions/manual
// body: { "subjectId": "...", "hours": 1, "minutes": 30, "date": "2025-03-10" }
func (h *StudyHandler) AddManualSession(c *gin.Context) {
	var req struct {
		SubjectID       string `json:"subjectId"`
		Hours           int    `json:"hours"`
		Minutes         int    `json:"minutes"`
		DurationSeconds int    `json:"durationSeconds"`
		Date            string `json:"date"`
	}
	if !bind(c, &req) {
		return
	}
	seconds := req.DurationSeconds
	if seconds == 0 {
		seconds = timer.ManualDuration(req.Hours, req.Minutes)
	}
	sess, err := h.study.AddManualSession(c.Request.Context(), userID(c), req.SubjectID, seconds, req.Date)
	reply(c, http.StatusCreated, gin.H{"session": sess}, err)
}

// POST /api/sessions
// body: { "subjectId", "duration", "date"?, "startTime"?, "status"? }
func (h *StudyHandler) RecordSession(c *gin.Context) {
	var rec study.SessionRecord
	if !bind(c, &rec) {
		return
	}
	sess, err := h.study.RecordSession(c.Request.Context(), userID(c), rec)
	reply(c, http.StatusCreated, gin.H{"session": sess}, err)
}

// DELETE /api/sessions/:id
func (h *StudyHandler) DeleteSession(c *gin.Context) {
	err := h.study.DeleteSession(c.Request.Context(), userID(c), c.Param("id"))
	reply(c, http.StatusOK, gin.H{"ok": true}, err)
}

// PATCH /api/sessions/:id/status
// body: { "status": "completed" | "incomplete" }
func (h *StudyHandler) UpdateSessionStatus(c *gin.Context) {
	var req struct {
		Status study.SessionStatus `json:"status"`
	}
	if !bind(c, &req) {
		return
	}
	err := h.study.UpdateSessionStatus(c.Request.Context(), userID(c), c.Param("id"), req.Status)
	reply(c, http.StatusOK, gin.H{"ok": true}, err)
}

// GET /api/sessions?date=YYYY-MM-DD
// Without date the whole log is returned.
func (h *StudyHandler) ListSessions(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		snap, err := h.study.State(c.Request.Context(), userID(c))
		reply(c, http.StatusOK, gin.H{"sessions": snap.Sessions}, err)
		return
	}
	sessions, err := h.study.SessionsOnDate(c.Request.Context(), userID(c), date)
	reply(c, http.StatusOK, gin.H{"date": date, "sessions": sessions}, err)
}
