package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	study "github.com/yungbote/studyhours-backend/internal/domain/study"
)

// POST /api/schedule/months
// body: { "monthKey": "2025-03" }
func (h *StudyHandler) AddScheduleMonth(c *gin.Context) {
	var req struct {
		MonthKey string `json:"monthKey"`
	}
	if !bind(c, &req) {
		return
	}
	err := h.study.AddScheduleMonth(c.Request.Context(), userID(c), req.MonthKey)
	reply(c, http.StatusOK, gin.H{"ok": true}, err)
}

// DELETE /api/schedule/months/:monthKey
func (h *StudyHandler) RemoveScheduleMonth(c *gin.Context) {
	err := h.study.RemoveScheduleMonth(c.Request.Context(), userID(c), c.Param("monthKey"))
	reply(c, http.StatusOK, gin.H{"ok": true}, err)
}

// POST /api/schedule/:monthKey/subjects/:id/toggle
func (h *StudyHandler) ToggleSubjectInMonth(c *gin.Context) {
	on, err := h.study.ToggleSubjectInMonth(c.Request.Context(), userID(c), c.Param("id"), c.Param("monthKey"))
	reply(c, http.StatusOK, gin.H{"scheduled": on}, err)
}

// PATCH /api/schedule/:monthKey/subjects/:id
func (h *StudyHandler) UpdateSubjectSchedule(c *gin.Context) {
	var patch study.SchedulePatch
	if !bind(c, &patch) {
		return
	}
	sched, err := h.study.UpdateSubjectSchedule(c.Request.Context(), userID(c), c.Param("id"), c.Param("monthKey"), patch)
	if sched == nil && err == nil {
		notFound(c, "subject")
		return
	}
	reply(c, http.StatusOK, gin.H{"schedule": sched}, err)
}

// POST /api/schedule/:monthKey/subjects/:id/days/:date/toggle
func (h *StudyHandler) TogglePlannedDay(c *gin.Context) {
	on, err := h.study.ToggleSubjectPlannedDay(c.Request.Context(), userID(c), c.Param("id"), c.Param("monthKey"), c.Param("date"))
	reply(c, http.StatusOK, gin.H{"planned": on}, err)
}

// GET /api/schedule/:monthKey/stats
func (h *StudyHandler) ScheduleStats(c *gin.Context) {
	st, err := h.study.ScheduleStats(c.Request.Context(), userID(c), c.Param("monthKey"))
	reply(c, http.StatusOK, gin.H{"stats": st}, err)
}

// GET /api/schedule/:monthKey/agenda
func (h *StudyHandler) Agenda(c *gin.Context) {
	agenda, err := h.study.Agenda(c.Request.Context(), userID(c), c.Param("monthKey"))
	reply(c, http.StatusOK, gin.H{"agenda": agenda}, err)
}
