package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/stats/streaks
func (h *StudyHandler) Streaks(c *gin.Context) {
	st, err := h.study.Streaks(c.Request.Context(), userID(c))
	reply(c, http.StatusOK, gin.H{"streaks": st}, err)
}

// GET /api/stats/heatmap
func (h *StudyHandler) Heatmap(c *gin.Context) {
	days, err := h.study.Heatmap(c.Request.Context(), userID(c))
	reply(c, http.StatusOK, gin.H{"days": days}, err)
}

// GET /api/stats/today
func (h *StudyHandler) Today(c *gin.Context) {
	today, err := h.study.Today(c.Request.Context(), userID(c))
	reply(c, http.StatusOK, gin.H{"today": today}, err)
}

// GET /api/stats/subjects
func (h *StudyHandler) SubjectShares(c *gin.Context) {
	shares, err := h.study.SubjectShares(c.Request.Context(), userID(c))
	reply(c, http.StatusOK, gin.H{"subjects": shares}, err)
}

// GET /api/stats/calendar/:monthKey
func (h *StudyHandler) CalendarMonth(c *gin.Context) {
	month, err := h.study.CalendarMonth(c.Request.Context(), userID(c), c.Param("monthKey"))
	reply(c, http.StatusOK, gin.H{"calendar": month}, err)
}
