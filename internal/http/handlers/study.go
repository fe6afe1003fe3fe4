package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	study "github.com/yungbote/studyhours-backend/internal/domain/study"
	"github.com/yungbote/studyhours-backend/internal/http/response"
	"github.com/yungbote/studyhours-backend/internal/services"
)

type StudyHandler struct {
	study services.StudyService
}

func NewStudyHandler(studySvc services.StudyService) *StudyHandler {
	return &StudyHandler{study: studySvc}
}

// GET /api/state
func (h *StudyHandler) GetState(c *gin.Context) {
	snap, err := h.study.State(c.Request.Context(), userID(c))
	reply(c, http.StatusOK, gin.H{"state": snap}, err)
}

// PUT /api/settings
// body: any subset of the settings fields
func (h *StudyHandler) UpdateSettings(c *gin.Context) {
	var patch study.SettingsPatch
	if !bind(c, &patch) {
		return
	}
	settings, err := h.study.UpdateSettings(c.Request.Context(), userID(c), patch)
	reply(c, http.StatusOK, gin.H{"settings": settings}, err)
}

// POST /api/months
// body: { "name": "...", "year": 2025 }
func (h *StudyHandler) CreateMonth(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
		Year int    `json:"year"`
	}
	if !bind(c, &req) {
		return
	}
	m, err := h.study.AddMonth(c.Request.Context(), userID(c), req.Name, req.Year)
	reply(c, http.StatusCreated, gin.H{"month": m}, err)
}

// PATCH /api/months/:id
func (h *StudyHandler) RenameMonth(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if !bind(c, &req) {
		return
	}
	err := h.study.EditMonth(c.Request.Context(), userID(c), c.Param("id"), req.Name)
	reply(c, http.StatusOK, gin.H{"ok": true}, err)
}

// DELETE /api/months/:id
func (h *StudyHandler) DeleteMonth(c *gin.Context) {
	err := h.study.DeleteMonth(c.Request.Context(), userID(c), c.Param("id"))
	reply(c, http.StatusOK, gin.H{"ok": true}, err)
}

// POST /api/months/:id/duplicate
func (h *StudyHandler) DuplicateMonth(c *gin.Context) {
	m, err := h.study.DuplicateMonth(c.Request.Context(), userID(c), c.Param("id"))
	if m == nil && err == nil {
		notFound(c, "month")
		return
	}
	reply(c, http.StatusCreated, gin.H{"month": m}, err)
}

// GET /api/months/:id/progress
func (h *StudyHandler) MonthProgress(c *gin.Context) {
	p, err := h.study.MonthProgress(c.Request.Context(), userID(c), c.Param("id"))
	reply(c, http.StatusOK, gin.H{"progress": p}, err)
}

// GET /api/months/:id/subjects
func (h *StudyHandler) MonthSubjects(c *gin.Context) {
	subs, err := h.study.MonthSubjects(c.Request.Context(), userID(c), c.Param("id"))
	reply(c, http.StatusOK, gin.H{"subjects": subs}, err)
}

// POST /api/subjects
// body: { "title": "...", "monthId": "..." }
func (h *StudyHandler) CreateSubject(c *gin.Context) {
	var req struct {
		Title   string `json:"title"`
		MonthID string `json:"monthId"`
	}
	if !bind(c, &req) {
		return
	}
	sub, err := h.study.AddSubject(c.Request.Context(), userID(c), req.Title, req.MonthID)
	reply(c, http.StatusCreated, gin.H{"subject": sub}, err)
}

// POST /api/subjects/batch
// body: { "titles": ["..."], "monthId": "..." }
func (h *StudyHandler) CreateSubjects(c *gin.Context) {
	var req struct {
		Titles  []string `json:"titles"`
		MonthID string   `json:"monthId"`
	}
	if !bind(c, &req) {
		return
	}
	subs, err := h.study.AddSubjects(c.Request.Context(), userID(c), req.Titles, req.MonthID)
	reply(c, http.StatusCreated, gin.H{"subjects": subs}, err)
}

// DELETE /api/subjects/:id
func (h *StudyHandler) DeleteSubject(c *gin.Context) {
	err := h.study.DeleteSubject(c.Request.Context(), userID(c), c.Param("id"))
	reply(c, http.StatusOK, gin.H{"ok": true}, err)
}

// POST /api/subjects/:id/subtopics
// body: { "title": "..." } or { "titles": ["..."] }
func (h *StudyHandler) AddSubtopics(c *gin.Context) {
	var req struct {
		Title  string   `json:"title"`
		Titles []string `json:"titles"`
	}
	if !bind(c, &req) {
		return
	}
	titles := make([]string, 0, len(req.Titles)+1)
	for _, t := range append([]string{req.Title}, req.Titles...) {
		if t = strings.TrimSpace(t); t != "" {
			titles = append(titles, t)
		}
	}
	if len(titles) == 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("no subtopic titles"))
		return
	}
	added, err := h.study.AddSubtopics(c.Request.Context(), userID(c), c.Param("id"), titles)
	if err == nil && len(added) == 0 {
		notFound(c, "subject")
		return
	}
	reply(c, http.StatusCreated, gin.H{"subtopics": added}, err)
}

// DELETE /api/state
// Wipes the caller's months, subjects, schedules, sessions and settings.
func (h *StudyHandler) ResetState(c *gin.Context) {
	err := h.study.Reset(c.Request.Context(), userID(c))
	reply(c, http.StatusOK, gin.H{"ok": true}, err)
}

// POST /api/subjects/:id/subtopics/:subtopicId/toggle
func (h *StudyHandler) ToggleSubtopic(c *gin.Context) {
	err := h.study.ToggleSubtopic(c.Request.Context(), userID(c), c.Param("id"), c.Param("subtopicId"))
	reply(c, http.StatusOK, gin.H{"ok": true}, err)
}

// GET /api/subjects/:id/hours
func (h *StudyHandler) SubjectHours(c *gin.Context) {
	hours, err := h.study.SubjectHours(c.Request.Context(), userID(c), c.Param("id"))
	reply(c, http.StatusOK, gin.H{"hours": hours}, err)
}
