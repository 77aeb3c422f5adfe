package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"work-diary/backend/config"
	"work-diary/backend/internal/dto"
	"work-diary/backend/internal/service"
	"work-diary/backend/pkg/response"
)

// DiaryHandler serves work-diary submission and admin review.
type DiaryHandler struct {
	cfg      *config.Config
	diarySvc service.DiaryService
}

// NewDiaryHandler creates the DiaryHandler.
func NewDiaryHandler(cfg *config.Config, diarySvc service.DiaryService) *DiaryHandler {
	return &DiaryHandler{cfg: cfg, diarySvc: diarySvc}
}

// CreateEntry submits a new work-diary entry for the caller.
// POST /api/v1/work-diary/entry
func (h *DiaryHandler) CreateEntry(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Date, activities, task and hours are required")
		return
	}

	result, err := h.diarySvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDate),
			errors.Is(err, service.ErrAttendanceMismatch):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, err.Error())
		default:
			response.InternalError(c, h.cfg.Feature.DevMode, err.Error())
		}
		return
	}

	response.Created(c, result)
}

// ListEntries returns the caller's entries, newest first.
// GET /api/v1/work-diary/entry
func (h *DiaryHandler) ListEntries(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.diarySvc.ListOwn(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, h.cfg.Feature.DevMode, err.Error())
		return
	}

	response.OK(c, result)
}

// parseDateQuery reads the optional ?date=2006-01-02 filter.
func parseDateQuery(c *gin.Context) (*time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return nil, true
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		response.BadRequest(c, "Invalid date format")
		return nil, false
	}
	return &d, true
}

// AdminReports returns all entries grouped by department.
// GET /api/v1/admin/reports
func (h *DiaryHandler) AdminReports(c *gin.Context) {
	date, ok := parseDateQuery(c)
	if !ok {
		return
	}

	result, err := h.diarySvc.AdminReports(c.Request.Context(), date)
	if err != nil {
		response.InternalError(c, h.cfg.Feature.DevMode, err.Error())
		return
	}

	response.OK(c, result)
}

// UpdateStatus approves or rejects one entry.
// PUT /api/v1/admin/reports
func (h *DiaryHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Entry ID and status are required")
		return
	}

	result, err := h.diarySvc.UpdateStatus(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrEntryNotFound):
			response.NotFound(c, err.Error())
		default:
			response.InternalError(c, h.cfg.Feature.DevMode, err.Error())
		}
		return
	}

	response.OK(c, result)
}
