package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"work-diary/backend/config"
	"work-diary/backend/internal/dto"
	"work-diary/backend/internal/model"
	"work-diary/backend/internal/service"
	"work-diary/backend/pkg/response"
)

// TimetableHandler serves timetable generation, schedules and class
// reminders.
type TimetableHandler struct {
	cfg          *config.Config
	timetableSvc service.TimetableService
	reminderSvc  service.ReminderService
}

// NewTimetableHandler creates the TimetableHandler.
func NewTimetableHandler(cfg *config.Config, timetableSvc service.TimetableService, reminderSvc service.ReminderService) *TimetableHandler {
	return &TimetableHandler{cfg: cfg, timetableSvc: timetableSvc, reminderSvc: reminderSvc}
}

// Generate rebuilds every faculty member's weekly timetable.
// POST /api/v1/timetable/generate
func (h *TimetableHandler) Generate(c *gin.Context) {
	result, err := h.timetableSvc.Generate(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoFaculty) {
			response.NotFound(c, err.Error())
			return
		}
		response.InternalError(c, h.cfg.Feature.DevMode, err.Error())
		return
	}

	response.OK(c, result)
}

// Schedule returns the caller's weekly timetable. Admins may pass
// ?user_id= to view another member's schedule.
// GET /api/v1/timetable/schedule
func (h *TimetableHandler) Schedule(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	if target := c.Query("user_id"); target != "" {
		role, rok := MustGetRole(c)
		if !rok {
			return
		}
		if role != model.RoleAdmin {
			response.Forbidden(c, "Access denied")
			return
		}
		userID = target
	}

	result, err := h.timetableSvc.Schedule(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, h.cfg.Feature.DevMode, err.Error())
		return
	}

	response.OK(c, result)
}

// ScheduleICS streams the caller's timetable as an iCalendar feed.
// GET /api/v1/timetable/schedule.ics
func (h *TimetableHandler) ScheduleICS(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	cal, err := h.timetableSvc.ExportICS(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, h.cfg.Feature.DevMode, err.Error())
		return
	}

	c.Header("Content-Disposition", `attachment; filename="schedule.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(cal))
}

// SendReminder pushes an SMS or voice reminder for one scheduled class.
// POST /api/v1/faculty/send-reminder
func (h *TimetableHandler) SendReminder(c *gin.Context) {
	var req dto.SendReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Class ID is required")
		return
	}

	result, err := h.reminderSvc.SendClassReminder(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClassNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, service.ErrPhoneNotConfigured):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrReminderFailed):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c, h.cfg.Feature.DevMode, err.Error())
		}
		return
	}

	response.OK(c, result)
}
