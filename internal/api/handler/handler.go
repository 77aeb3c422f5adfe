package handler

import (
	"work-diary/backend/config"
	"work-diary/backend/internal/service"
)

// Handler aggregates the HTTP handlers.
type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Diary     *DiaryHandler
	Timetable *TimetableHandler
	Export    *ExportHandler
}

// NewHandler creates the Handler aggregate.
func NewHandler(cfg *config.Config, svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(cfg, svc.Auth),
		User:      NewUserHandler(cfg, svc.User),
		Diary:     NewDiaryHandler(cfg, svc.Diary),
		Timetable: NewTimetableHandler(cfg, svc.Timetable, svc.Reminder),
		Export:    NewExportHandler(cfg, svc.Export),
	}
}
