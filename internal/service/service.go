package service

import (
	"go.uber.org/zap"

	"work-diary/backend/config"
	"work-diary/backend/internal/repository"
	"work-diary/backend/pkg/jwt"
	"work-diary/backend/pkg/mail"
	"work-diary/backend/pkg/redis"
	"work-diary/backend/pkg/sms"
)

// Service aggregates the business-logic interfaces.
type Service struct {
	Auth      AuthService
	User      UserService
	Diary     DiaryService
	Timetable TimetableService
	Export    ExportService
	Reminder  ReminderService
}

// NewService wires all service implementations. rdb may be nil (token
// blacklisting degrades to a no-op).
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	mailer *mail.Mailer,
	sender *sms.Sender,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:      NewAuthService(cfg, repo, jwtMgr, rdb, mailer, logger),
		User:      NewUserService(repo, logger),
		Diary:     NewDiaryService(repo, mailer, logger),
		Timetable: NewTimetableService(repo, logger),
		Export:    NewExportService(repo, logger),
		Reminder:  NewReminderService(cfg, repo, sender, logger),
	}
}
