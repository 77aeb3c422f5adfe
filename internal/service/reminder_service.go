package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"work-diary/backend/config"
	"work-diary/backend/internal/dto"
	"work-diary/backend/internal/repository"
	"work-diary/backend/pkg/sms"
)

var (
	ErrClassNotFound      = errors.New("Class not found")
	ErrPhoneNotConfigured = errors.New("Faculty phone number is not configured")
	ErrReminderFailed     = errors.New("Failed to send reminder")
)

// ReminderService pushes class reminders to faculty phones over Twilio.
type ReminderService interface {
	// SendClassReminder notifies the configured faculty phone about one
	// scheduled class. method is "sms", "call" or "both"; empty means
	// "sms".
	SendClassReminder(ctx context.Context, req *dto.SendReminderRequest) (*dto.SendReminderResponse, error)
}

type reminderService struct {
	cfg    *config.Config
	repo   *repository.Repository
	sender *sms.Sender
	logger *zap.Logger
}

// NewReminderService creates the ReminderService.
func NewReminderService(cfg *config.Config, repo *repository.Repository, sender *sms.Sender, logger *zap.Logger) ReminderService {
	return &reminderService{cfg: cfg, repo: repo, sender: sender, logger: logger}
}

func (s *reminderService) SendClassReminder(ctx context.Context, req *dto.SendReminderRequest) (*dto.SendReminderResponse, error) {
	row, err := s.repo.Timetable.GetByID(ctx, req.ClassID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("class lookup failed", zap.String("class_id", req.ClassID), zap.Error(err))
		return nil, err
	}

	phone := s.cfg.SMS.FacultyPhone
	if phone == "" {
		return nil, ErrPhoneNotConfigured
	}

	method := req.NotificationType
	switch method {
	case "sms", "call", "both":
	default:
		method = "sms"
	}

	message := fmt.Sprintf("You have a %s class on %s at %s in %s.",
		row.Subject, time.Now().Format("Monday, January 2"), row.StartTime, row.Room)

	results := s.sender.SendNotification(phone, message, method, "Class Reminder")

	// Any requested channel failing fails the whole request.
	smsFailed := results.SMS == nil || !results.SMS.Success
	callFailed := results.Call == nil || !results.Call.Success
	failed := false
	switch method {
	case "sms":
		failed = smsFailed
	case "call":
		failed = callFailed
	case "both":
		failed = smsFailed || callFailed
	}
	if failed {
		s.logger.Warn("reminder delivery failed",
			zap.String("class_id", req.ClassID),
			zap.String("method", method),
		)
		return nil, ErrReminderFailed
	}

	s.logger.Info("class reminder sent",
		zap.String("class_id", req.ClassID),
		zap.String("method", method),
	)

	return &dto.SendReminderResponse{
		Success: true,
		Message: "Reminder sent successfully",
		Details: dto.ReminderDetails{
			To:     phone,
			Class:  row.Subject,
			Time:   fmt.Sprintf("%s %s-%s", row.Day, row.StartTime, row.EndTime),
			Room:   row.Room,
			Method: method,
			Result: results,
		},
	}, nil
}
