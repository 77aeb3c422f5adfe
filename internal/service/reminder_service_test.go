package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"work-diary/backend/internal/dto"
	"work-diary/backend/internal/model"
	"work-diary/backend/pkg/sms"
)

func TestSendClassReminder_ClassNotFound(t *testing.T) {
	repo, _, _, _ := newMockRepository()
	cfg := testConfig()
	cfg.SMS.FacultyPhone = "+911234567890"
	svc := NewReminderService(cfg, repo, sms.NewSender(&cfg.SMS, zap.NewNop()), zap.NewNop())

	_, err := svc.SendClassReminder(context.Background(), &dto.SendReminderRequest{
		ClassID: "missing",
	})
	if !errors.Is(err, ErrClassNotFound) {
		t.Errorf("expected ErrClassNotFound, got %v", err)
	}
}

func TestSendClassReminder_PhoneNotConfigured(t *testing.T) {
	repo, users, _, tt := newMockRepository()
	cfg := testConfig() // no faculty phone
	svc := NewReminderService(cfg, repo, sms.NewSender(&cfg.SMS, zap.NewNop()), zap.NewNop())

	u := seedFaculty(t, users, "Alice", "alice@college.edu", "Computer Science")
	tt.Replace(context.Background(), u.UserID, []model.Timetable{
		{FacultyID: u.UserID, Day: "Monday", StartTime: "09:00", EndTime: "10:00",
			Subject: "DBMS", Room: "Room 101", Department: u.Department, Semester: 3},
	})
	classID := tt.rows[u.UserID][0].TimetableID

	_, err := svc.SendClassReminder(context.Background(), &dto.SendReminderRequest{
		ClassID: classID,
	})
	if !errors.Is(err, ErrPhoneNotConfigured) {
		t.Errorf("expected ErrPhoneNotConfigured, got %v", err)
	}
}

func TestSendClassReminder_ProviderUnavailable(t *testing.T) {
	repo, users, _, tt := newMockRepository()
	cfg := testConfig()
	cfg.SMS.FacultyPhone = "+911234567890"
	// Sender without credentials reports failed results for every channel.
	svc := NewReminderService(cfg, repo, sms.NewSender(&cfg.SMS, zap.NewNop()), zap.NewNop())

	u := seedFaculty(t, users, "Alice", "alice@college.edu", "Computer Science")
	tt.Replace(context.Background(), u.UserID, []model.Timetable{
		{FacultyID: u.UserID, Day: "Monday", StartTime: "09:00", EndTime: "10:00",
			Subject: "DBMS", Room: "Room 101", Department: u.Department, Semester: 3},
	})
	classID := tt.rows[u.UserID][0].TimetableID

	_, err := svc.SendClassReminder(context.Background(), &dto.SendReminderRequest{
		ClassID:          classID,
		NotificationType: "both",
	})
	if !errors.Is(err, ErrReminderFailed) {
		t.Errorf("expected ErrReminderFailed, got %v", err)
	}
}

func TestSendClassReminder_SingleChannelFailure(t *testing.T) {
	repo, users, _, tt := newMockRepository()
	cfg := testConfig()
	cfg.SMS.FacultyPhone = "+911234567890"
	svc := NewReminderService(cfg, repo, sms.NewSender(&cfg.SMS, zap.NewNop()), zap.NewNop())

	u := seedFaculty(t, users, "Alice", "alice@college.edu", "Computer Science")
	tt.Replace(context.Background(), u.UserID, []model.Timetable{
		{FacultyID: u.UserID, Day: "Monday", StartTime: "09:00", EndTime: "10:00",
			Subject: "DBMS", Room: "Room 101", Department: u.Department, Semester: 3},
	})
	classID := tt.rows[u.UserID][0].TimetableID

	// A failed send on the one requested channel fails the request even
	// though the other channel was never attempted.
	for _, method := range []string{"sms", "call"} {
		_, err := svc.SendClassReminder(context.Background(), &dto.SendReminderRequest{
			ClassID:          classID,
			NotificationType: method,
		})
		if !errors.Is(err, ErrReminderFailed) {
			t.Errorf("method %s: expected ErrReminderFailed, got %v", method, err)
		}
	}
}
