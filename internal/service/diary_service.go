package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"work-diary/backend/internal/dto"
	"work-diary/backend/internal/model"
	"work-diary/backend/internal/repository"
	"work-diary/backend/pkg/mail"
)

var (
	ErrInvalidDate        = errors.New("Invalid date format")
	ErrAttendanceMismatch = errors.New("Present and absent students cannot exceed total students")
	ErrEntryNotFound      = errors.New("Entry not found")
	ErrInvalidStatus      = errors.New("Status must be pending, approved or rejected")
)

// DiaryService covers work-diary submission and admin review.
type DiaryService interface {
	// Create stores a new entry for the caller. Status is always forced
	// to pending regardless of the request.
	Create(ctx context.Context, userID string, req *dto.CreateEntryRequest) (*dto.CreateEntryResponse, error)
	// ListOwn returns the caller's entries, newest date first.
	ListOwn(ctx context.Context, userID string) (*dto.EntryListResponse, error)
	// AdminReports returns all entries grouped by department, optionally
	// restricted to one calendar day.
	AdminReports(ctx context.Context, date *time.Time) (dto.ReportsResponse, error)
	// UpdateStatus mutates only the status field of one entry and sends
	// the matching notification.
	UpdateStatus(ctx context.Context, req *dto.UpdateStatusRequest) (*dto.UpdateStatusResponse, error)
}

type diaryService struct {
	repo   *repository.Repository
	mailer *mail.Mailer
	logger *zap.Logger
}

// NewDiaryService creates the DiaryService.
func NewDiaryService(repo *repository.Repository, mailer *mail.Mailer, logger *zap.Logger) DiaryService {
	return &diaryService{repo: repo, mailer: mailer, logger: logger}
}

// parseEntryDate accepts the date either as 2006-01-02 or full RFC3339.
func parseEntryDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func (s *diaryService) Create(ctx context.Context, userID string, req *dto.CreateEntryRequest) (*dto.CreateEntryResponse, error) {
	date, err := parseEntryDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if req.Present+req.Absent > req.TotalStudents {
		return nil, ErrAttendanceMismatch
	}

	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	entry := model.WorkDiaryEntry{
		UserID:          user.UserID,
		Date:            date,
		Activities:      req.Activities,
		Task:            req.Task,
		Hours:           req.Hours,
		TotalStudents:   req.TotalStudents,
		PresentStudents: req.Present,
		AbsentStudents:  req.Absent,
		Status:          model.StatusPending,
	}
	if err := s.repo.Diary.Create(ctx, &entry); err != nil {
		s.logger.Error("entry creation failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	body := fmt.Sprintf(`<h1>Work Diary Entry Submitted</h1>
<p>Dear %s,</p>
<p>Your work diary entry for %s has been submitted.</p>
<p>Task: %s</p>
<p>Total Students: %d</p>
<p>Present: %d</p>
<p>Absent: %d</p>
<p>Status: pending</p>`,
		user.Name, date.Format("01/02/2006"), entry.Task,
		entry.TotalStudents, entry.PresentStudents, entry.AbsentStudents)
	if err := s.mailer.Send(user.Email, "Work Diary Entry Submitted", body); err != nil {
		s.logger.Warn("submission email not delivered", zap.Error(err))
	}

	return &dto.CreateEntryResponse{
		Success: true,
		Data:    dto.ToEntryResponse(entry),
	}, nil
}

func (s *diaryService) ListOwn(ctx context.Context, userID string) (*dto.EntryListResponse, error) {
	entries, err := s.repo.Diary.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("entry listing failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	list := make([]dto.EntryResponse, 0, len(entries))
	for _, e := range entries {
		list = append(list, dto.ToEntryResponse(e))
	}

	return &dto.EntryListResponse{
		Success: true,
		Count:   len(list),
		Data:    list,
	}, nil
}

func (s *diaryService) AdminReports(ctx context.Context, date *time.Time) (dto.ReportsResponse, error) {
	entries, err := s.repo.Diary.ListAll(ctx, date)
	if err != nil {
		s.logger.Error("reports listing failed", zap.Error(err))
		return nil, err
	}

	reports := make(dto.ReportsResponse)
	for _, e := range entries {
		dept := "Uncategorized"
		var faculty dto.UserResponse
		if e.User != nil {
			faculty = toUserResponse(e.User)
			if e.User.Department != "" {
				dept = e.User.Department
			}
		}
		reports[dept] = append(reports[dept], dto.ReportEntry{
			EntryResponse: dto.ToEntryResponse(e),
			Faculty:       faculty,
		})
	}

	return reports, nil
}

func (s *diaryService) UpdateStatus(ctx context.Context, req *dto.UpdateStatusRequest) (*dto.UpdateStatusResponse, error) {
	if !model.ValidStatus(req.Status) {
		return nil, ErrInvalidStatus
	}
	status := strings.ToLower(req.Status)

	// Confirm the entry exists before touching it.
	entry, err := s.repo.Diary.GetByID(ctx, req.EntryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	updated, err := s.repo.Diary.UpdateStatus(ctx, req.EntryID, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("status update failed", zap.String("entry_id", req.EntryID), zap.Error(err))
		return nil, err
	}

	s.notifyStatusChange(entry, status, req.Resend)

	return &dto.UpdateStatusResponse{
		Success: true,
		Data:    dto.ToEntryResponse(*updated),
	}, nil
}

// notifyStatusChange sends the review outcome to the entry's owner.
// Failures are logged and swallowed; the stored status has already
// changed and must stay changed.
func (s *diaryService) notifyStatusChange(entry *model.WorkDiaryEntry, status string, resend bool) {
	if entry.User == nil {
		return
	}
	faculty := entry.User
	formattedDate := entry.Date.Format("01/02/2006")

	titled := strings.ToUpper(status[:1]) + status[1:]
	subject := "Work Diary Entry " + titled
	body := fmt.Sprintf(`<h1>Work Diary Entry %s</h1>
<p>Your work diary entry for %s has been %s.</p>`, titled, formattedDate, status)

	if resend {
		subject = "Work Diary Entry Update Required"
		body = fmt.Sprintf(`<h1>Work Diary Entry Update Required</h1>
<p>Dear %s,</p>
<p>Your work diary entry for %s requires updates.</p>
<p>Please log in to your account and make the necessary changes.</p>`, faculty.Name, formattedDate)
	}

	if err := s.mailer.Send(faculty.Email, subject, body); err != nil {
		s.logger.Warn("status email not delivered",
			zap.String("email", faculty.Email),
			zap.String("status", status),
			zap.Error(err),
		)
	}
}
