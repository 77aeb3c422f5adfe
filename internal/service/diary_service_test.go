package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"work-diary/backend/config"
	"work-diary/backend/internal/dto"
	"work-diary/backend/internal/model"
	"work-diary/backend/internal/repository"
	"work-diary/backend/pkg/mail"
)

func newTestDiaryService(repo *repository.Repository) DiaryService {
	logger := zap.NewNop()
	return NewDiaryService(repo, mail.NewMailer(&config.MailConfig{}, logger), logger)
}

func seedFaculty(t *testing.T, users *mockUserRepo, name, email, dept string) *model.User {
	t.Helper()
	u := &model.User{
		Name: name, Email: email, PasswordHash: "x",
		Role: model.RoleFaculty, Department: dept,
	}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("seeding user failed: %v", err)
	}
	return u
}

func TestCreateEntry_AlwaysPending(t *testing.T) {
	repo, users, _, _ := newMockRepository()
	svc := newTestDiaryService(repo)
	u := seedFaculty(t, users, "Alice", "alice@college.edu", "Computer Science")

	resp, err := svc.Create(context.Background(), u.UserID, &dto.CreateEntryRequest{
		Date:          "2026-09-01",
		Activities:    "Lectures and lab supervision",
		Task:          "Data Structures unit 3",
		Hours:         6,
		TotalStudents: 60,
		Present:       55,
		Absent:        5,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if resp.Data.Status != model.StatusPending {
		t.Errorf("new entries must be pending, got %s", resp.Data.Status)
	}
	if resp.Data.UserID != u.UserID {
		t.Errorf("entry owner mismatch: %s", resp.Data.UserID)
	}
}

func TestCreateEntry_InvalidDate(t *testing.T) {
	repo, users, _, _ := newMockRepository()
	svc := newTestDiaryService(repo)
	u := seedFaculty(t, users, "Alice", "alice@college.edu", "Computer Science")

	_, err := svc.Create(context.Background(), u.UserID, &dto.CreateEntryRequest{
		Date: "01/09/2026", Activities: "a", Task: "t", Hours: 1,
	})
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestCreateEntry_AttendanceExceedsTotal(t *testing.T) {
	repo, users, _, _ := newMockRepository()
	svc := newTestDiaryService(repo)
	u := seedFaculty(t, users, "Alice", "alice@college.edu", "Computer Science")

	_, err := svc.Create(context.Background(), u.UserID, &dto.CreateEntryRequest{
		Date: "2026-09-01", Activities: "a", Task: "t", Hours: 1,
		TotalStudents: 50, Present: 40, Absent: 20,
	})
	if !errors.Is(err, ErrAttendanceMismatch) {
		t.Errorf("expected ErrAttendanceMismatch, got %v", err)
	}
}

func TestListOwn_OnlyOwnEntries(t *testing.T) {
	repo, users, diary, _ := newMockRepository()
	svc := newTestDiaryService(repo)
	alice := seedFaculty(t, users, "Alice", "alice@college.edu", "Computer Science")
	bob := seedFaculty(t, users, "Bob", "bob@college.edu", "Mechanical Engineering")

	for _, uid := range []string{alice.UserID, alice.UserID, bob.UserID} {
		diary.Create(context.Background(), &model.WorkDiaryEntry{
			UserID: uid, Date: time.Now(), Activities: "a", Task: "t",
			Hours: 2, Status: model.StatusPending,
		})
	}

	resp, err := svc.ListOwn(context.Background(), alice.UserID)
	if err != nil {
		t.Fatalf("ListOwn failed: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("expected 2 entries, got %d", resp.Count)
	}
	for _, e := range resp.Data {
		if e.UserID != alice.UserID {
			t.Errorf("foreign entry leaked into listing: %+v", e)
		}
	}
}

func TestAdminReports_GroupedByDepartment(t *testing.T) {
	repo, users, diary, _ := newMockRepository()
	svc := newTestDiaryService(repo)
	alice := seedFaculty(t, users, "Alice", "alice@college.edu", "Computer Science")
	bob := seedFaculty(t, users, "Bob", "bob@college.edu", "")

	diary.Create(context.Background(), &model.WorkDiaryEntry{
		UserID: alice.UserID, Date: time.Now(), Activities: "a", Task: "t",
		Hours: 2, Status: model.StatusPending,
	})
	diary.Create(context.Background(), &model.WorkDiaryEntry{
		UserID: bob.UserID, Date: time.Now(), Activities: "b", Task: "t",
		Hours: 3, Status: model.StatusPending,
	})

	reports, err := svc.AdminReports(context.Background(), nil)
	if err != nil {
		t.Fatalf("AdminReports failed: %v", err)
	}

	if len(reports["Computer Science"]) != 1 {
		t.Errorf("expected 1 Computer Science entry, got %d", len(reports["Computer Science"]))
	}
	if len(reports["Uncategorized"]) != 1 {
		t.Errorf("entries without a department should fall into Uncategorized, got %d", len(reports["Uncategorized"]))
	}
	if got := reports["Computer Science"][0].Faculty.Name; got != "Alice" {
		t.Errorf("expected faculty Alice, got %s", got)
	}
}

func TestAdminReports_DateFilter(t *testing.T) {
	repo, users, diary, _ := newMockRepository()
	svc := newTestDiaryService(repo)
	alice := seedFaculty(t, users, "Alice", "alice@college.edu", "Computer Science")

	day1 := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	diary.Create(context.Background(), &model.WorkDiaryEntry{
		UserID: alice.UserID, Date: day1, Activities: "a", Task: "t", Hours: 2, Status: model.StatusPending,
	})
	diary.Create(context.Background(), &model.WorkDiaryEntry{
		UserID: alice.UserID, Date: day2, Activities: "b", Task: "t", Hours: 2, Status: model.StatusPending,
	})

	reports, err := svc.AdminReports(context.Background(), &day1)
	if err != nil {
		t.Fatalf("AdminReports failed: %v", err)
	}
	total := 0
	for _, list := range reports {
		total += len(list)
	}
	if total != 1 {
		t.Errorf("expected 1 entry for the filtered day, got %d", total)
	}
}

func TestUpdateStatus_OnlyStatusChanges(t *testing.T) {
	repo, users, diary, _ := newMockRepository()
	svc := newTestDiaryService(repo)
	alice := seedFaculty(t, users, "Alice", "alice@college.edu", "Computer Science")

	entry := &model.WorkDiaryEntry{
		UserID: alice.UserID, Date: time.Now(), Activities: "a", Task: "original task",
		Hours: 2, Status: model.StatusPending,
	}
	diary.Create(context.Background(), entry)

	resp, err := svc.UpdateStatus(context.Background(), &dto.UpdateStatusRequest{
		EntryID: entry.EntryID,
		Status:  "Approved",
	})
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	if resp.Data.Status != model.StatusApproved {
		t.Errorf("expected approved, got %s", resp.Data.Status)
	}
	if resp.Data.Task != "original task" {
		t.Errorf("non-status fields must stay untouched, got task %q", resp.Data.Task)
	}
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	repo, _, _, _ := newMockRepository()
	svc := newTestDiaryService(repo)

	_, err := svc.UpdateStatus(context.Background(), &dto.UpdateStatusRequest{
		EntryID: "whatever",
		Status:  "archived",
	})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo, _, _, _ := newMockRepository()
	svc := newTestDiaryService(repo)

	_, err := svc.UpdateStatus(context.Background(), &dto.UpdateStatusRequest{
		EntryID: "missing",
		Status:  model.StatusRejected,
	})
	if !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
}
