package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"work-diary/backend/internal/dto"
)

func TestUpdateProfile_Success(t *testing.T) {
	repo, users, _, _ := newMockRepository()
	svc := NewUserService(repo, zap.NewNop())
	u := seedFaculty(t, users, "Alice", "alice@college.edu", "Computer Science")

	resp, err := svc.UpdateProfile(context.Background(), u.UserID, &dto.UpdateProfileRequest{
		Name:       "Alice Kumar",
		Email:      "alice.kumar@college.edu",
		Department: "Information Technology",
	})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	if resp.User.Name != "Alice Kumar" {
		t.Errorf("name not updated: %s", resp.User.Name)
	}
	if resp.User.Department != "Information Technology" {
		t.Errorf("department not updated: %s", resp.User.Department)
	}

	stored, _ := users.GetByID(context.Background(), u.UserID)
	if stored.Email != "alice.kumar@college.edu" {
		t.Errorf("email not persisted: %s", stored.Email)
	}
}

func TestUpdateProfile_KeepOwnEmail(t *testing.T) {
	repo, users, _, _ := newMockRepository()
	svc := NewUserService(repo, zap.NewNop())
	u := seedFaculty(t, users, "Alice", "alice@college.edu", "Computer Science")

	// Resubmitting the current email must not trip the uniqueness check.
	if _, err := svc.UpdateProfile(context.Background(), u.UserID, &dto.UpdateProfileRequest{
		Name:       "Alice",
		Email:      "alice@college.edu",
		Department: "Computer Science",
	}); err != nil {
		t.Errorf("keeping the same email should succeed: %v", err)
	}
}

func TestUpdateProfile_EmailTaken(t *testing.T) {
	repo, users, _, _ := newMockRepository()
	svc := NewUserService(repo, zap.NewNop())
	u := seedFaculty(t, users, "Alice", "alice@college.edu", "Computer Science")
	seedFaculty(t, users, "Bob", "bob@college.edu", "Mechanical Engineering")

	_, err := svc.UpdateProfile(context.Background(), u.UserID, &dto.UpdateProfileRequest{
		Name:       "Alice",
		Email:      "bob@college.edu",
		Department: "Computer Science",
	})
	if !errors.Is(err, ErrEmailInUse) {
		t.Errorf("expected ErrEmailInUse, got %v", err)
	}
}

func TestUpdateProfile_UserNotFound(t *testing.T) {
	repo, _, _, _ := newMockRepository()
	svc := NewUserService(repo, zap.NewNop())

	_, err := svc.UpdateProfile(context.Background(), "missing", &dto.UpdateProfileRequest{
		Name:       "Ghost",
		Email:      "ghost@college.edu",
		Department: "Computer Science",
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
