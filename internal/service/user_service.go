package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"work-diary/backend/internal/dto"
	"work-diary/backend/internal/repository"
)

var ErrEmailInUse = errors.New("Email is already in use by another account")

// UserService covers profile maintenance.
type UserService interface {
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UpdateProfileResponse, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService creates the UserService.
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UpdateProfileResponse, error) {
	inUse, err := s.repo.User.EmailInUse(ctx, req.Email, userID)
	if err != nil {
		s.logger.Error("email lookup failed", zap.Error(err))
		return nil, err
	}
	if inUse {
		return nil, ErrEmailInUse
	}

	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Department = req.Department
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("profile update failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return &dto.UpdateProfileResponse{
		Message: "Profile updated successfully",
		User:    toUserResponse(user),
	}, nil
}
