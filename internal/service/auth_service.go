package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"work-diary/backend/config"
	"work-diary/backend/internal/dto"
	"work-diary/backend/internal/model"
	"work-diary/backend/internal/repository"
	"work-diary/backend/pkg/jwt"
	"work-diary/backend/pkg/mail"
	"work-diary/backend/pkg/redis"
)

// Error messages double as user-facing response text; handlers map them
// onto HTTP statuses.
var (
	ErrMissingFields        = errors.New("Name, email, and password are required")
	ErrDepartmentRequired   = errors.New("Department is required for faculty members")
	ErrPasswordTooShort     = errors.New("Password must be at least 6 characters long")
	ErrEmailExists          = errors.New("User already exists")
	ErrInvalidCredentials   = errors.New("Invalid email or password")
	ErrResetTokenInvalid    = errors.New("Invalid or expired token")
	ErrCurrentPasswordWrong = errors.New("Current password is incorrect")
	ErrUserNotFound         = errors.New("User not found")
)

const (
	minPasswordLen  = 6
	resetTokenTTL   = time.Hour
	resetTokenBytes = 32

	adminDefaultDepartment    = "Administration"
	downgradeFallbackDept     = "Computer Science"
	forgotPasswordNeutralBody = "If your email exists in our system, you will receive a password reset link shortly"
)

// AuthService covers registration, login/logout, and the password
// lifecycle.
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	// Logout blacklists the token until it would have expired anyway.
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	// ForgotPassword responds identically whether or not the email
	// exists, to avoid user enumeration.
	ForgotPassword(ctx context.Context, email string) (*dto.MessageResponse, error)
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) (*dto.MessageResponse, error)
	ChangePassword(ctx context.Context, email string, req *dto.ChangePasswordRequest) (*dto.MessageResponse, error)
	GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	mailer *mail.Mailer
	logger *zap.Logger
}

// NewAuthService creates the AuthService.
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	mailer *mail.Mailer,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		mailer: mailer,
		logger: logger,
	}
}

// Register creates a user account. At most one admin may exist: a second
// admin registration is downgraded to faculty with a warning rather than
// rejected.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, ErrMissingFields
	}
	if len(req.Password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}

	role := req.Role
	if role == "" {
		role = model.RoleFaculty
	}
	department := req.Department

	if role == model.RoleFaculty && department == "" {
		return nil, ErrDepartmentRequired
	}
	if role == model.RoleAdmin && department == "" {
		department = adminDefaultDepartment
	}

	if exists, err := s.repo.User.EmailInUse(ctx, req.Email, ""); err != nil {
		s.logger.Error("email lookup failed", zap.Error(err))
		return nil, err
	} else if exists {
		return nil, ErrEmailExists
	}

	// Single-admin constraint: downgrade, do not reject.
	var warning string
	originalRole := role
	if role == model.RoleAdmin {
		_, err := s.repo.User.GetByRole(ctx, model.RoleAdmin)
		switch {
		case err == nil:
			warning = "An admin already exists. Your account has been created as faculty instead."
			role = model.RoleFaculty
			if department == "" || department == adminDefaultDepartment {
				department = downgradeFallbackDept
				warning += " You have been assigned to the " + downgradeFallbackDept + " department."
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// no admin yet, proceed
		default:
			s.logger.Error("admin lookup failed", zap.Error(err))
			role = model.RoleFaculty
			if department == "" {
				department = downgradeFallbackDept
			}
			warning = "Unable to verify admin status. Your account has been created as faculty."
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("password hashing failed", zap.Error(err))
		return nil, err
	}

	user := model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		Department:   department,
		Phone:        req.Phone,
	}
	if err := s.repo.User.Create(ctx, &user); err != nil {
		s.logger.Error("user creation failed", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}

	s.sendWelcomeEmail(&user, warning)

	s.logger.Info("user registered",
		zap.String("email", user.Email),
		zap.String("role", user.Role),
	)

	return &dto.RegisterResponse{
		Message:     "User registered successfully",
		User:        toUserResponse(&user),
		Warning:     warning,
		RoleChanged: originalRole != role,
	}, nil
}

// Login verifies the password and issues a bearer token. Unknown email
// and wrong password produce the identical error.
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("user lookup failed", zap.Error(err))
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtMgr.Generate(user.UserID, user.Email, user.Role)
	if err != nil {
		s.logger.Error("token generation failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("login successful",
		zap.String("email", user.Email),
		zap.String("role", user.Role),
	)

	return &dto.LoginResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if s.rdb == nil {
		return nil // no blacklist without redis
	}
	return s.rdb.BlacklistToken(ctx, jti, time.Until(expiresAt))
}

func (s *authService) ForgotPassword(ctx context.Context, email string) (*dto.MessageResponse, error) {
	neutral := &dto.MessageResponse{Message: forgotPasswordNeutralBody}

	user, err := s.repo.User.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return neutral, nil
		}
		s.logger.Error("user lookup failed", zap.Error(err))
		return nil, err
	}

	raw := make([]byte, resetTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	token := hex.EncodeToString(raw)
	expires := time.Now().Add(resetTokenTTL)

	user.ResetPasswordToken = &token
	user.ResetPasswordExpires = &expires
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("reset token save failed", zap.Error(err))
		return nil, err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.Server.BaseURL, token)
	if err := s.mailer.Send(user.Email, "Password Reset Request", resetEmailBody(user.Name, resetURL)); err != nil {
		// Keep the response indistinguishable from the unknown-email case.
		s.logger.Warn("reset email not delivered", zap.String("email", user.Email), zap.Error(err))
	}

	return neutral, nil
}

func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) (*dto.MessageResponse, error) {
	if len(req.Password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}

	user, err := s.repo.User.GetByResetToken(ctx, req.Token, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResetTokenInvalid
		}
		s.logger.Error("reset token lookup failed", zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = string(hash)
	user.ResetPasswordToken = nil
	user.ResetPasswordExpires = nil
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("password reset save failed", zap.Error(err))
		return nil, err
	}

	if err := s.mailer.Send(user.Email, "Password Reset Successful", resetConfirmationBody(user.Name)); err != nil {
		s.logger.Warn("reset confirmation email not delivered", zap.Error(err))
	}

	s.logger.Info("password reset", zap.String("email", user.Email))

	return &dto.MessageResponse{Message: "Password has been reset successfully"}, nil
}

func (s *authService) ChangePassword(ctx context.Context, email string, req *dto.ChangePasswordRequest) (*dto.MessageResponse, error) {
	if len(req.NewPassword) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}

	user, err := s.repo.User.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return nil, ErrCurrentPasswordWrong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("password change save failed", zap.Error(err))
		return nil, err
	}

	if err := s.mailer.Send(user.Email, "Password Changed",
		fmt.Sprintf("<h1>Password Changed</h1><p>Dear %s,</p><p>Your password has been changed successfully.</p>", user.Name)); err != nil {
		s.logger.Warn("password change email not delivered", zap.Error(err))
	}

	return &dto.MessageResponse{Message: "Password changed successfully"}, nil
}

func (s *authService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// ── mail bodies ──

func (s *authService) sendWelcomeEmail(user *model.User, warning string) {
	body := fmt.Sprintf(`<h1>Welcome to Work Diary Portal</h1>
<p>Dear %s,</p>
<p>Your account has been successfully created.</p>
<p>You can now log in to the portal and start submitting your work diary entries.</p>`, user.Name)
	if warning != "" {
		body += fmt.Sprintf("<p><strong>Note:</strong> %s</p>", warning)
	}
	if err := s.mailer.Send(user.Email, "Welcome to Work Diary Portal", body); err != nil {
		s.logger.Warn("welcome email not delivered", zap.String("email", user.Email), zap.Error(err))
	}
}

func resetEmailBody(name, resetURL string) string {
	return fmt.Sprintf(`<h1>Password Reset</h1>
<p>Dear %s,</p>
<p>You requested a password reset. Click the link below to reset your password. This link will expire in 1 hour.</p>
<p><a href="%s">Reset Password</a></p>
<p>If you did not request this, please ignore this email and your password will remain unchanged.</p>`, name, resetURL)
}

func resetConfirmationBody(name string) string {
	return fmt.Sprintf(`<h1>Password Reset Successful</h1>
<p>Dear %s,</p>
<p>Your password has been reset successfully.</p>
<p>You can now log in with your new password.</p>
<p>If you did not request this change, please contact the administrator immediately.</p>`, name)
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:         u.UserID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Department: u.Department,
	}
}
