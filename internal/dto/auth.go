package dto

// ── auth requests ──

// RegisterRequest is the POST /auth/register body. Department is required for
// faculty only; role defaults to faculty when blank.
type RegisterRequest struct {
	Name       string `json:"name"       binding:"required"`
	Email      string `json:"email"      binding:"required,email"`
	Password   string `json:"password"   binding:"required"`
	Department string `json:"department"`
	Role       string `json:"role"`
	Phone      string `json:"phone"`
}

// LoginRequest is the POST /auth/login body.
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest is the POST /auth/forgot-password body.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest is the POST /auth/reset-password body.
type ResetPasswordRequest struct {
	Token    string `json:"token"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest is the POST /auth/change-password body.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password"     binding:"required"`
}

// ── auth responses ──

// RegisterResponse is the 201 body. Warning and RoleChanged are set when an
// attempted second admin registration was downgraded to faculty.
type RegisterResponse struct {
	Message     string       `json:"message"`
	User        UserResponse `json:"user"`
	Warning     string       `json:"warning,omitempty"`
	RoleChanged bool         `json:"role_changed"`
}

// LoginResponse carries the bearer token and the public user projection.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// MessageResponse is the generic {"message": ...} success body.
type MessageResponse struct {
	Message string `json:"message"`
}
