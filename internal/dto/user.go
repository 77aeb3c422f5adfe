package dto

// UserResponse is the public user projection; it never includes the
// password hash or reset token fields.
type UserResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
}

// UpdateProfileRequest is the PUT /user/profile body.
type UpdateProfileRequest struct {
	Name       string `json:"name"       binding:"required"`
	Email      string `json:"email"      binding:"required,email"`
	Department string `json:"department" binding:"required"`
}

// UpdateProfileResponse is the 200 body.
type UpdateProfileResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}
