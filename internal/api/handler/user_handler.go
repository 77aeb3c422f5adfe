package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"work-diary/backend/config"
	"work-diary/backend/internal/dto"
	"work-diary/backend/internal/service"
	"work-diary/backend/pkg/response"
)

// UserHandler serves profile management.
type UserHandler struct {
	cfg     *config.Config
	userSvc service.UserService
}

// NewUserHandler creates the UserHandler.
func NewUserHandler(cfg *config.Config, userSvc service.UserService) *UserHandler {
	return &UserHandler{cfg: cfg, userSvc: userSvc}
}

// UpdateProfile updates the caller's name, email and department.
// PUT /api/v1/user/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Name, email and department are required")
		return
	}

	result, err := h.userSvc.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailInUse):
			response.BadRequest(c, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, err.Error())
		default:
			response.InternalError(c, h.cfg.Feature.DevMode, err.Error())
		}
		return
	}

	response.OK(c, result)
}
