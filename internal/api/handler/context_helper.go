package handler

import (
	"github.com/gin-gonic/gin"

	"work-diary/backend/pkg/response"
)

// MustGetUserID extracts user_id from the context. Writes a 401 and
// returns false when the auth middleware did not inject it; callers
// should return immediately on ok=false.
func MustGetUserID(c *gin.Context) (string, bool) {
	return mustGetString(c, "user_id")
}

// MustGetEmail extracts the authenticated email from the context.
func MustGetEmail(c *gin.Context) (string, bool) {
	return mustGetString(c, "email")
}

// MustGetRole extracts the authenticated role from the context.
func MustGetRole(c *gin.Context) (string, bool) {
	return mustGetString(c, "role")
}

func mustGetString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		response.Unauthorized(c, "Authentication required")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, "Authentication required")
		return "", false
	}
	return s, true
}
