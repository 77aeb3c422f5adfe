package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/gin-gonic/gin"

	"work-diary/backend/internal/repository"
	"work-diary/backend/pkg/jwt"
	"work-diary/backend/pkg/redis"
	"work-diary/backend/pkg/response"
)

// TokenCookie is the cookie the browser client stores its token in.
const TokenCookie = "token"

// bodyPeekLimit caps how much of a request body the email fallback will
// read when sniffing for an identity.
const bodyPeekLimit = 1 << 16

// JWTAuth authenticates the request and injects user_id, email and role
// into the context. Credentials are resolved in order: Authorization
// bearer header, then the token cookie. When allowBodyEmail is set a
// plaintext "email" field in the JSON body is accepted as a last
// resort; that path identifies without proving and exists only for
// legacy clients behind a trusted proxy.
//
// rdb may be nil, in which case the revocation check is skipped.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client, users repository.UserRepository, allowBodyEmail bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)

		if token == "" {
			if allowBodyEmail && identifyByBodyEmail(c, users) {
				c.Next()
				return
			}
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		claims, err := jwtMgr.Parse(token)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		if rdb != nil {
			revoked, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && revoked {
				response.Unauthorized(c, "Token has been revoked")
				c.Abort()
				return
			}
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Set("token_jti", claims.ID)
		if claims.ExpiresAt != nil {
			c.Set("token_expires_at", claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// extractToken pulls the bearer token from the Authorization header,
// falling back to the token cookie.
func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "" {
		return cookie
	}
	return ""
}

// identifyByBodyEmail resolves the caller from a plaintext email in the
// JSON body. The body is re-buffered so the handler can still bind it.
func identifyByBodyEmail(c *gin.Context, users repository.UserRepository) bool {
	if c.Request.Body == nil {
		return false
	}
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, bodyPeekLimit))
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil {
		return false
	}

	var probe struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || probe.Email == "" {
		return false
	}

	user, err := users.GetByEmail(c.Request.Context(), strings.ToLower(probe.Email))
	if err != nil {
		return false
	}

	c.Set("user_id", user.UserID)
	c.Set("email", user.Email)
	c.Set("role", user.Role)
	return true
}

// RoleAuth requires the authenticated user to hold one of the allowed
// roles. Must run after JWTAuth.
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		userRole := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, "Access denied")
		c.Abort()
	}
}
