package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"work-diary/backend/config"
	"work-diary/backend/internal/api/handler"
	"work-diary/backend/internal/api/middleware"
	"work-diary/backend/internal/model"
	"work-diary/backend/internal/repository"
	"work-diary/backend/pkg/jwt"
	"work-diary/backend/pkg/redis"
	"work-diary/backend/pkg/response"
)

const maxBodyBytes = 1 << 20 // 1MB

// Setup builds the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, h *handler.Handler, repo *repository.Repository, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// Credential endpoints, rate limited per client IP.
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/forgot-password", h.Auth.ForgotPassword)
			auth.POST("/reset-password", h.Auth.ResetPassword)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb, repo.User, cfg.Feature.InsecureBodyAuth))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.POST("/auth/change-password", h.Auth.ChangePassword)
			authorized.GET("/auth/me", h.Auth.Me)

			authorized.PUT("/user/profile", h.User.UpdateProfile)

			diary := authorized.Group("/work-diary")
			{
				diary.POST("/entry", h.Diary.CreateEntry)
				diary.GET("/entry", h.Diary.ListEntries)
			}

			admin := authorized.Group("/admin", middleware.RoleAuth(model.RoleAdmin))
			{
				admin.GET("/reports", h.Diary.AdminReports)
				admin.PUT("/reports", h.Diary.UpdateStatus)
				admin.GET("/reports/export", h.Export.ExportReports)
			}

			timetable := authorized.Group("/timetable")
			{
				timetable.POST("/generate", middleware.RoleAuth(model.RoleAdmin), h.Timetable.Generate)
				timetable.GET("/schedule", h.Timetable.Schedule)
				timetable.GET("/schedule.ics", h.Timetable.ScheduleICS)
			}

			authorized.POST("/faculty/send-reminder", h.Timetable.SendReminder)
		}
	}

	return r
}
