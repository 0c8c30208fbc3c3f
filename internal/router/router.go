package router

import (
	"microblog/internal/config"
	"microblog/internal/handler"
	"microblog/internal/middleware"
	"microblog/internal/queue"
	"microblog/internal/repository"
	"microblog/internal/search"
	"microblog/internal/service"
	"microblog/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SetupRouter builds the HTTP surface.
func SetupRouter(
	cfg *config.Config,
	jwtManager *utils.JWTManager,
	logger *logrus.Logger,
	db *gorm.DB,
	q queue.Queue,
	hook *search.Hook,
	indexer search.Indexer,
) *gin.Engine {
	if cfg.Server.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg))

	// Health check
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "microblog API",
			"version": "1.0.0",
		})
	})

	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	postRepo := repository.NewPostRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	jobRepo := repository.NewJobRepository(db)

	authService := service.NewAuthService(userRepo, jwtManager, cfg)
	followService := service.NewFollowService(userRepo, followRepo)
	postService := service.NewPostService(db, postRepo, userRepo, hook, indexer)
	messageService := service.NewMessageService(db, messageRepo, notificationRepo, userRepo)
	jobService := service.NewJobService(db, jobRepo, notificationRepo, q, logger)
	adminService := service.NewAdminService(db, userRepo, postRepo, hook)

	authHandler := handler.NewAuthHandler(authService, logger)
	userHandler := handler.NewUserHandler(followService)
	postHandler := handler.NewPostHandler(postService, cfg)
	messageHandler := handler.NewMessageHandler(messageService, cfg)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)
	jobHandler := handler.NewJobHandler(jobService, userRepo)
	adminHandler := handler.NewAdminHandler(adminService, userRepo)

	api := r.Group("/api")
	{
		// Public routes
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/reset_password_request", authHandler.RequestPasswordReset)
		api.POST("/reset_password", authHandler.ResetPassword)

		// Authenticated routes
		authorized := api.Group("")
		authorized.Use(middleware.AuthMiddleware(jwtManager))
		authorized.Use(middleware.LastSeenMiddleware(userRepo))
		{
			authorized.GET("/me", authHandler.GetMe)
			authorized.POST("/logout", authHandler.Logout)
			authorized.PUT("/profile", authHandler.UpdateProfile)

			// Posts and feeds
			authorized.POST("/posts", postHandler.CreatePost)
			authorized.GET("/feed", postHandler.Feed)
			authorized.GET("/explore", postHandler.Explore)
			authorized.GET("/search", postHandler.Search)

			// Users and follows
			authorized.GET("/users/:username", userHandler.Profile)
			authorized.GET("/users/:username/posts", postHandler.UserPosts)
			authorized.POST("/users/:username/follow", userHandler.Follow)
			authorized.POST("/users/:username/unfollow", userHandler.Unfollow)

			// Messaging
			authorized.POST("/users/:username/messages", messageHandler.Send)
			authorized.GET("/messages", messageHandler.Inbox)
			authorized.GET("/messages/unread_count", messageHandler.UnreadCount)

			// Notifications
			authorized.GET("/notifications", notificationHandler.List)

			// Background jobs
			authorized.POST("/export_posts", jobHandler.ExportPosts)
			authorized.GET("/jobs", jobHandler.List)
			authorized.GET("/jobs/active", jobHandler.Active)
			authorized.GET("/jobs/:job_id/progress", jobHandler.Progress)

			// Admin surface
			adminGroup := authorized.Group("/admin")
			adminGroup.Use(middleware.AdminMiddleware())
			{
				adminGroup.GET("/users", adminHandler.ListUsers)
				adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)
			}
		}
	}

	return r
}
