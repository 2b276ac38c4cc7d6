package main

import (
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/handlers"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/metrics"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/middleware"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/pkg/logger"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/pkg/response"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	r.Use(middleware.RequestID(), logger.GinLogger(), logger.GinRecovery(), metrics.Middleware())
	r.Use(middleware.CORS(svc.cfg.CORS.Origins))

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "route does not exist")
	})

	// Rate limiter for credential endpoints
	authLimiter := middleware.NewRateLimiter(1, 10)

	api := r.Group("/api")
	{
		api.GET("/health", svc.healthHandler.CheckHealth)
		api.GET("/metrics", handlers.Metrics())

		// Auth routes (public)
		auth := api.Group("/auth")
		{
			limited := auth.Group("", authLimiter.Middleware())
			limited.POST("/register", svc.authHandler.Register)
			limited.POST("/login", svc.authHandler.Login)
			limited.POST("/forgot-password", svc.authHandler.ForgotPassword)
			limited.POST("/reset-password/:token", svc.authHandler.ResetPassword)
			auth.POST("/logout", svc.authHandler.Logout)
		}

		// Skills (public reference data)
		api.GET("/skills", svc.skillHandler.List)
		api.GET("/skills/search", svc.skillHandler.Search)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(svc.cfg.Cookie.Name))
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/change-password", svc.authHandler.ChangePassword)

			// Users
			protected.GET("/users", svc.userHandler.List)
			protected.GET("/users/me/projects", svc.userHandler.MyProjects)
			protected.GET("/users/me/join-requests", svc.userHandler.MyJoinRequests)
			protected.PATCH("/users/me", svc.userHandler.UpdateMe)
			protected.DELETE("/users/me", svc.userHandler.DeleteMe)
			protected.GET("/users/:id", svc.userHandler.GetByID)

			// Projects
			protected.GET("/projects", svc.projectHandler.List)
			protected.POST("/projects", svc.projectHandler.Create)
			protected.GET("/projects/:id", svc.projectHandler.GetByID)
			protected.PATCH("/projects/:id", svc.projectHandler.Update)
			protected.DELETE("/projects/:id", svc.projectHandler.Delete)
			protected.POST("/projects/:id/leave", svc.projectHandler.Leave)

			// Votes
			protected.POST("/projects/:id/votes", svc.voteHandler.Toggle)
			protected.GET("/projects/:id/votes", svc.voteHandler.Count)
			protected.DELETE("/projects/:id/votes", svc.voteHandler.Remove)

			// Join requests
			protected.POST("/projects/:id/join-requests", svc.joinRequestHandler.Submit)
			protected.GET("/projects/:id/join-requests", svc.joinRequestHandler.List)
			protected.DELETE("/projects/:id/join-requests", svc.joinRequestHandler.Withdraw)
			protected.PATCH("/projects/:id/join-requests/:requestId", svc.joinRequestHandler.Review)

			// Comments
			protected.GET("/projects/:id/comments", svc.commentHandler.List)
			protected.POST("/projects/:id/comments", svc.commentHandler.Create)
			protected.POST("/projects/:id/comments/:commentId/likes", svc.commentHandler.ToggleLike)
		}
	}
}
