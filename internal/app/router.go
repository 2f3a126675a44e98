package app

import (
	"faceyoga_backend/docs"
	"faceyoga_backend/internal/config"
	"faceyoga_backend/internal/middleware"
	"faceyoga_backend/internal/model"
	"faceyoga_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c, cfg)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerUserRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// The gateway posts here; auth is the signature header.
		public.POST("/webhooks/stripe", c.webhook.HandleStripe)

		// Catalog browsing works for guests; a token unlocks per-user
		// access state.
		catalog := public.Group("/")
		catalog.Use(middleware.TryAuthMiddleware(cfg))
		{
			catalog.GET("/exercises", c.exercise.List)
			catalog.GET("/exercises/categories", c.exercise.Categories)
			catalog.GET("/exercises/:id", c.exercise.Get)
			catalog.GET("/courses", c.course.List)
			catalog.GET("/courses/:id", c.course.Get)
			catalog.GET("/goals", c.goal.List)
		}
	}
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/me", c.auth.Me)
	rg.GET("/users/profile", c.user.GetProfile)
	rg.PUT("/users/profile", c.user.UpdateProfile)
	rg.POST("/users/avatar", c.user.UploadAvatar)

	// Purchases and enrollment
	rg.POST("/courses/:id/purchase", c.purchase.CreateIntent)
	rg.POST("/courses/:id/purchase/confirm", c.purchase.Confirm)
	rg.POST("/courses/:id/enroll", c.purchase.EnrollFree)
	rg.GET("/purchases", c.purchase.MyPurchases)
	rg.GET("/grants", c.purchase.MyGrants)

	// Goals and progress
	rg.GET("/goals/progress", c.goal.MyProgress)
	rg.GET("/goals/:id", c.goal.Get)
	rg.POST("/goals/:id/pause", c.goal.Pause)
	rg.POST("/goals/:id/resume", c.goal.Resume)

	// Practice
	rg.POST("/exercises/:id/complete", c.practice.Complete)
	rg.GET("/practice/history", c.practice.History)
	rg.GET("/practice/summary", c.practice.Summary)
	rg.POST("/practice/photos", c.practice.UploadPhoto)
	rg.GET("/practice/photos", c.practice.ListPhotos)
	rg.DELETE("/practice/photos/:id", c.practice.DeletePhoto)
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.POST("/exercises", c.exercise.Create)
		admin.PUT("/exercises/:id", c.exercise.Update)
		admin.DELETE("/exercises/:id", c.exercise.Delete)
		admin.POST("/exercises/:id/video", c.exercise.UploadVideo)

		admin.POST("/courses", c.course.Create)
		admin.PUT("/courses/:id", c.course.Update)
		admin.DELETE("/courses/:id", c.course.Delete)
		admin.POST("/courses/:id/sections", c.course.AddSection)
		admin.DELETE("/sections/:sectionId", c.course.DeleteSection)
		admin.POST("/sections/:sectionId/exercises", c.course.AddExercise)
		admin.DELETE("/sections/:sectionId/exercises/:exerciseId", c.course.RemoveExercise)

		admin.POST("/goals", c.goal.CreateGoal)
		admin.PUT("/goals/:id", c.goal.UpdateGoal)
		admin.DELETE("/goals/:id", c.goal.DeleteGoal)
		admin.POST("/goals/:id/milestones", c.goal.AddMilestone)
		admin.DELETE("/milestones/:milestoneId", c.goal.DeleteMilestone)
		admin.PUT("/goal-weights", c.goal.SetWeight)
		admin.DELETE("/goal-weights/:exerciseId/:goalId", c.goal.DeleteWeight)

		admin.POST("/purchases/:id/refund", c.purchase.Refund)
	}
}
