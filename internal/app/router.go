package app

import (
	"skill_quiz_backend/internal/middleware"
	"skill_quiz_backend/internal/model"
	"skill_quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, s *services) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要登录的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(s.auth))
	{
		a.registerUserRoutes(authGroup, c)

		// 3. 管理员相关接口
		admin := authGroup.Group("")
		admin.Use(middleware.RoleMiddleware(model.RoleAdmin))
		a.registerAdminRoutes(admin, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}
}

func (a *App) registerUserRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/auth/me", c.auth.Me)

	group.GET("/skills", c.skill.List)
	group.GET("/questions", c.question.List)
	group.GET("/quizzes", c.quiz.List)
	group.GET("/quizzes/:id", c.quiz.Get)

	attempts := group.Group("/attempts")
	{
		attempts.POST("/start", c.attempt.Start)
		attempts.POST("/submit", c.attempt.Submit)
		attempts.POST("/end", c.attempt.End)
		attempts.GET("/:id", c.attempt.Get)
	}

	// 本人或管理员，权限在服务层判断
	group.GET("/reports/user/:userId", c.report.UserPerformance)
}

func (a *App) registerAdminRoutes(group *gin.RouterGroup, c *controllers) {
	group.POST("/skills", c.skill.Create)
	group.POST("/questions", c.question.Create)
	group.POST("/quizzes", c.quiz.Create)

	group.GET("/users", c.user.List)
	group.POST("/users", c.user.Create)

	reports := group.Group("/reports")
	{
		reports.GET("/skill-gap", c.report.SkillGap)
		reports.GET("/time-series", c.report.TimeSeries)
		reports.GET("/user/:userId/export", c.report.Export)
	}
}
