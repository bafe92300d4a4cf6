package app

import (
	"learnsphere_backend/docs"
	"learnsphere_backend/internal/config"
	"learnsphere_backend/internal/middleware"
	"learnsphere_backend/internal/model"
	"learnsphere_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerLearnerRoutes(authGroup, c)
	}

	// 教学管理接口
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Teacher, model.Admin))
	{
		adminGroup.GET("/quizzes/:quizId/attempts", c.attempt.ListQuizAttempts)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		// 课程目录对游客开放
		public.GET("/courses", c.content.ListCourses)
		public.GET("/courses/:courseId", c.content.GetCourse)
		public.GET("/courses/:courseId/quizzes", c.content.ListCourseQuizzes)
	}
}

func (a *App) registerLearnerRoutes(group *gin.RouterGroup, c *controllers) {
	group.GET("/auth/me", c.auth.Me)

	// 测验作答
	group.POST("/quizzes/:quizId/attempts", c.attempt.StartAttempt)
	group.PUT("/attempts/:attemptId/answers", c.attempt.RecordAnswer)
	group.POST("/attempts/:attemptId/submit", c.attempt.Submit)
	group.GET("/attempts/:attemptId", c.attempt.GetAttempt)
	group.GET("/attempts/:attemptId/countdown", c.attempt.GetCountdown)

	// 学习进度
	group.PUT("/lessons/:lessonId/progress", c.progress.SetLessonProgress)
	group.GET("/progress/summary", c.progress.GetSummary)

	// 成就与用户
	group.GET("/achievements", c.achievement.GetUserAchievements)
	group.POST("/users/checkin", c.user.Checkin)
	group.GET("/users/profile", c.user.GetProfile)
	group.GET("/leaderboard", c.user.GetLeaderboard)
}
