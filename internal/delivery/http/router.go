package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kkarthika293/Learn-Edge/internal/delivery/http/controllers"
	authctrl "github.com/kkarthika293/Learn-Edge/internal/delivery/http/controllers/auth"
	certctrl "github.com/kkarthika293/Learn-Edge/internal/delivery/http/controllers/certificate"
	chatctrl "github.com/kkarthika293/Learn-Edge/internal/delivery/http/controllers/chat"
	coursectrl "github.com/kkarthika293/Learn-Edge/internal/delivery/http/controllers/course"
	"github.com/kkarthika293/Learn-Edge/internal/delivery/http/controllers/middleware"
	quizctrl "github.com/kkarthika293/Learn-Edge/internal/delivery/http/controllers/quiz"
	"github.com/kkarthika293/Learn-Edge/internal/models"
	"github.com/kkarthika293/Learn-Edge/internal/service"
	"github.com/kkarthika293/Learn-Edge/pkg/logger"
)

func InitRoutes(l logger.Log, u service.Collection) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	config := cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	r.Use(cors.New(config))

	statusController := controllers.NewStatusHandler()
	authController := authctrl.NewAuthHandler(l, u.AuthService)
	courseManagement := coursectrl.NewManagementHandler(l, u.CourseService)
	courseQuery := coursectrl.NewQueryHandler(l, u.CourseService)
	quizController := quizctrl.NewQuizHandler(l, u.QuizService)
	chatController := chatctrl.NewChatHandler(l, u.ChatService)
	certController := certctrl.NewCertificateHandler(l, u.QuizService)

	authProvider := middleware.NewAuthMiddlewareProvider(l, u.AuthService)
	authed := authProvider.AuthMiddleware

	v1 := r.Group("/v1", middleware.LoggingMiddleware(l))
	{
		v1.GET("/status", statusController.Status)

		v1.GET("/me", authed, authController.Me)
		v1.GET("/users/:user_id/certificate", authed, certController.Download)

		auth := v1.Group("/auth")
		{
			auth.POST("/login", authController.Login)
			auth.POST("/register", authController.Register)
			auth.POST("/refresh", authController.Refresh)
			auth.POST("/logout", authed, authController.Logout)
			auth.POST("/admin/login", authController.AdminLogin)
			auth.POST("/forgot-password", authController.ForgotPassword)
			auth.POST("/reset-password", authController.ResetPassword)
		}

		courses := v1.Group("/courses")
		{
			courses.GET("", courseQuery.ListCourses)
			courses.GET("/search", courseQuery.SearchCourses)
			courses.GET("/:course_id", authed, courseQuery.ViewCourse)
			courses.GET("/:course_id/pdf", courseQuery.DownloadPDF)
			courses.POST("/:course_id/complete", authed, courseQuery.CompleteCourse)
			courses.POST("/:course_id/quiz/generate", authed, quizController.Generate)

			educator := courses.Group("", authed, middleware.RequireRoles(models.EducatorRole, models.AdminRole))
			{
				educator.POST("", courseManagement.CreateCourse)
				educator.PUT("/:course_id", courseManagement.UpdateCourse)
				educator.DELETE("/:course_id", courseManagement.DeleteCourse)
			}
		}

		quiz := v1.Group("/quiz", authed)
		{
			quiz.GET("/topics", quizController.Topics)
			quiz.GET("/scores", quizController.MyScores)
			quiz.GET("/scores/latest", quizController.MyLatestScore)
			quiz.GET("/:topic", quizController.QuestionsByTopic)
			quiz.POST("/:topic/submit", quizController.Submit)
			quiz.POST("/questions", middleware.RequireRoles(models.EducatorRole, models.AdminRole), quizController.AddQuestions)
		}

		admin := v1.Group("/admin", authed, middleware.RequireRoles(models.AdminRole))
		{
			admin.GET("/analytics", courseManagement.Analytics)
			admin.GET("/scores", quizController.ListScores)
		}

		v1.GET("/chat", authed, chatController.RecentMessages)
		v1.POST("/chat", authed, chatController.SendMessage)
		v1.POST("/chatbot", authed, chatController.Ask)
	}
	return r
}
