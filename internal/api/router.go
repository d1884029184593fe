package api

import (
	"net/http"

	"github.com/jossyfresh/EduAssist/internal/middleware"
	"github.com/jossyfresh/EduAssist/internal/repository"
	"github.com/jossyfresh/EduAssist/pkg/config"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Course       *CourseHandler
	Content      *ContentHandler
	LearningPath *LearningPathHandler
	Assessment   *AssessmentHandler
	Chat         *ChatHandler
	WS           *WSHandler
	YouTube      *YouTubeHandler
}

func SetupRouter(handlers Handlers, userRepo *repository.UserRepository) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.GinZapLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.Static("/uploads", config.GlobalConfig.Upload.Dir)

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
	}

	authorized := v1.Group("")
	authorized.Use(middleware.AuthMiddleware(userRepo))
	{
		users := authorized.Group("/users")
		{
			users.GET("/me", handlers.User.Me)
			users.PUT("/me", handlers.User.UpdateMe)
			users.GET("", handlers.User.List)
			users.GET("/:id", handlers.User.Get)
		}

		courses := authorized.Group("/courses")
		{
			courses.POST("", handlers.Course.Create)
			courses.GET("", handlers.Course.List)
			courses.GET("/:id", handlers.Course.Get)
			courses.PUT("/:id", handlers.Course.Update)
			courses.DELETE("/:id", handlers.Course.Delete)
			courses.GET("/:id/contents", handlers.Course.Content)
			courses.GET("/:id/quizzes", handlers.Assessment.CourseQuizzes)
			courses.GET("/:id/flashcards", handlers.Assessment.CourseFlashcards)
			courses.GET("/:id/exams", handlers.Assessment.CourseExams)
		}

		contents := authorized.Group("/contents")
		{
			contents.POST("", handlers.Content.Create)
			contents.GET("", handlers.Content.List)
			contents.GET("/:id", handlers.Content.Get)
			contents.PUT("/:id", handlers.Content.Update)
			contents.DELETE("/:id", handlers.Content.Delete)
			contents.POST("/generate", handlers.Content.Generate)
		}

		paths := authorized.Group("/learning-paths")
		{
			paths.POST("", handlers.LearningPath.Create)
			paths.GET("", handlers.LearningPath.List)
			paths.GET("/:id", handlers.LearningPath.Get)
			paths.PUT("/:id", handlers.LearningPath.Update)
			paths.DELETE("/:id", handlers.LearningPath.Delete)

			paths.POST("/:id/steps", handlers.LearningPath.CreateStep)
			paths.GET("/:id/steps", handlers.LearningPath.ListSteps)
			paths.PUT("/:id/steps/reorder", handlers.LearningPath.ReorderSteps)
			paths.GET("/:id/progress", handlers.LearningPath.GetProgress)
			paths.GET("/:id/progress/summary", handlers.LearningPath.ProgressSummary)
		}

		steps := authorized.Group("/steps")
		{
			steps.PUT("/:step_id", handlers.LearningPath.UpdateStep)
			steps.DELETE("/:step_id", handlers.LearningPath.DeleteStep)
		}
		authorized.POST("/progress", handlers.LearningPath.UpsertProgress)

		quizzes := authorized.Group("/quizzes")
		{
			quizzes.POST("", handlers.Assessment.CreateQuiz)
			quizzes.GET("/:id", handlers.Assessment.GetQuiz)
			quizzes.DELETE("/:id", handlers.Assessment.DeleteQuiz)
			quizzes.POST("/:id/attempts", handlers.Assessment.SubmitQuizAttempt)
			quizzes.GET("/:id/attempts", handlers.Assessment.QuizAttempts)
		}

		flashcards := authorized.Group("/flashcards")
		{
			flashcards.POST("", handlers.Assessment.CreateFlashcard)
			flashcards.DELETE("/:id", handlers.Assessment.DeleteFlashcard)
		}

		exams := authorized.Group("/exams")
		{
			exams.POST("", handlers.Assessment.CreateExam)
			exams.GET("/:id", handlers.Assessment.GetExam)
			exams.DELETE("/:id", handlers.Assessment.DeleteExam)
			exams.POST("/:id/attempts", handlers.Assessment.SubmitExamAttempt)
			exams.GET("/:id/attempts", handlers.Assessment.ExamAttempts)
		}

		chat := authorized.Group("/chat")
		{
			chat.POST("/groups", handlers.Chat.CreateGroup)
			chat.GET("/groups", handlers.Chat.MyGroups)
			chat.GET("/groups/:group_id", handlers.Chat.GetGroup)
			chat.POST("/groups/:group_id/members", handlers.Chat.AddMember)
			chat.DELETE("/groups/:group_id/members/:user_id", handlers.Chat.RemoveMember)
			chat.POST("/groups/:group_id/messages", handlers.Chat.SendMessage)
			chat.GET("/groups/:group_id/messages", handlers.Chat.GroupMessages)
			chat.GET("/groups/:group_id/messages/search", handlers.Chat.SearchMessages)
			chat.POST("/groups/:group_id/upload", handlers.Chat.UploadFile)
			chat.POST("/messages/:message_id/read", handlers.Chat.MarkRead)
			chat.GET("/messages/:message_id/reads", handlers.Chat.MessageReads)
		}

		youtube := authorized.Group("/youtube")
		{
			youtube.POST("", handlers.YouTube.Ingest)
			youtube.GET("", handlers.YouTube.List)
			youtube.GET("/:id", handlers.YouTube.Get)
			youtube.DELETE("/:id", handlers.YouTube.Delete)
			youtube.GET("/:id/transcript", handlers.YouTube.Transcript)
			youtube.GET("/:id/download", handlers.YouTube.Download)
			youtube.POST("/:id/chat", handlers.YouTube.VideoChat)
			youtube.GET("/:id/chat", handlers.YouTube.ChatHistory)
		}

		authorized.GET("/ws/:group_id", handlers.WS.HandleWebSocket)
	}

	return r
}
