package main

import (
	"context"
	"log"

	"github.com/jossyfresh/EduAssist/internal/ai"
	"github.com/jossyfresh/EduAssist/internal/api"
	"github.com/jossyfresh/EduAssist/internal/repository"
	"github.com/jossyfresh/EduAssist/internal/service"
	internalws "github.com/jossyfresh/EduAssist/internal/websocket"
	"github.com/jossyfresh/EduAssist/internal/youtube"
	"github.com/jossyfresh/EduAssist/pkg/config"
	"github.com/jossyfresh/EduAssist/pkg/db"
	"github.com/jossyfresh/EduAssist/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	if err := config.Init(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg := config.GlobalConfig
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.Production); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := db.InitDB(cfg.Database); err != nil {
		logger.L.Fatal("Failed to initialize database", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db.DB)
	courseRepo := repository.NewCourseRepository(db.DB)
	contentRepo := repository.NewContentRepository(db.DB)
	pathRepo := repository.NewLearningPathRepository(db.DB)
	progressRepo := repository.NewProgressRepository(db.DB)
	assessmentRepo := repository.NewAssessmentRepository(db.DB)
	chatRepo := repository.NewChatRepository(db.DB)
	youtubeRepo := repository.NewYouTubeRepository(db.DB)

	// Services
	authService := service.NewAuthService(userRepo)
	courseService := service.NewCourseService(courseRepo, contentRepo)
	pathService := service.NewLearningPathService(pathRepo, progressRepo)
	assessmentService := service.NewAssessmentService(assessmentRepo)
	chatService := service.NewChatService(chatRepo, userRepo)

	// Websocket fan-out
	registry := internalws.NewRegistry()
	dispatcher := internalws.NewDispatcher(registry, cfg.WebSocket)
	sessions := internalws.NewSessionManager(registry, dispatcher, chatService)

	// AI integrations are optional; the rest of the API works without them.
	var generator *service.ContentGenerator
	if completer, err := ai.NewOpenAIClient(cfg.AI); err != nil {
		logger.L.Warn("Content generation disabled", zap.Error(err))
	} else {
		generator = service.NewContentGenerator(completer, cfg.AI.RepairRetries)
	}

	var chatter ai.VideoChatter
	if gemini, err := ai.NewGeminiClient(context.Background(), cfg.AI); err != nil {
		logger.L.Warn("Video chat disabled", zap.Error(err))
	} else {
		chatter = gemini
	}
	youtubeService := service.NewYouTubeService(youtubeRepo, youtube.NewClient(), chatter)

	handlers := api.Handlers{
		Auth:         api.NewAuthHandler(authService),
		User:         api.NewUserHandler(userRepo),
		Course:       api.NewCourseHandler(courseService),
		Content:      api.NewContentHandler(courseService, generator),
		LearningPath: api.NewLearningPathHandler(pathService),
		Assessment:   api.NewAssessmentHandler(assessmentService),
		Chat:         api.NewChatHandler(chatService, dispatcher),
		WS:           api.NewWSHandler(chatService, sessions),
		YouTube:      api.NewYouTubeHandler(youtubeService),
	}

	r := api.SetupRouter(handlers, userRepo)

	logger.L.Info("Starting server", zap.String("addr", cfg.Server.Addr))
	if err := r.Run(cfg.Server.Addr); err != nil {
		logger.L.Fatal("Failed to start server", zap.Error(err))
	}
}
