package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jossyfresh/EduAssist/internal/ai"
	"github.com/jossyfresh/EduAssist/internal/model"
	"github.com/jossyfresh/EduAssist/internal/repository"
	"github.com/jossyfresh/EduAssist/internal/youtube"
	"github.com/jossyfresh/EduAssist/pkg/logger"

	"go.uber.org/zap"
)

// YouTubeService ingests videos (metadata, transcript, thumbnail) and runs
// the per-video AI chat.
type YouTubeService struct {
	repo    *repository.YouTubeRepository
	client  *youtube.Client
	chatter ai.VideoChatter
}

func NewYouTubeService(repo *repository.YouTubeRepository, client *youtube.Client, chatter ai.VideoChatter) *YouTubeService {
	return &YouTubeService{
		repo:    repo,
		client:  client,
		chatter: chatter,
	}
}

type IngestRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// Ingest fetches metadata (and a transcript, best effort) for the video
// and persists it. Re-ingesting a known video returns the stored row.
func (s *YouTubeService) Ingest(ctx context.Context, userID string, req IngestRequest) (*model.YouTubeContent, error) {
	if !youtube.IsValidURL(req.URL) {
		return nil, fmt.Errorf("invalid YouTube URL: %s", req.URL)
	}

	videoID := youtube.ExtractVideoID(req.URL)
	if existing, err := s.repo.FindByVideoID(videoID); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	meta, err := s.client.Fetch(ctx, req.URL)
	if err != nil {
		return nil, err
	}

	// A missing transcript is not fatal; the AI chat degrades to
	// title-only context.
	transcript, err := s.client.Transcript(ctx, req.URL)
	if err != nil {
		logger.L.Warn("Transcript unavailable",
			zap.String("videoID", videoID),
			zap.Error(err))
	}

	rawMeta, err := json.Marshal(meta)
	if err != nil {
		return nil, err
	}

	content := &model.YouTubeContent{
		VideoID:      meta.VideoID,
		Title:        meta.Title,
		Transcript:   transcript,
		ThumbnailURL: meta.ThumbnailURL,
		VideoURL:     req.URL,
		Metadata:     rawMeta,
		CreatedBy:    userID,
	}
	if err := s.repo.Create(content); err != nil {
		return nil, err
	}
	return content, nil
}

func (s *YouTubeService) Get(id string) (*model.YouTubeContent, error) {
	content, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, ErrNotFound
	}
	return content, nil
}

func (s *YouTubeService) List(userID string, limit, offset int) ([]model.YouTubeContent, error) {
	return s.repo.List(userID, limit, offset)
}

func (s *YouTubeService) Delete(id, actorID string) error {
	content, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	if content == nil {
		return ErrNotFound
	}
	if content.CreatedBy != actorID {
		return ErrForbidden
	}
	return s.repo.Delete(id)
}

// Download streams the video into w (used by the download endpoint).
func (s *YouTubeService) Download(ctx context.Context, id string, w io.Writer) (int64, error) {
	content, err := s.Get(id)
	if err != nil {
		return 0, err
	}
	return s.client.Download(ctx, content.VideoURL, w)
}

type VideoChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// VideoChat answers a user question about an ingested video and stores
// both sides of the exchange. Without a configured chatter it refuses
// before persisting anything.
func (s *YouTubeService) VideoChat(ctx context.Context, contentID, userID string, req VideoChatRequest) (*model.YouTubeChatMessage, error) {
	if s.chatter == nil {
		return nil, ErrAIUnavailable
	}

	content, err := s.Get(contentID)
	if err != nil {
		return nil, err
	}

	question := &model.YouTubeChatMessage{
		YouTubeContentID: contentID,
		UserID:           userID,
		Role:             "user",
		Message:          req.Message,
	}
	if err := s.repo.CreateChatMessage(question); err != nil {
		return nil, err
	}

	answer, err := s.chatter.VideoChat(ctx, ai.VideoContext{
		Title:      content.Title,
		URL:        content.VideoURL,
		Transcript: content.Transcript,
		Question:   req.Message,
	})
	if err != nil {
		return nil, fmt.Errorf("ai response failed: %w", err)
	}

	reply := &model.YouTubeChatMessage{
		YouTubeContentID: contentID,
		UserID:           userID,
		Role:             "assistant",
		Message:          answer,
	}
	if err := s.repo.CreateChatMessage(reply); err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *YouTubeService) ChatHistory(contentID string, limit, offset int) ([]model.YouTubeChatMessage, error) {
	return s.repo.FindChatMessages(contentID, limit, offset)
}
