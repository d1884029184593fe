package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jossyfresh/EduAssist/internal/ai"
	"github.com/jossyfresh/EduAssist/internal/model"
	"github.com/jossyfresh/EduAssist/internal/repository"
	"github.com/jossyfresh/EduAssist/internal/youtube"
	"github.com/jossyfresh/EduAssist/pkg/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatter struct {
	reply string
	err   error
	calls int
}

func (f *fakeChatter) VideoChat(ctx context.Context, vc ai.VideoContext) (string, error) {
	f.calls++
	return f.reply, f.err
}

func seedVideo(t *testing.T, userID string) *model.YouTubeContent {
	t.Helper()
	content := &model.YouTubeContent{
		VideoID:   "dQw4w9WgXcQ",
		Title:     "Test video",
		VideoURL:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		CreatedBy: userID,
	}
	require.NoError(t, db.DB.Create(content).Error)
	return content
}

func TestVideoChatStoresBothTurns(t *testing.T) {
	setupTestDB(t)
	cleanupTables(t, &model.YouTubeChatMessage{}, &model.YouTubeContent{})
	repo := repository.NewYouTubeRepository(db.DB)
	chatter := &fakeChatter{reply: "it is about testing"}
	svc := NewYouTubeService(repo, youtube.NewClient(), chatter)

	content := seedVideo(t, "u1")

	reply, err := svc.VideoChat(context.Background(), content.ID, "u1", VideoChatRequest{Message: "what is this about?"})
	require.NoError(t, err)
	assert.Equal(t, "assistant", reply.Role)
	assert.Equal(t, "it is about testing", reply.Message)
	assert.Equal(t, 1, chatter.calls)

	history, err := svc.ChatHistory(content.ID, 50, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
	assert.Equal(t, "assistant", history[1].Role)
}

func TestVideoChatWithoutChatterRefusesCleanly(t *testing.T) {
	setupTestDB(t)
	cleanupTables(t, &model.YouTubeChatMessage{}, &model.YouTubeContent{})
	repo := repository.NewYouTubeRepository(db.DB)
	svc := NewYouTubeService(repo, youtube.NewClient(), nil)

	content := seedVideo(t, "u1")

	_, err := svc.VideoChat(context.Background(), content.ID, "u1", VideoChatRequest{Message: "anyone home?"})
	assert.ErrorIs(t, err, ErrAIUnavailable)

	// The refused question must not leave a stored row behind.
	history, err := svc.ChatHistory(content.ID, 50, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestVideoChatUnknownVideo(t *testing.T) {
	setupTestDB(t)
	cleanupTables(t, &model.YouTubeChatMessage{}, &model.YouTubeContent{})
	repo := repository.NewYouTubeRepository(db.DB)
	svc := NewYouTubeService(repo, youtube.NewClient(), &fakeChatter{reply: "hi"})

	_, err := svc.VideoChat(context.Background(), "missing-id", "u1", VideoChatRequest{Message: "hello"})
	assert.True(t, errors.Is(err, ErrNotFound))
}
