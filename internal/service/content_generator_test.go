package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompleter replays canned responses in order.
type fakeCompleter struct {
	responses []string
	err       error
	prompts   []string
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.prompts = append(f.prompts, prompt)
	idx := len(f.prompts) - 1
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	return f.responses[idx], nil
}

func TestContentGeneratorValidJSONFirstTry(t *testing.T) {
	completer := &fakeCompleter{responses: []string{`{"content": "a summary"}`}}
	generator := NewContentGenerator(completer, 3)

	result, err := generator.Generate(context.Background(), GenerateRequest{
		ContentType: "summary",
		Parameters:  map[string]string{"text": "long text"},
	})
	require.NoError(t, err)
	assert.Equal(t, "a summary", result["content"])
	assert.Len(t, completer.prompts, 1)
	assert.Contains(t, completer.prompts[0], "long text")
}

func TestContentGeneratorStripsCodeFences(t *testing.T) {
	completer := &fakeCompleter{responses: []string{"```json\n{\"content\": \"fenced\"}\n```"}}
	generator := NewContentGenerator(completer, 3)

	result, err := generator.Generate(context.Background(), GenerateRequest{
		ContentType: "lesson",
		Parameters:  map[string]string{"topic": "pointers", "level": "beginner"},
	})
	require.NoError(t, err)
	assert.Equal(t, "fenced", result["content"])
}

func TestContentGeneratorRepairRetry(t *testing.T) {
	completer := &fakeCompleter{responses: []string{
		"sorry, here is your quiz as prose",
		`{"questions": [{"question": "q", "options": ["a"], "answer": "a"}]}`,
	}}
	generator := NewContentGenerator(completer, 3)

	result, err := generator.Generate(context.Background(), GenerateRequest{
		ContentType: "quiz",
		Parameters:  map[string]string{"topic": "go", "difficulty": "easy"},
	})
	require.NoError(t, err)
	assert.Contains(t, result, "questions")
	require.Len(t, completer.prompts, 2)
	assert.Contains(t, completer.prompts[1], "valid JSON")
}

func TestContentGeneratorQuizFallbackParsing(t *testing.T) {
	raw := "What is a channel?\nA) a pipe\nB) a file\nAnswer: A) a pipe\n\n" +
		"What is a mutex?\nA) a lock\nB) a loop\nAnswer: A) a lock"
	completer := &fakeCompleter{responses: []string{raw}}
	generator := NewContentGenerator(completer, 2)

	result, err := generator.Generate(context.Background(), GenerateRequest{
		ContentType: "quiz",
		Parameters:  map[string]string{"topic": "go", "difficulty": "easy"},
	})
	require.NoError(t, err)

	questions, ok := result["questions"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, questions, 2)
	assert.Equal(t, "What is a channel?", questions[0]["question"])
	assert.Equal(t, "A) a pipe", questions[0]["answer"])
}

func TestContentGeneratorYouTubeFallbackParsing(t *testing.T) {
	raw := "Title: Go Concurrency Patterns\nChannel: Google Developers\nDuration: 50:00\nRelevance: canonical talk\n" +
		"Title: Advanced Go\nChannel: Gopher Academy\nDuration: 30:00\nRelevance: deeper dive"
	completer := &fakeCompleter{responses: []string{raw}}
	generator := NewContentGenerator(completer, 2)

	result, err := generator.Generate(context.Background(), GenerateRequest{
		ContentType: "youtube_suggestions",
		Parameters:  map[string]string{"topic": "concurrency"},
	})
	require.NoError(t, err)

	videos, ok := result["videos"].([]map[string]string)
	require.True(t, ok)
	require.Len(t, videos, 2)
	assert.Equal(t, "Go Concurrency Patterns", videos[0]["title"])
	assert.Equal(t, "Gopher Academy", videos[1]["channel"])
}

func TestContentGeneratorGenericFallback(t *testing.T) {
	completer := &fakeCompleter{responses: []string{"plain prose that never becomes json"}}
	generator := NewContentGenerator(completer, 2)

	result, err := generator.Generate(context.Background(), GenerateRequest{
		ContentType: "summary",
		Parameters:  map[string]string{"text": "x"},
	})
	require.NoError(t, err)
	assert.Equal(t, "plain prose that never becomes json", result["content"])
}

func TestContentGeneratorUnknownType(t *testing.T) {
	generator := NewContentGenerator(&fakeCompleter{responses: []string{"{}"}}, 2)

	_, err := generator.Generate(context.Background(), GenerateRequest{
		ContentType: "haiku",
		Parameters:  map[string]string{},
	})
	assert.ErrorIs(t, err, ErrInvalidContentType)
}

func TestContentGeneratorCompleterFailure(t *testing.T) {
	generator := NewContentGenerator(&fakeCompleter{err: errors.New("rate limited")}, 2)

	_, err := generator.Generate(context.Background(), GenerateRequest{
		ContentType: "summary",
		Parameters:  map[string]string{"text": "x"},
	})
	assert.Error(t, err)
}
