package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jossyfresh/EduAssist/pkg/config"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const videoChatSystemPrompt = `You are an AI assistant helping users understand YouTube videos.
You have access to the video's title and URL, and optionally its transcript.
Even without a transcript, you can make educated guesses about the video's content based on its title.
Be helpful and engaging in your responses. If you're not sure about something, make an educated guess based on the title.
Always maintain a helpful and friendly tone.`

// VideoContext is everything the assistant knows about a video when
// answering a question about it.
type VideoContext struct {
	Title      string
	URL        string
	Transcript string
	Question   string
}

// VideoChatter answers a user question about one video.
type VideoChatter interface {
	VideoChat(ctx context.Context, vc VideoContext) (string, error)
}

// GeminiClient is the production VideoChatter backed by Gemini.
type GeminiClient struct {
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, cfg config.AIConfig) (*GeminiClient, error) {
	if cfg.GeminiKey == "" {
		return nil, errors.New("gemini api key is not configured")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: cfg.GeminiModel}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func (c *GeminiClient) VideoChat(ctx context.Context, vc VideoContext) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.7)
	model.SetMaxOutputTokens(1000)

	resp, err := model.GenerateContent(ctx, genai.Text(buildVideoPrompt(vc)))
	if err != nil {
		return "", fmt.Errorf("error getting ai response: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned no candidates")
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.WriteString(string(text))
		}
	}
	return out.String(), nil
}

func buildVideoPrompt(vc VideoContext) string {
	parts := []string{
		videoChatSystemPrompt,
		"",
		"Video Title: " + vc.Title,
		"Video URL: " + vc.URL,
	}
	if vc.Transcript != "" {
		parts = append(parts, "", "Transcript:", vc.Transcript)
	}
	parts = append(parts,
		"",
		"User question: "+vc.Question,
		"",
		"Please provide a helpful response. If you don't have the transcript, make an educated guess based on the video title.")
	return strings.Join(parts, "\n")
}
