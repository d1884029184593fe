package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jossyfresh/EduAssist/internal/ai"
	"github.com/jossyfresh/EduAssist/pkg/logger"

	"go.uber.org/zap"
)

// Prompt templates per generated content type. Placeholders use {name}
// and are filled from request parameters.
var contentTemplates = map[string]string{
	"quiz": "Generate a quiz about {topic} with {difficulty} difficulty. " +
		"Respond with JSON: {\"questions\": [{\"question\": ..., \"options\": [...], \"answer\": ...}]}.",
	"flashcards": "Generate {count} flashcards about {topic}. " +
		"Respond with JSON: {\"cards\": [{\"front\": ..., \"back\": ...}]}.",
	"summary": "Summarize the following text:\n\n{text}\n\n" +
		"Respond with JSON: {\"content\": ...}.",
	"lesson": "Write a lesson about {topic} for a {level} audience. " +
		"Respond with JSON: {\"content\": ...}.",
	"youtube_suggestions": "Suggest YouTube videos for learning about {topic}. " +
		"For each, give lines starting with Title:, Channel:, Duration:, Relevance:.",
}

// ContentGenerator turns a content type plus parameters into structured
// content via the LLM. Model output is not trusted to be valid JSON: the
// generator retries with a repair instruction a bounded number of times,
// then falls back to line-oriented parsing for the shapes that allow it.
type ContentGenerator struct {
	completer     ai.Completer
	repairRetries int
}

func NewContentGenerator(completer ai.Completer, repairRetries int) *ContentGenerator {
	if repairRetries <= 0 {
		repairRetries = 3
	}
	return &ContentGenerator{
		completer:     completer,
		repairRetries: repairRetries,
	}
}

type GenerateRequest struct {
	ContentType string            `json:"content_type" binding:"required"`
	Parameters  map[string]string `json:"parameters" binding:"required"`
}

func (g *ContentGenerator) Generate(ctx context.Context, req GenerateRequest) (map[string]any, error) {
	template, ok := contentTemplates[req.ContentType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidContentType, req.ContentType)
	}

	prompt := fillTemplate(template, req.Parameters)

	var lastResponse string
	for attempt := 0; attempt < g.repairRetries; attempt++ {
		response, err := g.completer.Complete(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("error generating content: %w", err)
		}
		lastResponse = response

		if parsed, ok := parseJSONObject(response); ok {
			return parsed, nil
		}

		logger.L.Warn("Model response was not valid JSON, retrying with repair prompt",
			zap.String("contentType", req.ContentType),
			zap.Int("attempt", attempt+1))
		prompt = "The previous response was not valid JSON. Respond again with only a valid JSON object, " +
			"no prose and no code fences.\n\nPrevious response:\n" + response
	}

	// Out of retries; salvage what we can from the last raw response.
	switch req.ContentType {
	case "quiz":
		return formatQuizResponse(lastResponse), nil
	case "youtube_suggestions":
		return formatYouTubeSuggestions(lastResponse), nil
	default:
		return map[string]any{"content": lastResponse}, nil
	}
}

func fillTemplate(template string, params map[string]string) string {
	out := template
	for key, value := range params {
		out = strings.ReplaceAll(out, "{"+key+"}", value)
	}
	return out
}

// parseJSONObject tries to decode the response as a JSON object, tolerating
// markdown code fences around it.
func parseJSONObject(response string) (map[string]any, bool) {
	trimmed := strings.TrimSpace(response)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		trimmed = strings.TrimSpace(trimmed)
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		return nil, false
	}
	return parsed, true
}

// formatQuizResponse parses the plain-text quiz shape the model sometimes
// produces: blank-line separated blocks of question, options, "Answer: x".
func formatQuizResponse(response string) map[string]any {
	var questions []map[string]any
	for _, block := range strings.Split(response, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")
		if len(lines) < 3 {
			continue
		}
		var options []string
		for _, opt := range lines[1 : len(lines)-1] {
			if opt = strings.TrimSpace(opt); opt != "" {
				options = append(options, opt)
			}
		}
		questions = append(questions, map[string]any{
			"question": strings.TrimSpace(lines[0]),
			"options":  options,
			"answer":   strings.TrimSpace(strings.TrimPrefix(lines[len(lines)-1], "Answer: ")),
		})
	}
	return map[string]any{"questions": questions}
}

// formatYouTubeSuggestions parses the Title:/Channel:/Duration:/Relevance:
// line format into a video list.
func formatYouTubeSuggestions(response string) map[string]any {
	var videos []map[string]string
	var current map[string]string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Title:"):
			if current != nil {
				videos = append(videos, current)
			}
			current = map[string]string{"title": strings.TrimSpace(strings.TrimPrefix(line, "Title:"))}
		case strings.HasPrefix(line, "Channel:"):
			if current != nil {
				current["channel"] = strings.TrimSpace(strings.TrimPrefix(line, "Channel:"))
			}
		case strings.HasPrefix(line, "Duration:"):
			if current != nil {
				current["duration"] = strings.TrimSpace(strings.TrimPrefix(line, "Duration:"))
			}
		case strings.HasPrefix(line, "Relevance:"):
			if current != nil {
				current["relevance"] = strings.TrimSpace(strings.TrimPrefix(line, "Relevance:"))
			}
		}
	}
	if current != nil {
		videos = append(videos, current)
	}
	return map[string]any{"videos": videos}
}
