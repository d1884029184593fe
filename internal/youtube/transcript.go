package youtube

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	transcriptRetries    = 3
	transcriptRetryDelay = time.Second
)

type captionDocument struct {
	Texts []captionText `xml:"text"`
}

type captionText struct {
	Start string `xml:"start,attr"`
	Body  string `xml:",chardata"`
}

// Transcript fetches the caption track of a video and flattens it into
// plain text. YouTube rate-limits caption endpoints, so the fetch retries
// a few times before giving up.
func (c *Client) Transcript(ctx context.Context, url string) (string, error) {
	video, err := c.yt.GetVideoContext(ctx, url)
	if err != nil {
		return "", fmt.Errorf("error fetching video: %w", err)
	}

	if len(video.CaptionTracks) == 0 {
		return "", fmt.Errorf("no transcript available for video %s", video.ID)
	}

	// Prefer an English track, fall back to the first one.
	track := video.CaptionTracks[0]
	for _, t := range video.CaptionTracks {
		if strings.HasPrefix(t.LanguageCode, "en") {
			track = t
			break
		}
	}

	var lastErr error
	for attempt := 0; attempt < transcriptRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(transcriptRetryDelay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
		text, err := fetchCaptionTrack(ctx, track.BaseURL)
		if err == nil {
			return text, nil
		}
		lastErr = err
	}
	return "", fmt.Errorf("failed to fetch transcript after %d attempts: %w", transcriptRetries, lastErr)
}

func fetchCaptionTrack(ctx context.Context, baseURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("caption endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var doc captionDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return "", fmt.Errorf("failed to parse caption track: %w", err)
	}

	lines := make([]string, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		line := strings.TrimSpace(html.UnescapeString(t.Body))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, " "), nil
}
