package youtube

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	yt "github.com/kkdai/youtube/v2"
)

var (
	watchURLPattern  = regexp.MustCompile(`^https://www\.youtube\.com/watch\?v=[A-Za-z0-9_-]{11}`)
	shortsURLPattern = regexp.MustCompile(`^https://www\.youtube\.com/shorts/[A-Za-z0-9_-]{11}$`)
)

// Metadata is the subset of video information the platform stores.
type Metadata struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	Channel      string `json:"channel"`
	Duration     int    `json:"duration"` // seconds
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// IsValidURL accepts the standard watch URL form plus shorts.
func IsValidURL(url string) bool {
	if strings.Contains(url, "shorts") {
		return shortsURLPattern.MatchString(url)
	}
	return watchURLPattern.MatchString(url)
}

// ExtractVideoID pulls the 11-character video id out of a watch or shorts
// URL.
func ExtractVideoID(url string) string {
	if strings.Contains(url, "shorts") {
		parts := strings.Split(url, "/")
		return parts[len(parts)-1]
	}
	id := url
	if i := strings.Index(id, "v="); i >= 0 {
		id = id[i+2:]
	}
	if i := strings.Index(id, "&"); i >= 0 {
		id = id[:i]
	}
	return id
}

// Client fetches video metadata, transcripts and streams.
type Client struct {
	yt yt.Client
}

func NewClient() *Client {
	return &Client{}
}

// Fetch resolves a video URL to its metadata.
func (c *Client) Fetch(ctx context.Context, url string) (*Metadata, error) {
	if !IsValidURL(url) {
		return nil, fmt.Errorf("invalid YouTube URL: %s", url)
	}

	video, err := c.yt.GetVideoContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("error fetching YouTube metadata: %w", err)
	}

	meta := &Metadata{
		VideoID:      video.ID,
		Title:        video.Title,
		Channel:      video.Author,
		Duration:     int(video.Duration.Seconds()),
		Description:  video.Description,
		ThumbnailURL: largestThumbnail(video.Thumbnails),
	}
	return meta, nil
}

// largestThumbnail picks the URL of the widest available thumbnail.
func largestThumbnail(thumbnails yt.Thumbnails) string {
	var url string
	var bestWidth uint
	for _, t := range thumbnails {
		if t.URL != "" && t.Width >= bestWidth {
			bestWidth = t.Width
			url = t.URL
		}
	}
	return url
}

// Download copies the best available muxed stream of the video into w and
// returns the number of bytes written.
func (c *Client) Download(ctx context.Context, url string, w io.Writer) (int64, error) {
	video, err := c.yt.GetVideoContext(ctx, url)
	if err != nil {
		return 0, fmt.Errorf("error fetching video: %w", err)
	}

	formats := video.Formats.WithAudioChannels()
	if len(formats) == 0 {
		return 0, fmt.Errorf("no downloadable formats for video %s", video.ID)
	}
	formats.Sort()

	stream, _, err := c.yt.GetStreamContext(ctx, video, &formats[0])
	if err != nil {
		return 0, fmt.Errorf("error opening stream: %w", err)
	}
	defer stream.Close()

	return io.Copy(w, stream)
}
