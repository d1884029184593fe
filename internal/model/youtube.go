package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type YouTubeContent struct {
	ID           string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	VideoID      string         `gorm:"type:varchar(20);not null;uniqueIndex" json:"video_id"`
	Title        string         `gorm:"type:varchar(255);not null" json:"title"`
	Transcript   string         `gorm:"type:text" json:"transcript,omitempty"`
	ThumbnailURL string         `gorm:"type:varchar(512)" json:"thumbnail_url"`
	VideoURL     string         `gorm:"type:varchar(512);not null" json:"video_url"`
	Metadata     datatypes.JSON `json:"metadata"`
	CreatedBy    string         `gorm:"type:varchar(36);not null;index" json:"created_by"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (c *YouTubeContent) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// YouTubeChatMessage is one turn of the per-video AI chat. Both the user
// question and the model reply are stored as separate rows.
type YouTubeChatMessage struct {
	ID               string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	YouTubeContentID string    `gorm:"type:varchar(36);not null;index" json:"youtube_content_id"`
	UserID           string    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Role             string    `gorm:"type:varchar(20);default:'user'" json:"role"`
	Message          string    `gorm:"type:text;not null" json:"message"`
	CreatedAt        time.Time `json:"created_at"`
}

func (m *YouTubeChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
