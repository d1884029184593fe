package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LearningPath struct {
	ID                string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title             string         `gorm:"type:varchar(255);not null" json:"title"`
	Description       string         `gorm:"type:text" json:"description"`
	IsPublic          bool           `gorm:"default:false" json:"is_public"`
	DifficultyLevel   string         `gorm:"type:varchar(50)" json:"difficulty_level"`
	EstimatedDuration int            `json:"estimated_duration"`
	Tags              datatypes.JSON `json:"tags"`
	CourseID          *string        `gorm:"type:varchar(36);index" json:"course_id"`
	CreatedBy         string         `gorm:"type:varchar(36);not null;index" json:"created_by"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`

	Steps []LearningPathStep `gorm:"foreignKey:LearningPathID" json:"steps,omitempty"`
}

func (p *LearningPath) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type LearningPathStep struct {
	ID             string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	LearningPathID string      `gorm:"type:varchar(36);not null;index" json:"learning_path_id"`
	Title          string      `gorm:"type:varchar(255);not null" json:"title"`
	Description    string      `gorm:"type:text" json:"description"`
	StepOrder      int         `gorm:"not null" json:"step_order"`
	ContentType    ContentType `gorm:"type:varchar(20)" json:"content_type"`
	ContentID      *string     `gorm:"type:varchar(36)" json:"content_id"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

func (s *LearningPathStep) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
