package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserProgress struct {
	ID             string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID         string         `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_user_step" json:"user_id"`
	LearningPathID string         `gorm:"type:varchar(36);not null;index" json:"learning_path_id"`
	StepID         string         `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_step" json:"step_id"`
	Status         ProgressStatus `gorm:"type:varchar(20);default:'not_started'" json:"status"`
	StartedAt      *time.Time     `json:"started_at"`
	CompletedAt    *time.Time     `json:"completed_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (p *UserProgress) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
