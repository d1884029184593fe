package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Course struct {
	ID          string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string `gorm:"type:varchar(255);not null" json:"title"`
	SubTitle    string `gorm:"type:varchar(255)" json:"sub_title"`
	Description string `gorm:"type:text" json:"description"`
	CreatedBy   string `gorm:"type:varchar(36);not null;index" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Contents []Content `gorm:"foreignKey:CourseID" json:"contents,omitempty"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
