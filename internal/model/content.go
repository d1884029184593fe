package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Content struct {
	ID          string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string         `gorm:"type:varchar(255);index" json:"title"`
	ContentType ContentType    `gorm:"type:varchar(20);default:'text'" json:"content_type"`
	Content     string         `gorm:"type:text" json:"content"`
	Meta        datatypes.JSON `json:"meta"`
	Description string         `gorm:"type:text" json:"description"`
	CourseID    *string        `gorm:"type:varchar(36);index" json:"course_id"`
	CreatedBy   string         `gorm:"type:varchar(36);not null;index" json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (c *Content) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
