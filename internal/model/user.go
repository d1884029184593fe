package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID             string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email          string `gorm:"type:varchar(255);not null;uniqueIndex" json:"email"`
	Username       string `gorm:"type:varchar(100);not null;uniqueIndex" json:"username"`
	HashedPassword string `gorm:"type:varchar(255);not null" json:"-"`
	FullName       string `gorm:"type:varchar(255)" json:"full_name"`
	IsActive       bool   `gorm:"default:true" json:"is_active"`
	IsSuperuser    bool   `gorm:"default:false" json:"is_superuser"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
