package model

import "time"

// Chat tables keep integer autoincrement keys; group ids travel over the
// websocket wire and in URLs.

type ChatGroup struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedBy string    `gorm:"type:varchar(36);not null;index" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`

	Members  []GroupMember `gorm:"foreignKey:GroupID" json:"members,omitempty"`
	Messages []Message     `gorm:"foreignKey:GroupID" json:"-"`
}

type GroupMember struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	GroupID  uint      `gorm:"not null;index;uniqueIndex:idx_group_user" json:"group_id"`
	UserID   string    `gorm:"type:varchar(36);not null;index;uniqueIndex:idx_group_user" json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}

type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	GroupID   uint      `gorm:"not null;index" json:"group_id"`
	SenderID  string    `gorm:"type:varchar(36);not null;index" json:"sender_id"`
	Content   string    `gorm:"type:text" json:"content"`
	FileURL   string    `gorm:"type:varchar(255)" json:"file_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Reads []MessageRead `gorm:"foreignKey:MessageID" json:"-"`
}

type MessageRead struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MessageID uint      `gorm:"not null;index;uniqueIndex:idx_message_user" json:"message_id"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_message_user" json:"user_id"`
	ReadAt    time.Time `json:"read_at"`
}
