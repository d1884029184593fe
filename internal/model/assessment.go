package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question is one entry of a quiz or exam question set, stored as JSON.
type Question struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
	Points   float64  `json:"points"`
}

type Quiz struct {
	ID           string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title        string         `gorm:"type:varchar(255);not null" json:"title"`
	Description  string         `gorm:"type:varchar(1000)" json:"description"`
	Questions    datatypes.JSON `gorm:"not null" json:"questions"`
	PassingScore float64        `gorm:"not null" json:"passing_score"`
	TimeLimit    int            `json:"time_limit"` // minutes
	CreatorID    string         `gorm:"type:varchar(36);not null;index" json:"creator_id"`
	CourseID     string         `gorm:"type:varchar(36);not null;index" json:"course_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (q *Quiz) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

type QuizAttempt struct {
	ID          string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	QuizID      string         `gorm:"type:varchar(36);not null;index" json:"quiz_id"`
	UserID      string         `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Score       float64        `gorm:"not null" json:"score"`
	Passed      bool           `json:"passed"`
	Answers     datatypes.JSON `gorm:"not null" json:"answers"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt time.Time      `json:"completed_at"`
}

func (a *QuizAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

type Flashcard struct {
	ID        string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Front     string         `gorm:"type:varchar(1000);not null" json:"front"`
	Back      string         `gorm:"type:varchar(1000);not null" json:"back"`
	Category  string         `gorm:"type:varchar(100)" json:"category"`
	Tags      datatypes.JSON `json:"tags"`
	CreatorID string         `gorm:"type:varchar(36);not null;index" json:"creator_id"`
	CourseID  string         `gorm:"type:varchar(36);not null;index" json:"course_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (f *Flashcard) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

type Exam struct {
	ID           string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title        string         `gorm:"type:varchar(255);not null" json:"title"`
	Description  string         `gorm:"type:varchar(1000)" json:"description"`
	Questions    datatypes.JSON `gorm:"not null" json:"questions"`
	PassingScore float64        `gorm:"not null" json:"passing_score"`
	TimeLimit    int            `json:"time_limit"` // minutes
	IsProctored  bool           `gorm:"default:false" json:"is_proctored"`
	CreatorID    string         `gorm:"type:varchar(36);not null;index" json:"creator_id"`
	CourseID     string         `gorm:"type:varchar(36);not null;index" json:"course_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (e *Exam) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

type ExamAttempt struct {
	ID          string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	ExamID      string         `gorm:"type:varchar(36);not null;index" json:"exam_id"`
	UserID      string         `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Score       float64        `gorm:"not null" json:"score"`
	Passed      bool           `json:"passed"`
	Answers     datatypes.JSON `gorm:"not null" json:"answers"`
	IsProctored bool           `gorm:"default:false" json:"is_proctored"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt time.Time      `json:"completed_at"`
}

func (a *ExamAttempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
