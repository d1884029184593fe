package repository

import (
	"errors"

	"github.com/jossyfresh/EduAssist/internal/model"

	"gorm.io/gorm"
)

type YouTubeRepository struct {
	db *gorm.DB
}

func NewYouTubeRepository(db *gorm.DB) *YouTubeRepository {
	return &YouTubeRepository{db: db}
}

func (r *YouTubeRepository) Create(content *model.YouTubeContent) error {
	return r.db.Create(content).Error
}

func (r *YouTubeRepository) FindByID(id string) (*model.YouTubeContent, error) {
	var content model.YouTubeContent
	if err := r.db.First(&content, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &content, nil
}

func (r *YouTubeRepository) FindByVideoID(videoID string) (*model.YouTubeContent, error) {
	var content model.YouTubeContent
	if err := r.db.Where("video_id = ?", videoID).First(&content).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &content, nil
}

func (r *YouTubeRepository) List(userID string, limit, offset int) ([]model.YouTubeContent, error) {
	var contents []model.YouTubeContent
	err := r.db.Where("created_by = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&contents).Error
	return contents, err
}

func (r *YouTubeRepository) Update(content *model.YouTubeContent) error {
	return r.db.Save(content).Error
}

func (r *YouTubeRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("you_tube_content_id = ?", id).Delete(&model.YouTubeChatMessage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.YouTubeContent{}, "id = ?", id).Error
	})
}

func (r *YouTubeRepository) CreateChatMessage(message *model.YouTubeChatMessage) error {
	return r.db.Create(message).Error
}

func (r *YouTubeRepository) FindChatMessages(contentID string, limit, offset int) ([]model.YouTubeChatMessage, error) {
	var messages []model.YouTubeChatMessage
	err := r.db.Where("you_tube_content_id = ?", contentID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	return messages, err
}
