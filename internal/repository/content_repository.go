package repository

import (
	"errors"

	"github.com/jossyfresh/EduAssist/internal/model"

	"gorm.io/gorm"
)

type ContentRepository struct {
	db *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

func (r *ContentRepository) Create(content *model.Content) error {
	return r.db.Create(content).Error
}

func (r *ContentRepository) FindByID(id string) (*model.Content, error) {
	var content model.Content
	if err := r.db.First(&content, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &content, nil
}

func (r *ContentRepository) List(limit, offset int) ([]model.Content, error) {
	var contents []model.Content
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&contents).Error
	return contents, err
}

func (r *ContentRepository) FindByCourse(courseID string) ([]model.Content, error) {
	var contents []model.Content
	err := r.db.Where("course_id = ?", courseID).Order("created_at ASC").Find(&contents).Error
	return contents, err
}

func (r *ContentRepository) Update(content *model.Content) error {
	return r.db.Save(content).Error
}

func (r *ContentRepository) Delete(id string) error {
	return r.db.Delete(&model.Content{}, "id = ?", id).Error
}
