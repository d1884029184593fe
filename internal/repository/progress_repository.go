package repository

import (
	"errors"

	"github.com/jossyfresh/EduAssist/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

func (r *ProgressRepository) Create(progress *model.UserProgress) error {
	return r.db.Create(progress).Error
}

func (r *ProgressRepository) FindByUserAndStep(userID, stepID string) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := r.db.Where("user_id = ? AND step_id = ?", userID, stepID).First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) FindByUserAndPath(userID, pathID string) ([]model.UserProgress, error) {
	var records []model.UserProgress
	err := r.db.Where("user_id = ? AND learning_path_id = ?", userID, pathID).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}

func (r *ProgressRepository) Update(progress *model.UserProgress) error {
	return r.db.Save(progress).Error
}

// CountByStatus reports how many steps of a path the user has in the given
// status.
func (r *ProgressRepository) CountByStatus(userID, pathID string, status model.ProgressStatus) (int64, error) {
	var count int64
	err := r.db.Model(&model.UserProgress{}).
		Where("user_id = ? AND learning_path_id = ? AND status = ?", userID, pathID, status).
		Count(&count).Error
	return count, err
}
