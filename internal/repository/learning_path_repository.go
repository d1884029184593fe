package repository

import (
	"errors"

	"github.com/jossyfresh/EduAssist/internal/model"

	"gorm.io/gorm"
)

type LearningPathRepository struct {
	db *gorm.DB
}

func NewLearningPathRepository(db *gorm.DB) *LearningPathRepository {
	return &LearningPathRepository{db: db}
}

func (r *LearningPathRepository) Create(path *model.LearningPath) error {
	return r.db.Create(path).Error
}

// FindByID loads a path with its steps in order.
func (r *LearningPathRepository) FindByID(id string) (*model.LearningPath, error) {
	var path model.LearningPath
	err := r.db.Preload("Steps", func(db *gorm.DB) *gorm.DB {
		return db.Order("step_order ASC")
	}).First(&path, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &path, nil
}

// List returns paths visible to the user: their own plus public ones.
func (r *LearningPathRepository) List(userID string, limit, offset int) ([]model.LearningPath, error) {
	var paths []model.LearningPath
	err := r.db.Where("created_by = ? OR is_public = ?", userID, true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&paths).Error
	return paths, err
}

func (r *LearningPathRepository) Update(path *model.LearningPath) error {
	return r.db.Save(path).Error
}

// Delete removes a path together with its steps.
func (r *LearningPathRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("learning_path_id = ?", id).Delete(&model.LearningPathStep{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.LearningPath{}, "id = ?", id).Error
	})
}

func (r *LearningPathRepository) CreateStep(step *model.LearningPathStep) error {
	return r.db.Create(step).Error
}

func (r *LearningPathRepository) FindStepByID(id string) (*model.LearningPathStep, error) {
	var step model.LearningPathStep
	if err := r.db.First(&step, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &step, nil
}

func (r *LearningPathRepository) FindSteps(pathID string) ([]model.LearningPathStep, error) {
	var steps []model.LearningPathStep
	err := r.db.Where("learning_path_id = ?", pathID).Order("step_order ASC").Find(&steps).Error
	return steps, err
}

func (r *LearningPathRepository) UpdateStep(step *model.LearningPathStep) error {
	return r.db.Save(step).Error
}

func (r *LearningPathRepository) DeleteStep(id string) error {
	return r.db.Delete(&model.LearningPathStep{}, "id = ?", id).Error
}

// ReorderSteps rewrites step_order for the given step ids in one
// transaction; ids come in their new order.
func (r *LearningPathRepository) ReorderSteps(pathID string, stepIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i, stepID := range stepIDs {
			res := tx.Model(&model.LearningPathStep{}).
				Where("id = ? AND learning_path_id = ?", stepID, pathID).
				Update("step_order", i+1)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}
