package repository

import (
	"errors"

	"github.com/jossyfresh/EduAssist/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.db.Create(course).Error
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	if err := r.db.Preload("Contents").First(&course, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) List(limit, offset int) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) FindByCreator(creatorID string, limit, offset int) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.Where("created_by = ?", creatorID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.db.Save(course).Error
}

func (r *CourseRepository) Delete(id string) error {
	return r.db.Delete(&model.Course{}, "id = ?", id).Error
}
