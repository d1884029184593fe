package service

import (
	"encoding/json"

	"github.com/jossyfresh/EduAssist/internal/model"
	"github.com/jossyfresh/EduAssist/internal/repository"

	"gorm.io/datatypes"
)

type CourseService struct {
	courseRepo  *repository.CourseRepository
	contentRepo *repository.ContentRepository
}

func NewCourseService(courseRepo *repository.CourseRepository, contentRepo *repository.ContentRepository) *CourseService {
	return &CourseService{
		courseRepo:  courseRepo,
		contentRepo: contentRepo,
	}
}

type CourseRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	SubTitle    string `json:"sub_title" binding:"max=255"`
	Description string `json:"description"`
}

func (s *CourseService) Create(creatorID string, req CourseRequest) (*model.Course, error) {
	course := &model.Course{
		Title:       req.Title,
		SubTitle:    req.SubTitle,
		Description: req.Description,
		CreatedBy:   creatorID,
	}
	if err := s.courseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Get(id string) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrNotFound
	}
	return course, nil
}

func (s *CourseService) List(limit, offset int) ([]model.Course, error) {
	return s.courseRepo.List(limit, offset)
}

func (s *CourseService) Update(id, actorID string, req CourseRequest) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrNotFound
	}
	if course.CreatedBy != actorID {
		return nil, ErrForbidden
	}

	course.Title = req.Title
	course.SubTitle = req.SubTitle
	course.Description = req.Description
	if err := s.courseRepo.Update(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Delete(id, actorID string) error {
	course, err := s.courseRepo.FindByID(id)
	if err != nil {
		return err
	}
	if course == nil {
		return ErrNotFound
	}
	if course.CreatedBy != actorID {
		return ErrForbidden
	}
	return s.courseRepo.Delete(id)
}

type ContentRequest struct {
	Title       string            `json:"title" binding:"required,max=255"`
	ContentType model.ContentType `json:"content_type" binding:"required"`
	Content     string            `json:"content" binding:"required"`
	Description string            `json:"description"`
	CourseID    *string           `json:"course_id"`
	Meta        map[string]any    `json:"meta"`
}

func (s *CourseService) CreateContent(creatorID string, req ContentRequest) (*model.Content, error) {
	if !req.ContentType.Valid() {
		return nil, ErrInvalidContentType
	}

	meta := datatypes.JSON("{}")
	if req.Meta != nil {
		raw, err := json.Marshal(req.Meta)
		if err != nil {
			return nil, err
		}
		meta = datatypes.JSON(raw)
	}

	content := &model.Content{
		Title:       req.Title,
		ContentType: req.ContentType,
		Content:     req.Content,
		Description: req.Description,
		CourseID:    req.CourseID,
		Meta:        meta,
		CreatedBy:   creatorID,
	}
	if err := s.contentRepo.Create(content); err != nil {
		return nil, err
	}
	return content, nil
}

func (s *CourseService) GetContent(id string) (*model.Content, error) {
	content, err := s.contentRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, ErrNotFound
	}
	return content, nil
}

func (s *CourseService) ListContent(limit, offset int) ([]model.Content, error) {
	return s.contentRepo.List(limit, offset)
}

func (s *CourseService) CourseContent(courseID string) ([]model.Content, error) {
	return s.contentRepo.FindByCourse(courseID)
}

func (s *CourseService) UpdateContent(id, actorID string, req ContentRequest) (*model.Content, error) {
	content, err := s.contentRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, ErrNotFound
	}
	if content.CreatedBy != actorID {
		return nil, ErrForbidden
	}

	content.Title = req.Title
	content.ContentType = req.ContentType
	content.Content = req.Content
	content.Description = req.Description
	content.CourseID = req.CourseID
	if req.Meta != nil {
		raw, err := json.Marshal(req.Meta)
		if err != nil {
			return nil, err
		}
		content.Meta = datatypes.JSON(raw)
	}
	if err := s.contentRepo.Update(content); err != nil {
		return nil, err
	}
	return content, nil
}

func (s *CourseService) DeleteContent(id, actorID string) error {
	content, err := s.contentRepo.FindByID(id)
	if err != nil {
		return err
	}
	if content == nil {
		return ErrNotFound
	}
	if content.CreatedBy != actorID {
		return ErrForbidden
	}
	return s.contentRepo.Delete(id)
}
