package service

import (
	"encoding/json"
	"time"

	"github.com/jossyfresh/EduAssist/internal/model"
	"github.com/jossyfresh/EduAssist/internal/repository"

	"gorm.io/datatypes"
)

// LearningPathService owns learning paths, their steps and per-user
// progress.
type LearningPathService struct {
	pathRepo     *repository.LearningPathRepository
	progressRepo *repository.ProgressRepository
}

func NewLearningPathService(pathRepo *repository.LearningPathRepository, progressRepo *repository.ProgressRepository) *LearningPathService {
	return &LearningPathService{
		pathRepo:     pathRepo,
		progressRepo: progressRepo,
	}
}

type LearningPathRequest struct {
	Title             string   `json:"title" binding:"required,max=255"`
	Description       string   `json:"description"`
	IsPublic          bool     `json:"is_public"`
	DifficultyLevel   string   `json:"difficulty_level"`
	EstimatedDuration int      `json:"estimated_duration"`
	Tags              []string `json:"tags"`
	CourseID          *string  `json:"course_id"`
}

func (s *LearningPathService) Create(creatorID string, req LearningPathRequest) (*model.LearningPath, error) {
	tags, err := marshalTags(req.Tags)
	if err != nil {
		return nil, err
	}
	path := &model.LearningPath{
		Title:             req.Title,
		Description:       req.Description,
		IsPublic:          req.IsPublic,
		DifficultyLevel:   req.DifficultyLevel,
		EstimatedDuration: req.EstimatedDuration,
		Tags:              tags,
		CourseID:          req.CourseID,
		CreatedBy:         creatorID,
	}
	if err := s.pathRepo.Create(path); err != nil {
		return nil, err
	}
	return path, nil
}

// Get returns a path if the caller owns it or it is public.
func (s *LearningPathService) Get(id, actorID string) (*model.LearningPath, error) {
	path, err := s.pathRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if path == nil {
		return nil, ErrNotFound
	}
	if !path.IsPublic && path.CreatedBy != actorID {
		return nil, ErrForbidden
	}
	return path, nil
}

func (s *LearningPathService) List(actorID string, limit, offset int) ([]model.LearningPath, error) {
	return s.pathRepo.List(actorID, limit, offset)
}

func (s *LearningPathService) Update(id, actorID string, req LearningPathRequest) (*model.LearningPath, error) {
	path, err := s.pathRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if path == nil {
		return nil, ErrNotFound
	}
	if path.CreatedBy != actorID {
		return nil, ErrForbidden
	}

	tags, err := marshalTags(req.Tags)
	if err != nil {
		return nil, err
	}
	path.Title = req.Title
	path.Description = req.Description
	path.IsPublic = req.IsPublic
	path.DifficultyLevel = req.DifficultyLevel
	path.EstimatedDuration = req.EstimatedDuration
	path.Tags = tags
	path.CourseID = req.CourseID
	if err := s.pathRepo.Update(path); err != nil {
		return nil, err
	}
	return path, nil
}

func (s *LearningPathService) Delete(id, actorID string) error {
	path, err := s.pathRepo.FindByID(id)
	if err != nil {
		return err
	}
	if path == nil {
		return ErrNotFound
	}
	if path.CreatedBy != actorID {
		return ErrForbidden
	}
	return s.pathRepo.Delete(id)
}

type StepRequest struct {
	Title       string            `json:"title" binding:"required,max=255"`
	Description string            `json:"description"`
	StepOrder   int               `json:"step_order" binding:"required,min=1"`
	ContentType model.ContentType `json:"content_type" binding:"required"`
	ContentID   *string           `json:"content_id"`
}

func (s *LearningPathService) CreateStep(pathID, actorID string, req StepRequest) (*model.LearningPathStep, error) {
	path, err := s.pathRepo.FindByID(pathID)
	if err != nil {
		return nil, err
	}
	if path == nil {
		return nil, ErrNotFound
	}
	if path.CreatedBy != actorID {
		return nil, ErrForbidden
	}
	if !req.ContentType.Valid() {
		return nil, ErrInvalidContentType
	}

	step := &model.LearningPathStep{
		LearningPathID: pathID,
		Title:          req.Title,
		Description:    req.Description,
		StepOrder:      req.StepOrder,
		ContentType:    req.ContentType,
		ContentID:      req.ContentID,
	}
	if err := s.pathRepo.CreateStep(step); err != nil {
		return nil, err
	}
	return step, nil
}

func (s *LearningPathService) ListSteps(pathID, actorID string) ([]model.LearningPathStep, error) {
	if _, err := s.Get(pathID, actorID); err != nil {
		return nil, err
	}
	return s.pathRepo.FindSteps(pathID)
}

func (s *LearningPathService) UpdateStep(stepID, actorID string, req StepRequest) (*model.LearningPathStep, error) {
	step, err := s.pathRepo.FindStepByID(stepID)
	if err != nil {
		return nil, err
	}
	if step == nil {
		return nil, ErrNotFound
	}
	if err := s.requireOwner(step.LearningPathID, actorID); err != nil {
		return nil, err
	}
	if !req.ContentType.Valid() {
		return nil, ErrInvalidContentType
	}

	step.Title = req.Title
	step.Description = req.Description
	step.StepOrder = req.StepOrder
	step.ContentType = req.ContentType
	step.ContentID = req.ContentID
	if err := s.pathRepo.UpdateStep(step); err != nil {
		return nil, err
	}
	return step, nil
}

func (s *LearningPathService) DeleteStep(stepID, actorID string) error {
	step, err := s.pathRepo.FindStepByID(stepID)
	if err != nil {
		return err
	}
	if step == nil {
		return ErrNotFound
	}
	if err := s.requireOwner(step.LearningPathID, actorID); err != nil {
		return err
	}
	return s.pathRepo.DeleteStep(stepID)
}

// ReorderSteps applies a new ordering given as the full list of step ids.
func (s *LearningPathService) ReorderSteps(pathID, actorID string, stepIDs []string) error {
	if err := s.requireOwner(pathID, actorID); err != nil {
		return err
	}
	return s.pathRepo.ReorderSteps(pathID, stepIDs)
}

type ProgressRequest struct {
	LearningPathID string               `json:"learning_path_id" binding:"required"`
	StepID         string               `json:"step_id" binding:"required"`
	Status         model.ProgressStatus `json:"status" binding:"required"`
}

// UpsertProgress creates or advances the user's progress record for one
// step, stamping started/completed times on the transitions.
func (s *LearningPathService) UpsertProgress(userID string, req ProgressRequest) (*model.UserProgress, error) {
	if !req.Status.Valid() {
		return nil, ErrInvalidProgressStatus
	}

	progress, err := s.progressRepo.FindByUserAndStep(userID, req.StepID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if progress == nil {
		progress = &model.UserProgress{
			UserID:         userID,
			LearningPathID: req.LearningPathID,
			StepID:         req.StepID,
			Status:         req.Status,
		}
		if req.Status != model.ProgressNotStarted {
			progress.StartedAt = &now
		}
		if req.Status == model.ProgressCompleted {
			progress.CompletedAt = &now
		}
		if err := s.progressRepo.Create(progress); err != nil {
			return nil, err
		}
		return progress, nil
	}

	if progress.StartedAt == nil && req.Status != model.ProgressNotStarted {
		progress.StartedAt = &now
	}
	if req.Status == model.ProgressCompleted && progress.CompletedAt == nil {
		progress.CompletedAt = &now
	}
	progress.Status = req.Status
	if err := s.progressRepo.Update(progress); err != nil {
		return nil, err
	}
	return progress, nil
}

func (s *LearningPathService) GetProgress(userID, pathID string) ([]model.UserProgress, error) {
	return s.progressRepo.FindByUserAndPath(userID, pathID)
}

type ProgressSummary struct {
	LearningPathID string  `json:"learning_path_id"`
	TotalSteps     int     `json:"total_steps"`
	Completed      int     `json:"completed"`
	InProgress     int     `json:"in_progress"`
	PercentDone    float64 `json:"percent_done"`
}

// Summary reports how far the user has come on a path.
func (s *LearningPathService) Summary(userID, pathID string) (*ProgressSummary, error) {
	steps, err := s.pathRepo.FindSteps(pathID)
	if err != nil {
		return nil, err
	}

	completed, err := s.progressRepo.CountByStatus(userID, pathID, model.ProgressCompleted)
	if err != nil {
		return nil, err
	}
	inProgress, err := s.progressRepo.CountByStatus(userID, pathID, model.ProgressInProgress)
	if err != nil {
		return nil, err
	}

	summary := &ProgressSummary{
		LearningPathID: pathID,
		TotalSteps:     len(steps),
		Completed:      int(completed),
		InProgress:     int(inProgress),
	}
	if summary.TotalSteps > 0 {
		summary.PercentDone = float64(summary.Completed) / float64(summary.TotalSteps) * 100
	}
	return summary, nil
}

func (s *LearningPathService) requireOwner(pathID, actorID string) error {
	path, err := s.pathRepo.FindByID(pathID)
	if err != nil {
		return err
	}
	if path == nil {
		return ErrNotFound
	}
	if path.CreatedBy != actorID {
		return ErrForbidden
	}
	return nil
}

func marshalTags(tags []string) (datatypes.JSON, error) {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
