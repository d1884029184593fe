package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jossyfresh/EduAssist/internal/model"
	"github.com/jossyfresh/EduAssist/internal/repository"

	"github.com/samber/lo"
	"gorm.io/datatypes"
)

// AssessmentService owns quizzes, flashcards, exams and grading of
// attempts.
type AssessmentService struct {
	repo *repository.AssessmentRepository
}

func NewAssessmentService(repo *repository.AssessmentRepository) *AssessmentService {
	return &AssessmentService{repo: repo}
}

type QuizRequest struct {
	Title        string           `json:"title" binding:"required,max=255"`
	Description  string           `json:"description" binding:"max=1000"`
	Questions    []model.Question `json:"questions" binding:"required,min=1"`
	PassingScore float64          `json:"passing_score" binding:"required,min=0,max=100"`
	TimeLimit    int              `json:"time_limit"`
	CourseID     string           `json:"course_id" binding:"required"`
}

func (s *AssessmentService) CreateQuiz(creatorID string, req QuizRequest) (*model.Quiz, error) {
	questions, err := marshalQuestions(req.Questions)
	if err != nil {
		return nil, err
	}
	quiz := &model.Quiz{
		Title:        req.Title,
		Description:  req.Description,
		Questions:    questions,
		PassingScore: req.PassingScore,
		TimeLimit:    req.TimeLimit,
		CreatorID:    creatorID,
		CourseID:     req.CourseID,
	}
	if err := s.repo.CreateQuiz(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *AssessmentService) GetQuiz(id string) (*model.Quiz, error) {
	quiz, err := s.repo.FindQuizByID(id)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, ErrNotFound
	}
	return quiz, nil
}

func (s *AssessmentService) CourseQuizzes(courseID string) ([]model.Quiz, error) {
	return s.repo.FindQuizzesByCourse(courseID)
}

func (s *AssessmentService) DeleteQuiz(id, actorID string) error {
	quiz, err := s.repo.FindQuizByID(id)
	if err != nil {
		return err
	}
	if quiz == nil {
		return ErrNotFound
	}
	if quiz.CreatorID != actorID {
		return ErrForbidden
	}
	return s.repo.DeleteQuiz(id)
}

// SubmitQuizAttempt grades the submitted answers against the stored
// question set and persists the attempt.
func (s *AssessmentService) SubmitQuizAttempt(quizID, userID string, answers map[string]string, startedAt time.Time) (*model.QuizAttempt, error) {
	quiz, err := s.repo.FindQuizByID(quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, ErrNotFound
	}

	score, err := grade(quiz.Questions, answers)
	if err != nil {
		return nil, err
	}

	rawAnswers, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}

	attempt := &model.QuizAttempt{
		QuizID:      quizID,
		UserID:      userID,
		Score:       score,
		Passed:      score >= quiz.PassingScore,
		Answers:     datatypes.JSON(rawAnswers),
		StartedAt:   startedAt,
		CompletedAt: time.Now(),
	}
	if err := s.repo.CreateQuizAttempt(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

func (s *AssessmentService) QuizAttempts(quizID, userID string) ([]model.QuizAttempt, error) {
	return s.repo.FindQuizAttempts(quizID, userID)
}

type FlashcardRequest struct {
	Front    string   `json:"front" binding:"required,max=1000"`
	Back     string   `json:"back" binding:"required,max=1000"`
	Category string   `json:"category" binding:"max=100"`
	Tags     []string `json:"tags"`
	CourseID string   `json:"course_id" binding:"required"`
}

func (s *AssessmentService) CreateFlashcard(creatorID string, req FlashcardRequest) (*model.Flashcard, error) {
	tags, err := marshalTags(req.Tags)
	if err != nil {
		return nil, err
	}
	card := &model.Flashcard{
		Front:     req.Front,
		Back:      req.Back,
		Category:  req.Category,
		Tags:      tags,
		CreatorID: creatorID,
		CourseID:  req.CourseID,
	}
	if err := s.repo.CreateFlashcard(card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *AssessmentService) CourseFlashcards(courseID string) ([]model.Flashcard, error) {
	return s.repo.FindFlashcardsByCourse(courseID)
}

func (s *AssessmentService) DeleteFlashcard(id, actorID string) error {
	card, err := s.repo.FindFlashcardByID(id)
	if err != nil {
		return err
	}
	if card == nil {
		return ErrNotFound
	}
	if card.CreatorID != actorID {
		return ErrForbidden
	}
	return s.repo.DeleteFlashcard(id)
}

type ExamRequest struct {
	Title        string           `json:"title" binding:"required,max=255"`
	Description  string           `json:"description" binding:"max=1000"`
	Questions    []model.Question `json:"questions" binding:"required,min=1"`
	PassingScore float64          `json:"passing_score" binding:"required,min=0,max=100"`
	TimeLimit    int              `json:"time_limit"`
	IsProctored  bool             `json:"is_proctored"`
	CourseID     string           `json:"course_id" binding:"required"`
}

func (s *AssessmentService) CreateExam(creatorID string, req ExamRequest) (*model.Exam, error) {
	questions, err := marshalQuestions(req.Questions)
	if err != nil {
		return nil, err
	}
	exam := &model.Exam{
		Title:        req.Title,
		Description:  req.Description,
		Questions:    questions,
		PassingScore: req.PassingScore,
		TimeLimit:    req.TimeLimit,
		IsProctored:  req.IsProctored,
		CreatorID:    creatorID,
		CourseID:     req.CourseID,
	}
	if err := s.repo.CreateExam(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *AssessmentService) GetExam(id string) (*model.Exam, error) {
	exam, err := s.repo.FindExamByID(id)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, ErrNotFound
	}
	return exam, nil
}

func (s *AssessmentService) CourseExams(courseID string) ([]model.Exam, error) {
	return s.repo.FindExamsByCourse(courseID)
}

func (s *AssessmentService) DeleteExam(id, actorID string) error {
	exam, err := s.repo.FindExamByID(id)
	if err != nil {
		return err
	}
	if exam == nil {
		return ErrNotFound
	}
	if exam.CreatorID != actorID {
		return ErrForbidden
	}
	return s.repo.DeleteExam(id)
}

func (s *AssessmentService) SubmitExamAttempt(examID, userID string, answers map[string]string, startedAt time.Time) (*model.ExamAttempt, error) {
	exam, err := s.repo.FindExamByID(examID)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, ErrNotFound
	}

	score, err := grade(exam.Questions, answers)
	if err != nil {
		return nil, err
	}

	rawAnswers, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}

	attempt := &model.ExamAttempt{
		ExamID:      examID,
		UserID:      userID,
		Score:       score,
		Passed:      score >= exam.PassingScore,
		Answers:     datatypes.JSON(rawAnswers),
		IsProctored: exam.IsProctored,
		StartedAt:   startedAt,
		CompletedAt: time.Now(),
	}
	if err := s.repo.CreateExamAttempt(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

func (s *AssessmentService) ExamAttempts(examID, userID string) ([]model.ExamAttempt, error) {
	return s.repo.FindExamAttempts(examID, userID)
}

// grade scores answers against the stored question set. Points default to
// one per question; the result is a percentage of the total available.
func grade(raw datatypes.JSON, answers map[string]string) (float64, error) {
	var questions []model.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return 0, fmt.Errorf("invalid stored question set: %w", err)
	}
	if len(questions) == 0 {
		return 0, nil
	}

	total := lo.SumBy(questions, func(q model.Question) float64 {
		if q.Points > 0 {
			return q.Points
		}
		return 1
	})

	var earned float64
	for _, q := range questions {
		points := q.Points
		if points <= 0 {
			points = 1
		}
		if answer, ok := answers[q.ID]; ok && strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(q.Answer)) {
			earned += points
		}
	}
	return earned / total * 100, nil
}

func marshalQuestions(questions []model.Question) (datatypes.JSON, error) {
	raw, err := json.Marshal(questions)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
