package repository

import (
	"errors"

	"github.com/jossyfresh/EduAssist/internal/model"

	"gorm.io/gorm"
)

// AssessmentRepository persists quizzes, flashcards, exams and their
// attempts.
type AssessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

func (r *AssessmentRepository) CreateQuiz(quiz *model.Quiz) error {
	return r.db.Create(quiz).Error
}

func (r *AssessmentRepository) FindQuizByID(id string) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.db.First(&quiz, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *AssessmentRepository) FindQuizzesByCourse(courseID string) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.db.Where("course_id = ?", courseID).Order("created_at DESC").Find(&quizzes).Error
	return quizzes, err
}

func (r *AssessmentRepository) UpdateQuiz(quiz *model.Quiz) error {
	return r.db.Save(quiz).Error
}

func (r *AssessmentRepository) DeleteQuiz(id string) error {
	return r.db.Delete(&model.Quiz{}, "id = ?", id).Error
}

func (r *AssessmentRepository) CreateQuizAttempt(attempt *model.QuizAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *AssessmentRepository) FindQuizAttempts(quizID, userID string) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.db.Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Order("completed_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *AssessmentRepository) CreateFlashcard(card *model.Flashcard) error {
	return r.db.Create(card).Error
}

func (r *AssessmentRepository) FindFlashcardByID(id string) (*model.Flashcard, error) {
	var card model.Flashcard
	if err := r.db.First(&card, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}

func (r *AssessmentRepository) FindFlashcardsByCourse(courseID string) ([]model.Flashcard, error) {
	var cards []model.Flashcard
	err := r.db.Where("course_id = ?", courseID).Order("created_at DESC").Find(&cards).Error
	return cards, err
}

func (r *AssessmentRepository) UpdateFlashcard(card *model.Flashcard) error {
	return r.db.Save(card).Error
}

func (r *AssessmentRepository) DeleteFlashcard(id string) error {
	return r.db.Delete(&model.Flashcard{}, "id = ?", id).Error
}

func (r *AssessmentRepository) CreateExam(exam *model.Exam) error {
	return r.db.Create(exam).Error
}

func (r *AssessmentRepository) FindExamByID(id string) (*model.Exam, error) {
	var exam model.Exam
	if err := r.db.First(&exam, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &exam, nil
}

func (r *AssessmentRepository) FindExamsByCourse(courseID string) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.db.Where("course_id = ?", courseID).Order("created_at DESC").Find(&exams).Error
	return exams, err
}

func (r *AssessmentRepository) UpdateExam(exam *model.Exam) error {
	return r.db.Save(exam).Error
}

func (r *AssessmentRepository) DeleteExam(id string) error {
	return r.db.Delete(&model.Exam{}, "id = ?", id).Error
}

func (r *AssessmentRepository) CreateExamAttempt(attempt *model.ExamAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *AssessmentRepository) FindExamAttempts(examID, userID string) ([]model.ExamAttempt, error) {
	var attempts []model.ExamAttempt
	err := r.db.Where("exam_id = ? AND user_id = ?", examID, userID).
		Order("completed_at DESC").
		Find(&attempts).Error
	return attempts, err
}
