package api

import (
	"net/http"
	"time"

	"github.com/jossyfresh/EduAssist/internal/service"

	"github.com/gin-gonic/gin"
)

type AssessmentHandler struct {
	assessmentService *service.AssessmentService
}

func NewAssessmentHandler(assessmentService *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

func (h *AssessmentHandler) CreateQuiz(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req service.QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	quiz, err := h.assessmentService.CreateQuiz(userID, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

func (h *AssessmentHandler) GetQuiz(c *gin.Context) {
	quiz, err := h.assessmentService.GetQuiz(c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *AssessmentHandler) CourseQuizzes(c *gin.Context) {
	quizzes, err := h.assessmentService.CourseQuizzes(c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quizzes": quizzes})
}

func (h *AssessmentHandler) DeleteQuiz(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.assessmentService.DeleteQuiz(c.Param("id"), userID); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "quiz deleted"})
}

type attemptRequest struct {
	Answers   map[string]string `json:"answers" binding:"required"`
	StartedAt time.Time         `json:"started_at"`
}

func (r *attemptRequest) startedAt() time.Time {
	if r.StartedAt.IsZero() {
		return time.Now()
	}
	return r.StartedAt
}

func (h *AssessmentHandler) SubmitQuizAttempt(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req attemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	attempt, err := h.assessmentService.SubmitQuizAttempt(c.Param("id"), userID, req.Answers, req.startedAt())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, attempt)
}

func (h *AssessmentHandler) QuizAttempts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	attempts, err := h.assessmentService.QuizAttempts(c.Param("id"), userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attempts": attempts})
}

func (h *AssessmentHandler) CreateFlashcard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req service.FlashcardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	card, err := h.assessmentService.CreateFlashcard(userID, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, card)
}

func (h *AssessmentHandler) CourseFlashcards(c *gin.Context) {
	cards, err := h.assessmentService.CourseFlashcards(c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"flashcards": cards})
}

func (h *AssessmentHandler) DeleteFlashcard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.assessmentService.DeleteFlashcard(c.Param("id"), userID); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "flashcard deleted"})
}

func (h *AssessmentHandler) CreateExam(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req service.ExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	exam, err := h.assessmentService.CreateExam(userID, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, exam)
}

func (h *AssessmentHandler) GetExam(c *gin.Context) {
	exam, err := h.assessmentService.GetExam(c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, exam)
}

func (h *AssessmentHandler) CourseExams(c *gin.Context) {
	exams, err := h.assessmentService.CourseExams(c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exams": exams})
}

func (h *AssessmentHandler) DeleteExam(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.assessmentService.DeleteExam(c.Param("id"), userID); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "exam deleted"})
}

func (h *AssessmentHandler) SubmitExamAttempt(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req attemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	attempt, err := h.assessmentService.SubmitExamAttempt(c.Param("id"), userID, req.Answers, req.startedAt())
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, attempt)
}

func (h *AssessmentHandler) ExamAttempts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	attempts, err := h.assessmentService.ExamAttempts(c.Param("id"), userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attempts": attempts})
}
