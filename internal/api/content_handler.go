package api

import (
	"net/http"

	"github.com/jossyfresh/EduAssist/internal/service"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	courseService *service.CourseService
	generator     *service.ContentGenerator
}

func NewContentHandler(courseService *service.CourseService, generator *service.ContentGenerator) *ContentHandler {
	return &ContentHandler{
		courseService: courseService,
		generator:     generator,
	}
}

func (h *ContentHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req service.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	content, err := h.courseService.CreateContent(userID, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, content)
}

func (h *ContentHandler) Get(c *gin.Context) {
	content, err := h.courseService.GetContent(c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, content)
}

func (h *ContentHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	contents, err := h.courseService.ListContent(limit, offset)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contents": contents})
}

func (h *ContentHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req service.ContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	content, err := h.courseService.UpdateContent(c.Param("id"), userID, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, content)
}

func (h *ContentHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.courseService.DeleteContent(c.Param("id"), userID); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "content deleted"})
}

// Generate produces AI content (quiz, flashcards, summary, lesson,
// youtube suggestions) from a prompt template.
func (h *ContentHandler) Generate(c *gin.Context) {
	if h.generator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "content generation is not configured"})
		return
	}

	var req service.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.generator.Generate(c.Request.Context(), req)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
