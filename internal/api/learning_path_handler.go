package api

import (
	"net/http"

	"github.com/jossyfresh/EduAssist/internal/service"

	"github.com/gin-gonic/gin"
)

type LearningPathHandler struct {
	pathService *service.LearningPathService
}

func NewLearningPathHandler(pathService *service.LearningPathService) *LearningPathHandler {
	return &LearningPathHandler{pathService: pathService}
}

func (h *LearningPathHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req service.LearningPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	path, err := h.pathService.Create(userID, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, path)
}

func (h *LearningPathHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	path, err := h.pathService.Get(c.Param("id"), userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, path)
}

func (h *LearningPathHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit, offset := pagination(c)
	paths, err := h.pathService.List(userID, limit, offset)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"learning_paths": paths})
}

func (h *LearningPathHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req service.LearningPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	path, err := h.pathService.Update(c.Param("id"), userID, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, path)
}

func (h *LearningPathHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.pathService.Delete(c.Param("id"), userID); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "learning path deleted"})
}

func (h *LearningPathHandler) CreateStep(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req service.StepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	step, err := h.pathService.CreateStep(c.Param("id"), userID, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, step)
}

func (h *LearningPathHandler) ListSteps(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	steps, err := h.pathService.ListSteps(c.Param("id"), userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"steps": steps})
}

func (h *LearningPathHandler) UpdateStep(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req service.StepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	step, err := h.pathService.UpdateStep(c.Param("step_id"), userID, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, step)
}

func (h *LearningPathHandler) DeleteStep(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.pathService.DeleteStep(c.Param("step_id"), userID); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "step deleted"})
}

type reorderRequest struct {
	StepIDs []string `json:"step_ids" binding:"required,min=1"`
}

func (h *LearningPathHandler) ReorderSteps(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.pathService.ReorderSteps(c.Param("id"), userID, req.StepIDs); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "steps reordered"})
}

func (h *LearningPathHandler) UpsertProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req service.ProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	progress, err := h.pathService.UpsertProgress(userID, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

func (h *LearningPathHandler) GetProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	records, err := h.pathService.GetProgress(userID, c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": records})
}

func (h *LearningPathHandler) ProgressSummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	summary, err := h.pathService.Summary(userID, c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
