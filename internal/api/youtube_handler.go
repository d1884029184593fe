package api

import (
	"fmt"
	"net/http"

	"github.com/jossyfresh/EduAssist/internal/service"

	"github.com/gin-gonic/gin"
)

type YouTubeHandler struct {
	youtubeService *service.YouTubeService
}

func NewYouTubeHandler(youtubeService *service.YouTubeService) *YouTubeHandler {
	return &YouTubeHandler{youtubeService: youtubeService}
}

func (h *YouTubeHandler) Ingest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req service.IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	content, err := h.youtubeService.Ingest(c.Request.Context(), userID, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, content)
}

func (h *YouTubeHandler) Get(c *gin.Context) {
	content, err := h.youtubeService.Get(c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, content)
}

func (h *YouTubeHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit, offset := pagination(c)
	contents, err := h.youtubeService.List(userID, limit, offset)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": contents})
}

func (h *YouTubeHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.youtubeService.Delete(c.Param("id"), userID); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "video deleted"})
}

func (h *YouTubeHandler) Transcript(c *gin.Context) {
	content, err := h.youtubeService.Get(c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"video_id":   content.VideoID,
		"transcript": content.Transcript,
	})
}

// Download streams the raw video bytes to the caller.
func (h *YouTubeHandler) Download(c *gin.Context) {
	content, err := h.youtubeService.Get(c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}

	c.Header("Content-Type", "video/mp4")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", content.VideoID+".mp4"))
	if _, err := h.youtubeService.Download(c.Request.Context(), content.ID, c.Writer); err != nil {
		// Headers may already be written; all we can do is abort the stream.
		_ = c.AbortWithError(http.StatusInternalServerError, err)
	}
}

func (h *YouTubeHandler) VideoChat(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req service.VideoChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reply, err := h.youtubeService.VideoChat(c.Request.Context(), c.Param("id"), userID, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reply)
}

func (h *YouTubeHandler) ChatHistory(c *gin.Context) {
	limit, offset := pagination(c)
	messages, err := h.youtubeService.ChatHistory(c.Param("id"), limit, offset)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
