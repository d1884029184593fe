package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jossyfresh/EduAssist/internal/service"
	internalws "github.com/jossyfresh/EduAssist/internal/websocket"
	"github.com/jossyfresh/EduAssist/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

var allowedUploadExtensions = []string{".txt", ".pdf", ".doc", ".docx", ".jpg", ".jpeg", ".png"}

type ChatHandler struct {
	chatService *service.ChatService
	dispatcher  *internalws.Dispatcher
}

func NewChatHandler(chatService *service.ChatService, dispatcher *internalws.Dispatcher) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		dispatcher:  dispatcher,
	}
}

func (h *ChatHandler) CreateGroup(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req service.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	group, err := h.chatService.CreateGroup(userID, req)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

func (h *ChatHandler) GetGroup(c *gin.Context) {
	groupID, ok := uintParam(c, "group_id")
	if !ok {
		return
	}
	group, err := h.chatService.GetGroup(groupID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, group)
}

func (h *ChatHandler) MyGroups(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	groups, err := h.chatService.GetUserGroups(userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

type memberRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

func (h *ChatHandler) AddMember(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}
	groupID, ok := uintParam(c, "group_id")
	if !ok {
		return
	}
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.chatService.AddMember(groupID, actorID, req.UserID); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "member added"})
}

func (h *ChatHandler) RemoveMember(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}
	groupID, ok := uintParam(c, "group_id")
	if !ok {
		return
	}
	if err := h.chatService.RemoveMember(groupID, actorID, c.Param("user_id")); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "member removed"})
}

type sendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// SendMessage is the REST path for posting a message. The message is
// persisted first; connected group members receive it over their sockets.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	groupID, ok := h.requireMembership(c)
	if !ok {
		return
	}
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	message, err := h.chatService.CreateMessage(groupID, userID, req.Content)
	if err != nil {
		serviceError(c, err)
		return
	}
	h.dispatcher.BroadcastToGroup(internalws.NewMessageEvent(message))
	c.JSON(http.StatusCreated, message)
}

func (h *ChatHandler) GroupMessages(c *gin.Context) {
	groupID, ok := h.requireMembership(c)
	if !ok {
		return
	}
	limit, offset := pagination(c)
	messages, err := h.chatService.GetGroupMessages(groupID, limit, offset)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (h *ChatHandler) SearchMessages(c *gin.Context) {
	groupID, ok := h.requireMembership(c)
	if !ok {
		return
	}
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}
	limit, offset := pagination(c)
	messages, err := h.chatService.SearchMessages(groupID, query, limit, offset)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (h *ChatHandler) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	messageID, ok := uintParam(c, "message_id")
	if !ok {
		return
	}
	read, err := h.chatService.MarkMessageRead(messageID, userID)
	if err != nil {
		serviceError(c, err)
		return
	}
	if message, err := h.chatService.GetMessage(messageID); err == nil {
		h.dispatcher.BroadcastReadReceipt(message.GroupID, userID, messageID)
	}
	c.JSON(http.StatusCreated, read)
}

func (h *ChatHandler) MessageReads(c *gin.Context) {
	messageID, ok := uintParam(c, "message_id")
	if !ok {
		return
	}
	reads, err := h.chatService.GetMessageReads(messageID)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reads": reads})
}

// UploadFile stores an attachment on disk and posts a file message to the
// group. Only a small allow-list of extensions is accepted.
func (h *ChatHandler) UploadFile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	groupID, ok := h.requireMembership(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	uploadCfg := config.GlobalConfig.Upload
	if uploadCfg.MaxFileSize > 0 && file.Size > uploadCfg.MaxFileSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file exceeds the maximum allowed size"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !lo.Contains(allowedUploadExtensions, ext) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("file type %s is not allowed", ext)})
		return
	}

	if err := os.MkdirAll(uploadCfg.Dir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to prepare upload directory"})
		return
	}

	storedName := fmt.Sprintf("%d_%s%s", time.Now().Unix(), uuid.NewString(), ext)
	dst := filepath.Join(uploadCfg.Dir, storedName)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
		return
	}

	fileURL := "/uploads/" + storedName
	message, err := h.chatService.CreateFileMessage(groupID, userID, c.PostForm("content"), fileURL)
	if err != nil {
		serviceError(c, err)
		return
	}
	h.dispatcher.BroadcastToGroup(internalws.NewMessageEvent(message))
	c.JSON(http.StatusCreated, message)
}

// requireMembership resolves the group_id param and rejects callers who are
// not members of the group.
func (h *ChatHandler) requireMembership(c *gin.Context) (uint, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return 0, false
	}
	groupID, ok := uintParam(c, "group_id")
	if !ok {
		return 0, false
	}
	isMember, err := h.chatService.IsMember(groupID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return 0, false
	}
	if !isMember {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a member of this group"})
		return 0, false
	}
	return groupID, true
}
