package api

import (
	"net/http"

	"github.com/jossyfresh/EduAssist/internal/service"
	internalws "github.com/jossyfresh/EduAssist/internal/websocket"
	"github.com/jossyfresh/EduAssist/pkg/config"
	"github.com/jossyfresh/EduAssist/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSHandler struct {
	chatService *service.ChatService
	sessions    *internalws.SessionManager
}

func NewWSHandler(chatService *service.ChatService, sessions *internalws.SessionManager) *WSHandler {
	return &WSHandler{
		chatService: chatService,
		sessions:    sessions,
	}
}

// HandleWebSocket upgrades the request and attaches the connection to the
// group's fan-out. Membership is checked before the upgrade.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	groupID, ok := uintParam(c, "group_id")
	if !ok {
		return
	}

	isMember, err := h.chatService.IsMember(groupID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !isMember {
		c.JSON(http.StatusForbidden, gin.H{"error": "not a member of this group"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.L.Error("Websocket upgrade failed",
			zap.String("userID", userID),
			zap.Uint("groupID", groupID),
			zap.Error(err))
		return
	}

	client := internalws.NewClient(groupID, userID, conn, h.sessions, config.GlobalConfig.WebSocket)
	h.sessions.OnConnect(client)

	go client.WritePump()
	go client.ReadPump()
}
