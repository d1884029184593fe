package service

import (
	"fmt"

	"github.com/jossyfresh/EduAssist/internal/model"
	"github.com/jossyfresh/EduAssist/internal/repository"
	"github.com/jossyfresh/EduAssist/pkg/logger"

	"go.uber.org/zap"
)

// ChatService owns chat groups, membership, messages and read receipts.
// It also implements interfaces.MessageStore for the websocket fan-out.
type ChatService struct {
	chatRepo *repository.ChatRepository
	userRepo *repository.UserRepository
}

func NewChatService(chatRepo *repository.ChatRepository, userRepo *repository.UserRepository) *ChatService {
	return &ChatService{
		chatRepo: chatRepo,
		userRepo: userRepo,
	}
}

type CreateGroupRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

func (s *ChatService) CreateGroup(creatorID string, req CreateGroupRequest) (*model.ChatGroup, error) {
	group := &model.ChatGroup{
		Name:      req.Name,
		CreatedBy: creatorID,
	}
	if err := s.chatRepo.CreateGroup(group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return group, nil
}

func (s *ChatService) GetGroup(groupID uint) (*model.ChatGroup, error) {
	group, err := s.chatRepo.FindGroupByID(groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrNotFound
	}
	return group, nil
}

func (s *ChatService) GetUserGroups(userID string) ([]model.ChatGroup, error) {
	return s.chatRepo.FindUserGroups(userID)
}

// AddMember adds a user to a group. Only the creator may add members.
func (s *ChatService) AddMember(groupID uint, actorID, userID string) error {
	group, err := s.chatRepo.FindGroupByID(groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrNotFound
	}
	if group.CreatedBy != actorID {
		return ErrForbidden
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	isMember, err := s.chatRepo.IsMember(groupID, userID)
	if err != nil {
		return err
	}
	if isMember {
		return ErrAlreadyExists
	}

	return s.chatRepo.AddMember(groupID, userID)
}

// RemoveMember removes a user. The creator may remove anyone; members may
// remove themselves.
func (s *ChatService) RemoveMember(groupID uint, actorID, userID string) error {
	group, err := s.chatRepo.FindGroupByID(groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrNotFound
	}
	if group.CreatedBy != actorID && userID != actorID {
		return ErrForbidden
	}

	removed, err := s.chatRepo.RemoveMember(groupID, userID)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("member %s: %w", userID, ErrNotFound)
	}
	return nil
}

// CreateMessage persists one message. This is the MessageStore entry point
// used by the websocket session lifecycle, and also backs the REST create
// endpoint.
func (s *ChatService) CreateMessage(groupID uint, senderID, content string) (*model.Message, error) {
	return s.createMessage(groupID, senderID, content, "")
}

// CreateFileMessage persists a message carrying an uploaded file reference.
func (s *ChatService) CreateFileMessage(groupID uint, senderID, content, fileURL string) (*model.Message, error) {
	return s.createMessage(groupID, senderID, content, fileURL)
}

func (s *ChatService) createMessage(groupID uint, senderID, content, fileURL string) (*model.Message, error) {
	group, err := s.chatRepo.FindGroupByID(groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrNotFound
	}

	message := &model.Message{
		GroupID:  groupID,
		SenderID: senderID,
		Content:  content,
		FileURL:  fileURL,
	}
	if err := s.chatRepo.CreateMessage(message); err != nil {
		logger.L.Error("Error saving message",
			zap.Uint("groupID", groupID),
			zap.String("senderID", senderID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to save message: %w", err)
	}
	return message, nil
}

func (s *ChatService) GetGroupMessages(groupID uint, limit, offset int) ([]model.Message, error) {
	return s.chatRepo.FindGroupMessages(groupID, limit, offset)
}

func (s *ChatService) SearchMessages(groupID uint, query string, limit, offset int) ([]model.Message, error) {
	return s.chatRepo.SearchMessages(groupID, query, limit, offset)
}

// MarkMessageRead records a read receipt for the message.
func (s *ChatService) MarkMessageRead(messageID uint, userID string) (*model.MessageRead, error) {
	message, err := s.chatRepo.FindMessageByID(messageID)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, ErrNotFound
	}

	read := &model.MessageRead{
		MessageID: messageID,
		UserID:    userID,
	}
	if err := s.chatRepo.CreateMessageRead(read); err != nil {
		return nil, fmt.Errorf("failed to record read receipt: %w", err)
	}
	return read, nil
}

func (s *ChatService) GetMessageReads(messageID uint) ([]model.MessageRead, error) {
	return s.chatRepo.FindMessageReads(messageID)
}

func (s *ChatService) GetMessage(messageID uint) (*model.Message, error) {
	message, err := s.chatRepo.FindMessageByID(messageID)
	if err != nil {
		return nil, err
	}
	if message == nil {
		return nil, ErrNotFound
	}
	return message, nil
}

func (s *ChatService) IsMember(groupID uint, userID string) (bool, error) {
	return s.chatRepo.IsMember(groupID, userID)
}
