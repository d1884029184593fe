package repository

import (
	"errors"

	"github.com/jossyfresh/EduAssist/internal/model"

	"gorm.io/gorm"
)

// ChatRepository persists chat groups, memberships, messages and read
// receipts.
type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// CreateGroup creates the group and adds the creator as its first member.
func (r *ChatRepository) CreateGroup(group *model.ChatGroup) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		member := &model.GroupMember{
			GroupID: group.ID,
			UserID:  group.CreatedBy,
		}
		return tx.Create(member).Error
	})
}

func (r *ChatRepository) FindGroupByID(groupID uint) (*model.ChatGroup, error) {
	var group model.ChatGroup
	err := r.db.Preload("Members").First(&group, groupID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

// FindUserGroups returns every group the user is a member of.
func (r *ChatRepository) FindUserGroups(userID string) ([]model.ChatGroup, error) {
	var groups []model.ChatGroup
	err := r.db.Joins("JOIN group_members ON chat_groups.id = group_members.group_id").
		Where("group_members.user_id = ?", userID).
		Order("chat_groups.created_at DESC").
		Find(&groups).Error
	return groups, err
}

func (r *ChatRepository) AddMember(groupID uint, userID string) error {
	member := &model.GroupMember{GroupID: groupID, UserID: userID}
	return r.db.Create(member).Error
}

// RemoveMember reports whether a membership row was actually deleted.
func (r *ChatRepository) RemoveMember(groupID uint, userID string) (bool, error) {
	res := r.db.Where("group_id = ? AND user_id = ?", groupID, userID).Delete(&model.GroupMember{})
	return res.RowsAffected > 0, res.Error
}

func (r *ChatRepository) IsMember(groupID uint, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *ChatRepository) CreateMessage(message *model.Message) error {
	return r.db.Create(message).Error
}

func (r *ChatRepository) FindGroupMessages(groupID uint, limit, offset int) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.Where("group_id = ?", groupID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	return messages, err
}

// SearchMessages does a LIKE match over a group's message bodies.
func (r *ChatRepository) SearchMessages(groupID uint, query string, limit, offset int) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.Where("group_id = ? AND content LIKE ?", groupID, "%"+query+"%").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	return messages, err
}

func (r *ChatRepository) FindMessageByID(messageID uint) (*model.Message, error) {
	var message model.Message
	if err := r.db.First(&message, messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

func (r *ChatRepository) CreateMessageRead(read *model.MessageRead) error {
	return r.db.Create(read).Error
}

func (r *ChatRepository) FindMessageReads(messageID uint) ([]model.MessageRead, error) {
	var reads []model.MessageRead
	err := r.db.Where("message_id = ?", messageID).Order("read_at ASC").Find(&reads).Error
	return reads, err
}
