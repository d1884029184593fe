package service

import (
	"testing"

	"github.com/jossyfresh/EduAssist/internal/model"
	"github.com/jossyfresh/EduAssist/internal/repository"
	"github.com/jossyfresh/EduAssist/pkg/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, id string) {
	require.NoError(t, db.DB.Create(&model.User{
		ID:             id,
		Email:          id + "@example.com",
		Username:       id,
		HashedPassword: "hash",
		IsActive:       true,
	}).Error)
}

func newChatService(t *testing.T) *ChatService {
	setupTestDB(t)
	return NewChatService(repository.NewChatRepository(db.DB), repository.NewUserRepository(db.DB))
}

func TestChatService_CreateGroupAddsCreatorAsMember(t *testing.T) {
	service := newChatService(t)
	seedUser(t, "creator")

	group, err := service.CreateGroup("creator", CreateGroupRequest{Name: "study group"})
	require.NoError(t, err)
	require.NotZero(t, group.ID)

	isMember, err := service.IsMember(group.ID, "creator")
	require.NoError(t, err)
	assert.True(t, isMember)

	groups, err := service.GetUserGroups("creator")
	require.NoError(t, err)
	assert.Len(t, groups, 1)
}

func TestChatService_MembershipRules(t *testing.T) {
	service := newChatService(t)
	seedUser(t, "creator")
	seedUser(t, "member")
	seedUser(t, "outsider")

	group, err := service.CreateGroup("creator", CreateGroupRequest{Name: "g"})
	require.NoError(t, err)

	// Only the creator may add members.
	assert.ErrorIs(t, service.AddMember(group.ID, "outsider", "member"), ErrForbidden)
	require.NoError(t, service.AddMember(group.ID, "creator", "member"))

	// Adding twice conflicts.
	assert.ErrorIs(t, service.AddMember(group.ID, "creator", "member"), ErrAlreadyExists)

	// The target user must exist.
	assert.ErrorIs(t, service.AddMember(group.ID, "creator", "ghost"), ErrNotFound)

	// A member may leave on their own, but cannot remove others.
	assert.ErrorIs(t, service.RemoveMember(group.ID, "member", "creator"), ErrForbidden)
	require.NoError(t, service.RemoveMember(group.ID, "member", "member"))

	isMember, err := service.IsMember(group.ID, "member")
	require.NoError(t, err)
	assert.False(t, isMember)
}

func TestChatService_CreateMessageRequiresGroup(t *testing.T) {
	service := newChatService(t)
	seedUser(t, "creator")

	_, err := service.CreateMessage(9999, "creator", "into the void")
	assert.ErrorIs(t, err, ErrNotFound)

	group, err := service.CreateGroup("creator", CreateGroupRequest{Name: "g"})
	require.NoError(t, err)

	message, err := service.CreateMessage(group.ID, "creator", "hello")
	require.NoError(t, err)
	assert.NotZero(t, message.ID)
	assert.Equal(t, group.ID, message.GroupID)
}

func TestChatService_MessagesAndSearch(t *testing.T) {
	service := newChatService(t)
	seedUser(t, "creator")

	group, err := service.CreateGroup("creator", CreateGroupRequest{Name: "g"})
	require.NoError(t, err)

	for _, content := range []string{"first message", "second message", "unrelated note"} {
		_, err := service.CreateMessage(group.ID, "creator", content)
		require.NoError(t, err)
	}

	messages, err := service.GetGroupMessages(group.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, messages, 3)

	found, err := service.SearchMessages(group.ID, "message", 10, 0)
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestChatService_ReadReceipts(t *testing.T) {
	service := newChatService(t)
	seedUser(t, "creator")
	seedUser(t, "reader")

	group, err := service.CreateGroup("creator", CreateGroupRequest{Name: "g"})
	require.NoError(t, err)
	require.NoError(t, service.AddMember(group.ID, "creator", "reader"))

	message, err := service.CreateMessage(group.ID, "creator", "read me")
	require.NoError(t, err)

	read, err := service.MarkMessageRead(message.ID, "reader")
	require.NoError(t, err)
	assert.Equal(t, "reader", read.UserID)

	reads, err := service.GetMessageReads(message.ID)
	require.NoError(t, err)
	assert.Len(t, reads, 1)

	_, err = service.MarkMessageRead(9999, "reader")
	assert.ErrorIs(t, err, ErrNotFound)
}
