package repository

import (
	"testing"
	"time"

	"tingling/internal/model"
	"tingling/internal/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFriendRequestPairIsUnique(t *testing.T) {
	db := storetest.NewTestDB(t)
	storetest.SeedUser(t, db, "ting-0001", "A")
	storetest.SeedUser(t, db, "ting-0002", "B")
	repo := NewFriendRequestRepository(db)

	require.NoError(t, repo.Create(&model.FriendRequest{SenderID: "ting-0001", ReceiverID: "ting-0002", Status: model.FriendRequestStatusPending}))

	err := repo.Create(&model.FriendRequest{SenderID: "ting-0002", ReceiverID: "ting-0001", Status: model.FriendRequestStatusPending})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	found, err := repo.FindBetween("ting-0002", "ting-0001")
	require.NoError(t, err)
	assert.Equal(t, "ting-0001", found.SenderID)
}

func TestFriendRequestRespond(t *testing.T) {
	db := storetest.NewTestDB(t)
	storetest.SeedUser(t, db, "ting-0001", "A")
	storetest.SeedUser(t, db, "ting-0002", "B")
	repo := NewFriendRequestRepository(db)

	req := &model.FriendRequest{SenderID: "ting-0001", ReceiverID: "ting-0002", Status: model.FriendRequestStatusPending}
	require.NoError(t, repo.Create(req))

	updated, err := repo.Respond(req.ID, model.FriendRequestStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, model.FriendRequestStatusAccepted, updated.Status)

	_, err = repo.Respond(req.ID, model.FriendRequestStatusRejected)
	assert.ErrorIs(t, err, ErrNotPending)

	ok, err := NewFriendshipRepository(db).ExistsBetween("ting-0002", "ting-0001")
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = repo.Respond(12345, model.FriendRequestStatusAccepted)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepositoryUpdate(t *testing.T) {
	db := storetest.NewTestDB(t)
	storetest.SeedUser(t, db, "ting-0001", "A")
	repo := NewUserRepository(db)

	user, err := repo.Update("ting-0001", map[string]interface{}{"name": "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", user.Name)

	_, err = repo.Update("ting-0404", map[string]interface{}{"name": "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	count, err := repo.CountByIDs("ting-0001", "ting-0404")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestMessageCreateUpdatesChatAndCounters(t *testing.T) {
	db := storetest.NewTestDB(t)
	storetest.SeedUser(t, db, "ting-0001", "A")
	storetest.SeedUser(t, db, "ting-0002", "B")
	chats := NewChatRepository(db)
	messages := NewMessageRepository(db)

	chat := &model.Chat{User1ID: "ting-0001", User2ID: "ting-0002"}
	require.NoError(t, chats.CreateWithParticipants(chat))

	for i := 0; i < 3; i++ {
		require.NoError(t, messages.Create(&model.Message{ChatID: chat.ID, SenderID: "ting-0002", Content: "ping", MessageType: model.MessageTypeText}))
	}

	unread, err := chats.GetUnreadCount("ting-0001")
	require.NoError(t, err)
	assert.EqualValues(t, 3, unread)

	unread, err = chats.GetUnreadCount("ting-0002")
	require.NoError(t, err)
	assert.EqualValues(t, 0, unread)

	err = messages.Create(&model.Message{ChatID: 999, SenderID: "ting-0001", Content: "lost", MessageType: model.MessageTypeText})
	require.Error(t, err)
	var n int64
	require.NoError(t, db.Model(&model.Message{}).Where("chat_id = ?", 999).Count(&n).Error)
	assert.Zero(t, n)
}

func TestChatPairIsUnique(t *testing.T) {
	db := storetest.NewTestDB(t)
	storetest.SeedUser(t, db, "ting-0001", "A")
	storetest.SeedUser(t, db, "ting-0002", "B")
	chats := NewChatRepository(db)

	require.NoError(t, chats.CreateWithParticipants(&model.Chat{User1ID: "ting-0001", User2ID: "ting-0002"}))
	err := chats.CreateWithParticipants(&model.Chat{User1ID: "ting-0002", User2ID: "ting-0001"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	var participants int64
	require.NoError(t, db.Model(&model.ChatParticipant{}).Count(&participants).Error)
	assert.EqualValues(t, 2, participants)
}

func TestStatusViewCreateOrGet(t *testing.T) {
	db := storetest.NewTestDB(t)
	storetest.SeedUser(t, db, "owner", "Owner")
	storetest.SeedUser(t, db, "viewer", "Viewer")
	status := &model.Status{UserID: "owner", MediaType: model.MediaTypeText, Privacy: model.PrivacyPublic, ExpiresAt: time.Now().UTC().Add(time.Hour)}
	require.NoError(t, db.Create(status).Error)
	repo := NewStatusViewRepository(db)

	first, err := repo.CreateOrGet(&model.StatusView{StatusID: status.ID, ViewerID: "viewer"})
	require.NoError(t, err)
	second, err := repo.CreateOrGet(&model.StatusView{StatusID: status.ID, ViewerID: "viewer"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	views, err := repo.FindByStatusID(status.ID)
	require.NoError(t, err)
	assert.Len(t, views, 1)

	err = db.Create(&model.StatusView{StatusID: status.ID, ViewerID: "viewer"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestSessionRepositoryWithoutRedis(t *testing.T) {
	repo := NewSessionRepository(nil)

	require.NoError(t, repo.Save("sid", "ting-0001", time.Minute))
	ok, err := repo.Belongs("sid", "ting-0001")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, repo.Delete("sid"))
}
