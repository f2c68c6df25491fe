package service

import (
	"sync"
	"testing"

	"tingling/internal/model"
	"tingling/internal/repository"
	"tingling/internal/store/storetest"

	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(eventType string, _ interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

type testEnv struct {
	db         *gorm.DB
	events     *recordingPublisher
	users      UserService
	friendship FriendshipService
	chats      ChatService
	calls      CallService
	statuses   StatusService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := storetest.NewTestDB(t)
	events := &recordingPublisher{}

	userRepo := repository.NewUserRepository(db)
	friendshipRepo := repository.NewFriendshipRepository(db)

	return &testEnv{
		db:     db,
		events: events,
		users:  NewUserService(userRepo),
		friendship: NewFriendshipService(
			repository.NewFriendRequestRepository(db),
			friendshipRepo,
			repository.NewBlockRepository(db),
			userRepo,
			events,
		),
		chats: NewChatService(
			repository.NewChatRepository(db),
			repository.NewMessageRepository(db),
			events,
		),
		calls: NewCallService(repository.NewCallLogRepository(db), events),
		statuses: NewStatusService(
			repository.NewStatusRepository(db),
			repository.NewStatusViewRepository(db),
			friendshipRepo,
			events,
		),
	}
}

func (e *testEnv) seedUsers(t *testing.T, ids ...string) {
	t.Helper()
	for _, id := range ids {
		storetest.SeedUser(t, e.db, id, "User "+id)
	}
}

func (e *testEnv) makeFriends(t *testing.T, user1, user2 string) {
	t.Helper()
	if err := e.db.Create(&model.Friendship{User1ID: user1, User2ID: user2}).Error; err != nil {
		t.Fatalf("create friendship: %v", err)
	}
}

func (e *testEnv) countRows(t *testing.T, value interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	if err := e.db.Model(value).Where(query, args...).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
