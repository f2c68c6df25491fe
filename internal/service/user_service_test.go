package service

import (
	"testing"

	"tingling/internal/model"
	"tingling/internal/repository"
	"tingling/internal/store/storetest"
	"tingling/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateUser(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.users.CreateUser(CreateUserInput{GoogleID: "g-1", Name: "Ada", Emoji: "🦊"})
	require.NoError(t, err)
	assert.Regexp(t, `^ting-\d{4}$`, user.ID)
	assert.Equal(t, model.CallStatusOffline, user.CallStatus)

	_, err = env.users.CreateUser(CreateUserInput{GoogleID: "g-1", Name: "Other", Emoji: "🐻"})
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = env.users.CreateUser(CreateUserInput{GoogleID: "g-2", Name: "  ", Emoji: "🐻"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateUserRetriesOnIDCollision(t *testing.T) {
	env := newTestEnv(t)
	env.seedUsers(t, "ting-0001")

	ids := []string{"ting-0001", "ting-0001", "ting-0002"}
	svc := &userService{
		userRepo: repository.NewUserRepository(env.db),
		newID: func() string {
			id := ids[0]
			ids = ids[1:]
			return id
		},
	}

	user, err := svc.CreateUser(CreateUserInput{GoogleID: "g-new", Name: "Grace", Emoji: "🐝"})
	require.NoError(t, err)
	assert.Equal(t, "ting-0002", user.ID)
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv(t)
	created, err := env.users.CreateUser(CreateUserInput{
		GoogleID:          "g-1",
		Name:              "Ada",
		Emoji:             "🦊",
		ProfilePictureURL: strPtr("https://example.com/a.png"),
	})
	require.NoError(t, err)

	t.Run("only provided fields change", func(t *testing.T) {
		updated, err := env.users.UpdateUser(created.ID, UpdateUserInput{Name: strPtr("Ada L.")})
		require.NoError(t, err)
		assert.Equal(t, "Ada L.", updated.Name)
		assert.Equal(t, "🦊", updated.Emoji)
		require.NotNil(t, updated.ProfilePictureURL)
		assert.Equal(t, "https://example.com/a.png", *updated.ProfilePictureURL)
	})

	t.Run("explicit null clears the picture", func(t *testing.T) {
		updated, err := env.users.UpdateUser(created.ID, UpdateUserInput{
			ProfilePictureURL: util.NullableString{Set: true},
		})
		require.NoError(t, err)
		assert.Nil(t, updated.ProfilePictureURL)
	})

	t.Run("invalid call status", func(t *testing.T) {
		bad := model.CallStatus("away")
		_, err := env.users.UpdateUser(created.ID, UpdateUserInput{CallStatus: &bad})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := env.users.UpdateUser("ting-9999", UpdateUserInput{Name: strPtr("x")})
		assert.ErrorIs(t, err, ErrUserNotFound)

		_, err = env.users.UpdateUser("ting-9999", UpdateUserInput{})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestGetUserByIDReturnsNilWhenAbsent(t *testing.T) {
	env := newTestEnv(t)
	env.seedUsers(t, "ting-0001")

	user, err := env.users.GetUserByID("ting-0001")
	require.NoError(t, err)
	require.NotNil(t, user)

	user, err = env.users.GetUserByID("ting-4242")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestSearchUsers(t *testing.T) {
	env := newTestEnv(t)
	storetest.SeedUser(t, env.db, "ting-0001", "Alice Smith")
	storetest.SeedUser(t, env.db, "ting-0002", "Bob")
	storetest.SeedUser(t, env.db, "ting-0003", "Malice")

	users, err := env.users.SearchUsers("   ")
	require.NoError(t, err)
	assert.Empty(t, users)

	users, err = env.users.SearchUsers("ALICE")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ting-0001", "ting-0003"}, userIDs(users))

	users, err = env.users.SearchUsers("TING-0002")
	require.NoError(t, err)
	assert.Equal(t, []string{"ting-0002"}, userIDs(users))

	// ids only match exactly
	users, err = env.users.SearchUsers("ting-000")
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestSetPresence(t *testing.T) {
	env := newTestEnv(t)
	env.seedUsers(t, "ting-0001")

	require.NoError(t, env.users.SetPresence("ting-0001", model.CallStatusInCall))
	user, err := env.users.GetUserByID("ting-0001")
	require.NoError(t, err)
	assert.Equal(t, model.CallStatusInCall, user.CallStatus)

	assert.ErrorIs(t, env.users.SetPresence("ting-9999", model.CallStatusOnline), ErrUserNotFound)
}

func userIDs(users []model.User) []string {
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}
