package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tingling/internal/config"
	"tingling/internal/service"
	"tingling/internal/store/storetest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		ClientURL:      "http://localhost:3000",
		JWTSecret:      "test-secret",
		AccessTokenTTL: time.Hour,
		AuthMode:       "demo",
	}
	engine := NewEngine(cfg, Dependencies{
		DB:       storetest.NewTestDB(t),
		Verifier: service.DemoVerifier{},
	})
	return &testServer{t: t, engine: engine}
}

func (s *testServer) do(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w.Code, env
}

// signIn returns the access token and user id for a demo account
func (s *testServer) signIn(externalID, name string) (string, string) {
	s.t.Helper()

	code, env := s.do(http.MethodPost, "/api/v1/auth/sign-in", "", gin.H{
		"credential": externalID,
		"name":       name,
		"emoji":      "🙂",
	})
	require.Equal(s.t, http.StatusOK, code, env.Message)

	var data struct {
		AccessToken string `json:"access_token"`
		User        struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &data))
	return data.AccessToken, data.User.ID
}

func decode(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/v1/friends", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)

	code, _ = s.do(http.MethodGet, "/api/v1/friends", "bogus", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthAfterClose(t *testing.T) {
	gin.SetMode(gin.TestMode)
	deps := Dependencies{
		DB:       storetest.NewTestDB(t),
		Verifier: service.DemoVerifier{},
	}
	engine := NewEngine(&config.Config{JWTSecret: "test-secret", AuthMode: "demo", AccessTokenTTL: time.Hour}, deps)

	deps.Close()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestUserEndpoints(t *testing.T) {
	s := newTestServer(t)
	token, me := s.signIn("ext-ada", "Ada")

	code, env := s.do(http.MethodPatch, "/api/v1/users/me", token, gin.H{
		"name":                "Ada Lovelace",
		"profile_picture_url": nil,
		"call_status":         "in_call",
	})
	require.Equal(t, http.StatusOK, code, env.Message)
	var updated struct {
		User struct {
			Name       string `json:"name"`
			CallStatus string `json:"call_status"`
		} `json:"user"`
	}
	decode(t, env, &updated)
	assert.Equal(t, "Ada Lovelace", updated.User.Name)
	assert.Equal(t, "in_call", updated.User.CallStatus)

	code, _ = s.do(http.MethodPatch, "/api/v1/users/me", token, gin.H{"call_status": "away"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(http.MethodGet, "/api/v1/users/search?q=lovelace", token, nil)
	require.Equal(t, http.StatusOK, code)
	var found struct {
		Users []struct {
			ID string `json:"id"`
		} `json:"users"`
	}
	decode(t, env, &found)
	require.Len(t, found.Users, 1)
	assert.Equal(t, me, found.Users[0].ID)

	code, env = s.do(http.MethodGet, "/api/v1/users/ting-x", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"user":null}`, string(env.Data))

	code, _ = s.do(http.MethodPost, "/api/v1/users", "", gin.H{"google_id": "ext-ada", "name": "Dup", "emoji": "🙂"})
	assert.Equal(t, http.StatusConflict, code)
}

func TestFriendAndChatFlow(t *testing.T) {
	s := newTestServer(t)
	aliceToken, alice := s.signIn("ext-alice", "Alice")
	bobToken, bob := s.signIn("ext-bob", "Bob")

	code, env := s.do(http.MethodPost, "/api/v1/friend-requests", aliceToken, gin.H{"receiver_id": bob})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var sent struct {
		FriendRequest struct {
			ID uint `json:"id"`
		} `json:"friend_request"`
	}
	decode(t, env, &sent)

	code, _ = s.do(http.MethodPost, "/api/v1/friend-requests", bobToken, gin.H{"receiver_id": alice})
	assert.Equal(t, http.StatusConflict, code)

	respondPath := fmt.Sprintf("/api/v1/friend-requests/%d/respond", sent.FriendRequest.ID)
	code, _ = s.do(http.MethodPost, respondPath, aliceToken, gin.H{"decision": "accepted"})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodPost, respondPath, bobToken, gin.H{"decision": "maybe"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(http.MethodPost, respondPath, bobToken, gin.H{"decision": "accepted"})
	require.Equal(t, http.StatusOK, code, env.Message)

	code, _ = s.do(http.MethodPost, respondPath, bobToken, gin.H{"decision": "rejected"})
	assert.Equal(t, http.StatusConflict, code)

	code, env = s.do(http.MethodGet, "/api/v1/friends", aliceToken, nil)
	require.Equal(t, http.StatusOK, code)
	var friends struct {
		Friends []struct {
			ID string `json:"id"`
		} `json:"friends"`
	}
	decode(t, env, &friends)
	require.Len(t, friends.Friends, 1)
	assert.Equal(t, bob, friends.Friends[0].ID)

	code, env = s.do(http.MethodPost, "/api/v1/chats", aliceToken, gin.H{"user_id": bob})
	require.Equal(t, http.StatusOK, code, env.Message)
	var opened struct {
		Chat struct {
			ID uint `json:"id"`
		} `json:"chat"`
	}
	decode(t, env, &opened)
	chatPath := fmt.Sprintf("/api/v1/chats/%d", opened.Chat.ID)

	code, env = s.do(http.MethodPost, chatPath+"/messages", aliceToken, gin.H{"content": "hi"})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var posted struct {
		Message struct {
			ID uint `json:"id"`
		} `json:"message"`
	}
	decode(t, env, &posted)

	code, env = s.do(http.MethodGet, "/api/v1/chats/unread-count", bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"count":1}`, string(env.Data))

	code, env = s.do(http.MethodGet, chatPath+"/messages?limit=10&offset=0", bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	var listed struct {
		Messages []struct {
			Content   string `json:"content"`
			IsDeleted bool   `json:"is_deleted"`
		} `json:"messages"`
	}
	decode(t, env, &listed)
	require.Len(t, listed.Messages, 1)
	assert.Equal(t, "hi", listed.Messages[0].Content)

	code, _ = s.do(http.MethodGet, chatPath+"/messages?limit=abc", bobToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(http.MethodPost, chatPath+"/read", bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"updated":true}`, string(env.Data))

	messagePath := fmt.Sprintf("/api/v1/messages/%d", posted.Message.ID)
	code, env = s.do(http.MethodDelete, messagePath, bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"deleted":false}`, string(env.Data))

	code, env = s.do(http.MethodDelete, messagePath, aliceToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"deleted":true}`, string(env.Data))

	code, env = s.do(http.MethodPost, "/api/v1/blocks", bobToken, gin.H{"user_id": alice})
	require.Equal(t, http.StatusCreated, code, env.Message)

	code, env = s.do(http.MethodGet, "/api/v1/friends", aliceToken, nil)
	require.Equal(t, http.StatusOK, code)
	decode(t, env, &friends)
	assert.Empty(t, friends.Friends)

	code, env = s.do(http.MethodDelete, "/api/v1/blocks/"+alice, bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"removed":true}`, string(env.Data))
}

func TestChatMessagesRequireMembership(t *testing.T) {
	s := newTestServer(t)
	aliceToken, _ := s.signIn("ext-alice", "Alice")
	_, bob := s.signIn("ext-bob", "Bob")
	eveToken, _ := s.signIn("ext-eve", "Eve")

	code, env := s.do(http.MethodPost, "/api/v1/chats", aliceToken, gin.H{"user_id": bob})
	require.Equal(t, http.StatusOK, code)
	var opened struct {
		Chat struct {
			ID uint `json:"id"`
		} `json:"chat"`
	}
	decode(t, env, &opened)
	chatPath := fmt.Sprintf("/api/v1/chats/%d", opened.Chat.ID)

	code, _ = s.do(http.MethodGet, chatPath+"/messages", eveToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodPost, chatPath+"/messages", eveToken, gin.H{"content": "psst"})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodPost, "/api/v1/chats", aliceToken, gin.H{"user_id": "ting-none"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestStatusAndCallEndpoints(t *testing.T) {
	s := newTestServer(t)
	aliceToken, alice := s.signIn("ext-alice", "Alice")
	bobToken, bob := s.signIn("ext-bob", "Bob")

	code, env := s.do(http.MethodPost, "/api/v1/statuses", aliceToken, gin.H{"content": "hello", "privacy": "public"})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var created struct {
		Status struct {
			ID uint `json:"id"`
		} `json:"status"`
	}
	decode(t, env, &created)

	code, _ = s.do(http.MethodPost, "/api/v1/statuses", aliceToken, gin.H{"privacy": "secret"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(http.MethodPost, "/api/v1/statuses", aliceToken, gin.H{"content": "friends only"})
	require.Equal(t, http.StatusCreated, code, env.Message)

	code, env = s.do(http.MethodGet, "/api/v1/users/"+alice+"/statuses", bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	var visible struct {
		Statuses []struct {
			ID uint `json:"id"`
		} `json:"statuses"`
	}
	decode(t, env, &visible)
	require.Len(t, visible.Statuses, 1)
	assert.Equal(t, created.Status.ID, visible.Statuses[0].ID)

	viewPath := fmt.Sprintf("/api/v1/statuses/%d/view", created.Status.ID)
	code, env = s.do(http.MethodPost, viewPath, bobToken, nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	code, _ = s.do(http.MethodPost, viewPath, bobToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodPost, "/api/v1/statuses/9999/view", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, code)

	viewsPath := fmt.Sprintf("/api/v1/statuses/%d/views", created.Status.ID)
	code, env = s.do(http.MethodGet, viewsPath, aliceToken, nil)
	require.Equal(t, http.StatusOK, code)
	var views struct {
		Views []struct {
			ViewerID string `json:"viewer_id"`
		} `json:"views"`
	}
	decode(t, env, &views)
	require.Len(t, views.Views, 1)
	assert.Equal(t, bob, views.Views[0].ViewerID)

	code, _ = s.do(http.MethodGet, viewsPath, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.do(http.MethodPost, "/api/v1/calls", aliceToken, gin.H{
		"receiver_id": bob,
		"call_type":   "video",
		"status":      "completed",
		"duration":    42,
	})
	require.Equal(t, http.StatusCreated, code, env.Message)

	code, _ = s.do(http.MethodPost, "/api/v1/calls", aliceToken, gin.H{
		"receiver_id": bob,
		"call_type":   "hologram",
		"status":      "completed",
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(http.MethodGet, "/api/v1/calls", bobToken, nil)
	require.Equal(t, http.StatusOK, code)
	var calls struct {
		Calls []struct {
			CallerID string `json:"caller_id"`
			Duration *int   `json:"duration"`
		} `json:"calls"`
	}
	decode(t, env, &calls)
	require.Len(t, calls.Calls, 1)
	assert.Equal(t, alice, calls.Calls[0].CallerID)
	require.NotNil(t, calls.Calls[0].Duration)
	assert.Equal(t, 42, *calls.Calls[0].Duration)
}

func TestSignOut(t *testing.T) {
	s := newTestServer(t)
	token, _ := s.signIn("ext-ada", "Ada")

	code, env := s.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"call_status":"online"`)

	code, _ = s.do(http.MethodPost, "/api/v1/auth/sign-out", token, nil)
	require.Equal(t, http.StatusOK, code)
}
