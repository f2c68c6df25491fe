package repository

import (
	"errors"
	"time"

	"tingling/internal/util"
)

const sessionKeyPrefix = "session:"

// SessionRepository tracks issued access tokens by session id. Without a
// redis client it records nothing and treats every signed token as live.
type SessionRepository interface {
	Save(sessionID, userID string, ttl time.Duration) error
	Belongs(sessionID, userID string) (bool, error)
	Delete(sessionID string) error
}

type sessionRepository struct {
	redis *util.RedisClient
}

func NewSessionRepository(redis *util.RedisClient) SessionRepository {
	return &sessionRepository{redis: redis}
}

func (r *sessionRepository) Save(sessionID, userID string, ttl time.Duration) error {
	if r.redis == nil {
		return nil
	}
	return r.redis.Set(sessionKeyPrefix+sessionID, userID, ttl)
}

// Belongs reports whether the session is live and was issued to userID
func (r *sessionRepository) Belongs(sessionID, userID string) (bool, error) {
	if r.redis == nil {
		return true, nil
	}
	owner, err := r.redis.Get(sessionKeyPrefix + sessionID)
	if errors.Is(err, util.ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return owner == userID, nil
}

func (r *sessionRepository) Delete(sessionID string) error {
	if r.redis == nil {
		return nil
	}
	_, err := r.redis.Delete(sessionKeyPrefix + sessionID)
	return err
}
