package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, expiresAt, err := GenerateToken("ting-0001", "session-1", "secret", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ValidateToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "ting-0001", claims.UserID)
	assert.Equal(t, "session-1", claims.SessionID)
}

func TestValidateTokenRejects(t *testing.T) {
	token, _, err := GenerateToken("ting-0001", "session-1", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(token, "wrong-secret")
	assert.Error(t, err)

	expired, _, err := GenerateToken("ting-0001", "session-1", "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken(expired, "secret")
	assert.Error(t, err)

	_, err = ValidateToken("garbage", "secret")
	assert.Error(t, err)
}
