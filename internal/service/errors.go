package service

import (
	"errors"
	"log"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists for this account")

	ErrInvalidTarget         = errors.New("cannot target yourself")
	ErrFriendRequestNotFound = errors.New("friend request not found")
	ErrFriendRequestExists   = errors.New("friend request already exists")
	ErrAlreadyFriends        = errors.New("already friends")
	ErrAlreadyResponded      = errors.New("friend request already responded to")
	ErrNotRequestReceiver    = errors.New("only the receiver can respond to a friend request")
	ErrBlocked               = errors.New("users have blocked each other")

	ErrChatNotFound   = errors.New("chat not found")
	ErrNotParticipant = errors.New("not a participant of this chat")

	ErrStatusNotFound = errors.New("status not found")
	ErrNotStatusOwner = errors.New("only the owner can see who viewed a status")

	ErrInvalidCredential = errors.New("invalid credential")
	ErrSessionExpired    = errors.New("session expired or signed out")
)

// logFailure logs err under op and hands it back so call sites can return it directly
func logFailure(op string, err error) error {
	log.Printf("[%s] %v", op, err)
	return err
}
