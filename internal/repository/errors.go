package repository

import "errors"

// ErrNotPending is returned when a friend request has already been answered
var ErrNotPending = errors.New("friend request is not pending")
