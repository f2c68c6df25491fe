package service

import (
	"errors"
	"fmt"

	"tingling/internal/model"
	"tingling/internal/repository"

	"gorm.io/gorm"
)

type FriendshipService interface {
	SendFriendRequest(senderID, receiverID string) (*model.FriendRequest, error)
	RespondToFriendRequest(requestID uint, responderID string, decision model.FriendRequestStatus) (*model.FriendRequest, error)
	GetFriendRequests(userID string) ([]*model.FriendRequest, error)
	GetFriends(userID string) ([]model.User, error)
	AreFriends(userA, userB string) (bool, error)
	BlockUser(blockerID, blockedID string) (*model.BlockedUser, error)
	UnblockUser(blockerID, blockedID string) (bool, error)
	GetBlockedUsers(blockerID string) ([]*model.BlockedUser, error)
}

type friendshipService struct {
	requestRepo    repository.FriendRequestRepository
	friendshipRepo repository.FriendshipRepository
	blockRepo      repository.BlockRepository
	userRepo       repository.UserRepository
	events         EventPublisher
}

func NewFriendshipService(
	requestRepo repository.FriendRequestRepository,
	friendshipRepo repository.FriendshipRepository,
	blockRepo repository.BlockRepository,
	userRepo repository.UserRepository,
	events EventPublisher,
) FriendshipService {
	return &friendshipService{
		requestRepo:    requestRepo,
		friendshipRepo: friendshipRepo,
		blockRepo:      blockRepo,
		userRepo:       userRepo,
		events:         events,
	}
}

// SendFriendRequest creates a pending request. Any earlier request between
// the pair, whatever its status, prevents a new one.
func (s *friendshipService) SendFriendRequest(senderID, receiverID string) (*model.FriendRequest, error) {
	if senderID == receiverID {
		return nil, ErrInvalidTarget
	}

	count, err := s.userRepo.CountByIDs(senderID, receiverID)
	if err != nil {
		return nil, logFailure("SendFriendRequest", err)
	}
	if count != 2 {
		return nil, ErrUserNotFound
	}

	blocked, err := s.blockRepo.ExistsEitherWay(senderID, receiverID)
	if err != nil {
		return nil, logFailure("SendFriendRequest", err)
	}
	if blocked {
		return nil, ErrBlocked
	}

	friends, err := s.friendshipRepo.ExistsBetween(senderID, receiverID)
	if err != nil {
		return nil, logFailure("SendFriendRequest", err)
	}
	if friends {
		return nil, ErrAlreadyFriends
	}

	if _, err := s.requestRepo.FindBetween(senderID, receiverID); err == nil {
		return nil, ErrFriendRequestExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, logFailure("SendFriendRequest", err)
	}

	req := &model.FriendRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     model.FriendRequestStatusPending,
	}
	if err := s.requestRepo.Create(req); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrFriendRequestExists
		}
		return nil, logFailure("SendFriendRequest", fmt.Errorf("failed to create friend request: %w", err))
	}

	s.events.Publish(EventFriendRequestSent, req)
	return req, nil
}

// RespondToFriendRequest accepts or rejects a pending request addressed to
// responderID. Acceptance creates the friendship in the same transaction.
func (s *friendshipService) RespondToFriendRequest(requestID uint, responderID string, decision model.FriendRequestStatus) (*model.FriendRequest, error) {
	if !decision.ValidResponse() {
		return nil, fmt.Errorf("%w: decision must be accepted or rejected", ErrInvalidInput)
	}

	req, err := s.requestRepo.FindByID(requestID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFriendRequestNotFound
	}
	if err != nil {
		return nil, logFailure("RespondToFriendRequest", err)
	}
	if req.ReceiverID != responderID {
		return nil, ErrNotRequestReceiver
	}
	if req.Status != model.FriendRequestStatusPending {
		return nil, ErrAlreadyResponded
	}

	updated, err := s.requestRepo.Respond(requestID, decision)
	switch {
	case errors.Is(err, repository.ErrNotPending):
		return nil, ErrAlreadyResponded
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return nil, ErrAlreadyFriends
	case err != nil:
		return nil, logFailure("RespondToFriendRequest", fmt.Errorf("failed to respond to friend request: %w", err))
	}

	s.events.Publish(EventFriendRequestResponded, updated)
	return updated, nil
}

// GetFriendRequests lists pending requests the user has received
func (s *friendshipService) GetFriendRequests(userID string) ([]*model.FriendRequest, error) {
	reqs, err := s.requestRepo.FindPendingByReceiverID(userID)
	if err != nil {
		return nil, logFailure("GetFriendRequests", err)
	}
	return reqs, nil
}

func (s *friendshipService) GetFriends(userID string) ([]model.User, error) {
	friends, err := s.friendshipRepo.FindFriends(userID)
	if err != nil {
		return nil, logFailure("GetFriends", err)
	}
	return friends, nil
}

func (s *friendshipService) AreFriends(userA, userB string) (bool, error) {
	ok, err := s.friendshipRepo.ExistsBetween(userA, userB)
	if err != nil {
		return false, logFailure("AreFriends", err)
	}
	return ok, nil
}

// BlockUser removes any friendship between the pair and records the block.
// A pending request between them is left in place.
func (s *friendshipService) BlockUser(blockerID, blockedID string) (*model.BlockedUser, error) {
	if blockerID == blockedID {
		return nil, ErrInvalidTarget
	}

	block, err := s.blockRepo.Block(blockerID, blockedID)
	if err != nil {
		return nil, logFailure("BlockUser", fmt.Errorf("failed to block user: %w", err))
	}

	s.events.Publish(EventUserBlocked, block)
	return block, nil
}

// UnblockUser reports whether a block was removed
func (s *friendshipService) UnblockUser(blockerID, blockedID string) (bool, error) {
	removed, err := s.blockRepo.Unblock(blockerID, blockedID)
	if err != nil {
		return false, logFailure("UnblockUser", err)
	}
	return removed, nil
}

func (s *friendshipService) GetBlockedUsers(blockerID string) ([]*model.BlockedUser, error) {
	blocks, err := s.blockRepo.FindByBlockerID(blockerID)
	if err != nil {
		return nil, logFailure("GetBlockedUsers", err)
	}
	return blocks, nil
}
