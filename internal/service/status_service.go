package service

import (
	"errors"
	"fmt"
	"time"

	"tingling/internal/model"
	"tingling/internal/repository"

	"gorm.io/gorm"
)

type CreateStatusInput struct {
	Content   *string
	MediaURL  *string
	MediaType model.MediaType
	Privacy   model.Privacy
}

type StatusService interface {
	CreateStatus(userID string, input CreateStatusInput) (*model.Status, error)
	GetUserStatuses(ownerID, viewerID string) ([]*model.Status, error)
	GetFriendsStatuses(userID string) ([]*model.Status, error)
	MarkStatusViewed(statusID uint, viewerID string) (*model.StatusView, error)
	GetStatusViews(statusID uint, requesterID string) ([]*model.StatusView, error)
}

type statusService struct {
	statusRepo     repository.StatusRepository
	viewRepo       repository.StatusViewRepository
	friendshipRepo repository.FriendshipRepository
	events         EventPublisher
	now            func() time.Time
}

func NewStatusService(
	statusRepo repository.StatusRepository,
	viewRepo repository.StatusViewRepository,
	friendshipRepo repository.FriendshipRepository,
	events EventPublisher,
) StatusService {
	return &statusService{
		statusRepo:     statusRepo,
		viewRepo:       viewRepo,
		friendshipRepo: friendshipRepo,
		events:         events,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// CreateStatus stores a status that expires StatusLifetime after now
func (s *statusService) CreateStatus(userID string, input CreateStatusInput) (*model.Status, error) {
	if input.MediaType == "" {
		input.MediaType = model.MediaTypeText
	}
	if input.Privacy == "" {
		input.Privacy = model.PrivacyFriendsOnly
	}
	if !input.MediaType.Valid() {
		return nil, fmt.Errorf("%w: unknown media type %q", ErrInvalidInput, input.MediaType)
	}
	if !input.Privacy.Valid() {
		return nil, fmt.Errorf("%w: unknown privacy %q", ErrInvalidInput, input.Privacy)
	}

	now := s.now()
	status := &model.Status{
		UserID:    userID,
		Content:   input.Content,
		MediaURL:  input.MediaURL,
		MediaType: input.MediaType,
		Privacy:   input.Privacy,
		ExpiresAt: now.Add(model.StatusLifetime),
		CreatedAt: now,
	}
	if err := s.statusRepo.Create(status); err != nil {
		return nil, logFailure("CreateStatus", fmt.Errorf("failed to create status: %w", err))
	}

	s.events.Publish(EventStatusCreated, status)
	return status, nil
}

// GetUserStatuses returns ownerID's live statuses that viewerID may see.
// Owners see everything, friends see friends_only too, others only public.
func (s *statusService) GetUserStatuses(ownerID, viewerID string) ([]*model.Status, error) {
	now := s.now()

	if ownerID == viewerID {
		statuses, err := s.statusRepo.FindActiveByUserID(ownerID, now)
		if err != nil {
			return nil, logFailure("GetUserStatuses", err)
		}
		return statuses, nil
	}

	friends, err := s.friendshipRepo.ExistsBetween(ownerID, viewerID)
	if err != nil {
		return nil, logFailure("GetUserStatuses", err)
	}

	privacies := []model.Privacy{model.PrivacyPublic}
	if friends {
		privacies = append(privacies, model.PrivacyFriendsOnly)
	}

	statuses, err := s.statusRepo.FindActiveByUserID(ownerID, now, privacies...)
	if err != nil {
		return nil, logFailure("GetUserStatuses", err)
	}
	return statuses, nil
}

func (s *statusService) GetFriendsStatuses(userID string) ([]*model.Status, error) {
	statuses, err := s.statusRepo.FindActiveByFriendsOf(userID, s.now())
	if err != nil {
		return nil, logFailure("GetFriendsStatuses", err)
	}
	return statuses, nil
}

// MarkStatusViewed records at most one view per viewer; repeats return the
// stored record
func (s *statusService) MarkStatusViewed(statusID uint, viewerID string) (*model.StatusView, error) {
	if _, err := s.statusRepo.FindByID(statusID); errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStatusNotFound
	} else if err != nil {
		return nil, logFailure("MarkStatusViewed", err)
	}

	view, err := s.viewRepo.CreateOrGet(&model.StatusView{
		StatusID: statusID,
		ViewerID: viewerID,
	})
	if err != nil {
		return nil, logFailure("MarkStatusViewed", fmt.Errorf("failed to record view: %w", err))
	}
	return view, nil
}

func (s *statusService) GetStatusViews(statusID uint, requesterID string) ([]*model.StatusView, error) {
	status, err := s.statusRepo.FindByID(statusID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStatusNotFound
	}
	if err != nil {
		return nil, logFailure("GetStatusViews", err)
	}
	if status.UserID != requesterID {
		return nil, ErrNotStatusOwner
	}

	views, err := s.viewRepo.FindByStatusID(statusID)
	if err != nil {
		return nil, logFailure("GetStatusViews", err)
	}
	return views, nil
}
