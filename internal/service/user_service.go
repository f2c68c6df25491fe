package service

import (
	"errors"
	"fmt"
	"strings"

	"tingling/internal/model"
	"tingling/internal/repository"
	"tingling/internal/util"

	"gorm.io/gorm"
)

// maxUserIDAttempts bounds retries when a generated id is already taken
const maxUserIDAttempts = 10

type CreateUserInput struct {
	GoogleID          string
	Name              string
	Emoji             string
	ProfilePictureURL *string
}

// UpdateUserInput holds a partial update. Nil fields are left as they are;
// ProfilePictureURL can be cleared with an explicit null.
type UpdateUserInput struct {
	Name              *string
	Emoji             *string
	ProfilePictureURL util.NullableString
	CallStatus        *model.CallStatus
}

type UserService interface {
	CreateUser(input CreateUserInput) (*model.User, error)
	UpdateUser(id string, input UpdateUserInput) (*model.User, error)
	GetUserByID(id string) (*model.User, error)
	GetUserByGoogleID(googleID string) (*model.User, error)
	SearchUsers(query string) ([]model.User, error)
	SetPresence(id string, status model.CallStatus) error
}

type userService struct {
	userRepo repository.UserRepository
	newID    func() string
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{
		userRepo: userRepo,
		newID:    util.GenerateUserID,
	}
}

func (s *userService) CreateUser(input CreateUserInput) (*model.User, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.GoogleID == "" || input.Name == "" || input.Emoji == "" {
		return nil, fmt.Errorf("%w: google_id, name and emoji are required", ErrInvalidInput)
	}

	if _, err := s.userRepo.FindByGoogleID(input.GoogleID); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, logFailure("CreateUser", err)
	}

	for attempt := 0; attempt < maxUserIDAttempts; attempt++ {
		user := &model.User{
			ID:                s.newID(),
			GoogleID:          input.GoogleID,
			Name:              input.Name,
			Emoji:             input.Emoji,
			ProfilePictureURL: input.ProfilePictureURL,
			CallStatus:        model.CallStatusOffline,
		}

		err := s.userRepo.Create(user)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, logFailure("CreateUser", fmt.Errorf("failed to create user: %w", err))
		}

		// The collision may be the account itself if a concurrent sign-in won
		if _, findErr := s.userRepo.FindByGoogleID(input.GoogleID); findErr == nil {
			return nil, ErrUserExists
		}
	}

	return nil, logFailure("CreateUser", fmt.Errorf("no free user id after %d attempts", maxUserIDAttempts))
}

func (s *userService) UpdateUser(id string, input UpdateUserInput) (*model.User, error) {
	fields := map[string]interface{}{}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		fields["name"] = name
	}
	if input.Emoji != nil {
		if *input.Emoji == "" {
			return nil, fmt.Errorf("%w: emoji cannot be empty", ErrInvalidInput)
		}
		fields["emoji"] = *input.Emoji
	}
	if input.ProfilePictureURL.Set {
		if input.ProfilePictureURL.Value == nil {
			fields["profile_picture_url"] = nil
		} else {
			fields["profile_picture_url"] = *input.ProfilePictureURL.Value
		}
	}
	if input.CallStatus != nil {
		if !input.CallStatus.Valid() {
			return nil, fmt.Errorf("%w: unknown call status %q", ErrInvalidInput, *input.CallStatus)
		}
		fields["call_status"] = *input.CallStatus
	}

	if len(fields) == 0 {
		user, err := s.userRepo.FindByID(id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		if err != nil {
			return nil, logFailure("UpdateUser", err)
		}
		return user, nil
	}

	user, err := s.userRepo.Update(id, fields)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, logFailure("UpdateUser", fmt.Errorf("failed to update user: %w", err))
	}
	return user, nil
}

// GetUserByID returns nil without an error when the user does not exist
func (s *userService) GetUserByID(id string) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, logFailure("GetUserByID", err)
	}
	return user, nil
}

func (s *userService) GetUserByGoogleID(googleID string) (*model.User, error) {
	user, err := s.userRepo.FindByGoogleID(googleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, logFailure("GetUserByGoogleID", err)
	}
	return user, nil
}

func (s *userService) SearchUsers(query string) ([]model.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.User{}, nil
	}

	users, err := s.userRepo.Search(query)
	if err != nil {
		return nil, logFailure("SearchUsers", err)
	}
	return users, nil
}

func (s *userService) SetPresence(id string, status model.CallStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown call status %q", ErrInvalidInput, status)
	}

	err := s.userRepo.UpdateCallStatus(id, status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return logFailure("SetPresence", err)
	}
	return nil
}
