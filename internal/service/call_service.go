package service

import (
	"fmt"

	"tingling/internal/model"
	"tingling/internal/repository"
)

type LogCallInput struct {
	CallerID   string
	ReceiverID string
	CallType   model.CallType
	Status     model.CallOutcome
	Duration   *int
}

type CallService interface {
	LogCall(input LogCallInput) (*model.CallLog, error)
	GetCallLogs(userID string) ([]*model.CallLog, error)
}

type callService struct {
	callLogRepo repository.CallLogRepository
	events      EventPublisher
}

func NewCallService(callLogRepo repository.CallLogRepository, events EventPublisher) CallService {
	return &callService{
		callLogRepo: callLogRepo,
		events:      events,
	}
}

// LogCall records a finished call attempt. Duration may be nil.
func (s *callService) LogCall(input LogCallInput) (*model.CallLog, error) {
	if input.CallerID == input.ReceiverID {
		return nil, ErrInvalidTarget
	}
	if !input.CallType.Valid() {
		return nil, fmt.Errorf("%w: unknown call type %q", ErrInvalidInput, input.CallType)
	}
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown call status %q", ErrInvalidInput, input.Status)
	}
	if input.Duration != nil && *input.Duration < 0 {
		return nil, fmt.Errorf("%w: duration cannot be negative", ErrInvalidInput)
	}

	call := &model.CallLog{
		CallerID:   input.CallerID,
		ReceiverID: input.ReceiverID,
		CallType:   input.CallType,
		Status:     input.Status,
		Duration:   input.Duration,
	}
	if err := s.callLogRepo.Create(call); err != nil {
		return nil, logFailure("LogCall", fmt.Errorf("failed to log call: %w", err))
	}

	s.events.Publish(EventCallLogged, call)
	return call, nil
}

func (s *callService) GetCallLogs(userID string) ([]*model.CallLog, error) {
	logs, err := s.callLogRepo.FindByUserID(userID)
	if err != nil {
		return nil, logFailure("GetCallLogs", err)
	}
	return logs, nil
}
