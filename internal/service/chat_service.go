package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tingling/internal/model"
	"tingling/internal/repository"

	"gorm.io/gorm"
)

// MaxMessagePageSize caps the limit accepted by GetChatMessages
const MaxMessagePageSize = 100

type ChatService interface {
	GetOrCreateChat(userA, userB string) (*model.Chat, error)
	GetUserChats(userID string) ([]*model.Chat, error)
	IsParticipant(chatID uint, userID string) (bool, error)
	SendMessage(chatID uint, senderID, content string, messageType model.MessageType) (*model.Message, error)
	GetChatMessages(chatID uint, limit, offset *int) ([]*model.Message, error)
	DeleteMessage(messageID uint, userID string) (bool, error)
	MarkMessagesAsRead(chatID uint, userID string) (bool, error)
	GetUnreadCount(userID string) (int64, error)
}

type chatService struct {
	chatRepo    repository.ChatRepository
	messageRepo repository.MessageRepository
	events      EventPublisher
	now         func() time.Time
}

func NewChatService(
	chatRepo repository.ChatRepository,
	messageRepo repository.MessageRepository,
	events EventPublisher,
) ChatService {
	return &chatService{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		events:      events,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// GetOrCreateChat returns the pair's chat, creating it with both participant
// rows on first use. Argument order does not matter.
func (s *chatService) GetOrCreateChat(userA, userB string) (*model.Chat, error) {
	if userA == userB {
		return nil, ErrInvalidTarget
	}

	chat, err := s.chatRepo.FindBetween(userA, userB)
	if err == nil {
		return chat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, logFailure("GetOrCreateChat", err)
	}

	chat = &model.Chat{User1ID: userA, User2ID: userB}
	if err := s.chatRepo.CreateWithParticipants(chat); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with the other member creating the same chat
			existing, findErr := s.chatRepo.FindBetween(userA, userB)
			if findErr != nil {
				return nil, logFailure("GetOrCreateChat", findErr)
			}
			return existing, nil
		}
		return nil, logFailure("GetOrCreateChat", fmt.Errorf("failed to create chat: %w", err))
	}
	return chat, nil
}

// GetUserChats lists the user's chats, most recently active first
func (s *chatService) GetUserChats(userID string) ([]*model.Chat, error) {
	chats, err := s.chatRepo.FindByUserID(userID)
	if err != nil {
		return nil, logFailure("GetUserChats", err)
	}
	return chats, nil
}

func (s *chatService) IsParticipant(chatID uint, userID string) (bool, error) {
	ok, err := s.chatRepo.IsParticipant(chatID, userID)
	if err != nil {
		return false, logFailure("IsParticipant", err)
	}
	return ok, nil
}

func (s *chatService) SendMessage(chatID uint, senderID, content string, messageType model.MessageType) (*model.Message, error) {
	if messageType == "" {
		messageType = model.MessageTypeText
	}
	if !messageType.Valid() {
		return nil, fmt.Errorf("%w: unknown message type %q", ErrInvalidInput, messageType)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: message content cannot be empty", ErrInvalidInput)
	}

	if _, err := s.chatRepo.FindByID(chatID); errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrChatNotFound
	} else if err != nil {
		return nil, logFailure("SendMessage", err)
	}

	ok, err := s.chatRepo.IsParticipant(chatID, senderID)
	if err != nil {
		return nil, logFailure("SendMessage", err)
	}
	if !ok {
		return nil, ErrNotParticipant
	}

	msg := &model.Message{
		ChatID:      chatID,
		SenderID:    senderID,
		Content:     content,
		MessageType: messageType,
	}
	if err := s.messageRepo.Create(msg); err != nil {
		return nil, logFailure("SendMessage", fmt.Errorf("failed to send message: %w", err))
	}

	s.events.Publish(EventMessageSent, msg)
	return msg, nil
}

// GetChatMessages returns messages oldest first. A nil limit returns every
// message from offset on; larger limits are cut to MaxMessagePageSize.
func (s *chatService) GetChatMessages(chatID uint, limit, offset *int) ([]*model.Message, error) {
	if limit != nil {
		if *limit < 0 {
			return nil, fmt.Errorf("%w: limit cannot be negative", ErrInvalidInput)
		}
		if *limit > MaxMessagePageSize {
			capped := MaxMessagePageSize
			limit = &capped
		}
	}
	if offset != nil && *offset < 0 {
		offset = nil
	}

	messages, err := s.messageRepo.FindByChatID(chatID, limit, offset)
	if err != nil {
		return nil, logFailure("GetChatMessages", err)
	}
	return messages, nil
}

// DeleteMessage soft deletes a message. It returns false when the message
// does not exist or userID did not send it.
func (s *chatService) DeleteMessage(messageID uint, userID string) (bool, error) {
	deleted, err := s.messageRepo.SoftDelete(messageID, userID)
	if err != nil {
		return false, logFailure("DeleteMessage", err)
	}
	return deleted, nil
}

// MarkMessagesAsRead returns false when userID is not in the chat
func (s *chatService) MarkMessagesAsRead(chatID uint, userID string) (bool, error) {
	ok, err := s.chatRepo.MarkAsRead(chatID, userID, s.now())
	if err != nil {
		return false, logFailure("MarkMessagesAsRead", err)
	}
	return ok, nil
}

func (s *chatService) GetUnreadCount(userID string) (int64, error) {
	count, err := s.chatRepo.GetUnreadCount(userID)
	if err != nil {
		return 0, logFailure("GetUnreadCount", err)
	}
	return count, nil
}
