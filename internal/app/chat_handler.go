package app

import (
	"net/http"

	"tingling/internal/model"
	"tingling/internal/service"
	"tingling/internal/util"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService service.ChatService
}

func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// GetOrCreateChat opens the caller's chat with another user
// POST /api/v1/chats
func (h *ChatHandler) GetOrCreateChat(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		UserID string `json:"user_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	chat, err := h.chatService.GetOrCreateChat(userID, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Chat retrieved successfully", gin.H{"chat": chat})
}

// GET /api/v1/chats
func (h *ChatHandler) GetUserChats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	chats, err := h.chatService.GetUserChats(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Chats retrieved successfully", gin.H{"chats": chats})
}

// SendMessage posts a message into a chat the caller belongs to
// POST /api/v1/chats/:id/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	chatID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Content     string            `json:"content" binding:"required"`
		MessageType model.MessageType `json:"message_type" binding:"omitempty,oneof=text image video audio"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	msg, err := h.chatService.SendMessage(chatID, userID, req.Content, req.MessageType)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusCreated, "Message sent successfully", gin.H{"message": msg})
}

// GetChatMessages returns messages oldest first
// GET /api/v1/chats/:id/messages?limit=&offset=
func (h *ChatHandler) GetChatMessages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	chatID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	limit, ok := optionalIntQuery(c, "limit")
	if !ok {
		return
	}
	offset, ok := optionalIntQuery(c, "offset")
	if !ok {
		return
	}

	member, err := h.chatService.IsParticipant(chatID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !member {
		respondError(c, service.ErrNotParticipant)
		return
	}

	messages, err := h.chatService.GetChatMessages(chatID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Messages retrieved successfully", gin.H{"messages": messages})
}

// MarkAsRead clears the caller's unread counter for a chat
// POST /api/v1/chats/:id/read
func (h *ChatHandler) MarkAsRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	chatID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	updated, err := h.chatService.MarkMessagesAsRead(chatID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Read state updated", gin.H{"updated": updated})
}

// DeleteMessage soft deletes one of the caller's messages
// DELETE /api/v1/messages/:id
func (h *ChatHandler) DeleteMessage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	messageID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	deleted, err := h.chatService.DeleteMessage(messageID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Delete processed", gin.H{"deleted": deleted})
}

// GET /api/v1/chats/unread-count
func (h *ChatHandler) GetUnreadCount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	count, err := h.chatService.GetUnreadCount(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Unread count retrieved successfully", gin.H{"count": count})
}
