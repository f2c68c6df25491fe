package app

import (
	"net/http"

	"tingling/internal/model"
	"tingling/internal/service"
	"tingling/internal/util"

	"github.com/gin-gonic/gin"
)

type FriendshipHandler struct {
	friendshipService service.FriendshipService
}

func NewFriendshipHandler(friendshipService service.FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{friendshipService: friendshipService}
}

// SendFriendRequest handles sending a friend request
// POST /api/v1/friend-requests
func (h *FriendshipHandler) SendFriendRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		ReceiverID string `json:"receiver_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	request, err := h.friendshipService.SendFriendRequest(userID, req.ReceiverID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusCreated, "Friend request sent successfully", gin.H{"friend_request": request})
}

// RespondToFriendRequest accepts or rejects a request sent to the caller
// POST /api/v1/friend-requests/:id/respond
func (h *FriendshipHandler) RespondToFriendRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	requestID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Decision model.FriendRequestStatus `json:"decision" binding:"required,oneof=accepted rejected"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	request, err := h.friendshipService.RespondToFriendRequest(requestID, userID, req.Decision)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Friend request "+string(request.Status), gin.H{"friend_request": request})
}

// GetFriendRequests lists pending requests received by the caller
// GET /api/v1/friend-requests
func (h *FriendshipHandler) GetFriendRequests(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	requests, err := h.friendshipService.GetFriendRequests(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Friend requests retrieved successfully", gin.H{"friend_requests": requests})
}

// GET /api/v1/friends
func (h *FriendshipHandler) GetFriends(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	friends, err := h.friendshipService.GetFriends(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Friends retrieved successfully", gin.H{"friends": friends})
}

// BlockUser blocks a user and ends any friendship with them
// POST /api/v1/blocks
func (h *FriendshipHandler) BlockUser(c *gin.Context) {
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

	block, err := h.friendshipService.BlockUser(userID, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusCreated, "User blocked successfully", gin.H{"block": block})
}

// UnblockUser removes a block; removed is false when there was none
// DELETE /api/v1/blocks/:userID
func (h *FriendshipHandler) UnblockUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	removed, err := h.friendshipService.UnblockUser(userID, c.Param("userID"))
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Unblock processed", gin.H{"removed": removed})
}

// GET /api/v1/blocks
func (h *FriendshipHandler) GetBlockedUsers(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	blocks, err := h.friendshipService.GetBlockedUsers(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Blocked users retrieved successfully", gin.H{"blocks": blocks})
}
