package app

import (
	"net/http"

	"tingling/internal/model"
	"tingling/internal/service"
	"tingling/internal/util"

	"github.com/gin-gonic/gin"
)

type StatusHandler struct {
	statusService service.StatusService
}

func NewStatusHandler(statusService service.StatusService) *StatusHandler {
	return &StatusHandler{statusService: statusService}
}

// CreateStatus posts a status that expires after a day
// POST /api/v1/statuses
func (h *StatusHandler) CreateStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Content   *string         `json:"content"`
		MediaURL  *string         `json:"media_url" binding:"omitempty,url"`
		MediaType model.MediaType `json:"media_type" binding:"omitempty,oneof=text image video"`
		Privacy   model.Privacy   `json:"privacy" binding:"omitempty,oneof=public friends_only"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	status, err := h.statusService.CreateStatus(userID, service.CreateStatusInput{
		Content:   req.Content,
		MediaURL:  req.MediaURL,
		MediaType: req.MediaType,
		Privacy:   req.Privacy,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusCreated, "Status created successfully", gin.H{"status": status})
}

// GetUserStatuses returns a user's live statuses visible to the caller
// GET /api/v1/users/:id/statuses
func (h *StatusHandler) GetUserStatuses(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	statuses, err := h.statusService.GetUserStatuses(c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Statuses retrieved successfully", gin.H{"statuses": statuses})
}

// GetFriendsStatuses returns live statuses from the caller's friends
// GET /api/v1/statuses/feed
func (h *StatusHandler) GetFriendsStatuses(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	statuses, err := h.statusService.GetFriendsStatuses(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Statuses retrieved successfully", gin.H{"statuses": statuses})
}

// POST /api/v1/statuses/:id/view
func (h *StatusHandler) MarkStatusViewed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	statusID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	view, err := h.statusService.MarkStatusViewed(statusID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Status view recorded", gin.H{"view": view})
}

// GetStatusViews lists viewers of one of the caller's statuses
// GET /api/v1/statuses/:id/views
func (h *StatusHandler) GetStatusViews(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	statusID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	views, err := h.statusService.GetStatusViews(statusID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Status views retrieved successfully", gin.H{"views": views})
}
