package app

import (
	"net/http"

	"tingling/internal/model"
	"tingling/internal/service"
	"tingling/internal/util"

	"github.com/gin-gonic/gin"
)

type CallHandler struct {
	callService service.CallService
}

func NewCallHandler(callService service.CallService) *CallHandler {
	return &CallHandler{callService: callService}
}

// LogCall records a call the caller placed
// POST /api/v1/calls
func (h *CallHandler) LogCall(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		ReceiverID string            `json:"receiver_id" binding:"required"`
		CallType   model.CallType    `json:"call_type" binding:"required,oneof=audio video"`
		Status     model.CallOutcome `json:"status" binding:"required,oneof=completed missed rejected"`
		Duration   *int              `json:"duration" binding:"omitempty,min=0"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	call, err := h.callService.LogCall(service.LogCallInput{
		CallerID:   userID,
		ReceiverID: req.ReceiverID,
		CallType:   req.CallType,
		Status:     req.Status,
		Duration:   req.Duration,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusCreated, "Call logged successfully", gin.H{"call": call})
}

// GET /api/v1/calls
func (h *CallHandler) GetCallLogs(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	calls, err := h.callService.GetCallLogs(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Call logs retrieved successfully", gin.H{"calls": calls})
}
