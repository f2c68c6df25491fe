package app

import (
	"net/http"

	"tingling/internal/model"
	"tingling/internal/service"
	"tingling/internal/util"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser registers a user directly. Only routed in demo auth mode.
// POST /api/v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req struct {
		GoogleID          string  `json:"google_id" binding:"required"`
		Name              string  `json:"name" binding:"required,max=255"`
		Emoji             string  `json:"emoji" binding:"required,max=32"`
		ProfilePictureURL *string `json:"profile_picture_url" binding:"omitempty,url"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.CreateUser(service.CreateUserInput{
		GoogleID:          req.GoogleID,
		Name:              req.Name,
		Emoji:             req.Emoji,
		ProfilePictureURL: req.ProfilePictureURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusCreated, "User created successfully", gin.H{"user": user})
}

// UpdateMe applies a partial update to the signed-in user
// PATCH /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Name              *string             `json:"name" binding:"omitempty,min=1,max=255"`
		Emoji             *string             `json:"emoji" binding:"omitempty,min=1,max=32"`
		ProfilePictureURL util.NullableString `json:"profile_picture_url"`
		CallStatus        *model.CallStatus   `json:"call_status" binding:"omitempty,oneof=online offline in_call"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.userService.UpdateUser(userID, service.UpdateUserInput{
		Name:              req.Name,
		Emoji:             req.Emoji,
		ProfilePictureURL: req.ProfilePictureURL,
		CallStatus:        req.CallStatus,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "User updated successfully", gin.H{"user": user})
}

// GetUser returns the user or a null user when the id is unknown
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUserByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "User retrieved successfully", gin.H{"user": user})
}

// SearchUsers matches ids exactly and names partially
// GET /api/v1/users/search?q=
func (h *UserHandler) SearchUsers(c *gin.Context) {
	users, err := h.userService.SearchUsers(c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Users retrieved successfully", gin.H{"users": users})
}
