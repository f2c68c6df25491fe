package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"tingling/internal/service"
	"tingling/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// respondError maps service errors onto HTTP statuses
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidTarget):
		util.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredential),
		errors.Is(err, service.ErrSessionExpired):
		util.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrNotRequestReceiver),
		errors.Is(err, service.ErrNotParticipant),
		errors.Is(err, service.ErrNotStatusOwner):
		util.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrFriendRequestNotFound),
		errors.Is(err, service.ErrChatNotFound),
		errors.Is(err, service.ErrStatusNotFound):
		util.NotFound(c, err.Error())
	case errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrFriendRequestExists),
		errors.Is(err, service.ErrAlreadyFriends),
		errors.Is(err, service.ErrAlreadyResponded),
		errors.Is(err, service.ErrBlocked):
		util.Conflict(c, err.Error())
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		util.ErrorResponse(c, http.StatusUnprocessableEntity, "referenced user or record does not exist", nil)
	default:
		util.ErrorResponse(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}

// respondBindError reports the first failed binding rule in a readable form
func respondBindError(c *gin.Context, err error) {
	var validationErr validator.ValidationErrors
	if errors.As(err, &validationErr) && len(validationErr) > 0 {
		fieldErr := validationErr[0]
		field := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "required":
			util.BadRequest(c, field+" is required")
		case "oneof":
			util.BadRequest(c, fmt.Sprintf("%s must be one of: %s", field, fieldErr.Param()))
		case "min", "max":
			util.BadRequest(c, fmt.Sprintf("%s violates %s=%s", field, fieldErr.Tag(), fieldErr.Param()))
		default:
			util.BadRequest(c, field+" is invalid")
		}
		return
	}
	util.BadRequest(c, "Invalid request body")
}

func currentUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		util.Unauthorized(c, "User not authenticated")
		return "", false
	}
	return userID.(string), true
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		util.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// optionalIntQuery returns nil when the query parameter is absent
func optionalIntQuery(c *gin.Context, name string) (*int, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		util.BadRequest(c, "Invalid "+name)
		return nil, false
	}
	return &v, true
}
