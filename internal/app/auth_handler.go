package app

import (
	"net/http"
	"strings"

	"tingling/internal/service"
	"tingling/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
}

func NewAuthHandler(authService service.AuthService, userService service.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

// SignIn exchanges an external credential for an access token
// POST /api/v1/auth/sign-in
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req struct {
		Credential string `json:"credential" binding:"required"`
		Name       string `json:"name" binding:"omitempty,max=255"`
		Emoji      string `json:"emoji" binding:"omitempty,max=32"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.authService.SignIn(c.Request.Context(), service.SignInInput{
		Credential: req.Credential,
		Name:       req.Name,
		Emoji:      req.Emoji,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Signed in successfully", result)
}

// SignOut ends the current session
// POST /api/v1/auth/sign-out
func (h *AuthHandler) SignOut(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.authService.SignOut(c.GetString("sessionID"), userID); err != nil {
		respondError(c, err)
		return
	}

	util.SuccessResponse(c, http.StatusOK, "Signed out successfully", nil)
}

// GetMe returns the signed-in user
// GET /api/v1/auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		util.NotFound(c, "User not found")
		return
	}

	util.SuccessResponse(c, http.StatusOK, "User retrieved successfully", gin.H{"user": user})
}

// AuthMiddleware resolves the bearer token to a user id
func (h *AuthHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			util.Unauthorized(c, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			util.Unauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := h.authService.Authenticate(parts[1])
		if err != nil {
			util.Unauthorized(c, "Invalid or expired token")
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("sessionID", claims.SessionID)
		c.Next()
	}
}
