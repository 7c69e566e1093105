package handlers

import (
	"net/http"

	"adamosign/services/user"
	"adamosign/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var userService user.UserService

// SetUserService wires the user service used by the package-level handlers.
func SetUserService(svc user.UserService) {
	userService = svc
}

// RegisterUserHandler handles POST /api/users/register.
func RegisterUserHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	resp, err := userService.Register(req)
	if err != nil {
		logger.Error("Registration failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AuthenticateUserHandler handles POST /api/users/login.
func AuthenticateUserHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	resp, err := userService.Authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCurrentUserHandler handles GET /api/users/me.
func GetCurrentUserHandler(c *gin.Context) {
	logger := utils.GetLogger()
	userID := c.GetString("userID")
	usr, err := userService.GetUserByID(userID)
	if err != nil {
		logger.Error("User not found", zap.String("id", userID), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, usr)
}

// RevokeUserAuthTokenHandler handles DELETE /api/users/revoke.
func RevokeUserAuthTokenHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := userService.RevokeAuthToken(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Token revoked"})
}
