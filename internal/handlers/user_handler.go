package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mining-platform/internal/auth"
	"mining-platform/internal/services"
)

// UserHandler serves user profile mutations
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ConnectWallet validates and stores the caller's wallet address
func (h *UserHandler) ConnectWallet(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		WalletAddress string `json:"walletAddress" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid wallet address"})
		return
	}

	user, err := h.userService.ConnectWallet(userID, req.WalletAddress)
	if err != nil {
		if errors.Is(err, services.ErrInvalidWalletAddress) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid wallet address"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to connect wallet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}
