package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mining-platform/internal/auth"
	"mining-platform/internal/services"
)

// MiningHandler serves mining status and claims
type MiningHandler struct {
	miningService *services.MiningService
}

// NewMiningHandler creates a new MiningHandler
func NewMiningHandler(miningService *services.MiningService) *MiningHandler {
	return &MiningHandler{miningService: miningService}
}

// GetStatus returns claim eligibility, countdown and progress
func (h *MiningHandler) GetStatus(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	status, err := h.miningService.GetStatus(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch mining status"})
		return
	}

	c.JSON(http.StatusOK, status)
}

// Claim credits the daily reward if the 24h gate has elapsed
func (h *MiningHandler) Claim(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	amount, err := h.miningService.Claim(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrClaimTooEarly) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Must wait 24 hours between claims"})
			return
		}
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to claim reward"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"amount":  amount,
	})
}
