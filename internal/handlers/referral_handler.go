package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mining-platform/internal/auth"
	"mining-platform/internal/services"
)

// ReferralHandler serves referral statistics and code validation
type ReferralHandler struct {
	referralService *services.ReferralService
}

// NewReferralHandler creates a new ReferralHandler
func NewReferralHandler(referralService *services.ReferralService) *ReferralHandler {
	return &ReferralHandler{referralService: referralService}
}

// GetStats returns commission count, total and recent referred users
func (h *ReferralHandler) GetStats(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	stats, err := h.referralService.GetStats(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch referral stats"})
		return
	}

	recentReferrals, err := h.referralService.GetRecentReferrals(userID, 10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch referral stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":           stats.Count,
		"totalEarned":     stats.TotalEarned,
		"recentReferrals": recentReferrals,
	})
}

// ValidateCode checks a referral code before signup associates it
func (h *ReferralHandler) ValidateCode(c *gin.Context) {
	var req struct {
		ReferralCode string `json:"referralCode" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	referrer, err := h.referralService.ValidateCode(req.ReferralCode)
	if err != nil {
		if errors.Is(err, services.ErrReferralCodeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Invalid referral code"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to validate referral code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":    true,
		"referrer": referrer.Username,
	})
}
