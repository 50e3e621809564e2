package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"mining-platform/internal/models"
)

// AuthService handles login and first-time user creation
type AuthService struct {
	db *gorm.DB
}

// NewAuthService creates a new AuthService
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// ProcessLogin finds or creates a user by username. A new user gets a
// unique referral code; if a valid foreign referral code is supplied the
// new account is associated with its owner. An unknown code is logged
// and skipped rather than failing the login.
func (s *AuthService) ProcessLogin(username string, referralCode string) (*models.User, error) {
	var user models.User

	result := s.db.Where("username = ?", username).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		code, err := generateReferralCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate referral code: %w", err)
		}

		user = models.User{
			Username:     username,
			ReferralCode: code,
		}

		if referralCode != "" {
			var referrer models.User
			if err := s.db.Where("referral_code = ?", referralCode).First(&referrer).Error; err == nil {
				user.ReferredBy = &referrer.ID
			} else {
				log.Printf("Warning: referral code %s not found, creating user %s without referrer", referralCode, username)
			}
		}

		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		log.Printf("New user created: %s (ID: %d)", username, user.ID)
	} else if result.Error != nil {
		return nil, fmt.Errorf("database error: %w", result.Error)
	} else {
		log.Printf("User logged in: %s (ID: %d)", username, user.ID)
	}

	return &user, nil
}

// generateReferralCode generates a random MTK-prefixed code
func generateReferralCode() (string, error) {
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "MTK" + strings.ToUpper(hex.EncodeToString(b)), nil
}
