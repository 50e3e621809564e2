package services

import (
	"errors"
	"regexp"

	"gorm.io/gorm"

	"mining-platform/internal/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidWalletAddress = errors.New("invalid wallet address")
)

var walletAddressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// UserService handles user-related business logic
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new UserService
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ConnectWallet stores a user's wallet address after format validation
func (s *UserService) ConnectWallet(userID uint, walletAddress string) (*models.User, error) {
	if !walletAddressPattern.MatchString(walletAddress) {
		return nil, ErrInvalidWalletAddress
	}

	if err := s.db.Model(&models.User{}).Where("id = ?", userID).
		Update("wallet_address", walletAddress).Error; err != nil {
		return nil, err
	}

	return s.GetUserByID(userID)
}
