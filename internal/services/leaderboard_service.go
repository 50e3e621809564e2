package services

import (
	"errors"

	"gorm.io/gorm"

	"mining-platform/internal/models"
)

// LeaderboardEntry is a user annotated with their 1-indexed rank
type LeaderboardEntry struct {
	models.User
	Rank int `json:"rank"`
}

// LeaderboardService derives ranks from current balances on demand.
// Nothing is persisted; ties break on user id so ranks stay stable.
type LeaderboardService struct {
	db *gorm.DB
}

// NewLeaderboardService creates a new LeaderboardService
func NewLeaderboardService(db *gorm.DB) *LeaderboardService {
	return &LeaderboardService{db: db}
}

// GetLeaderboard returns the top users by descending balance
func (s *LeaderboardService) GetLeaderboard(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	var users []models.User
	if err := s.db.Order("balance DESC, id ASC").Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(users))
	for i, user := range users {
		entries = append(entries, LeaderboardEntry{
			User: user,
			Rank: i + 1,
		})
	}
	return entries, nil
}

// GetUserRank computes a user's rank as 1 plus the number of users
// ordered ahead of them, using the same ordering as GetLeaderboard.
func (s *LeaderboardService) GetUserRank(userID uint) (int, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}

	var ahead int64
	if err := s.db.Model(&models.User{}).
		Where("balance > ? OR (balance = ? AND id < ?)", user.Balance, user.Balance, user.ID).
		Count(&ahead).Error; err != nil {
		return 0, err
	}

	return int(ahead) + 1, nil
}
