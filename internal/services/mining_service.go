package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mining-platform/internal/models"
)

// claimInterval is the hard gate between two claims by the same user
const claimInterval = 24 * time.Hour

var ErrClaimTooEarly = errors.New("must wait 24 hours between claims")

// MiningStatus is the poll-friendly view of a user's claim eligibility
type MiningStatus struct {
	CanClaim      bool    `json:"canClaim"`
	TimeRemaining string  `json:"timeRemaining"`
	Progress      float64 `json:"progress"`
	Reward        string  `json:"reward"`
}

// MiningService handles daily reward claims
type MiningService struct {
	db          *gorm.DB
	dailyReward decimal.Decimal
	referrals   *ReferralService
	mu          sync.Mutex
}

// NewMiningService creates a new MiningService
func NewMiningService(db *gorm.DB, dailyReward decimal.Decimal, referrals *ReferralService) *MiningService {
	return &MiningService{
		db:          db,
		dailyReward: dailyReward,
		referrals:   referrals,
	}
}

// GetStatus reports claim eligibility, countdown and progress for a user.
// Pure read: clients poll this every second.
func (s *MiningService) GetStatus(userID uint) (*MiningStatus, error) {
	status := &MiningStatus{
		CanClaim:      true,
		TimeRemaining: "00:00:00",
		Progress:      100,
		Reward:        s.dailyReward.String(),
	}

	var last models.MiningSession
	err := s.db.Where("user_id = ?", userID).
		Order("claimed_at DESC").First(&last).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return status, nil
		}
		return nil, err
	}

	now := time.Now()
	nextClaimTime := last.ClaimedAt.Add(claimInterval)
	if remaining := nextClaimTime.Sub(now); remaining > 0 {
		status.CanClaim = false
		status.TimeRemaining = formatCountdown(remaining)

		elapsed := now.Sub(last.ClaimedAt)
		progress := float64(elapsed) / float64(claimInterval) * 100
		if progress > 100 {
			progress = 100
		}
		status.Progress = progress
	}

	return status, nil
}

// Claim credits the daily reward to the user. Eligibility is re-checked
// inside the transaction so a polling client racing itself cannot claim
// twice; session insert, credit and streak update commit as one unit.
func (s *MiningService) Claim(ctx context.Context, userID uint) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var referredBy *uint

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var last models.MiningSession
		err := tx.Where("user_id = ?", userID).
			Order("claimed_at DESC").First(&last).Error
		if err == nil {
			if now.Before(last.ClaimedAt.Add(claimInterval)) {
				return ErrClaimTooEarly
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		session := models.MiningSession{
			UserID:    userID,
			Amount:    s.dailyReward,
			ClaimedAt: now,
		}
		if err := tx.Create(&session).Error; err != nil {
			return fmt.Errorf("failed to create mining session: %w", err)
		}

		// Streak uses whole-day granularity, intentionally looser than
		// the rolling 24h gate: a claim late one day and early the next
		// still continues the streak.
		newStreak := 1
		if user.LastClaimAt != nil {
			daysSinceLastClaim := int(now.Sub(*user.LastClaimAt).Hours() / 24)
			if daysSinceLastClaim == 1 {
				newStreak = user.Streak + 1
			}
		}

		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Updates(map[string]interface{}{
				"balance":       gorm.Expr("balance + ?", s.dailyReward),
				"total_earned":  gorm.Expr("total_earned + ?", s.dailyReward),
				"streak":        newStreak,
				"last_claim_at": now,
			}).Error; err != nil {
			return fmt.Errorf("failed to credit reward: %w", err)
		}

		referredBy = user.ReferredBy
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}

	if referredBy != nil {
		if err := s.referrals.PayCommission(*referredBy, userID, s.dailyReward, models.EarningSourceMining); err != nil {
			log.Printf("Warning: mining commission for referrer %d of user %d failed: %v", *referredBy, userID, err)
		}
	}

	return s.dailyReward, nil
}

// formatCountdown renders a duration as zero-padded HH:MM:SS
func formatCountdown(remaining time.Duration) string {
	hours := int(remaining / time.Hour)
	minutes := int(remaining/time.Minute) % 60
	seconds := int(remaining/time.Second) % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}
