package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mining-platform/internal/models"
)

var ErrReferralCodeNotFound = errors.New("invalid referral code")

// ReferralStats aggregates a referrer's earnings
type ReferralStats struct {
	Count       int64           `json:"count"`
	TotalEarned decimal.Decimal `json:"totalEarned"`
}

// ReferralService pays commissions to referrers and serves referral views
type ReferralService struct {
	db             *gorm.DB
	commissionRate decimal.Decimal
}

// NewReferralService creates a new ReferralService
func NewReferralService(db *gorm.DB, commissionRate decimal.Decimal) *ReferralService {
	return &ReferralService{
		db:             db,
		commissionRate: commissionRate,
	}
}

// PayCommission credits commissionRate × sourceAmount to the referrer and
// records one ReferralEarning tagged with the reward source. Triggering
// operations treat a failure here as non-fatal: the primary credit stands.
func (s *ReferralService) PayCommission(referrerID, referredID uint, sourceAmount decimal.Decimal, source string) error {
	commission := sourceAmount.Mul(s.commissionRate)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", referrerID).
			Updates(map[string]interface{}{
				"balance":      gorm.Expr("balance + ?", commission),
				"total_earned": gorm.Expr("total_earned + ?", commission),
			}).Error; err != nil {
			return err
		}

		earning := models.ReferralEarning{
			ReferrerID: referrerID,
			ReferredID: referredID,
			Amount:     commission,
			Source:     source,
		}
		return tx.Create(&earning).Error
	})

	if err != nil {
		return fmt.Errorf("failed to pay %s commission: %w", source, err)
	}

	log.Printf("Commission paid: %s to referrer %d from user %d (source: %s)", commission, referrerID, referredID, source)
	return nil
}

// GetStats returns the count and sum of all commissions earned by a referrer.
// A referrer with no earnings gets zeroes, not an error.
func (s *ReferralService) GetStats(referrerID uint) (*ReferralStats, error) {
	var count int64
	if err := s.db.Model(&models.ReferralEarning{}).Where("referrer_id = ?", referrerID).
		Count(&count).Error; err != nil {
		return nil, err
	}

	var totalEarned decimal.Decimal
	row := s.db.Model(&models.ReferralEarning{}).Where("referrer_id = ?", referrerID).
		Select("COALESCE(SUM(amount), 0)").Row()
	if err := row.Scan(&totalEarned); err != nil {
		totalEarned = decimal.Zero
	}

	return &ReferralStats{
		Count:       count,
		TotalEarned: totalEarned,
	}, nil
}

// GetRecentReferrals returns the most recently created users referred by
// the given referrer, newest first.
func (s *ReferralService) GetRecentReferrals(referrerID uint, limit int) ([]models.User, error) {
	if limit <= 0 {
		limit = 10
	}

	var referrals []models.User
	if err := s.db.Where("referred_by = ?", referrerID).
		Order("created_at DESC").Limit(limit).Find(&referrals).Error; err != nil {
		return nil, err
	}
	return referrals, nil
}

// ValidateCode resolves a referral code to its owner
func (s *ReferralService) ValidateCode(code string) (*models.User, error) {
	var referrer models.User
	if err := s.db.Where("referral_code = ?", code).First(&referrer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReferralCodeNotFound
		}
		return nil, err
	}
	return &referrer, nil
}
