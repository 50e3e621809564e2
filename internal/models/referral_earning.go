package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Earning sources
const (
	EarningSourceMining = "mining"
	EarningSourceTask   = "task"
)

// ReferralEarning is an append-only record of one commission payment to
// a referrer, tagged with the reward source that triggered it.
type ReferralEarning struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	ReferrerID uint            `gorm:"not null;index" json:"referrer_id"`
	ReferredID uint            `gorm:"not null;index" json:"referred_id"`
	Referrer   User            `gorm:"foreignKey:ReferrerID" json:"referrer,omitempty"`
	Referred   User            `gorm:"foreignKey:ReferredID" json:"referred,omitempty"`
	Amount     decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"amount"`
	Source     string          `gorm:"size:20;not null" json:"source"`
	CreatedAt  time.Time       `json:"created_at"`
}

// TableName specifies the table name for ReferralEarning model
func (ReferralEarning) TableName() string {
	return "referral_earnings"
}
