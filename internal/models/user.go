package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a user in the system
type User struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Username        string          `gorm:"uniqueIndex;not null" json:"username"`
	Email           *string         `gorm:"uniqueIndex" json:"email,omitempty"`
	FirstName       *string         `json:"first_name,omitempty"`
	LastName        *string         `json:"last_name,omitempty"`
	ProfileImageURL *string         `json:"profile_image_url,omitempty"`
	Balance         decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0" json:"balance"`
	TotalEarned     decimal.Decimal `gorm:"type:decimal(20,8);not null;default:0" json:"total_earned"`
	ReferralCode    string          `gorm:"uniqueIndex;not null;size:50" json:"referral_code"`
	ReferredBy      *uint           `gorm:"index" json:"referred_by,omitempty"`
	Referrer        *User           `gorm:"foreignKey:ReferredBy" json:"referrer,omitempty"`
	WalletAddress   *string         `json:"wallet_address,omitempty"`
	LastClaimAt     *time.Time      `json:"last_claim_at,omitempty"`
	Streak          int             `gorm:"default:0" json:"streak"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}
