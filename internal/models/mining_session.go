package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MiningSession is an append-only record of one daily claim. The most
// recent session per user gates the next claim.
type MiningSession struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	User      User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Amount    decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"amount"`
	ClaimedAt time.Time       `gorm:"not null;index" json:"claimed_at"`
}

// TableName specifies the table name for MiningSession model
func (MiningSession) TableName() string {
	return "mining_sessions"
}
