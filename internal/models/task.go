package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Task is a one-time reward-bearing activity. The catalog is maintained
// by the admin seeder; the engines only read it.
type Task struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Title       string          `gorm:"not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Reward      decimal.Decimal `gorm:"type:decimal(20,8);not null" json:"reward"`
	Icon        string          `gorm:"size:50" json:"icon"`
	ActionURL   *string         `json:"action_url,omitempty"`
	IsActive    bool            `gorm:"default:true" json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TableName specifies the table name for Task model
func (Task) TableName() string {
	return "tasks"
}

// UserTask records that a user completed a task. The composite unique
// index enforces at most one completion per (user, task) pair.
type UserTask struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_user_task" json:"user_id"`
	TaskID      uint      `gorm:"not null;uniqueIndex:idx_user_task" json:"task_id"`
	User        User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Task        Task      `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	CompletedAt time.Time `gorm:"not null" json:"completed_at"`
}

// TableName specifies the table name for UserTask model
func (UserTask) TableName() string {
	return "user_tasks"
}
