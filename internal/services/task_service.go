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

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskAlreadyCompleted = errors.New("task already completed")
)

// TaskWithStatus is an active task annotated with the caller's completion state
type TaskWithStatus struct {
	models.Task
	Completed bool `json:"completed"`
}

// TaskService tracks one-time task completions and pays their rewards
type TaskService struct {
	db        *gorm.DB
	referrals *ReferralService
	mu        sync.Mutex
}

// NewTaskService creates a new TaskService
func NewTaskService(db *gorm.DB, referrals *ReferralService) *TaskService {
	return &TaskService{
		db:        db,
		referrals: referrals,
	}
}

// ListTasks returns all active tasks, each flagged with whether the user
// has already completed it.
func (s *TaskService) ListTasks(userID uint) ([]TaskWithStatus, error) {
	var tasks []models.Task
	if err := s.db.Where("is_active = ?", true).Find(&tasks).Error; err != nil {
		return nil, err
	}

	var completions []models.UserTask
	if err := s.db.Where("user_id = ?", userID).Find(&completions).Error; err != nil {
		return nil, err
	}

	completedIDs := make(map[uint]bool, len(completions))
	for _, c := range completions {
		completedIDs[c.TaskID] = true
	}

	result := make([]TaskWithStatus, 0, len(tasks))
	for _, task := range tasks {
		result = append(result, TaskWithStatus{
			Task:      task,
			Completed: completedIDs[task.ID],
		})
	}
	return result, nil
}

// Complete records a task completion and credits its reward. The unique
// (user_id, task_id) index backs the in-transaction check, so two
// concurrent completions yield exactly one credit.
func (s *TaskService) Complete(ctx context.Context, userID, taskID uint) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var task models.Task
	if err := s.db.Where("id = ? AND is_active = ?", taskID, true).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, ErrTaskNotFound
		}
		return decimal.Zero, err
	}

	var referredBy *uint

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		var existing models.UserTask
		err := tx.Where("user_id = ? AND task_id = ?", userID, taskID).First(&existing).Error
		if err == nil {
			return ErrTaskAlreadyCompleted
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		completion := models.UserTask{
			UserID:      userID,
			TaskID:      taskID,
			CompletedAt: time.Now(),
		}
		if err := tx.Create(&completion).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrTaskAlreadyCompleted
			}
			return fmt.Errorf("failed to record completion: %w", err)
		}

		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Updates(map[string]interface{}{
				"balance":      gorm.Expr("balance + ?", task.Reward),
				"total_earned": gorm.Expr("total_earned + ?", task.Reward),
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
		if err := s.referrals.PayCommission(*referredBy, userID, task.Reward, models.EarningSourceTask); err != nil {
			log.Printf("Warning: task commission for referrer %d of user %d failed: %v", *referredBy, userID, err)
		}
	}

	return task.Reward, nil
}
