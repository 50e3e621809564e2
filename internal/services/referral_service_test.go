package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mining-platform/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// A named in-memory database per test keeps the schema alive across
	// the pooled connections gorm opens.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.MiningSession{},
		&models.Task{},
		&models.UserTask{},
		&models.ReferralEarning{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	user := models.User{
		Username:     username,
		ReferralCode: "MTK" + username,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return &user
}

func TestPayCommission(t *testing.T) {
	db := setupTestDB(t)
	service := NewReferralService(db, decimal.NewFromFloat(0.10))

	referrer := createTestUser(t, db, "referrer")
	referred := createTestUser(t, db, "referred")

	err := service.PayCommission(referrer.ID, referred.ID, decimal.NewFromInt(50), models.EarningSourceMining)
	if err != nil {
		t.Fatalf("PayCommission failed: %v", err)
	}

	var updated models.User
	if err := db.First(&updated, referrer.ID).Error; err != nil {
		t.Fatalf("failed to reload referrer: %v", err)
	}

	want := decimal.NewFromInt(5)
	if !updated.Balance.Equal(want) {
		t.Errorf("referrer balance: expected %s, got %s", want, updated.Balance)
	}
	if !updated.TotalEarned.Equal(want) {
		t.Errorf("referrer total earned: expected %s, got %s", want, updated.TotalEarned)
	}

	var earning models.ReferralEarning
	if err := db.Where("referrer_id = ?", referrer.ID).First(&earning).Error; err != nil {
		t.Fatalf("failed to load earning: %v", err)
	}
	if !earning.Amount.Equal(want) {
		t.Errorf("earning amount: expected %s, got %s", want, earning.Amount)
	}
	if earning.Source != models.EarningSourceMining {
		t.Errorf("earning source: expected %s, got %s", models.EarningSourceMining, earning.Source)
	}
	if earning.ReferredID != referred.ID {
		t.Errorf("earning referred id: expected %d, got %d", referred.ID, earning.ReferredID)
	}
}

func TestGetStatsEmpty(t *testing.T) {
	db := setupTestDB(t)
	service := NewReferralService(db, decimal.NewFromFloat(0.10))

	user := createTestUser(t, db, "lonely")

	stats, err := service.GetStats(user.ID)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.Count != 0 {
		t.Errorf("expected count 0, got %d", stats.Count)
	}
	if !stats.TotalEarned.IsZero() {
		t.Errorf("expected total earned 0, got %s", stats.TotalEarned)
	}
}

func TestGetStatsAggregates(t *testing.T) {
	db := setupTestDB(t)
	service := NewReferralService(db, decimal.NewFromFloat(0.10))

	referrer := createTestUser(t, db, "ref")
	first := createTestUser(t, db, "first")
	second := createTestUser(t, db, "second")

	if err := service.PayCommission(referrer.ID, first.ID, decimal.NewFromInt(50), models.EarningSourceMining); err != nil {
		t.Fatalf("PayCommission failed: %v", err)
	}
	if err := service.PayCommission(referrer.ID, second.ID, decimal.NewFromInt(20), models.EarningSourceTask); err != nil {
		t.Fatalf("PayCommission failed: %v", err)
	}

	stats, err := service.GetStats(referrer.ID)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.Count != 2 {
		t.Errorf("expected count 2, got %d", stats.Count)
	}
	want := decimal.NewFromInt(7)
	if !stats.TotalEarned.Equal(want) {
		t.Errorf("expected total earned %s, got %s", want, stats.TotalEarned)
	}
}

func TestValidateCode(t *testing.T) {
	db := setupTestDB(t)
	service := NewReferralService(db, decimal.NewFromFloat(0.10))

	user := createTestUser(t, db, "owner")

	referrer, err := service.ValidateCode(user.ReferralCode)
	if err != nil {
		t.Fatalf("ValidateCode failed: %v", err)
	}
	if referrer.ID != user.ID {
		t.Errorf("expected referrer %d, got %d", user.ID, referrer.ID)
	}

	if _, err := service.ValidateCode("MTKNOPE"); !errors.Is(err, ErrReferralCodeNotFound) {
		t.Errorf("expected ErrReferralCodeNotFound, got %v", err)
	}
}

func TestGetRecentReferrals(t *testing.T) {
	db := setupTestDB(t)
	service := NewReferralService(db, decimal.NewFromFloat(0.10))

	referrer := createTestUser(t, db, "recruiter")

	now := time.Now()
	for i := 0; i < 3; i++ {
		user := models.User{
			Username:     fmt.Sprintf("recruit%d", i),
			ReferralCode: fmt.Sprintf("MTKRECRUIT%d", i),
			ReferredBy:   &referrer.ID,
			CreatedAt:    now.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(&user).Error; err != nil {
			t.Fatalf("failed to create recruit: %v", err)
		}
	}

	recent, err := service.GetRecentReferrals(referrer.ID, 2)
	if err != nil {
		t.Fatalf("GetRecentReferrals failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 referrals, got %d", len(recent))
	}
	if recent[0].Username != "recruit2" || recent[1].Username != "recruit1" {
		t.Errorf("expected newest first, got %s then %s", recent[0].Username, recent[1].Username)
	}
}
