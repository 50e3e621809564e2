package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mining-platform/internal/models"
)

func createRankedUser(t *testing.T, db *gorm.DB, username string, balance int64) *models.User {
	user := models.User{
		Username:     username,
		ReferralCode: "MTK" + username,
		Balance:      decimal.NewFromInt(balance),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return &user
}

func TestLeaderboardOrdering(t *testing.T) {
	db := setupTestDB(t)
	service := NewLeaderboardService(db)

	createRankedUser(t, db, "mid", 100)
	createRankedUser(t, db, "low", 50)
	createRankedUser(t, db, "top", 200)

	entries, err := service.GetLeaderboard(50)
	if err != nil {
		t.Fatalf("GetLeaderboard failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	wantOrder := []string{"top", "mid", "low"}
	for i, want := range wantOrder {
		if entries[i].Username != want {
			t.Errorf("position %d: expected %s, got %s", i, want, entries[i].Username)
		}
		if entries[i].Rank != i+1 {
			t.Errorf("position %d: expected rank %d, got %d", i, i+1, entries[i].Rank)
		}
	}
}

func TestLeaderboardLimit(t *testing.T) {
	db := setupTestDB(t)
	service := NewLeaderboardService(db)

	createRankedUser(t, db, "a", 10)
	createRankedUser(t, db, "b", 20)
	createRankedUser(t, db, "c", 30)

	entries, err := service.GetLeaderboard(2)
	if err != nil {
		t.Fatalf("GetLeaderboard failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 entries with limit 2, got %d", len(entries))
	}
}

func TestRankMatchesLeaderboard(t *testing.T) {
	db := setupTestDB(t)
	service := NewLeaderboardService(db)

	// Two users tie on balance; the id tie-break must keep GetUserRank
	// and GetLeaderboard consistent.
	users := []*models.User{
		createRankedUser(t, db, "alpha", 100),
		createRankedUser(t, db, "beta", 100),
		createRankedUser(t, db, "gamma", 300),
		createRankedUser(t, db, "delta", 25),
	}

	entries, err := service.GetLeaderboard(50)
	if err != nil {
		t.Fatalf("GetLeaderboard failed: %v", err)
	}

	positions := make(map[uint]int, len(entries))
	for _, entry := range entries {
		positions[entry.ID] = entry.Rank
	}

	for _, user := range users {
		rank, err := service.GetUserRank(user.ID)
		if err != nil {
			t.Fatalf("GetUserRank(%s) failed: %v", user.Username, err)
		}
		if rank != positions[user.ID] {
			t.Errorf("%s: leaderboard position %d but GetUserRank %d", user.Username, positions[user.ID], rank)
		}
	}
}

func TestRankUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	service := NewLeaderboardService(db)

	if _, err := service.GetUserRank(424242); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
