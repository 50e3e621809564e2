package services

import (
	"strings"
	"testing"
)

func TestProcessLoginCreatesUser(t *testing.T) {
	db := setupTestDB(t)
	service := NewAuthService(db)

	user, err := service.ProcessLogin("newcomer", "")
	if err != nil {
		t.Fatalf("ProcessLogin failed: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected user to be persisted")
	}
	if !strings.HasPrefix(user.ReferralCode, "MTK") {
		t.Errorf("expected MTK-prefixed referral code, got %s", user.ReferralCode)
	}
	if !user.Balance.IsZero() {
		t.Errorf("expected zero starting balance, got %s", user.Balance)
	}

	again, err := service.ProcessLogin("newcomer", "")
	if err != nil {
		t.Fatalf("second ProcessLogin failed: %v", err)
	}
	if again.ID != user.ID {
		t.Errorf("expected same user on repeat login, got %d and %d", user.ID, again.ID)
	}
}

func TestProcessLoginWithReferral(t *testing.T) {
	db := setupTestDB(t)
	service := NewAuthService(db)

	referrer, err := service.ProcessLogin("veteran", "")
	if err != nil {
		t.Fatalf("ProcessLogin failed: %v", err)
	}

	recruit, err := service.ProcessLogin("recruit", referrer.ReferralCode)
	if err != nil {
		t.Fatalf("ProcessLogin with referral failed: %v", err)
	}
	if recruit.ReferredBy == nil {
		t.Fatal("expected referred user to carry a referrer")
	}
	if *recruit.ReferredBy != referrer.ID {
		t.Errorf("expected referrer %d, got %d", referrer.ID, *recruit.ReferredBy)
	}
}

func TestProcessLoginUnknownReferralCode(t *testing.T) {
	db := setupTestDB(t)
	service := NewAuthService(db)

	user, err := service.ProcessLogin("hopeful", "MTKNOSUCHCODE")
	if err != nil {
		t.Fatalf("ProcessLogin failed: %v", err)
	}
	if user.ReferredBy != nil {
		t.Errorf("expected no referrer for unknown code, got %d", *user.ReferredBy)
	}
}
