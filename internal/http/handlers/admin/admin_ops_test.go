package admin

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/erco-market/internal/constants"
	"github.com/erco-market/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func TestTriggerAffiliateConfirmRunsInline(t *testing.T) {
	h, db := setupAffiliateOrderTest(t)

	promoter := models.User{Email: "ops@example.com", PasswordHash: "hash", Role: constants.RoleAffiliate, Status: constants.UserStatusActive}
	if err := db.Create(&promoter).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	profile := models.AffiliateProfile{
		UserID:        promoter.ID,
		AffiliateCode: "OPSCODE1",
		FirstName:     "Ada",
		LastName:      "Obi",
		Phone:         "+2348012345678",
		PaymentMethod: constants.AffiliatePaymentMethodBankTransfer,
		Status:        constants.AffiliateProfileStatusActive,
	}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("create profile failed: %v", err)
	}

	due := time.Now().Add(-time.Hour)
	commission := models.AffiliateCommission{
		AffiliateProfileID: profile.ID,
		OrderNumber:        "ORD-OPS-1",
		CommissionAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(25)),
		Status:             constants.AffiliateCommissionStatusPending,
		ConfirmAt:          &due,
	}
	if err := db.Create(&commission).Error; err != nil {
		t.Fatalf("create commission failed: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/ops/affiliate-confirm", nil)

	// 未配置队列客户端时当场执行确认
	h.TriggerAffiliateConfirm(c)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"queued":false`) {
		t.Fatalf("expected inline run, got %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"approved":1`) {
		t.Fatalf("expected one approved commission, body=%s", w.Body.String())
	}

	var reloaded models.AffiliateCommission
	if err := db.Where("order_number = ?", "ORD-OPS-1").First(&reloaded).Error; err != nil {
		t.Fatalf("reload commission failed: %v", err)
	}
	if reloaded.Status != constants.AffiliateCommissionStatusApproved {
		t.Fatalf("expected approved commission, got %s", reloaded.Status)
	}
}

func TestTriggerAffiliateDailyStatsInline(t *testing.T) {
	h, _ := setupAffiliateOrderTest(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/ops/affiliate-daily-stats",
		strings.NewReader(`{"stat_date":"2026-08-30"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.TriggerAffiliateDailyStats(c)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"stat_date":"2026-08-30"`) {
		t.Fatalf("expected inline rollup, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestTriggerAffiliateDailyStatsRejectsBadDate(t *testing.T) {
	h, _ := setupAffiliateOrderTest(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/ops/affiliate-daily-stats",
		strings.NewReader(`{"stat_date":"30/08/2026"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.TriggerAffiliateDailyStats(c)
	if !strings.Contains(w.Body.String(), `"status_code":400`) {
		t.Fatalf("expected status_code 400, body=%s", w.Body.String())
	}
}
