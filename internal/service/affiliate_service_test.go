package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/erco-market/internal/config"
	"github.com/erco-market/internal/constants"
	"github.com/erco-market/internal/models"
	"github.com/erco-market/internal/repository"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupAffiliateServiceTest(t *testing.T) (*AffiliateService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:affiliate_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.AffiliateProfile{},
		&models.AffiliateClick{},
		&models.AffiliateReferral{},
		&models.AffiliateCommission{},
		&models.AffiliatePayout{},
		&models.AffiliateDailyStat{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	settingSvc := NewSettingService(newMockSettingRepo())
	if _, err := settingSvc.UpdateAffiliateSetting(AffiliateSetting{
		Enabled:        true,
		CommissionRate: 20,
		ConfirmDays:    7,
		PaymentMethods: constants.SupportedAffiliatePaymentMethods,
	}); err != nil {
		t.Fatalf("init affiliate setting failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.Site.BaseURL = "https://erco.example.com"
	cfg.Site.Currency = "USD"

	svc := NewAffiliateService(cfg, repository.NewAffiliateRepository(db), repository.NewUserRepository(db), settingSvc)
	return svc, db
}

func createAffiliateTestUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()

	row := models.User{
		Email:        email,
		PasswordHash: "hash",
		FullName:     "tester",
		Role:         constants.RoleAffiliate,
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return row
}

// approveProfile 模拟管理员审核通过，入驻默认 pending
func approveProfile(t *testing.T, svc *AffiliateService, profileID uint) {
	t.Helper()
	if err := svc.UpdateProfileStatus(profileID, constants.AffiliateProfileStatusActive); err != nil {
		t.Fatalf("approve profile failed: %v", err)
	}
}

func validRegisterInput() RegisterAffiliateInput {
	return RegisterAffiliateInput{
		FirstName:     "Ada",
		LastName:      "Obi",
		Phone:         "+2348012345678",
		AddressLine1:  "12 Marina Road",
		City:          "Lagos",
		State:         "Lagos",
		Country:       "Nigeria",
		PaymentMethod: constants.AffiliatePaymentMethodBankTransfer,
		Facebook:      "https://facebook.com/ada",
		Instagram:     "https://instagram.com/ada",
		TermsAccepted: true,
	}
}

func TestRegisterProfile(t *testing.T) {
	svc, db := setupAffiliateServiceTest(t)
	user := createAffiliateTestUser(t, db, "register@example.com")

	profile, err := svc.RegisterProfile(user.ID, validRegisterInput())
	if err != nil {
		t.Fatalf("register profile failed: %v", err)
	}
	if len(profile.AffiliateCode) != affiliateCodeLength {
		t.Fatalf("expected code length %d, got %q", affiliateCodeLength, profile.AffiliateCode)
	}
	for _, r := range profile.AffiliateCode {
		if !strings.ContainsRune(affiliateCodeAlphabet, r) {
			t.Fatalf("code %q contains char outside alphabet", profile.AffiliateCode)
		}
	}
	if !profile.CommissionRate.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected commission rate from setting, got %s", profile.CommissionRate)
	}
	if profile.TermsAcceptedAt == nil {
		t.Fatalf("expected terms accepted timestamp recorded")
	}
	if profile.Status != constants.AffiliateProfileStatusPending {
		t.Fatalf("expected new profile pending review, got %s", profile.Status)
	}

	links, ok := profile.SocialMediaLinks["facebook"]
	if !ok || links != "https://facebook.com/ada" {
		t.Fatalf("expected social links consolidated, got %v", profile.SocialMediaLinks)
	}
}

func TestRegisterProfileIdempotent(t *testing.T) {
	svc, db := setupAffiliateServiceTest(t)
	user := createAffiliateTestUser(t, db, "repeat@example.com")

	first, err := svc.RegisterProfile(user.ID, validRegisterInput())
	if err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	second, err := svc.RegisterProfile(user.ID, validRegisterInput())
	if err != nil {
		t.Fatalf("repeat register failed: %v", err)
	}
	if second.ID != first.ID || second.AffiliateCode != first.AffiliateCode {
		t.Fatalf("expected same profile on repeat, got %d/%s vs %d/%s",
			first.ID, first.AffiliateCode, second.ID, second.AffiliateCode)
	}

	var count int64
	if err := db.Model(&models.AffiliateProfile{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count profiles failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one profile, got %d", count)
	}
}

func TestRegisterProfileRequiresTerms(t *testing.T) {
	svc, db := setupAffiliateServiceTest(t)
	user := createAffiliateTestUser(t, db, "terms@example.com")

	input := validRegisterInput()
	input.TermsAccepted = false
	if _, err := svc.RegisterProfile(user.ID, input); !errors.Is(err, ErrAffiliateTermsRequired) {
		t.Fatalf("expected ErrAffiliateTermsRequired, got %v", err)
	}
}

func TestRegisterProfileRejectUnknownPaymentMethod(t *testing.T) {
	svc, db := setupAffiliateServiceTest(t)
	user := createAffiliateTestUser(t, db, "method@example.com")

	input := validRegisterInput()
	input.PaymentMethod = "western_union"
	if _, err := svc.RegisterProfile(user.ID, input); !errors.Is(err, ErrAffiliatePaymentMethodInvalid) {
		t.Fatalf("expected ErrAffiliatePaymentMethodInvalid, got %v", err)
	}
}

func TestGetDashboardUnregistered(t *testing.T) {
	svc, db := setupAffiliateServiceTest(t)
	user := createAffiliateTestUser(t, db, "ghost@example.com")

	dashboard, err := svc.GetDashboard(user.ID)
	if err != nil {
		t.Fatalf("expected no error for unregistered user, got %v", err)
	}
	if dashboard.Registered {
		t.Fatalf("expected registered false")
	}
	if dashboard.Profile != nil {
		t.Fatalf("expected nil profile, got %+v", dashboard.Profile)
	}
}

func TestGetDashboard(t *testing.T) {
	svc, db := setupAffiliateServiceTest(t)
	user := createAffiliateTestUser(t, db, "dash@example.com")

	profile, err := svc.RegisterProfile(user.ID, validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	approveProfile(t, svc, profile.ID)
	if err := db.Model(&models.AffiliateProfile{}).Where("id = ?", profile.ID).Updates(map[string]interface{}{
		"total_clicks": 10,
		"total_sales":  3,
	}).Error; err != nil {
		t.Fatalf("seed stats failed: %v", err)
	}
	for i := 0; i < 12; i++ {
		row := models.AffiliateCommission{
			AffiliateProfileID: profile.ID,
			OrderNumber:        fmt.Sprintf("ORD-%03d", i),
			CommissionAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(int64(i))),
			Status:             constants.AffiliateCommissionStatusPending,
			CreatedAt:          time.Now().Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("create commission failed: %v", err)
		}
	}

	dashboard, err := svc.GetDashboard(user.ID)
	if err != nil {
		t.Fatalf("get dashboard failed: %v", err)
	}
	if !dashboard.Registered {
		t.Fatalf("expected registered true")
	}
	if dashboard.ConversionRate != "30.0%" {
		t.Fatalf("expected conversion rate 30.0%%, got %s", dashboard.ConversionRate)
	}
	wantLink := "https://erco.example.com?ref=" + profile.AffiliateCode
	if dashboard.ReferralLink != wantLink {
		t.Fatalf("expected referral link %s, got %s", wantLink, dashboard.ReferralLink)
	}
	if len(dashboard.RecentCommissions) != affiliateRecentCommissionLimit {
		t.Fatalf("expected %d recent commissions, got %d", affiliateRecentCommissionLimit, len(dashboard.RecentCommissions))
	}
	if dashboard.RecentCommissions[0].OrderNumber != "ORD-011" {
		t.Fatalf("expected newest commission first, got %s", dashboard.RecentCommissions[0].OrderNumber)
	}
	if dashboard.StatusBadge != "success" {
		t.Fatalf("expected success badge for active profile, got %s", dashboard.StatusBadge)
	}
}

func TestConversionRateZeroClicks(t *testing.T) {
	if got := formatConversionRate(0, 0); got != "0%" {
		t.Fatalf("expected 0%% with no clicks, got %s", got)
	}
	if got := formatConversionRate(5, 0); got != "0%" {
		t.Fatalf("expected 0%% with no clicks regardless of sales, got %s", got)
	}
	if got := formatConversionRate(1, 3); got != "33.3%" {
		t.Fatalf("expected 33.3%%, got %s", got)
	}
}

func TestStatusBadgeFallback(t *testing.T) {
	if got := AffiliateStatusBadge("archived"); got != "default" {
		t.Fatalf("expected default badge for unknown status, got %s", got)
	}
	if got := CommissionStatusBadge(constants.AffiliateCommissionStatusPaid); got != "success" {
		t.Fatalf("expected success badge for paid, got %s", got)
	}
}

func TestTrackClickDedupeWindow(t *testing.T) {
	svc, db := setupAffiliateServiceTest(t)
	user := createAffiliateTestUser(t, db, "click@example.com")
	profile, err := svc.RegisterProfile(user.ID, validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	approveProfile(t, svc, profile.ID)

	input := TrackClickInput{Code: profile.AffiliateCode, VisitorKey: "visitor-1", LandingPath: "/"}
	if err := svc.TrackClick(input); err != nil {
		t.Fatalf("first click failed: %v", err)
	}
	if err := svc.TrackClick(input); err != nil {
		t.Fatalf("duplicate click failed: %v", err)
	}

	var count int64
	if err := db.Model(&models.AffiliateClick{}).Where("affiliate_profile_id = ?", profile.ID).Count(&count).Error; err != nil {
		t.Fatalf("count clicks failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected duplicate click suppressed, got %d rows", count)
	}

	reloaded, err := svc.GetProfileByUserID(user.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload profile failed: %v", err)
	}
	if reloaded.TotalClicks != 1 {
		t.Fatalf("expected total clicks 1, got %d", reloaded.TotalClicks)
	}
}

func TestRecordOrderPaidIdempotent(t *testing.T) {
	svc, db := setupAffiliateServiceTest(t)
	promoter := createAffiliateTestUser(t, db, "promoter@example.com")
	customer := createAffiliateTestUser(t, db, "customer@example.com")

	profile, err := svc.RegisterProfile(promoter.ID, validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	approveProfile(t, svc, profile.ID)
	if _, err := svc.BindReferral(customer.ID, profile.AffiliateCode); err != nil {
		t.Fatalf("bind referral failed: %v", err)
	}

	paidAt := time.Now()
	first, err := svc.RecordOrderPaid(customer.ID, "ORD-PAID-1", decimal.NewFromInt(500), paidAt)
	if err != nil {
		t.Fatalf("first record failed: %v", err)
	}
	if first == nil {
		t.Fatalf("expected commission created")
	}
	if !first.CommissionAmount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected commission 100 (20%% of 500), got %s", first.CommissionAmount)
	}
	if first.Status != constants.AffiliateCommissionStatusPending || first.ConfirmAt == nil {
		t.Fatalf("expected pending commission with confirm window, got %+v", first)
	}

	second, err := svc.RecordOrderPaid(customer.ID, "ORD-PAID-1", decimal.NewFromInt(500), paidAt)
	if err != nil {
		t.Fatalf("repeat record failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same commission on repeat, got %d vs %d", first.ID, second.ID)
	}

	var count int64
	if err := db.Model(&models.AffiliateCommission{}).Where("order_number = ?", "ORD-PAID-1").Count(&count).Error; err != nil {
		t.Fatalf("count commissions failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one commission, got %d", count)
	}
}

func TestConfirmDueCommissions(t *testing.T) {
	svc, db := setupAffiliateServiceTest(t)
	user := createAffiliateTestUser(t, db, "confirm@example.com")
	profile, err := svc.RegisterProfile(user.ID, validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	due := time.Now().Add(-time.Hour)
	notDue := time.Now().Add(24 * time.Hour)
	rows := []models.AffiliateCommission{
		{AffiliateProfileID: profile.ID, OrderNumber: "ORD-DUE", Status: constants.AffiliateCommissionStatusPending, ConfirmAt: &due},
		{AffiliateProfileID: profile.ID, OrderNumber: "ORD-WAIT", Status: constants.AffiliateCommissionStatusPending, ConfirmAt: &notDue},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("create commission failed: %v", err)
		}
	}

	affected, err := svc.ConfirmDueCommissions()
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 commission confirmed, got %d", affected)
	}

	var confirmed models.AffiliateCommission
	if err := db.Where("order_number = ?", "ORD-DUE").First(&confirmed).Error; err != nil {
		t.Fatalf("reload commission failed: %v", err)
	}
	if confirmed.Status != constants.AffiliateCommissionStatusApproved || confirmed.ApprovedAt == nil {
		t.Fatalf("expected approved with timestamp, got %+v", confirmed)
	}
}

func TestApplyPayout(t *testing.T) {
	svc, db := setupAffiliateServiceTest(t)
	user := createAffiliateTestUser(t, db, "payout@example.com")
	profile, err := svc.RegisterProfile(user.ID, validRegisterInput())
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	approveProfile(t, svc, profile.ID)

	for i := 0; i < 3; i++ {
		row := models.AffiliateCommission{
			AffiliateProfileID: profile.ID,
			OrderNumber:        fmt.Sprintf("ORD-PO-%d", i),
			CommissionAmount:   models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
			Status:             constants.AffiliateCommissionStatusApproved,
		}
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("create commission failed: %v", err)
		}
	}

	payout, err := svc.ApplyPayout(user.ID)
	if err != nil {
		t.Fatalf("apply payout failed: %v", err)
	}
	if !payout.Amount.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected payout amount 150, got %s", payout.Amount)
	}
	if payout.Status != constants.AffiliatePayoutStatusPending {
		t.Fatalf("expected pending payout, got %s", payout.Status)
	}

	// 已绑定结算单的佣金不可再次申请
	if _, err := svc.ApplyPayout(user.ID); !errors.Is(err, ErrAffiliatePayoutInsufficient) {
		t.Fatalf("expected ErrAffiliatePayoutInsufficient on second apply, got %v", err)
	}
}
