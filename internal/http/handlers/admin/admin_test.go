package admin

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/erco-market/internal/cache"
	"github.com/erco-market/internal/config"
	"github.com/erco-market/internal/constants"
	"github.com/erco-market/internal/models"
	"github.com/erco-market/internal/provider"
	"github.com/erco-market/internal/repository"
	"github.com/erco-market/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAdminHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:admin_handler_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	container := &provider.Container{
		UserRepo: repository.NewUserRepository(db),
	}
	return New(container), db
}

func setupAuthStateCache(t *testing.T) {
	t.Helper()

	srv := miniredis.RunT(t)
	host, portStr, err := net.SplitHostPort(srv.Addr())
	if err != nil {
		t.Fatalf("split redis addr failed: %v", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("parse redis port failed: %v", err)
	}
	if err := cache.InitRedis(&config.RedisConfig{Enabled: true, Host: host, Port: port, Prefix: "test"}); err != nil {
		t.Fatalf("init redis failed: %v", err)
	}
	t.Cleanup(func() {
		_ = cache.InitRedis(&config.RedisConfig{Enabled: false})
	})
}

func TestUpdateUserStatusEvictsAuthSnapshot(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	setupAuthStateCache(t)

	user := models.User{
		Email:        "victim@example.com",
		PasswordHash: "hash",
		FullName:     "Victim",
		Role:         constants.RoleCustomer,
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	ctx := context.Background()
	if err := cache.SetUserAuthState(ctx, cache.BuildUserAuthState(&user)); err != nil {
		t.Fatalf("seed auth snapshot failed: %v", err)
	}
	if _, hit, err := cache.GetUserAuthState(ctx, user.ID); err != nil || !hit {
		t.Fatalf("expected seeded snapshot, hit=%v err=%v", hit, err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: strconv.Itoa(int(user.ID))}}
	c.Request = httptest.NewRequest(http.MethodPatch, "/admin/users/1/status",
		strings.NewReader(`{"status":"disabled"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.UpdateUserStatus(c)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	reloaded, err := h.UserRepo.GetByID(user.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if reloaded.Status != constants.UserStatusDisabled {
		t.Fatalf("expected disabled status, got %s", reloaded.Status)
	}

	// 禁用后鉴权快照必须同时失效，不能等 TTL 自然过期
	if _, hit, err := cache.GetUserAuthState(ctx, user.ID); err != nil || hit {
		t.Fatalf("expected snapshot evicted, hit=%v err=%v", hit, err)
	}
}

func setupAffiliateOrderTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:admin_affiliate_order_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Setting{},
		&models.AffiliateProfile{},
		&models.AffiliateClick{},
		&models.AffiliateReferral{},
		&models.AffiliateCommission{},
		&models.AffiliatePayout{},
		&models.AffiliateDailyStat{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	settingSvc := service.NewSettingService(repository.NewSettingRepository(db))
	if _, err := settingSvc.UpdateAffiliateSetting(service.AffiliateSetting{
		Enabled:        true,
		CommissionRate: 10,
		ConfirmDays:    7,
		PaymentMethods: constants.SupportedAffiliatePaymentMethods,
	}); err != nil {
		t.Fatalf("init affiliate setting failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.Site.BaseURL = "https://erco.example.com"
	cfg.Site.Currency = "USD"

	userRepo := repository.NewUserRepository(db)
	container := &provider.Container{
		UserRepo:         userRepo,
		AffiliateService: service.NewAffiliateService(cfg, repository.NewAffiliateRepository(db), userRepo, settingSvc),
	}
	return New(container), db
}

func TestRecordAffiliateOrderCreatesCommission(t *testing.T) {
	h, db := setupAffiliateOrderTest(t)

	promoter := models.User{Email: "promoter@example.com", PasswordHash: "hash", Role: constants.RoleAffiliate, Status: constants.UserStatusActive}
	customer := models.User{Email: "buyer@example.com", PasswordHash: "hash", Role: constants.RoleCustomer, Status: constants.UserStatusActive}
	for _, u := range []*models.User{&promoter, &customer} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("create user failed: %v", err)
		}
	}

	profile, err := h.AffiliateService.RegisterProfile(promoter.ID, service.RegisterAffiliateInput{
		FirstName:     "Ada",
		LastName:      "Obi",
		Phone:         "+2348012345678",
		AddressLine1:  "12 Marina Road",
		City:          "Lagos",
		State:         "Lagos",
		Country:       "Nigeria",
		PaymentMethod: constants.AffiliatePaymentMethodBankTransfer,
		TermsAccepted: true,
	})
	if err != nil {
		t.Fatalf("register profile failed: %v", err)
	}
	if err := h.AffiliateService.UpdateProfileStatus(profile.ID, constants.AffiliateProfileStatusActive); err != nil {
		t.Fatalf("activate profile failed: %v", err)
	}
	if _, err := h.AffiliateService.BindReferral(customer.ID, profile.AffiliateCode); err != nil {
		t.Fatalf("bind referral failed: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := fmt.Sprintf(`{"customer_id":%d,"order_number":"ORD-2001","order_amount":"500"}`, customer.ID)
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/affiliate-orders", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.RecordAffiliateOrder(c)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status_code":0`) {
		t.Fatalf("expected success, got %d body=%s", w.Code, w.Body.String())
	}

	var count int64
	if err := db.Model(&models.AffiliateCommission{}).Where("order_number = ?", "ORD-2001").Count(&count).Error; err != nil {
		t.Fatalf("count commissions failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one commission recorded, got %d", count)
	}
}

func TestRecordAffiliateOrderRejectsBadAmount(t *testing.T) {
	h, _ := setupAffiliateOrderTest(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/affiliate-orders",
		strings.NewReader(`{"customer_id":1,"order_number":"ORD-2002","order_amount":"-5"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.RecordAffiliateOrder(c)
	if !strings.Contains(w.Body.String(), `"status_code":400`) {
		t.Fatalf("expected status_code 400, body=%s", w.Body.String())
	}
}

func TestUpdateUserStatusRejectsUnknownStatus(t *testing.T) {
	h, db := setupAdminHandlerTest(t)

	user := models.User{
		Email:        "status@example.com",
		PasswordHash: "hash",
		Role:         constants.RoleCustomer,
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: strconv.Itoa(int(user.ID))}}
	c.Request = httptest.NewRequest(http.MethodPatch, "/admin/users/1/status",
		strings.NewReader(`{"status":"banned"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.UpdateUserStatus(c)
	if !strings.Contains(w.Body.String(), `"status_code":400`) {
		t.Fatalf("expected status_code 400, body=%s", w.Body.String())
	}

	reloaded, err := h.UserRepo.GetByID(user.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload user failed: %v", err)
	}
	if reloaded.Status != constants.UserStatusActive {
		t.Fatalf("expected status unchanged, got %s", reloaded.Status)
	}
}
