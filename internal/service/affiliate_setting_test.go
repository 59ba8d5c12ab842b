package service

import (
	"errors"
	"testing"

	"github.com/erco-market/internal/constants"
	"github.com/erco-market/internal/models"
)

type mockSettingRepo struct {
	store map[string]models.JSON
}

func newMockSettingRepo() *mockSettingRepo {
	return &mockSettingRepo{store: map[string]models.JSON{}}
}

func (m *mockSettingRepo) GetByKey(key string) (*models.Setting, error) {
	value, ok := m.store[key]
	if !ok {
		return nil, nil
	}
	return &models.Setting{Key: key, ValueJSON: value}, nil
}

func (m *mockSettingRepo) Upsert(key string, value models.JSON) (*models.Setting, error) {
	m.store[key] = value
	return &models.Setting{Key: key, ValueJSON: value}, nil
}

func TestGetAffiliateSettingDefault(t *testing.T) {
	repo := newMockSettingRepo()
	svc := NewSettingService(repo)

	setting, err := svc.GetAffiliateSetting()
	if err != nil {
		t.Fatalf("get affiliate setting failed: %v", err)
	}
	if !setting.Enabled {
		t.Fatalf("expected default enabled true")
	}
	if setting.CommissionRate != 5 {
		t.Fatalf("expected default commission rate 5, got %v", setting.CommissionRate)
	}
	if setting.ConfirmDays != 7 {
		t.Fatalf("expected default confirm days 7, got %d", setting.ConfirmDays)
	}
	if len(setting.PaymentMethods) != len(constants.SupportedAffiliatePaymentMethods) {
		t.Fatalf("expected all payment methods enabled by default, got %v", setting.PaymentMethods)
	}
}

func TestUpdateAffiliateSettingNormalize(t *testing.T) {
	repo := newMockSettingRepo()
	svc := NewSettingService(repo)

	setting, err := svc.UpdateAffiliateSetting(AffiliateSetting{
		Enabled:         true,
		CommissionRate:  123.456,
		ConfirmDays:     -10,
		MinPayoutAmount: -100.239,
		PaymentMethods:  []string{"  PAYPAL  ", "paypal", "", "western_union", "crypto"},
	})
	if err != nil {
		t.Fatalf("update affiliate setting failed: %v", err)
	}
	if setting.CommissionRate != 100 {
		t.Fatalf("expected commission rate clamp to 100, got %v", setting.CommissionRate)
	}
	if setting.ConfirmDays != 0 {
		t.Fatalf("expected confirm days clamp to 0, got %d", setting.ConfirmDays)
	}
	if setting.MinPayoutAmount != 0 {
		t.Fatalf("expected min payout amount clamp to 0, got %v", setting.MinPayoutAmount)
	}
	if len(setting.PaymentMethods) != 2 {
		t.Fatalf("expected 2 payment methods after dedupe and filter, got %v", setting.PaymentMethods)
	}
	if setting.PaymentMethods[0] != constants.AffiliatePaymentMethodPaypal || setting.PaymentMethods[1] != constants.AffiliatePaymentMethodCrypto {
		t.Fatalf("unexpected payment methods: %v", setting.PaymentMethods)
	}

	saved, ok := repo.store[constants.SettingKeyAffiliateConfig]
	if !ok {
		t.Fatalf("expected affiliate setting saved")
	}
	if saved["commission_rate"] != 100.0 {
		t.Fatalf("expected saved commission rate 100, got %v", saved["commission_rate"])
	}
}

func TestUpdateAffiliateSettingRejectEmptyMethods(t *testing.T) {
	repo := newMockSettingRepo()
	svc := NewSettingService(repo)

	_, err := svc.UpdateAffiliateSetting(AffiliateSetting{
		Enabled:        true,
		CommissionRate: 10,
		PaymentMethods: []string{"western_union"},
	})
	if !errors.Is(err, ErrAffiliateConfigInvalid) {
		t.Fatalf("expected ErrAffiliateConfigInvalid, got %v", err)
	}
}

func TestIsSupportedAffiliatePaymentMethod(t *testing.T) {
	for _, method := range constants.SupportedAffiliatePaymentMethods {
		if !IsSupportedAffiliatePaymentMethod(method) {
			t.Fatalf("expected %s supported", method)
		}
	}
	if IsSupportedAffiliatePaymentMethod("western_union") {
		t.Fatalf("expected western_union unsupported")
	}
	if !IsSupportedAffiliatePaymentMethod("  Bank_Transfer  ") {
		t.Fatalf("expected case-insensitive match")
	}
}
