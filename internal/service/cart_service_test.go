package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/erco-market/internal/models"
	"github.com/erco-market/internal/repository"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:cart_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.VendorProfile{}, &models.Product{}, &models.ProductImage{}, &models.CartItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db)), db
}

func createCartTestProduct(t *testing.T, db *gorm.DB, slug string, price float64, active bool) models.Product {
	t.Helper()

	row := models.Product{
		VendorProfileID: 1,
		Name:            slug,
		Slug:            slug,
		PriceAmount:     models.NewMoneyFromDecimal(decimal.NewFromFloat(price)),
		StockQuantity:   100,
		IsActive:        active,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return row
}

func TestCartTotalsAndCount(t *testing.T) {
	svc, db := setupCartServiceTest(t)

	panel := createCartTestProduct(t, db, "mono-panel-450w", 199.99, true)
	inverter := createCartTestProduct(t, db, "hybrid-inverter-5kw", 850, true)

	if err := svc.AddItem(1, panel.ID, 2); err != nil {
		t.Fatalf("add panel failed: %v", err)
	}
	if err := svc.AddItem(1, inverter.ID, 1); err != nil {
		t.Fatalf("add inverter failed: %v", err)
	}

	summary, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if summary.ItemCount != 3 {
		t.Fatalf("expected item count 3, got %d", summary.ItemCount)
	}
	want := decimal.NewFromFloat(199.99).Mul(decimal.NewFromInt(2)).Add(decimal.NewFromInt(850))
	if !summary.TotalAmount.Equal(want) {
		t.Fatalf("expected total %s, got %s", want, summary.TotalAmount)
	}
}

func TestCartAddItemAccumulatesQuantity(t *testing.T) {
	svc, db := setupCartServiceTest(t)

	product := createCartTestProduct(t, db, "battery-10kwh", 3200, true)

	if err := svc.AddItem(1, product.ID, 1); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	if err := svc.AddItem(1, product.ID, 2); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	summary, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(summary.Items) != 1 {
		t.Fatalf("expected single line, got %d", len(summary.Items))
	}
	if summary.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", summary.Items[0].Quantity)
	}
}

func TestCartSetQuantityZeroRemovesLine(t *testing.T) {
	svc, db := setupCartServiceTest(t)

	product := createCartTestProduct(t, db, "mc4-connector", 4.5, true)

	if err := svc.AddItem(7, product.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.SetQuantity(7, product.ID, 0); err != nil {
		t.Fatalf("set quantity zero failed: %v", err)
	}

	summary, err := svc.ListByUser(7)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(summary.Items) != 0 || summary.ItemCount != 0 {
		t.Fatalf("expected empty cart, got %+v", summary)
	}
}

func TestCartRejectInvalidQuantityAndInactiveProduct(t *testing.T) {
	svc, db := setupCartServiceTest(t)

	active := createCartTestProduct(t, db, "cable-6mm", 12, true)
	inactive := createCartTestProduct(t, db, "legacy-panel", 99, false)

	if err := svc.AddItem(1, active.ID, 0); !errors.Is(err, ErrCartQuantityInvalid) {
		t.Fatalf("expected ErrCartQuantityInvalid, got %v", err)
	}
	if err := svc.AddItem(1, inactive.ID, 1); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected ErrProductNotAvailable, got %v", err)
	}
}

func TestCartDropsProductsTakenOffShelf(t *testing.T) {
	svc, db := setupCartServiceTest(t)

	product := createCartTestProduct(t, db, "string-inverter-3kw", 540, true)
	if err := svc.AddItem(1, product.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}

	summary, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(summary.Items) != 0 {
		t.Fatalf("expected inactive product dropped from cart, got %+v", summary.Items)
	}
}
