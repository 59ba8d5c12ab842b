package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/erco-market/internal/models"
	"github.com/erco-market/internal/repository"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (*ProductService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:product_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.VendorProfile{}, &models.Product{}, &models.ProductImage{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewProductService(repository.NewProductRepository(db), repository.NewCategoryRepository(db)), db
}

func TestListPublicDefaultPageSize(t *testing.T) {
	svc, db := setupProductServiceTest(t)

	for i := 0; i < 15; i++ {
		row := models.Product{
			VendorProfileID: 1,
			Name:            fmt.Sprintf("Panel %02d", i),
			Slug:            fmt.Sprintf("panel-%02d", i),
			PriceAmount:     models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
			IsActive:        true,
		}
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("create product failed: %v", err)
		}
	}

	products, total, err := svc.ListPublic("", "", 1, 0)
	if err != nil {
		t.Fatalf("list public failed: %v", err)
	}
	if total != 15 {
		t.Fatalf("expected total 15, got %d", total)
	}
	if len(products) != DefaultProductPageSize {
		t.Fatalf("expected page of %d, got %d", DefaultProductPageSize, len(products))
	}
}

func TestPrimaryImageURLFallbackChain(t *testing.T) {
	withPrimary := &models.Product{
		Images: []models.ProductImage{
			{ImageURL: "https://cdn.example.com/side.jpg"},
			{ImageURL: "https://cdn.example.com/front.jpg", IsPrimary: true},
		},
	}
	if got := PrimaryImageURL(withPrimary); got != "https://cdn.example.com/front.jpg" {
		t.Fatalf("expected primary image, got %s", got)
	}

	withoutPrimary := &models.Product{
		Images: []models.ProductImage{
			{ImageURL: "https://cdn.example.com/only.jpg"},
		},
	}
	if got := PrimaryImageURL(withoutPrimary); got != "https://cdn.example.com/only.jpg" {
		t.Fatalf("expected first image fallback, got %s", got)
	}

	empty := &models.Product{}
	if got := PrimaryImageURL(empty); got != productImagePlaceholder {
		t.Fatalf("expected placeholder fallback, got %s", got)
	}

	blankPrimary := &models.Product{
		Images: []models.ProductImage{
			{ImageURL: "", IsPrimary: true},
			{ImageURL: "https://cdn.example.com/backup.jpg"},
		},
	}
	if got := PrimaryImageURL(blankPrimary); got != "https://cdn.example.com/backup.jpg" {
		t.Fatalf("expected blank primary skipped, got %s", got)
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc, _ := setupProductServiceTest(t)

	_, err := svc.Create(CreateProductInput{
		VendorProfileID: 1,
		Name:            "Zero Price Panel",
		Slug:            "zero-price-panel",
		PriceAmount:     decimal.Zero,
	})
	if err != ErrProductPriceInvalid {
		t.Fatalf("expected ErrProductPriceInvalid, got %v", err)
	}

	if _, err := svc.Create(CreateProductInput{
		VendorProfileID: 1,
		Name:            "Panel",
		Slug:            "dup-slug",
		PriceAmount:     decimal.NewFromInt(100),
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	_, err = svc.Create(CreateProductInput{
		VendorProfileID: 1,
		Name:            "Panel Again",
		Slug:            "dup-slug",
		PriceAmount:     decimal.NewFromInt(120),
	})
	if err != ErrSlugExists {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
}
