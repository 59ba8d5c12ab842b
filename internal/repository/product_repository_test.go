package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/erco-market/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:product_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.VendorProfile{}, &models.Product{}, &models.ProductImage{}); err != nil {
		t.Fatalf("migrate product tables failed: %v", err)
	}
	return NewProductRepository(db), db
}

func createTestCategory(t *testing.T, db *gorm.DB, slug, name string) *models.Category {
	t.Helper()
	category := &models.Category{Slug: slug, Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func createTestProduct(t *testing.T, repo *GormProductRepository, categoryID uint, slug, name string, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		VendorProfileID: 1,
		CategoryID:      categoryID,
		Name:            name,
		Slug:            slug,
		PriceAmount:     models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
		StockQuantity:   10,
		IsActive:        active,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestListOnlyActiveNewestFirst(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	category := createTestCategory(t, db, "solar-panels", "Solar Panels")

	older := createTestProduct(t, repo, category.ID, "panel-a", "Panel A", true)
	if err := db.Model(older).UpdateColumn("created_at", time.Now().Add(-time.Hour)).Error; err != nil {
		t.Fatalf("backdate product failed: %v", err)
	}
	createTestProduct(t, repo, category.ID, "panel-b", "Panel B", true)
	createTestProduct(t, repo, category.ID, "panel-hidden", "Hidden Panel", false)

	products, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 12, OnlyActive: true})
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("total want 2 got %d", total)
	}
	if len(products) != 2 {
		t.Fatalf("len want 2 got %d", len(products))
	}
	if products[0].Slug != "panel-b" || products[1].Slug != "panel-a" {
		t.Fatalf("order want [panel-b panel-a] got [%s %s]", products[0].Slug, products[1].Slug)
	}
}

func TestListFilterByCategorySlug(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	panels := createTestCategory(t, db, "solar-panels", "Solar Panels")
	inverters := createTestCategory(t, db, "inverters", "Inverters")

	createTestProduct(t, repo, panels.ID, "panel-x", "Panel X", true)
	createTestProduct(t, repo, inverters.ID, "inverter-y", "Inverter Y", true)

	products, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 12, OnlyActive: true, CategorySlug: "inverters"})
	if err != nil {
		t.Fatalf("list by category slug failed: %v", err)
	}
	if total != 1 || len(products) != 1 {
		t.Fatalf("want single product, total=%d len=%d", total, len(products))
	}
	if products[0].Slug != "inverter-y" {
		t.Fatalf("slug want inverter-y got %s", products[0].Slug)
	}

	_, total, err = repo.List(ProductListFilter{Page: 1, PageSize: 12, OnlyActive: true, CategorySlug: "no-such-category"})
	if err != nil {
		t.Fatalf("list by unknown slug failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("unknown slug total want 0 got %d", total)
	}
}

func TestListSearchMatchesNameDescriptionBrand(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	category := createTestCategory(t, db, "batteries", "Batteries")

	lithium := createTestProduct(t, repo, category.ID, "battery-lith", "Lithium Home Battery", true)
	lithium.Brand = "VoltCore"
	if err := repo.Update(lithium); err != nil {
		t.Fatalf("update product failed: %v", err)
	}
	createTestProduct(t, repo, category.ID, "battery-gel", "Gel Storage Unit", true)

	products, _, err := repo.List(ProductListFilter{Page: 1, PageSize: 12, OnlyActive: true, Search: "lithium"})
	if err != nil {
		t.Fatalf("search by name failed: %v", err)
	}
	if len(products) != 1 || products[0].Slug != "battery-lith" {
		t.Fatalf("search by name want battery-lith got %v", products)
	}

	products, _, err = repo.List(ProductListFilter{Page: 1, PageSize: 12, OnlyActive: true, Search: "VoltCore"})
	if err != nil {
		t.Fatalf("search by brand failed: %v", err)
	}
	if len(products) != 1 || products[0].Slug != "battery-lith" {
		t.Fatalf("search by brand want battery-lith got %v", products)
	}
}

func TestImagesPreloadedPrimaryFirst(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	category := createTestCategory(t, db, "solar-kits", "Solar Kits")
	product := createTestProduct(t, repo, category.ID, "kit-basic", "Basic Kit", true)

	images := []models.ProductImage{
		{ProductID: product.ID, ImageURL: "https://img.example.com/side.jpg", SortOrder: 1},
		{ProductID: product.ID, ImageURL: "https://img.example.com/front.jpg", SortOrder: 2, IsPrimary: true},
	}
	for i := range images {
		if err := db.Create(&images[i]).Error; err != nil {
			t.Fatalf("create image failed: %v", err)
		}
	}

	got, err := repo.GetBySlug("kit-basic", true)
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if got == nil {
		t.Fatalf("product should exist")
	}
	if len(got.Images) != 2 {
		t.Fatalf("images len want 2 got %d", len(got.Images))
	}
	if !got.Images[0].IsPrimary {
		t.Fatalf("first image should be primary, got %s", got.Images[0].ImageURL)
	}
}

func TestGetBySlugOnlyActiveHidesInactive(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	category := createTestCategory(t, db, "accessories", "Accessories")
	createTestProduct(t, repo, category.ID, "cable-kit", "Cable Kit", false)

	got, err := repo.GetBySlug("cable-kit", true)
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if got != nil {
		t.Fatalf("inactive product should not be visible")
	}

	got, err = repo.GetBySlug("cable-kit", false)
	if err != nil {
		t.Fatalf("get by slug without filter failed: %v", err)
	}
	if got == nil {
		t.Fatalf("product should be visible without active filter")
	}
}

func TestIncrementViewCount(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	category := createTestCategory(t, db, "inverters", "Inverters")
	product := createTestProduct(t, repo, category.ID, "inverter-z", "Inverter Z", true)

	if err := repo.IncrementViewCount(product.ID); err != nil {
		t.Fatalf("increment view count failed: %v", err)
	}
	if err := repo.IncrementViewCount(product.ID); err != nil {
		t.Fatalf("increment view count failed: %v", err)
	}

	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.ViewCount != 2 {
		t.Fatalf("view count want 2 got %d", got.ViewCount)
	}
}
