package service

import (
	"strings"

	"github.com/erco-market/internal/models"
	"github.com/erco-market/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	// DefaultProductPageSize 商品列表默认每页数量
	DefaultProductPageSize = 12

	// productImagePlaceholder 无图商品的兜底图
	productImagePlaceholder = "https://images.pexels.com/photos/356036/pexels-photo-356036.jpeg"
)

// ProductService 商品业务服务
type ProductService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{repo: repo, categoryRepo: categoryRepo}
}

// ListPublic 获取公开商品列表，仅含上架商品，按上架时间倒序
func (s *ProductService) ListPublic(categorySlug, search string, page, pageSize int) ([]models.Product, int64, error) {
	if pageSize <= 0 {
		pageSize = DefaultProductPageSize
	}
	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategorySlug: strings.TrimSpace(categorySlug),
		Search:       strings.TrimSpace(search),
		OnlyActive:   true,
	}
	return s.repo.List(filter)
}

// GetPublicBySlug 获取公开商品详情并累加浏览量
func (s *ProductService) GetPublicBySlug(slug string) (*models.Product, error) {
	product, err := s.repo.GetBySlug(slug, true)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if err := s.repo.IncrementViewCount(product.ID); err != nil {
		return nil, err
	}
	product.ViewCount++
	return product, nil
}

// ListCategories 获取全部分类
func (s *ProductService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.List()
}

// PrimaryImageURL 解析商品主图：主图 → 首图 → 占位图
func PrimaryImageURL(product *models.Product) string {
	if product == nil {
		return productImagePlaceholder
	}
	for _, image := range product.Images {
		if image.IsPrimary && strings.TrimSpace(image.ImageURL) != "" {
			return image.ImageURL
		}
	}
	for _, image := range product.Images {
		if strings.TrimSpace(image.ImageURL) != "" {
			return image.ImageURL
		}
	}
	return productImagePlaceholder
}

// CreateProductInput 创建/更新商品输入
type CreateProductInput struct {
	VendorProfileID uint
	CategoryID      uint
	Name            string
	Slug            string
	Description     string
	Specifications  map[string]interface{}
	PriceAmount     decimal.Decimal
	CompareAtPrice  *decimal.Decimal
	Capacity        string
	Voltage         string
	WarrantyYears   int
	Brand           string
	StockQuantity   int
	SKU             string
	Tags            []string
	IsFeatured      bool
	IsActive        *bool
	Images          []ProductImageInput
}

// ProductImageInput 商品图片输入
type ProductImageInput struct {
	ImageURL  string
	AltText   string
	SortOrder int
	IsPrimary bool
}

// ListAdmin 获取后台商品列表
func (s *ProductService) ListAdmin(categorySlug, search string, page, pageSize int) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategorySlug: strings.TrimSpace(categorySlug),
		Search:       strings.TrimSpace(search),
		OnlyActive:   false,
		WithVendor:   true,
	}
	return s.repo.List(filter)
}

// GetAdminByID 获取后台商品详情
func (s *ProductService) GetAdminByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(input CreateProductInput) (*models.Product, error) {
	priceAmount := input.PriceAmount.Round(2)
	if priceAmount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrProductPriceInvalid
	}
	count, err := s.repo.CountBySlug(input.Slug, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	product := models.Product{
		VendorProfileID:    input.VendorProfileID,
		CategoryID:         input.CategoryID,
		Name:               strings.TrimSpace(input.Name),
		Slug:               strings.TrimSpace(input.Slug),
		Description:        input.Description,
		SpecificationsJSON: models.JSON(input.Specifications),
		PriceAmount:        models.NewMoneyFromDecimal(priceAmount),
		Capacity:           strings.TrimSpace(input.Capacity),
		Voltage:            strings.TrimSpace(input.Voltage),
		WarrantyYears:      input.WarrantyYears,
		Brand:              strings.TrimSpace(input.Brand),
		StockQuantity:      input.StockQuantity,
		SKU:                strings.TrimSpace(input.SKU),
		Tags:               models.StringArray(input.Tags),
		IsFeatured:         input.IsFeatured,
		IsActive:           isActive,
	}
	if input.CompareAtPrice != nil {
		compare := models.NewMoneyFromDecimal(input.CompareAtPrice.Round(2))
		product.CompareAtPrice = &compare
	}
	for _, image := range input.Images {
		url := strings.TrimSpace(image.ImageURL)
		if url == "" {
			continue
		}
		product.Images = append(product.Images, models.ProductImage{
			ImageURL:  url,
			AltText:   strings.TrimSpace(image.AltText),
			SortOrder: image.SortOrder,
			IsPrimary: image.IsPrimary,
		})
	}

	if err := s.repo.Create(&product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update 更新商品
func (s *ProductService) Update(id uint, input CreateProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	priceAmount := input.PriceAmount.Round(2)
	if priceAmount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrProductPriceInvalid
	}
	if slug := strings.TrimSpace(input.Slug); slug != "" && slug != product.Slug {
		count, err := s.repo.CountBySlug(slug, &id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSlugExists
		}
		product.Slug = slug
	}

	product.CategoryID = input.CategoryID
	product.Name = strings.TrimSpace(input.Name)
	product.Description = input.Description
	product.SpecificationsJSON = models.JSON(input.Specifications)
	product.PriceAmount = models.NewMoneyFromDecimal(priceAmount)
	product.Capacity = strings.TrimSpace(input.Capacity)
	product.Voltage = strings.TrimSpace(input.Voltage)
	product.WarrantyYears = input.WarrantyYears
	product.Brand = strings.TrimSpace(input.Brand)
	product.StockQuantity = input.StockQuantity
	product.SKU = strings.TrimSpace(input.SKU)
	product.Tags = models.StringArray(input.Tags)
	product.IsFeatured = input.IsFeatured
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	product.CompareAtPrice = nil
	if input.CompareAtPrice != nil {
		compare := models.NewMoneyFromDecimal(input.CompareAtPrice.Round(2))
		product.CompareAtPrice = &compare
	}

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}
