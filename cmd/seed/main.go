package main

import (
	"fmt"
	"log"

	"github.com/erco-market/internal/config"
	"github.com/erco-market/internal/constants"
	"github.com/erco-market/internal/logger"
	"github.com/erco-market/internal/models"
	"github.com/erco-market/internal/service"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Slug: "solar-panels", Name: "Solar Panels", Description: "Monocrystalline and polycrystalline panels for homes and businesses", Icon: "☀️", SortOrder: 500},
		{Slug: "inverters", Name: "Inverters", Description: "On-grid, off-grid and hybrid inverters", Icon: "⚡", SortOrder: 400},
		{Slug: "batteries", Name: "Batteries", Description: "Lithium and gel storage batteries", Icon: "🔋", SortOrder: 300},
		{Slug: "solar-kits", Name: "Complete Kits", Description: "Pre-sized systems with panels, inverter and storage", Icon: "📦", SortOrder: 200},
		{Slug: "accessories", Name: "Accessories", Description: "Mounting, cabling, charge controllers and monitoring", Icon: "🔧", SortOrder: 100},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	// 演示账号：一个商户和一个顾客
	vendorUser := seedUser(stdLog, "vendor@erco.example", "Vendor123456", "SunVolt Energy Ltd", constants.RoleVendor)
	seedUser(stdLog, "customer@erco.example", "Customer123456", "Ama Mensah", constants.RoleCustomer)

	var vendorProfile models.VendorProfile
	if vendorUser != nil {
		if err := models.DB.Where("user_id = ?", vendorUser.ID).First(&vendorProfile).Error; err != nil {
			vendorProfile = models.VendorProfile{
				UserID:             vendorUser.ID,
				BusinessName:       "SunVolt Energy",
				BusinessAddress:    "12 Industrial Road, Accra",
				BusinessPhone:      "+233200000000",
				BusinessEmail:      "sales@sunvolt.example",
				VerificationStatus: "verified",
			}
			if err := models.DB.Create(&vendorProfile).Error; err != nil {
				stdLog.Fatalf("Failed to create vendor profile: %v", err)
			}
			stdLog.Printf("Created vendor profile: %s", vendorProfile.BusinessName)
		}
	}

	// 添加商品
	type seedImage struct {
		URL       string
		Alt       string
		IsPrimary bool
		SortOrder int
	}
	type seedProduct struct {
		Product models.Product
		Images  []seedImage
	}

	products := []seedProduct{
		{
			Product: models.Product{
				Name:          "450W Monocrystalline Solar Panel",
				Slug:          "450w-mono-panel",
				Description:   "High efficiency half-cut cell panel suitable for rooftop and ground-mount installations.",
				PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(189.00)),
				Capacity:      "450W",
				Voltage:       "41.5V",
				WarrantyYears: 25,
				Brand:         "SunVolt",
				StockQuantity: 120,
				SKU:           "SV-PNL-450",
				CategoryID:    categoryIDs["solar-panels"],
				Tags:          models.StringArray{"panel", "mono", "rooftop"},
				IsFeatured:    true,
				IsActive:      true,
				SpecificationsJSON: models.JSON{
					"cell_type":  "Mono PERC half-cut",
					"efficiency": "21.3%",
					"dimensions": "2094 x 1038 x 35 mm",
				},
			},
			Images: []seedImage{
				{URL: "https://images.pexels.com/photos/9875441/pexels-photo-9875441.jpeg", Alt: "450W mono panel front", IsPrimary: true, SortOrder: 10},
				{URL: "https://images.pexels.com/photos/9875420/pexels-photo-9875420.jpeg", Alt: "Panel on rooftop", SortOrder: 5},
			},
		},
		{
			Product: models.Product{
				Name:          "5kW Hybrid Inverter",
				Slug:          "5kw-hybrid-inverter",
				Description:   "Single phase hybrid inverter with built-in MPPT charge controller and grid-tie support.",
				PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(1250.00)),
				Capacity:      "5kW",
				Voltage:       "48V",
				WarrantyYears: 5,
				Brand:         "VoltEdge",
				StockQuantity: 35,
				SKU:           "VE-INV-5K",
				CategoryID:    categoryIDs["inverters"],
				Tags:          models.StringArray{"inverter", "hybrid", "mppt"},
				IsFeatured:    true,
				IsActive:      true,
				SpecificationsJSON: models.JSON{
					"phases":          "single",
					"mppt_trackers":   2,
					"max_pv_input":    "6500W",
					"output_waveform": "pure sine",
				},
			},
			Images: []seedImage{
				{URL: "https://images.pexels.com/photos/9799734/pexels-photo-9799734.jpeg", Alt: "5kW hybrid inverter", IsPrimary: true, SortOrder: 10},
			},
		},
		{
			Product: models.Product{
				Name:          "10kWh LiFePO4 Battery",
				Slug:          "10kwh-lifepo4-battery",
				Description:   "Wall-mounted lithium iron phosphate battery with integrated BMS, 6000+ cycle life.",
				PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(2890.00)),
				CompareAtPrice: func() *models.Money {
					m := models.NewMoneyFromDecimal(decimal.NewFromFloat(3190.00))
					return &m
				}(),
				Capacity:      "10kWh",
				Voltage:       "51.2V",
				WarrantyYears: 10,
				Brand:         "CellCore",
				StockQuantity: 18,
				SKU:           "CC-BAT-10K",
				CategoryID:    categoryIDs["batteries"],
				Tags:          models.StringArray{"battery", "lifepo4", "storage"},
				IsActive:      true,
				SpecificationsJSON: models.JSON{
					"chemistry":   "LiFePO4",
					"cycle_life":  "6000 cycles @ 80% DoD",
					"max_current": "100A",
				},
			},
			Images: []seedImage{
				{URL: "https://images.pexels.com/photos/17798676/pexels-photo-17798676.jpeg", Alt: "Lithium battery unit", IsPrimary: true, SortOrder: 10},
			},
		},
		{
			Product: models.Product{
				Name:          "3kW Off-Grid Starter Kit",
				Slug:          "3kw-offgrid-kit",
				Description:   "Complete off-grid package: 6 panels, 3kW inverter, 5kWh storage and mounting hardware.",
				PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(3450.00)),
				Capacity:      "3kW",
				Voltage:       "24V",
				WarrantyYears: 5,
				Brand:         "SunVolt",
				StockQuantity: 9,
				SKU:           "SV-KIT-3K",
				CategoryID:    categoryIDs["solar-kits"],
				Tags:          models.StringArray{"kit", "off-grid", "starter"},
				IsFeatured:    true,
				IsActive:      true,
			},
			// 无图片：用于验证前台占位图兜底
			Images: nil,
		},
		{
			Product: models.Product{
				Name:          "40A MPPT Charge Controller",
				Slug:          "40a-mppt-controller",
				Description:   "High efficiency MPPT charge controller with LCD display and RS485 monitoring.",
				PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(145.00)),
				Capacity:      "40A",
				Voltage:       "12/24/48V auto",
				WarrantyYears: 2,
				Brand:         "VoltEdge",
				StockQuantity: 64,
				SKU:           "VE-CTL-40",
				CategoryID:    categoryIDs["accessories"],
				Tags:          models.StringArray{"controller", "mppt", "accessory"},
				IsActive:      true,
			},
			Images: []seedImage{
				{URL: "https://images.pexels.com/photos/6970074/pexels-photo-6970074.jpeg", Alt: "MPPT charge controller", IsPrimary: true, SortOrder: 10},
			},
		},
		{
			Product: models.Product{
				Name:          "Legacy 250W Poly Panel",
				Slug:          "legacy-250w-poly-panel",
				Description:   "Discontinued polycrystalline model kept for order history reference.",
				PriceAmount:   models.NewMoneyFromDecimal(decimal.NewFromFloat(95.00)),
				Capacity:      "250W",
				Voltage:       "30.5V",
				WarrantyYears: 10,
				Brand:         "SunVolt",
				StockQuantity: 0,
				SKU:           "SV-PNL-250",
				CategoryID:    categoryIDs["solar-panels"],
				Tags:          models.StringArray{"panel", "poly"},
				IsActive:      false,
			},
		},
	}

	for _, item := range products {
		prod := item.Product
		prod.VendorProfileID = vendorProfile.ID
		if prod.CategoryID == 0 {
			stdLog.Printf("Skip product %s: category_id missing", prod.Slug)
			continue
		}

		var existing models.Product
		if err := models.DB.Where("slug = ?", prod.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", prod.Slug, err)
				continue
			}
			stdLog.Printf("Created product: %s", prod.Slug)
		} else {
			existing.Name = prod.Name
			existing.Description = prod.Description
			existing.SpecificationsJSON = prod.SpecificationsJSON
			existing.PriceAmount = prod.PriceAmount
			existing.CompareAtPrice = prod.CompareAtPrice
			existing.Capacity = prod.Capacity
			existing.Voltage = prod.Voltage
			existing.WarrantyYears = prod.WarrantyYears
			existing.Brand = prod.Brand
			existing.StockQuantity = prod.StockQuantity
			existing.SKU = prod.SKU
			existing.CategoryID = prod.CategoryID
			existing.VendorProfileID = prod.VendorProfileID
			existing.Tags = prod.Tags
			existing.IsFeatured = prod.IsFeatured
			existing.IsActive = prod.IsActive
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update product %s: %v", prod.Slug, err)
				continue
			}
			prod = existing
			stdLog.Printf("Updated product: %s", prod.Slug)
		}

		// 重建商品图片
		if err := models.DB.Where("product_id = ?", prod.ID).Delete(&models.ProductImage{}).Error; err != nil {
			stdLog.Printf("Failed to reset images for %s: %v", prod.Slug, err)
			continue
		}
		for _, img := range item.Images {
			record := models.ProductImage{
				ProductID: prod.ID,
				ImageURL:  img.URL,
				AltText:   img.Alt,
				IsPrimary: img.IsPrimary,
				SortOrder: img.SortOrder,
			}
			if err := models.DB.Create(&record).Error; err != nil {
				stdLog.Printf("Failed to create image for %s: %v", prod.Slug, err)
			}
		}
	}

	// 更新网站配置
	seedSetting(stdLog, constants.SettingKeySiteConfig, map[string]interface{}{
		"site_name": "ERCO Market",
		"currency":  "USD",
		"contact": map[string]string{
			"email":    "support@erco.example",
			"whatsapp": "https://wa.me/233200000000",
		},
	})

	// 推广返利默认配置
	seedSetting(stdLog, constants.SettingKeyAffiliateConfig,
		service.AffiliateSettingToMap(service.AffiliateDefaultSetting()))

	fmt.Println("\n✅ Seed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 5 Categories")
	fmt.Println("- 6 Products (1 without images, 1 inactive)")
	fmt.Println("- 1 Vendor account with profile, 1 customer account")
	fmt.Println("- Site and affiliate configuration")
}

func seedUser(stdLog *log.Logger, email, password, fullName, role string) *models.User {
	var existing models.User
	if err := models.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		stdLog.Printf("User already exists: %s", email)
		return &existing
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Printf("Failed to hash password for %s: %v", email, err)
		return nil
	}
	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         role,
		Status:       constants.UserStatusActive,
	}
	if err := models.DB.Create(&user).Error; err != nil {
		stdLog.Printf("Failed to create user %s: %v", email, err)
		return nil
	}
	stdLog.Printf("Created user: %s (%s)", email, role)
	return &user
}

func seedSetting(stdLog *log.Logger, key string, value map[string]interface{}) {
	var setting models.Setting
	if err := models.DB.Where("key = ?", key).First(&setting).Error; err != nil {
		setting = models.Setting{Key: key, ValueJSON: models.JSON(value)}
		if err := models.DB.Create(&setting).Error; err != nil {
			stdLog.Printf("Failed to create setting %s: %v", key, err)
			return
		}
		stdLog.Printf("Created setting: %s", key)
		return
	}
	setting.ValueJSON = models.JSON(value)
	if err := models.DB.Save(&setting).Error; err != nil {
		stdLog.Printf("Failed to update setting %s: %v", key, err)
		return
	}
	stdLog.Printf("Updated setting: %s", key)
}
