package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                       // 主键
	VendorProfileID    uint           `gorm:"not null;index" json:"vendor_id"`                            // 商户ID
	CategoryID         uint           `gorm:"index" json:"category_id"`                                   // 分类ID
	Name               string         `gorm:"not null" json:"name"`                                       // 商品名称
	Slug               string         `gorm:"uniqueIndex;not null" json:"slug"`                           // 唯一标识
	Description        string         `gorm:"type:text" json:"description"`                               // 商品描述
	SpecificationsJSON JSON           `gorm:"type:json" json:"specifications"`                            // 技术规格
	PriceAmount        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`        // 价格金额
	CompareAtPrice     *Money         `gorm:"type:decimal(20,2)" json:"compare_at_price"`                // 划线价
	Capacity           string         `gorm:"type:varchar(50);default:''" json:"capacity"`                // 容量（如 5kW、10kWh）
	Voltage            string         `gorm:"type:varchar(50);default:''" json:"voltage"`                 // 电压
	WarrantyYears      int            `gorm:"not null;default:0" json:"warranty_years"`                   // 质保年限
	Brand              string         `gorm:"type:varchar(100);default:''" json:"brand"`                  // 品牌
	StockQuantity      int            `gorm:"not null;default:0" json:"stock_quantity"`                   // 库存数量
	SKU                string         `gorm:"type:varchar(100);default:''" json:"sku"`                    // SKU 编码
	Tags               StringArray    `gorm:"type:json" json:"tags"`                                      // 标签数组
	IsFeatured         bool           `gorm:"default:false;index" json:"is_featured"`                     // 是否推荐位
	IsActive           bool           `gorm:"default:true;index" json:"is_active"`                        // 是否上架
	ViewCount          int64          `gorm:"not null;default:0" json:"view_count"`                       // 浏览次数
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt          time.Time      `json:"updated_at"`                                                 // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间

	// 关联
	VendorProfile *VendorProfile `gorm:"foreignKey:VendorProfileID" json:"vendor_profile,omitempty"` // 商户信息
	Category      *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`            // 分类信息
	Images        []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`               // 图片列表
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
