package models

import "time"

// ProductImage 商品图片表
type ProductImage struct {
	ID        uint      `gorm:"primarykey" json:"id"`                  // 主键
	ProductID uint      `gorm:"not null;index" json:"product_id"`      // 商品ID
	ImageURL  string    `gorm:"type:varchar(500);not null" json:"image_url"` // 图片地址
	AltText   string    `gorm:"default:''" json:"alt_text"`            // 替代文本
	SortOrder int       `gorm:"default:0;index" json:"display_order"`  // 排序权重
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`       // 是否主图
	CreatedAt time.Time `json:"created_at"`                            // 创建时间
}

// TableName 指定表名
func (ProductImage) TableName() string {
	return "product_images"
}
