package models

import (
	"time"

	"gorm.io/gorm"
)

// VendorProfile 商户资料表
type VendorProfile struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                            // 主键
	UserID             uint           `gorm:"not null;uniqueIndex" json:"user_id"`                             // 用户ID
	BusinessName       string         `gorm:"not null" json:"business_name"`                                   // 商户名称
	BusinessAddress    string         `gorm:"default:''" json:"business_address"`                              // 商户地址
	BusinessPhone      string         `gorm:"type:varchar(32);default:''" json:"business_phone"`               // 商户电话
	BusinessEmail      string         `gorm:"default:''" json:"business_email"`                                // 商户邮箱
	LogoURL            string         `gorm:"default:''" json:"logo_url"`                                      // 商户 Logo
	VerificationStatus string         `gorm:"type:varchar(20);not null;default:'pending';index" json:"verification_status"` // 认证状态
	RatingAverage      float64        `gorm:"not null;default:0" json:"rating_average"`                        // 平均评分
	RatingCount        int            `gorm:"not null;default:0" json:"rating_count"`                          // 评分数量
	TotalSales         int            `gorm:"not null;default:0" json:"total_sales"`                           // 累计销量
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                         // 创建时间
	UpdatedAt          time.Time      `json:"updated_at"`                                                      // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                                  // 软删除时间

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"` // 关联用户
}

// TableName 指定表名
func (VendorProfile) TableName() string {
	return "vendor_profiles"
}
