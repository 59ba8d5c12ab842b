package models

import (
	"time"

	"gorm.io/gorm"
)

// AffiliateReferral 推广推荐注册记录
// 同一客户只归属一个推广用户
type AffiliateReferral struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                         // 主键
	AffiliateProfileID uint           `gorm:"not null;index" json:"affiliate_profile_id"`                   // 推广用户ID
	CustomerID         uint           `gorm:"not null;uniqueIndex" json:"customer_id"`                      // 被推荐客户ID
	ReferralCode       string         `gorm:"type:varchar(32);not null;index" json:"referral_code"`         // 归因推广码
	ClickID            *uint          `gorm:"index" json:"click_id,omitempty"`                              // 归因点击
	FirstPurchaseAt    *time.Time     `json:"first_purchase_at,omitempty"`                                  // 首次下单时间
	TotalOrders        int64          `gorm:"not null;default:0" json:"total_orders"`                       // 累计订单数
	TotalSpent         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_spent"`     // 累计消费
	Status             string         `gorm:"type:varchar(20);not null;default:'active'" json:"status"`     // 状态
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt          time.Time      `json:"updated_at"`                                                   // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	AffiliateProfile AffiliateProfile `gorm:"foreignKey:AffiliateProfileID" json:"affiliate_profile,omitempty"` // 推广用户
}

// TableName 指定表名
func (AffiliateReferral) TableName() string {
	return "affiliate_referrals"
}
