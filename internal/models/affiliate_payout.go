package models

import (
	"time"

	"gorm.io/gorm"
)

// AffiliatePayout 推广佣金结算单
type AffiliatePayout struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                      // 主键
	AffiliateProfileID uint           `gorm:"not null;index" json:"affiliate_profile_id"`                // 推广用户ID
	PayoutNumber       string         `gorm:"type:varchar(64);not null;uniqueIndex" json:"payout_number"` // 结算单号
	Amount             Money          `gorm:"type:decimal(20,2);not null;default:0" json:"amount"`       // 结算金额
	Currency           string         `gorm:"type:varchar(10);not null;default:'USD'" json:"currency"`   // 币种
	PaymentMethod      string         `gorm:"type:varchar(20);not null" json:"payment_method"`           // 结算方式
	Status             string         `gorm:"type:varchar(20);not null;index" json:"status"`             // 状态
	RequestedAt        time.Time      `gorm:"index" json:"requested_at"`                                 // 申请时间
	ProcessedAt        *time.Time     `json:"processed_at,omitempty"`                                    // 处理时间
	ProcessedBy        *uint          `json:"processed_by,omitempty"`                                    // 处理人（管理员ID）
	CompletedAt        *time.Time     `json:"completed_at,omitempty"`                                    // 完成时间
	Notes              string         `gorm:"type:varchar(255)" json:"notes"`                            // 备注
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt          time.Time      `json:"updated_at"`                                                // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间

	AffiliateProfile AffiliateProfile `gorm:"foreignKey:AffiliateProfileID" json:"affiliate_profile,omitempty"` // 推广用户
}

// TableName 指定表名
func (AffiliatePayout) TableName() string {
	return "affiliate_payouts"
}
