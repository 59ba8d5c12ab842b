package models

import (
	"time"

	"gorm.io/gorm"
)

// AffiliateCommission 推广佣金记录
// 订单号与订单金额内联存储，每个订单最多产生一条佣金
type AffiliateCommission struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                                                    // 主键
	AffiliateProfileID uint           `gorm:"not null;index;index:idx_affiliate_commission_unique,unique" json:"affiliate_profile_id"` // 推广用户ID
	OrderNumber        string         `gorm:"type:varchar(64);not null;index:idx_affiliate_commission_unique,unique" json:"order_number"` // 订单号
	OrderAmount        Money          `gorm:"type:decimal(20,2);not null;default:0" json:"order_amount"`                               // 订单金额
	RatePercent        Money          `gorm:"type:decimal(10,2);not null;default:0" json:"commission_rate"`                            // 佣金比例（百分比）
	CommissionAmount   Money          `gorm:"type:decimal(20,2);not null;default:0" json:"commission_amount"`                          // 佣金金额
	Status             string         `gorm:"type:varchar(32);not null;index" json:"status"`                                           // 佣金状态
	ConfirmAt          *time.Time     `gorm:"index" json:"confirm_at,omitempty"`                                                       // 待确认到期时间
	ApprovedAt         *time.Time     `json:"approved_at,omitempty"`                                                                   // 审核通过时间
	PaidAt             *time.Time     `json:"paid_at,omitempty"`                                                                       // 结算时间
	PayoutID           *uint          `gorm:"index" json:"payout_id,omitempty"`                                                        // 关联结算单
	Notes              string         `gorm:"type:varchar(255)" json:"notes"`                                                          // 备注
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                                                 // 创建时间
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`                                                                 // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                                                          // 软删除时间

	AffiliateProfile AffiliateProfile `gorm:"foreignKey:AffiliateProfileID" json:"affiliate_profile,omitempty"` // 推广用户
	Payout           *AffiliatePayout `gorm:"foreignKey:PayoutID" json:"payout,omitempty"`                      // 结算单
}

// TableName 指定表名
func (AffiliateCommission) TableName() string {
	return "affiliate_commissions"
}
