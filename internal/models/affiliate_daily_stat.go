package models

import "time"

// AffiliateDailyStat 推广用户按日统计
type AffiliateDailyStat struct {
	ID                 uint      `gorm:"primarykey" json:"id"`                                                       // 主键
	AffiliateProfileID uint      `gorm:"not null;index;uniqueIndex:idx_affiliate_stat_day" json:"affiliate_profile_id"` // 推广用户ID
	StatDate           time.Time `gorm:"type:date;not null;uniqueIndex:idx_affiliate_stat_day" json:"date"`          // 统计日期
	Clicks             int64     `gorm:"not null;default:0" json:"clicks"`                                           // 点击数
	Referrals          int64     `gorm:"not null;default:0" json:"referrals"`                                        // 推荐注册数
	Orders             int64     `gorm:"not null;default:0" json:"orders"`                                           // 成交订单数
	OrderValue         Money     `gorm:"type:decimal(20,2);not null;default:0" json:"order_value"`                   // 成交金额
	CommissionEarned   Money     `gorm:"type:decimal(20,2);not null;default:0" json:"commission_earned"`             // 产生佣金
	CreatedAt          time.Time `json:"created_at"`                                                                 // 创建时间
}

// TableName 指定表名
func (AffiliateDailyStat) TableName() string {
	return "affiliate_daily_stats"
}
