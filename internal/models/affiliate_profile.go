package models

import (
	"time"

	"gorm.io/gorm"
)

// AffiliateProfile 推广用户档案
// 社媒链接统一收敛到 SocialMediaLinks 键值映射（facebook/instagram/twitter/linkedin）
type AffiliateProfile struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                              // 主键
	UserID             uint           `gorm:"not null;uniqueIndex" json:"user_id"`                               // 用户ID
	FirstName          string         `gorm:"not null" json:"first_name"`                                        // 名
	LastName           string         `gorm:"not null" json:"last_name"`                                         // 姓
	Phone              string         `gorm:"type:varchar(32);not null" json:"phone"`                            // 手机号
	WhatsappNumber     string         `gorm:"type:varchar(32);default:''" json:"whatsapp_number"`                // WhatsApp 号码
	DateOfBirth        *time.Time     `json:"date_of_birth"`                                                     // 出生日期
	Gender             string         `gorm:"type:varchar(20);default:''" json:"gender"`                         // 性别
	AddressLine1       string         `gorm:"not null" json:"address_line1"`                                     // 地址行1
	AddressLine2       string         `gorm:"default:''" json:"address_line2"`                                   // 地址行2
	City               string         `gorm:"not null" json:"city"`                                              // 城市
	State              string         `gorm:"not null" json:"state"`                                             // 州/省
	PostalCode         string         `gorm:"type:varchar(20);default:''" json:"postal_code"`                    // 邮编
	Country            string         `gorm:"not null" json:"country"`                                           // 国家
	Occupation         string         `gorm:"default:''" json:"occupation"`                                      // 职业
	CompanyName        string         `gorm:"default:''" json:"company_name"`                                    // 公司名称
	WebsiteURL         string         `gorm:"type:varchar(500);default:''" json:"website_url"`                   // 个人网站
	SocialMediaLinks   JSON           `gorm:"type:json" json:"social_media_links"`                               // 社媒链接映射
	BankName           string         `gorm:"default:''" json:"bank_name"`                                       // 银行名称
	AccountNumber      string         `gorm:"type:varchar(64);default:''" json:"account_number"`                 // 银行账号
	AccountName        string         `gorm:"default:''" json:"account_name"`                                    // 开户名
	PaymentMethod      string         `gorm:"type:varchar(20);not null" json:"payment_method"`                   // 结算方式
	AffiliateCode      string         `gorm:"type:varchar(32);not null;uniqueIndex" json:"affiliate_code"`       // 推广码
	CommissionRate     Money          `gorm:"type:decimal(10,2);not null;default:0" json:"commission_rate"`      // 佣金比例（百分比）
	ReferralSource     string         `gorm:"type:varchar(50);default:''" json:"referral_source"`                // 获知渠道
	Status             string         `gorm:"type:varchar(20);not null;index" json:"status"`                     // 状态
	VerificationStatus string         `gorm:"type:varchar(20);not null;default:'pending'" json:"verification_status"` // 资质审核状态
	TermsAccepted      bool           `gorm:"not null;default:false" json:"terms_accepted"`                      // 是否同意协议
	TermsAcceptedAt    *time.Time     `json:"terms_accepted_at"`                                                 // 协议同意时间
	TotalClicks        int64          `gorm:"not null;default:0" json:"total_clicks"`                            // 累计点击
	TotalReferrals     int64          `gorm:"not null;default:0" json:"total_referrals"`                         // 累计推荐注册
	TotalSales         int64          `gorm:"not null;default:0" json:"total_sales"`                             // 累计成交笔数
	TotalCommission    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_commission_earned"` // 累计佣金
	PaidCommission     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_commission_paid"`   // 已结算佣金
	PendingCommission  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"pending_commission"`      // 待结算佣金
	LastActiveAt       *time.Time     `json:"last_active_at"`                                                    // 最后活跃时间
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                           // 创建时间
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`                                           // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                                    // 软删除时间

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"` // 用户信息
}

// TableName 指定表名
func (AffiliateProfile) TableName() string {
	return "affiliate_profiles"
}
