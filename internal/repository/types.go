package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   uint
	CategorySlug string
	VendorID     uint
	Search       string
	Brand        string
	OnlyActive   bool
	OnlyFeatured bool
	WithVendor   bool
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page          int
	PageSize      int
	Keyword       string
	Role          string
	Status        string
	CreatedFrom   *time.Time
	CreatedTo     *time.Time
	LastLoginFrom *time.Time
	LastLoginTo   *time.Time
}

// UserLoginLogListFilter 查询用户登录日志列表的过滤条件
type UserLoginLogListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Email       string
	Status      string
	FailReason  string
	ClientIP    string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// AffiliateProfileListFilter 查询推广员列表的过滤条件
type AffiliateProfileListFilter struct {
	Page               int
	PageSize           int
	Keyword            string
	Status             string
	VerificationStatus string
	PaymentMethod      string
}

// AffiliateCommissionListFilter 查询佣金记录列表的过滤条件
type AffiliateCommissionListFilter struct {
	Page        int
	PageSize    int
	ProfileID   uint
	Status      string
	OrderNumber string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// AffiliatePayoutListFilter 查询结算单列表的过滤条件
type AffiliatePayoutListFilter struct {
	Page      int
	PageSize  int
	ProfileID uint
	Status    string
}
