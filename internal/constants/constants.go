package constants

// 用户角色常量
const (
	RoleCustomer  = "customer"
	RoleVendor    = "vendor"
	RoleAdmin     = "admin"
	RoleAffiliate = "affiliate"
)

// 支持的用户角色顺序（闭集，未知角色拒绝）
var SupportedRoles = []string{RoleCustomer, RoleVendor, RoleAdmin, RoleAffiliate}

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 登录日志状态常量
const (
	LoginLogStatusSuccess = "success"
	LoginLogStatusFailed  = "failed"
)

// 登录日志失败原因常量
const (
	LoginLogFailReasonBadRequest         = "bad_request"
	LoginLogFailReasonInvalidEmail       = "invalid_email"
	LoginLogFailReasonInvalidCredentials = "invalid_credentials"
	LoginLogFailReasonUserDisabled       = "user_disabled"
	LoginLogFailReasonInternalError      = "internal_error"
)

// 登录日志来源常量
const (
	LoginLogSourceWeb = "web"
)

// 商户认证状态常量
const (
	VendorVerificationPending   = "pending"
	VendorVerificationApproved  = "approved"
	VendorVerificationRejected  = "rejected"
	VendorVerificationSuspended = "suspended"
)

// 推广用户状态常量
const (
	AffiliateProfileStatusPending   = "pending"
	AffiliateProfileStatusActive    = "active"
	AffiliateProfileStatusSuspended = "suspended"
	AffiliateProfileStatusInactive  = "inactive"
)

// 推广资质审核状态常量
const (
	AffiliateVerificationUnverified = "unverified"
	AffiliateVerificationPending    = "pending"
	AffiliateVerificationVerified   = "verified"
	AffiliateVerificationRejected   = "rejected"
)

// 推广结算方式常量
const (
	AffiliatePaymentMethodBankTransfer = "bank_transfer"
	AffiliatePaymentMethodMobileMoney  = "mobile_money"
	AffiliatePaymentMethodPaypal       = "paypal"
	AffiliatePaymentMethodCrypto       = "crypto"
)

// 支持的推广结算方式（闭集）
var SupportedAffiliatePaymentMethods = []string{
	AffiliatePaymentMethodBankTransfer,
	AffiliatePaymentMethodMobileMoney,
	AffiliatePaymentMethodPaypal,
	AffiliatePaymentMethodCrypto,
}

// 推广佣金状态常量
const (
	AffiliateCommissionStatusPending   = "pending"
	AffiliateCommissionStatusApproved  = "approved"
	AffiliateCommissionStatusPaid      = "paid"
	AffiliateCommissionStatusCancelled = "cancelled"
)

// 推广结算单状态常量
const (
	AffiliatePayoutStatusPending    = "pending"
	AffiliatePayoutStatusProcessing = "processing"
	AffiliatePayoutStatusCompleted  = "completed"
	AffiliatePayoutStatusFailed     = "failed"
	AffiliatePayoutStatusCancelled  = "cancelled"
)

// 推广性别选项常量
const (
	AffiliateGenderMale         = "male"
	AffiliateGenderFemale       = "female"
	AffiliateGenderOther        = "other"
	AffiliateGenderPreferNotSay = "prefer_not_to_say"
)

// 聊天会话角色常量
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// 队列常量
const (
	QueueDefault            = "default"
	TaskChatbotReply        = "chatbot:reply"
	TaskAffiliateConfirm    = "affiliate:confirm_commission"
	TaskAffiliateDailyStats = "affiliate:daily_stats"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "erco"
)

// 设置键常量
const (
	SettingKeySiteConfig      = "site_config"
	SettingKeyAffiliateConfig = "affiliate_config"
	SettingFieldSiteCurrency  = "currency"
)

// 币种常量
const (
	SiteCurrencyDefault = "USD"
)

// 站点语言常量
const (
	LocaleEnUS = "en-US"
	LocaleZhCN = "zh-CN"
)

// 支持的站点语言顺序（含回退顺序）
var SupportedLocales = []string{LocaleEnUS, LocaleZhCN}
