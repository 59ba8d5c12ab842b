package i18n

import (
	"fmt"
	"strings"

	"github.com/erco-market/internal/constants"

	"github.com/gin-gonic/gin"
)

// messages 各语言文案表，键为错误/提示标识
var messages = map[string]map[string]string{
	constants.LocaleEnUS: {
		"error.bad_request":                "Invalid request",
		"error.unauthorized":               "Authentication required",
		"error.forbidden":                  "Permission denied",
		"error.not_found":                  "Resource not found",
		"error.too_many_requests":          "Too many requests, please retry later",
		"error.internal":                   "Internal server error",
		"error.admin_id_invalid":           "Admin identity missing",
		"error.admin_id_type_invalid":      "Admin identity malformed",
		"error.user_id_invalid":            "User identity missing",
		"error.user_id_type_invalid":       "User identity malformed",
		"error.email_invalid":              "Invalid email address",
		"error.email_exists":               "Email already registered",
		"error.role_invalid":               "Unsupported account role",
		"error.password_weak":              "Password does not meet requirements",
		"error.password_min_length":        "Password must be at least %d characters",
		"error.password_require_upper":     "Password must contain an uppercase letter",
		"error.password_require_lower":     "Password must contain a lowercase letter",
		"error.password_require_number":    "Password must contain a digit",
		"error.password_require_special":   "Password must contain a special character",
		"error.jwt_secret_missing":         "Server authentication is not configured",
		"error.token_invalid":              "Invalid or expired token",
		"error.token_revoked":              "Session has been revoked, please sign in again",
		"error.auth_header_missing":        "Missing authorization header",
		"error.auth_header_invalid":        "Malformed authorization header",
		"error.rate_limited":               "Too many attempts, retry in %d seconds",
		"error.rate_limit_unavailable":     "Service is busy, please retry later",
		"error.password_old_invalid":       "Current password is incorrect",
		"error.login_invalid":              "Incorrect email or password",
		"error.login_failed":               "Login failed",
		"error.login_too_many":             "Too many login attempts, please try again later",
		"error.register_failed":            "Registration failed",
		"error.user_not_found":             "User not found",
		"error.user_disabled":              "Account disabled",
		"error.user_fetch_failed":          "Failed to load user",
		"error.user_update_failed":         "Failed to update user",
		"error.save_failed":                "Failed to save",
		"error.config_fetch_failed":        "Failed to load site configuration",
		"error.category_fetch_failed":      "Failed to load categories",
		"error.category_in_use":            "Category still has products",
		"error.slug_exists":                "Slug already exists",
		"error.price_invalid":              "Invalid price",
		"error.status_invalid":             "Invalid status",
		"error.setting_invalid":            "Invalid setting value",
		"error.product_not_found":          "Product not found",
		"error.product_not_available":      "Product is not available",
		"error.product_fetch_failed":       "Failed to load products",
		"error.cart_fetch_failed":          "Failed to load cart",
		"error.cart_update_failed":         "Failed to update cart",
		"error.cart_quantity_invalid":      "Invalid quantity",
		"error.affiliate_terms_required":   "You must accept the affiliate terms",
		"error.affiliate_payment_invalid":  "Unsupported payment method",
		"error.affiliate_profile_invalid":  "Incomplete affiliate application",
		"error.affiliate_code_invalid":     "Unknown affiliate code",
		"error.affiliate_register_failed":  "Failed to submit affiliate application",
		"error.affiliate_fetch_failed":     "Failed to load affiliate data",
		"error.affiliate_disabled":         "Affiliate program is disabled",
		"error.affiliate_payout_too_small": "Amount is below the minimum payout",
		"error.affiliate_payout_invalid":   "Invalid payout request",
		"error.chat_session_invalid":       "Unknown chat session",
		"error.chat_message_empty":         "Message cannot be empty",
		"error.chat_failed":                "Failed to send message",
	},
	constants.LocaleZhCN: {
		"error.bad_request":                "请求参数错误",
		"error.unauthorized":               "请先登录",
		"error.forbidden":                  "没有权限",
		"error.not_found":                  "资源不存在",
		"error.too_many_requests":          "请求过于频繁，请稍后重试",
		"error.internal":                   "服务器内部错误",
		"error.admin_id_invalid":           "缺少管理员身份",
		"error.admin_id_type_invalid":      "管理员身份格式错误",
		"error.user_id_invalid":            "缺少用户身份",
		"error.user_id_type_invalid":       "用户身份格式错误",
		"error.email_invalid":              "邮箱格式不正确",
		"error.email_exists":               "邮箱已被注册",
		"error.role_invalid":               "不支持的账号角色",
		"error.password_weak":              "密码不符合要求",
		"error.password_min_length":        "密码长度至少 %d 位",
		"error.password_require_upper":     "密码需包含大写字母",
		"error.password_require_lower":     "密码需包含小写字母",
		"error.password_require_number":    "密码需包含数字",
		"error.password_require_special":   "密码需包含特殊字符",
		"error.jwt_secret_missing":         "服务端未配置鉴权密钥",
		"error.token_invalid":              "登录凭证无效或已过期",
		"error.token_revoked":              "登录状态已失效，请重新登录",
		"error.auth_header_missing":        "缺少鉴权头",
		"error.auth_header_invalid":        "鉴权头格式错误",
		"error.rate_limited":               "操作过于频繁，请 %d 秒后重试",
		"error.rate_limit_unavailable":     "服务繁忙，请稍后重试",
		"error.password_old_invalid":       "当前密码不正确",
		"error.login_invalid":              "邮箱或密码错误",
		"error.login_failed":               "登录失败",
		"error.login_too_many":             "登录尝试过于频繁，请稍后再试",
		"error.register_failed":            "注册失败",
		"error.user_not_found":             "用户不存在",
		"error.user_disabled":              "账号已被禁用",
		"error.user_fetch_failed":          "获取用户信息失败",
		"error.user_update_failed":         "更新用户信息失败",
		"error.save_failed":                "保存失败",
		"error.config_fetch_failed":        "获取站点配置失败",
		"error.category_fetch_failed":      "获取分类失败",
		"error.category_in_use":            "分类下仍有商品",
		"error.slug_exists":                "slug 已存在",
		"error.price_invalid":              "价格不合法",
		"error.status_invalid":             "状态不合法",
		"error.setting_invalid":            "设置值不合法",
		"error.product_not_found":          "商品不存在",
		"error.product_not_available":      "商品已下架",
		"error.product_fetch_failed":       "获取商品失败",
		"error.cart_fetch_failed":          "获取购物车失败",
		"error.cart_update_failed":         "更新购物车失败",
		"error.cart_quantity_invalid":      "数量不合法",
		"error.affiliate_terms_required":   "请先同意推广协议",
		"error.affiliate_payment_invalid":  "不支持的结算方式",
		"error.affiliate_profile_invalid":  "推广申请信息不完整",
		"error.affiliate_code_invalid":     "推广码不存在",
		"error.affiliate_register_failed":  "提交推广申请失败",
		"error.affiliate_fetch_failed":     "获取推广数据失败",
		"error.affiliate_disabled":         "推广计划未开启",
		"error.affiliate_payout_too_small": "金额低于最低结算额",
		"error.affiliate_payout_invalid":   "结算申请不合法",
		"error.chat_session_invalid":       "会话不存在",
		"error.chat_message_empty":         "消息不能为空",
		"error.chat_failed":                "发送消息失败",
	},
}

// T 按语言取文案，缺失时回退默认语言，再回退键本身
func T(locale, key string) string {
	normalized := NormalizeLocale(locale)
	if table, ok := messages[normalized]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if table, ok := messages[constants.LocaleEnUS]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	return key
}

// Sprintf 取文案并格式化参数
func Sprintf(locale, key string, args ...interface{}) string {
	msg := T(locale, key)
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// NormalizeLocale 归一化语言标识
func NormalizeLocale(locale string) string {
	trimmed := strings.TrimSpace(locale)
	if trimmed == "" {
		return constants.LocaleEnUS
	}
	lower := strings.ToLower(trimmed)
	for _, supported := range constants.SupportedLocales {
		if strings.EqualFold(trimmed, supported) {
			return supported
		}
	}
	// 只匹配语言主标签（如 zh-TW → zh-CN）
	for _, supported := range constants.SupportedLocales {
		prefix := strings.SplitN(strings.ToLower(supported), "-", 2)[0]
		if strings.HasPrefix(lower, prefix) {
			return supported
		}
	}
	return constants.LocaleEnUS
}

// ResolveLocale 从请求解析语言（?lang= 优先，其次 Accept-Language）
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return constants.LocaleEnUS
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return NormalizeLocale(lang)
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		return NormalizeLocale(tag)
	}
	return constants.LocaleEnUS
}
