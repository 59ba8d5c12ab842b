package authz

import (
	"strings"

	"github.com/erco-market/internal/constants"
)

// NavEntry 前台导航项
type NavEntry struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// 各角色在顾客导航基础上追加的入口
var roleNavExtras = map[string][]NavEntry{
	constants.RoleAffiliate: {
		{Label: "Affiliate Dashboard", Path: "/affiliate/dashboard"},
	},
	constants.RoleVendor: {
		{Label: "Vendor Dashboard", Path: "/vendor/dashboard"},
	},
	constants.RoleAdmin: {
		{Label: "Admin Console", Path: "/admin"},
	},
}

// RoleNavigation 按账号角色返回导航入口
// 闭集查表：未识别的角色回落到顾客导航
func RoleNavigation(role string) []NavEntry {
	base := []NavEntry{
		{Label: "Home", Path: "/"},
		{Label: "Products", Path: "/products"},
		{Label: "Cart", Path: "/cart"},
		{Label: "My Account", Path: "/user/me"},
	}
	extras, ok := roleNavExtras[strings.ToLower(strings.TrimSpace(role))]
	if !ok {
		return base
	}
	return append(base, extras...)
}
