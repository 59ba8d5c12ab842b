package service

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/erco-market/internal/constants"
	"github.com/erco-market/internal/models"
)

const (
	affiliateCommissionRateMin = 0
	affiliateCommissionRateMax = 100
	affiliateConfirmDaysMin    = 0
	affiliateConfirmDaysMax    = 3650
	affiliateMinPayoutMin      = 0
)

// AffiliateSetting 推广返利配置
type AffiliateSetting struct {
	Enabled         bool     `json:"enabled"`
	CommissionRate  float64  `json:"commission_rate"`
	ConfirmDays     int      `json:"confirm_days"`
	MinPayoutAmount float64  `json:"min_payout_amount"`
	PaymentMethods  []string `json:"payment_methods"`
}

// AffiliateDefaultSetting 默认推广返利配置
func AffiliateDefaultSetting() AffiliateSetting {
	return NormalizeAffiliateSetting(AffiliateSetting{
		Enabled:         true,
		CommissionRate:  5,
		ConfirmDays:     7,
		MinPayoutAmount: 0,
		PaymentMethods:  cloneStringSlice(constants.SupportedAffiliatePaymentMethods),
	})
}

// NormalizeAffiliateSetting 归一化推广返利配置
func NormalizeAffiliateSetting(setting AffiliateSetting) AffiliateSetting {
	setting.CommissionRate = roundAffiliateDecimal(setting.CommissionRate)
	if setting.CommissionRate < affiliateCommissionRateMin {
		setting.CommissionRate = affiliateCommissionRateMin
	}
	if setting.CommissionRate > affiliateCommissionRateMax {
		setting.CommissionRate = affiliateCommissionRateMax
	}

	if setting.ConfirmDays < affiliateConfirmDaysMin {
		setting.ConfirmDays = affiliateConfirmDaysMin
	}
	if setting.ConfirmDays > affiliateConfirmDaysMax {
		setting.ConfirmDays = affiliateConfirmDaysMax
	}

	setting.MinPayoutAmount = roundAffiliateDecimal(setting.MinPayoutAmount)
	if setting.MinPayoutAmount < affiliateMinPayoutMin {
		setting.MinPayoutAmount = affiliateMinPayoutMin
	}

	setting.PaymentMethods = normalizeAffiliatePaymentMethods(setting.PaymentMethods)
	return setting
}

// ValidateAffiliateSetting 校验推广返利配置
func ValidateAffiliateSetting(setting AffiliateSetting) error {
	normalized := NormalizeAffiliateSetting(setting)
	if normalized.CommissionRate < affiliateCommissionRateMin || normalized.CommissionRate > affiliateCommissionRateMax {
		return fmt.Errorf("%w: 返利比例必须在 0-100 之间", ErrAffiliateConfigInvalid)
	}
	if normalized.ConfirmDays < affiliateConfirmDaysMin || normalized.ConfirmDays > affiliateConfirmDaysMax {
		return fmt.Errorf("%w: 佣金确认天数必须在 0-3650 之间", ErrAffiliateConfigInvalid)
	}
	if normalized.MinPayoutAmount < affiliateMinPayoutMin {
		return fmt.Errorf("%w: 最低结算金额不能小于 0", ErrAffiliateConfigInvalid)
	}
	if len(normalized.PaymentMethods) == 0 {
		return fmt.Errorf("%w: 至少启用一种结算方式", ErrAffiliateConfigInvalid)
	}
	return nil
}

// AffiliateSettingToMap 将推广返利配置转换为 settings 存储结构
func AffiliateSettingToMap(setting AffiliateSetting) map[string]interface{} {
	normalized := NormalizeAffiliateSetting(setting)
	return map[string]interface{}{
		"enabled":           normalized.Enabled,
		"commission_rate":   normalized.CommissionRate,
		"confirm_days":      normalized.ConfirmDays,
		"min_payout_amount": normalized.MinPayoutAmount,
		"payment_methods":   cloneStringSlice(normalized.PaymentMethods),
	}
}

func affiliateSettingFromJSON(raw models.JSON, fallback AffiliateSetting) AffiliateSetting {
	result := fallback

	if enabledRaw, ok := raw["enabled"]; ok {
		result.Enabled = parseSettingBool(enabledRaw)
	}
	if rateRaw, ok := raw["commission_rate"]; ok {
		if parsed, err := parseSettingFloat(rateRaw); err == nil {
			result.CommissionRate = parsed
		}
	}
	if confirmDaysRaw, ok := raw["confirm_days"]; ok {
		if parsed, err := parseSettingInt(confirmDaysRaw); err == nil {
			result.ConfirmDays = parsed
		}
	}
	if minPayoutRaw, ok := raw["min_payout_amount"]; ok {
		if parsed, err := parseSettingFloat(minPayoutRaw); err == nil {
			result.MinPayoutAmount = parsed
		}
	}
	if methodsRaw, ok := raw["payment_methods"]; ok {
		result.PaymentMethods = normalizeSettingStringList(methodsRaw)
	}

	return NormalizeAffiliateSetting(result)
}

func normalizeAffiliateSettingMap(value map[string]interface{}) models.JSON {
	setting := affiliateSettingFromJSON(models.JSON(value), AffiliateDefaultSetting())
	return models.JSON(AffiliateSettingToMap(setting))
}

// GetAffiliateSetting 获取推广返利设置（优先 settings，空时回退默认）
func (s *SettingService) GetAffiliateSetting() (AffiliateSetting, error) {
	fallback := AffiliateDefaultSetting()
	if s == nil {
		return fallback, nil
	}

	value, err := s.GetByKey(constants.SettingKeyAffiliateConfig)
	if err != nil {
		return fallback, err
	}
	if value == nil {
		return fallback, nil
	}
	return affiliateSettingFromJSON(value, fallback), nil
}

// UpdateAffiliateSetting 更新推广返利设置
func (s *SettingService) UpdateAffiliateSetting(setting AffiliateSetting) (AffiliateSetting, error) {
	normalized := NormalizeAffiliateSetting(setting)
	if err := ValidateAffiliateSetting(normalized); err != nil {
		return AffiliateDefaultSetting(), err
	}
	if _, err := s.Update(constants.SettingKeyAffiliateConfig, AffiliateSettingToMap(normalized)); err != nil {
		return AffiliateDefaultSetting(), err
	}
	return normalized, nil
}

func parseSettingFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		return v.Float64()
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, fmt.Errorf("empty string")
		}
		return strconv.ParseFloat(trimmed, 64)
	default:
		return 0, fmt.Errorf("unsupported value type")
	}
}

func roundAffiliateDecimal(value float64) float64 {
	return math.Round(value*100) / 100
}

// normalizeAffiliatePaymentMethods 过滤到受支持的结算方式并去重
func normalizeAffiliatePaymentMethods(methods []string) []string {
	if len(methods) == 0 {
		return []string{}
	}

	result := make([]string, 0, len(methods))
	seen := make(map[string]struct{}, len(methods))
	for _, raw := range methods {
		value := strings.ToLower(strings.TrimSpace(raw))
		if value == "" {
			continue
		}
		if !IsSupportedAffiliatePaymentMethod(value) {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	return result
}

// IsSupportedAffiliatePaymentMethod 校验结算方式是否受支持
func IsSupportedAffiliatePaymentMethod(method string) bool {
	normalized := strings.ToLower(strings.TrimSpace(method))
	for _, supported := range constants.SupportedAffiliatePaymentMethods {
		if normalized == supported {
			return true
		}
	}
	return false
}

func normalizeSettingStringList(raw interface{}) []string {
	switch value := raw.(type) {
	case []string:
		return append([]string(nil), value...)
	case []interface{}:
		items := make([]string, 0, len(value))
		for _, item := range value {
			items = append(items, normalizeSettingText(item))
		}
		return items
	default:
		return nil
	}
}
