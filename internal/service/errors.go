package service

import "errors"

// 业务哨兵错误，处理层据此映射为 i18n 文案
var (
	ErrNotFound           = errors.New("记录不存在")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrInvalidEmail       = errors.New("邮箱格式不正确")
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrRoleInvalid        = errors.New("不支持的账号角色")
	ErrWeakPassword       = errors.New("密码不符合要求")
	ErrInvalidPassword    = errors.New("当前密码不正确")
	ErrUserDisabled       = errors.New("账号已被禁用")
	ErrProfileEmpty       = errors.New("资料不能为空")

	ErrProductNotAvailable = errors.New("商品不可用")
	ErrProductPriceInvalid = errors.New("商品价格不合法")
	ErrSlugExists          = errors.New("slug 已存在")
	ErrCategoryInUse       = errors.New("分类下存在商品")
	ErrCartQuantityInvalid = errors.New("购物车数量不合法")

	ErrAffiliateTermsRequired        = errors.New("未同意推广协议")
	ErrAffiliatePaymentMethodInvalid = errors.New("不支持的结算方式")
	ErrAffiliateProfileIncomplete    = errors.New("推广申请信息不完整")
	ErrAffiliateProfileStatusInvalid = errors.New("推广员状态不合法")
	ErrAffiliatePayoutStatusInvalid  = errors.New("结算单状态不合法")
	ErrAffiliatePayoutAmountInvalid  = errors.New("结算金额不合法")
	ErrAffiliatePayoutInsufficient   = errors.New("可结算余额不足")
	ErrAffiliateCodeInvalid          = errors.New("推广码不存在")
	ErrAffiliateDisabled             = errors.New("推广计划未开启")
	ErrAffiliateConfigInvalid        = errors.New("推广配置不合法")

	ErrChatSessionInvalid = errors.New("会话不存在")
	ErrChatMessageEmpty   = errors.New("消息不能为空")

	ErrQueueUnavailable = errors.New("任务队列不可用")
)
