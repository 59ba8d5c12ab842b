package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/erco-market/internal/config"
	"github.com/erco-market/internal/constants"
	"github.com/erco-market/internal/logger"
	"github.com/erco-market/internal/models"
	"github.com/erco-market/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	affiliateCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	affiliateCodeLength   = 8
	affiliateCodeMaxRetry = 8

	// 同一访客同一落地页的点击去重窗口
	affiliateClickDedupeWindow = 10 * time.Minute
	// 注册/下单向前归因的点击窗口
	affiliateAttributionWindow = 30 * 24 * time.Hour

	// 仪表盘默认展示的最近佣金条数
	affiliateRecentCommissionLimit = 10
)

// AffiliateService 推广返利服务
type AffiliateService struct {
	cfg     *config.Config
	repo    repository.AffiliateRepository
	users   repository.UserRepository
	setting *SettingService
}

// NewAffiliateService 创建推广返利服务
func NewAffiliateService(cfg *config.Config, repo repository.AffiliateRepository, users repository.UserRepository, setting *SettingService) *AffiliateService {
	return &AffiliateService{cfg: cfg, repo: repo, users: users, setting: setting}
}

// RegisterAffiliateInput 推广员入驻申请
type RegisterAffiliateInput struct {
	FirstName      string
	LastName       string
	Phone          string
	WhatsappNumber string
	DateOfBirth    *time.Time
	Gender         string
	AddressLine1   string
	AddressLine2   string
	City           string
	State          string
	PostalCode     string
	Country        string
	Occupation     string
	CompanyName    string
	WebsiteURL     string
	Facebook       string
	Instagram      string
	Twitter        string
	LinkedIn       string
	BankName       string
	AccountNumber  string
	AccountName    string
	PaymentMethod  string
	ReferralSource string
	TermsAccepted  bool
}

// RegisterProfile 提交推广员入驻申请
// 同一用户重复提交返回已有档案，不视为错误
func (s *AffiliateService) RegisterProfile(userID uint, input RegisterAffiliateInput) (*models.AffiliateProfile, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}

	existing, err := s.repo.GetProfileByUserID(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	setting, err := s.setting.GetAffiliateSetting()
	if err != nil {
		return nil, err
	}
	if !setting.Enabled {
		return nil, ErrAffiliateDisabled
	}

	if !input.TermsAccepted {
		return nil, ErrAffiliateTermsRequired
	}
	method := strings.ToLower(strings.TrimSpace(input.PaymentMethod))
	if !IsSupportedAffiliatePaymentMethod(method) {
		return nil, ErrAffiliatePaymentMethodInvalid
	}
	if !isMethodAllowedBySetting(setting, method) {
		return nil, ErrAffiliatePaymentMethodInvalid
	}

	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	phone := strings.TrimSpace(input.Phone)
	if firstName == "" || lastName == "" || phone == "" {
		return nil, ErrAffiliateProfileIncomplete
	}
	if strings.TrimSpace(input.AddressLine1) == "" || strings.TrimSpace(input.City) == "" ||
		strings.TrimSpace(input.State) == "" || strings.TrimSpace(input.Country) == "" {
		return nil, ErrAffiliateProfileIncomplete
	}

	now := time.Now()
	profile := &models.AffiliateProfile{
		UserID:           userID,
		FirstName:        firstName,
		LastName:         lastName,
		Phone:            phone,
		WhatsappNumber:   strings.TrimSpace(input.WhatsappNumber),
		DateOfBirth:      input.DateOfBirth,
		Gender:           strings.TrimSpace(input.Gender),
		AddressLine1:     strings.TrimSpace(input.AddressLine1),
		AddressLine2:     strings.TrimSpace(input.AddressLine2),
		City:             strings.TrimSpace(input.City),
		State:            strings.TrimSpace(input.State),
		PostalCode:       strings.TrimSpace(input.PostalCode),
		Country:          strings.TrimSpace(input.Country),
		Occupation:       strings.TrimSpace(input.Occupation),
		CompanyName:      strings.TrimSpace(input.CompanyName),
		WebsiteURL:       strings.TrimSpace(input.WebsiteURL),
		SocialMediaLinks: consolidateSocialLinks(input),
		BankName:         strings.TrimSpace(input.BankName),
		AccountNumber:    strings.TrimSpace(input.AccountNumber),
		AccountName:      strings.TrimSpace(input.AccountName),
		PaymentMethod:    method,
		CommissionRate:   models.NewMoneyFromDecimal(decimal.NewFromFloat(setting.CommissionRate)),
		ReferralSource:   strings.TrimSpace(input.ReferralSource),
		Status:           constants.AffiliateProfileStatusPending,
		TermsAccepted:    true,
		TermsAcceptedAt:  &now,
	}

	for attempt := 0; attempt < affiliateCodeMaxRetry; attempt++ {
		code, genErr := generateAffiliateCode()
		if genErr != nil {
			return nil, genErr
		}
		profile.AffiliateCode = code
		createErr := s.repo.CreateProfile(profile)
		if createErr == nil {
			logger.Infow("推广员入驻成功", "user_id", userID, "affiliate_code", code)
			return profile, nil
		}
		if isUniqueViolation(createErr) {
			// 推广码撞库时换码重试；用户级唯一冲突说明并发注册，读回已有档案
			if again, getErr := s.repo.GetProfileByUserID(userID); getErr == nil && again != nil {
				return again, nil
			}
			continue
		}
		return nil, createErr
	}
	return nil, fmt.Errorf("推广码生成失败：Service.Affiliate.RegisterProfile")
}

// AffiliateDashboard 推广员仪表盘
type AffiliateDashboard struct {
	Registered        bool                         `json:"registered"`
	Profile           *models.AffiliateProfile     `json:"profile,omitempty"`
	ReferralLink      string                       `json:"referral_link,omitempty"`
	ConversionRate    string                       `json:"conversion_rate,omitempty"`
	StatusBadge       string                       `json:"status_badge,omitempty"`
	RecentCommissions []models.AffiliateCommission `json:"recent_commissions,omitempty"`
}

// 状态到徽章样式的映射，未知状态落到 default
var affiliateStatusBadges = map[string]string{
	constants.AffiliateProfileStatusActive:    "success",
	constants.AffiliateProfileStatusPending:   "warning",
	constants.AffiliateProfileStatusSuspended: "error",
	constants.AffiliateProfileStatusInactive:  "info",
}

var affiliateCommissionBadges = map[string]string{
	constants.AffiliateCommissionStatusPaid:      "success",
	constants.AffiliateCommissionStatusApproved:  "info",
	constants.AffiliateCommissionStatusPending:   "warning",
	constants.AffiliateCommissionStatusCancelled: "error",
}

// AffiliateStatusBadge 档案状态徽章样式
func AffiliateStatusBadge(status string) string {
	if badge, ok := affiliateStatusBadges[status]; ok {
		return badge
	}
	return "default"
}

// CommissionStatusBadge 佣金状态徽章样式
func CommissionStatusBadge(status string) string {
	if badge, ok := affiliateCommissionBadges[status]; ok {
		return badge
	}
	return "default"
}

// GetDashboard 获取推广员仪表盘
// 未入驻返回 Registered=false，引导前往申请页，不返回错误
func (s *AffiliateService) GetDashboard(userID uint) (*AffiliateDashboard, error) {
	profile, err := s.repo.GetProfileByUserID(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return &AffiliateDashboard{Registered: false}, nil
	}

	commissions, err := s.repo.ListRecentCommissionsByProfile(profile.ID, affiliateRecentCommissionLimit)
	if err != nil {
		return nil, err
	}

	return &AffiliateDashboard{
		Registered:        true,
		Profile:           profile,
		ReferralLink:      s.BuildReferralLink(profile.AffiliateCode),
		ConversionRate:    formatConversionRate(profile.TotalSales, profile.TotalClicks),
		StatusBadge:       AffiliateStatusBadge(profile.Status),
		RecentCommissions: commissions,
	}, nil
}

// BuildReferralLink 拼接推广链接
func (s *AffiliateService) BuildReferralLink(code string) string {
	base := strings.TrimRight(s.cfg.Site.BaseURL, "/")
	return base + "?ref=" + code
}

// formatConversionRate 转化率 = 成交笔数 / 点击数 × 100，零点击直接展示 0%
func formatConversionRate(sales, clicks int64) string {
	if clicks <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(sales)/float64(clicks)*100)
}

// TrackClickInput 推广点击上报
type TrackClickInput struct {
	Code        string
	VisitorKey  string
	LandingPath string
	Referrer    string
	ClientIP    string
	UserAgent   string
}

// TrackClick 记录推广链接点击，窗口期内同访客同页面去重
func (s *AffiliateService) TrackClick(input TrackClickInput) error {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return ErrAffiliateCodeInvalid
	}
	profile, err := s.repo.GetProfileByCode(code)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrAffiliateCodeInvalid
	}
	if profile.Status != constants.AffiliateProfileStatusActive {
		return nil
	}

	if input.VisitorKey != "" {
		since := time.Now().Add(-affiliateClickDedupeWindow)
		dup, dupErr := s.repo.HasRecentClick(profile.ID, input.VisitorKey, input.LandingPath, since)
		if dupErr != nil {
			return dupErr
		}
		if dup {
			return nil
		}
	}

	click := &models.AffiliateClick{
		AffiliateProfileID: profile.ID,
		VisitorKey:         input.VisitorKey,
		LandingPath:        input.LandingPath,
		Referrer:           input.Referrer,
		ClientIP:           input.ClientIP,
		UserAgent:          input.UserAgent,
	}
	if err := s.repo.CreateClick(click); err != nil {
		return err
	}

	now := time.Now()
	return s.repo.UpdateProfileColumns(profile.ID, map[string]interface{}{
		"total_clicks":   gorm.Expr("total_clicks + 1"),
		"last_active_at": now,
		"updated_at":     now,
	})
}

// BindReferral 将新注册客户归属到推广员
// 同一客户只归属一次，重复绑定直接返回已有记录
func (s *AffiliateService) BindReferral(customerID uint, code string) (*models.AffiliateReferral, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if customerID == 0 || code == "" {
		return nil, ErrAffiliateCodeInvalid
	}

	existing, err := s.repo.GetReferralByCustomerID(customerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	profile, err := s.repo.GetProfileByCode(code)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrAffiliateCodeInvalid
	}
	if profile.Status != constants.AffiliateProfileStatusActive {
		return nil, ErrAffiliateCodeInvalid
	}

	referral := &models.AffiliateReferral{
		AffiliateProfileID: profile.ID,
		CustomerID:         customerID,
		ReferralCode:       code,
		Status:             "active",
	}
	if err := s.repo.CreateReferral(referral); err != nil {
		if isUniqueViolation(err) {
			return s.repo.GetReferralByCustomerID(customerID)
		}
		return nil, err
	}

	now := time.Now()
	if err := s.repo.UpdateProfileColumns(profile.ID, map[string]interface{}{
		"total_referrals": gorm.Expr("total_referrals + 1"),
		"last_active_at":  now,
		"updated_at":      now,
	}); err != nil {
		logger.Warnw("推荐计数更新失败", "profile_id", profile.ID, "error", err)
	}
	return referral, nil
}

// RecordOrderPaid 订单支付后计提佣金
// 以 (推广员, 订单号) 幂等，重复调用返回首次生成的佣金记录
func (s *AffiliateService) RecordOrderPaid(customerID uint, orderNumber string, orderAmount decimal.Decimal, paidAt time.Time) (*models.AffiliateCommission, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if customerID == 0 || orderNumber == "" {
		return nil, nil
	}
	if orderAmount.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}

	referral, err := s.repo.GetReferralByCustomerID(customerID)
	if err != nil {
		return nil, err
	}
	if referral == nil {
		return nil, nil
	}

	profile, err := s.repo.GetProfileByID(referral.AffiliateProfileID)
	if err != nil {
		return nil, err
	}
	if profile == nil || profile.Status != constants.AffiliateProfileStatusActive {
		return nil, nil
	}

	existing, err := s.repo.GetCommissionByOrderNumber(profile.ID, orderNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	setting, err := s.setting.GetAffiliateSetting()
	if err != nil {
		return nil, err
	}

	rate := profile.CommissionRate.Decimal
	if rate.LessThanOrEqual(decimal.Zero) {
		rate = decimal.NewFromFloat(setting.CommissionRate)
	}
	amount := orderAmount.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)

	commission := &models.AffiliateCommission{
		AffiliateProfileID: profile.ID,
		OrderNumber:        orderNumber,
		OrderAmount:        models.NewMoneyFromDecimal(orderAmount.Round(2)),
		RatePercent:        models.NewMoneyFromDecimal(rate),
		CommissionAmount:   models.NewMoneyFromDecimal(amount),
	}
	if setting.ConfirmDays <= 0 {
		now := time.Now()
		commission.Status = constants.AffiliateCommissionStatusApproved
		commission.ApprovedAt = &now
	} else {
		confirmAt := paidAt.Add(time.Duration(setting.ConfirmDays) * 24 * time.Hour)
		commission.Status = constants.AffiliateCommissionStatusPending
		commission.ConfirmAt = &confirmAt
	}

	if err := s.repo.CreateCommission(commission); err != nil {
		if isUniqueViolation(err) {
			return s.repo.GetCommissionByOrderNumber(profile.ID, orderNumber)
		}
		return nil, err
	}

	now := time.Now()
	if err := s.repo.UpdateProfileColumns(profile.ID, map[string]interface{}{
		"total_sales":             gorm.Expr("total_sales + 1"),
		"total_commission_earned": gorm.Expr("total_commission_earned + ?", amount),
		"pending_commission":      gorm.Expr("pending_commission + ?", amount),
		"last_active_at":          now,
		"updated_at":              now,
	}); err != nil {
		logger.Warnw("佣金计提后档案统计更新失败", "profile_id", profile.ID, "error", err)
	}

	// 订单转化回写：首单时间、累计消费，并把窗口内最近一次点击标记为已转化
	referral.TotalOrders++
	referral.TotalSpent = models.NewMoneyFromDecimal(referral.TotalSpent.Decimal.Add(orderAmount).Round(2))
	if referral.FirstPurchaseAt == nil {
		referral.FirstPurchaseAt = &paidAt
	}
	if err := s.repo.UpdateReferral(referral); err != nil {
		logger.Warnw("推荐记录更新失败", "referral_id", referral.ID, "error", err)
	}
	if _, err := s.repo.MarkLatestClickConverted(profile.ID, "", time.Now().Add(-affiliateAttributionWindow)); err != nil {
		logger.Warnw("点击转化标记失败", "profile_id", profile.ID, "error", err)
	}

	logger.Infow("推广佣金已计提",
		"profile_id", profile.ID,
		"order_number", orderNumber,
		"commission", amount.String(),
		"status", commission.Status)
	return commission, nil
}

// ConfirmDueCommissions 把确认期已满的待确认佣金批量转为已通过
func (s *AffiliateService) ConfirmDueCommissions() (int64, error) {
	now := time.Now()
	affected, err := s.repo.MarkDueCommissionsApproved(now, now)
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		logger.Infow("到期佣金已确认", "count", affected)
	}
	return affected, nil
}

// ApplyPayout 推广员申请结算
// 在事务内锁定可结算佣金并绑定结算单，避免并发重复结算
func (s *AffiliateService) ApplyPayout(userID uint) (*models.AffiliatePayout, error) {
	profile, err := s.repo.GetProfileByUserID(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	if profile.Status != constants.AffiliateProfileStatusActive {
		return nil, ErrAffiliateProfileStatusInvalid
	}

	setting, err := s.setting.GetAffiliateSetting()
	if err != nil {
		return nil, err
	}
	minPayout := decimal.NewFromFloat(setting.MinPayoutAmount)

	var payout *models.AffiliatePayout
	err = s.repo.Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		commissions, txErr := txRepo.ListApprovedCommissionsForUpdate(profile.ID)
		if txErr != nil {
			return txErr
		}
		if len(commissions) == 0 {
			return ErrAffiliatePayoutInsufficient
		}

		total := decimal.Zero
		ids := make([]uint, 0, len(commissions))
		for _, c := range commissions {
			total = total.Add(c.CommissionAmount.Decimal)
			ids = append(ids, c.ID)
		}
		total = total.Round(2)
		if total.LessThan(minPayout) {
			return ErrAffiliatePayoutInsufficient
		}

		payout = &models.AffiliatePayout{
			AffiliateProfileID: profile.ID,
			PayoutNumber:       generatePayoutNumber(profile.ID),
			Amount:             models.NewMoneyFromDecimal(total),
			Currency:           s.cfg.Site.Currency,
			PaymentMethod:      profile.PaymentMethod,
			Status:             constants.AffiliatePayoutStatusPending,
			RequestedAt:        time.Now(),
		}
		if txErr = txRepo.CreatePayout(payout); txErr != nil {
			return txErr
		}
		return txRepo.BatchUpdateCommissions(ids, map[string]interface{}{
			"payout_id":  payout.ID,
			"updated_at": time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("结算申请已提交", "profile_id", profile.ID, "payout_number", payout.PayoutNumber, "amount", payout.Amount.String())
	return payout, nil
}

// ReviewPayout 管理员处理结算单
func (s *AffiliateService) ReviewPayout(payoutID, adminID uint, approve bool, notes string) (*models.AffiliatePayout, error) {
	var payout *models.AffiliatePayout
	err := s.repo.Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		locked, txErr := txRepo.GetPayoutByIDForUpdate(payoutID)
		if txErr != nil {
			return txErr
		}
		if locked == nil {
			return ErrNotFound
		}
		if locked.Status != constants.AffiliatePayoutStatusPending && locked.Status != constants.AffiliatePayoutStatusProcessing {
			return ErrAffiliatePayoutStatusInvalid
		}

		now := time.Now()
		locked.ProcessedAt = &now
		locked.ProcessedBy = &adminID
		locked.Notes = strings.TrimSpace(notes)

		if approve {
			locked.Status = constants.AffiliatePayoutStatusCompleted
			locked.CompletedAt = &now
		} else {
			locked.Status = constants.AffiliatePayoutStatusCancelled
		}
		if txErr = txRepo.UpdatePayout(locked); txErr != nil {
			return txErr
		}

		commissions, txErr := txRepo.ListCommissionsByPayoutIDForUpdate(locked.ID)
		if txErr != nil {
			return txErr
		}
		ids := make([]uint, 0, len(commissions))
		amount := decimal.Zero
		for _, c := range commissions {
			ids = append(ids, c.ID)
			amount = amount.Add(c.CommissionAmount.Decimal)
		}

		if approve {
			if len(ids) > 0 {
				if txErr = txRepo.BatchUpdateCommissions(ids, map[string]interface{}{
					"status":     constants.AffiliateCommissionStatusPaid,
					"paid_at":    now,
					"updated_at": now,
				}); txErr != nil {
					return txErr
				}
			}
			if txErr = txRepo.UpdateProfileColumns(locked.AffiliateProfileID, map[string]interface{}{
				"total_commission_paid": gorm.Expr("total_commission_paid + ?", amount.Round(2)),
				"pending_commission":    gorm.Expr("pending_commission - ?", amount.Round(2)),
				"updated_at":            now,
			}); txErr != nil {
				return txErr
			}
		} else if len(ids) > 0 {
			// 驳回时解除佣金与结算单的绑定，佣金回到可结算状态
			if txErr = txRepo.BatchUpdateCommissions(ids, map[string]interface{}{
				"payout_id":  nil,
				"updated_at": now,
			}); txErr != nil {
				return txErr
			}
		}

		payout = locked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payout, nil
}

// RollupDailyStats 按日归集推广数据
func (s *AffiliateService) RollupDailyStats(day time.Time) error {
	statDate := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	from := statDate
	to := statDate.Add(24 * time.Hour)

	ids, err := s.repo.ListActiveProfileIDs()
	if err != nil {
		return err
	}
	for _, id := range ids {
		stat, buildErr := s.buildDailyStat(id, statDate, from, to)
		if buildErr != nil {
			logger.Warnw("日统计构建失败", "profile_id", id, "error", buildErr)
			continue
		}
		if upsertErr := s.repo.UpsertDailyStat(stat); upsertErr != nil {
			logger.Warnw("日统计写入失败", "profile_id", id, "error", upsertErr)
		}
	}
	return nil
}

func (s *AffiliateService) buildDailyStat(profileID uint, statDate, from, to time.Time) (*models.AffiliateDailyStat, error) {
	commissions, _, err := s.repo.ListCommissions(repository.AffiliateCommissionListFilter{
		ProfileID:   profileID,
		CreatedFrom: &from,
		CreatedTo:   &to,
	})
	if err != nil {
		return nil, err
	}

	stat := &models.AffiliateDailyStat{
		AffiliateProfileID: profileID,
		StatDate:           statDate,
	}
	orderValue := decimal.Zero
	earned := decimal.Zero
	for _, c := range commissions {
		if c.Status == constants.AffiliateCommissionStatusCancelled {
			continue
		}
		stat.Orders++
		orderValue = orderValue.Add(c.OrderAmount.Decimal)
		earned = earned.Add(c.CommissionAmount.Decimal)
	}
	stat.OrderValue = models.NewMoneyFromDecimal(orderValue.Round(2))
	stat.CommissionEarned = models.NewMoneyFromDecimal(earned.Round(2))
	return stat, nil
}

// GetProfileByUserID 读取当前用户的推广档案
func (s *AffiliateService) GetProfileByUserID(userID uint) (*models.AffiliateProfile, error) {
	return s.repo.GetProfileByUserID(userID)
}

// ListProfiles 管理端分页查询推广档案
func (s *AffiliateService) ListProfiles(filter repository.AffiliateProfileListFilter) ([]models.AffiliateProfile, int64, error) {
	return s.repo.ListProfiles(filter)
}

// UpdateProfileStatus 管理端调整推广员状态
func (s *AffiliateService) UpdateProfileStatus(id uint, status string) error {
	switch status {
	case constants.AffiliateProfileStatusPending,
		constants.AffiliateProfileStatusActive,
		constants.AffiliateProfileStatusSuspended,
		constants.AffiliateProfileStatusInactive:
	default:
		return ErrAffiliateProfileStatusInvalid
	}
	profile, err := s.repo.GetProfileByID(id)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrNotFound
	}
	return s.repo.UpdateProfileStatus(id, status, time.Now())
}

// ListCommissions 管理端分页查询佣金
func (s *AffiliateService) ListCommissions(filter repository.AffiliateCommissionListFilter) ([]models.AffiliateCommission, int64, error) {
	return s.repo.ListCommissions(filter)
}

// ListPayouts 管理端分页查询结算单
func (s *AffiliateService) ListPayouts(filter repository.AffiliatePayoutListFilter) ([]models.AffiliatePayout, int64, error) {
	return s.repo.ListPayouts(filter)
}

// consolidateSocialLinks 社媒链接统一收敛为键值映射
func consolidateSocialLinks(input RegisterAffiliateInput) models.JSON {
	return models.JSON{
		"facebook":  strings.TrimSpace(input.Facebook),
		"instagram": strings.TrimSpace(input.Instagram),
		"twitter":   strings.TrimSpace(input.Twitter),
		"linkedin":  strings.TrimSpace(input.LinkedIn),
	}
}

func isMethodAllowedBySetting(setting AffiliateSetting, method string) bool {
	if len(setting.PaymentMethods) == 0 {
		return true
	}
	for _, m := range setting.PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// generateAffiliateCode 生成推广码，去掉易混淆字符
func generateAffiliateCode() (string, error) {
	buf := make([]byte, affiliateCodeLength)
	max := big.NewInt(int64(len(affiliateCodeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = affiliateCodeAlphabet[n.Int64()]
	}
	return string(buf), nil
}

func generatePayoutNumber(profileID uint) string {
	return fmt.Sprintf("AP%s%04d", time.Now().Format("20060102150405"), profileID%10000)
}

// isUniqueViolation 判断是否唯一约束冲突，兼容 sqlite 与 postgres 的报错文案
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
