package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/erco-market/internal/constants"
	"github.com/erco-market/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AffiliateRepository 推广返利数据访问接口
type AffiliateRepository interface {
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) AffiliateRepository

	GetProfileByID(id uint) (*models.AffiliateProfile, error)
	GetProfileByIDForUpdate(id uint) (*models.AffiliateProfile, error)
	GetProfileByUserID(userID uint) (*models.AffiliateProfile, error)
	GetProfileByCode(code string) (*models.AffiliateProfile, error)
	CreateProfile(profile *models.AffiliateProfile) error
	UpdateProfile(profile *models.AffiliateProfile) error
	UpdateProfileStatus(id uint, status string, updatedAt time.Time) error
	BatchUpdateProfileStatus(ids []uint, status string, updatedAt time.Time) (int64, error)
	UpdateProfileColumns(id uint, updates map[string]interface{}) error
	ListProfiles(filter AffiliateProfileListFilter) ([]models.AffiliateProfile, int64, error)
	CountProfilesByCode(code string) (int64, error)

	CreateClick(click *models.AffiliateClick) error
	HasRecentClick(profileID uint, visitorKey, landingPath string, since time.Time) (bool, error)
	CountClicksByProfile(profileID uint) (int64, error)
	MarkLatestClickConverted(profileID uint, visitorKey string, since time.Time) (int64, error)

	GetReferralByCustomerID(customerID uint) (*models.AffiliateReferral, error)
	CreateReferral(referral *models.AffiliateReferral) error
	UpdateReferral(referral *models.AffiliateReferral) error

	GetCommissionByOrderNumber(profileID uint, orderNumber string) (*models.AffiliateCommission, error)
	CreateCommission(commission *models.AffiliateCommission) error
	UpdateCommission(commission *models.AffiliateCommission) error
	ListRecentCommissionsByProfile(profileID uint, limit int) ([]models.AffiliateCommission, error)
	ListCommissions(filter AffiliateCommissionListFilter) ([]models.AffiliateCommission, int64, error)
	ListCommissionsByPayoutIDForUpdate(payoutID uint) ([]models.AffiliateCommission, error)
	ListApprovedCommissionsForUpdate(profileID uint) ([]models.AffiliateCommission, error)
	MarkDueCommissionsApproved(before, now time.Time) (int64, error)
	BatchUpdateCommissions(ids []uint, updates map[string]interface{}) error
	SumCommissionByProfile(profileID uint, statuses []string, unassignedOnly bool) (decimal.Decimal, error)

	CreatePayout(payout *models.AffiliatePayout) error
	UpdatePayout(payout *models.AffiliatePayout) error
	GetPayoutByID(id uint) (*models.AffiliatePayout, error)
	GetPayoutByIDForUpdate(id uint) (*models.AffiliatePayout, error)
	ListPayouts(filter AffiliatePayoutListFilter) ([]models.AffiliatePayout, int64, error)

	UpsertDailyStat(stat *models.AffiliateDailyStat) error
	ListDailyStats(profileID uint, from, to time.Time) ([]models.AffiliateDailyStat, error)
	ListActiveProfileIDs() ([]uint, error)
}

// GormAffiliateRepository GORM 推广返利仓储
type GormAffiliateRepository struct {
	db *gorm.DB
}

// NewAffiliateRepository 创建推广返利仓储
func NewAffiliateRepository(db *gorm.DB) *GormAffiliateRepository {
	return &GormAffiliateRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAffiliateRepository) WithTx(tx *gorm.DB) AffiliateRepository {
	if tx == nil {
		return r
	}
	return &GormAffiliateRepository{db: tx}
}

// Transaction 执行事务
func (r *GormAffiliateRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetProfileByID 按ID获取推广档案
func (r *GormAffiliateRepository) GetProfileByID(id uint) (*models.AffiliateProfile, error) {
	if id == 0 {
		return nil, nil
	}
	var profile models.AffiliateProfile
	if err := r.db.Preload("User").First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// GetProfileByIDForUpdate 按ID锁定获取推广档案
func (r *GormAffiliateRepository) GetProfileByIDForUpdate(id uint) (*models.AffiliateProfile, error) {
	if id == 0 {
		return nil, nil
	}
	var profile models.AffiliateProfile
	if err := lockForUpdate(r.db).First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// GetProfileByUserID 按用户ID获取推广档案
func (r *GormAffiliateRepository) GetProfileByUserID(userID uint) (*models.AffiliateProfile, error) {
	if userID == 0 {
		return nil, nil
	}
	var profile models.AffiliateProfile
	if err := r.db.Preload("User").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// GetProfileByCode 按推广码获取推广档案
func (r *GormAffiliateRepository) GetProfileByCode(code string) (*models.AffiliateProfile, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, nil
	}
	var profile models.AffiliateProfile
	if err := r.db.Preload("User").Where("affiliate_code = ?", normalized).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// CreateProfile 创建推广档案
func (r *GormAffiliateRepository) CreateProfile(profile *models.AffiliateProfile) error {
	return r.db.Create(profile).Error
}

// UpdateProfile 更新推广档案
func (r *GormAffiliateRepository) UpdateProfile(profile *models.AffiliateProfile) error {
	return r.db.Save(profile).Error
}

// UpdateProfileStatus 更新推广档案状态
func (r *GormAffiliateRepository) UpdateProfileStatus(id uint, status string, updatedAt time.Time) error {
	if id == 0 {
		return nil
	}
	return r.db.Model(&models.AffiliateProfile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     strings.TrimSpace(status),
			"updated_at": updatedAt,
		}).Error
}

// BatchUpdateProfileStatus 批量更新推广档案状态
func (r *GormAffiliateRepository) BatchUpdateProfileStatus(ids []uint, status string, updatedAt time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.AffiliateProfile{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"status":     strings.TrimSpace(status),
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// UpdateProfileColumns 更新推广档案指定列，支持 gorm.Expr 自增
func (r *GormAffiliateRepository) UpdateProfileColumns(id uint, updates map[string]interface{}) error {
	if id == 0 || len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.AffiliateProfile{}).Where("id = ?", id).Updates(updates).Error
}

// ListProfiles 查询推广档案列表
func (r *GormAffiliateRepository) ListProfiles(filter AffiliateProfileListFilter) ([]models.AffiliateProfile, int64, error) {
	query := r.db.Model(&models.AffiliateProfile{}).Preload("User")
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("affiliate_profiles.status = ?", status)
	}
	if vs := strings.TrimSpace(filter.VerificationStatus); vs != "" {
		query = query.Where("affiliate_profiles.verification_status = ?", vs)
	}
	if method := strings.TrimSpace(filter.PaymentMethod); method != "" {
		query = query.Where("affiliate_profiles.payment_method = ?", method)
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		like := "%" + keyword + "%"
		query = query.
			Joins("LEFT JOIN users ON users.id = affiliate_profiles.user_id").
			Where("(users.email LIKE ? OR users.full_name LIKE ? OR affiliate_profiles.affiliate_code LIKE ?)", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var rows []models.AffiliateProfile
	if err := query.Order("affiliate_profiles.id desc").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// CountProfilesByCode 统计推广码占用数量
func (r *GormAffiliateRepository) CountProfilesByCode(code string) (int64, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return 0, nil
	}
	var total int64
	if err := r.db.Model(&models.AffiliateProfile{}).Where("affiliate_code = ?", normalized).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// CreateClick 创建推广点击记录
func (r *GormAffiliateRepository) CreateClick(click *models.AffiliateClick) error {
	return r.db.Create(click).Error
}

// HasRecentClick 查询是否存在近期重复点击记录
func (r *GormAffiliateRepository) HasRecentClick(profileID uint, visitorKey, landingPath string, since time.Time) (bool, error) {
	if profileID == 0 || strings.TrimSpace(visitorKey) == "" {
		return false, nil
	}
	query := r.db.Model(&models.AffiliateClick{}).
		Where("affiliate_profile_id = ? AND visitor_key = ? AND created_at >= ?",
			profileID,
			strings.TrimSpace(visitorKey),
			since,
		)
	if path := strings.TrimSpace(landingPath); path != "" {
		query = query.Where("landing_path = ?", path)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}

// CountClicksByProfile 统计推广点击数
func (r *GormAffiliateRepository) CountClicksByProfile(profileID uint) (int64, error) {
	if profileID == 0 {
		return 0, nil
	}
	var total int64
	if err := r.db.Model(&models.AffiliateClick{}).Where("affiliate_profile_id = ?", profileID).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// MarkLatestClickConverted 标记最近一次未转化点击为已转化
// visitorKey 为空时退化为按推广员取窗口内最新一条
func (r *GormAffiliateRepository) MarkLatestClickConverted(profileID uint, visitorKey string, since time.Time) (int64, error) {
	if profileID == 0 {
		return 0, nil
	}
	query := r.db.Where("affiliate_profile_id = ? AND converted = ? AND created_at >= ?", profileID, false, since)
	if key := strings.TrimSpace(visitorKey); key != "" {
		query = query.Where("visitor_key = ?", key)
	}
	var click models.AffiliateClick
	err := query.Order("created_at DESC, id DESC").First(&click).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	result := r.db.Model(&models.AffiliateClick{}).
		Where("id = ? AND converted = ?", click.ID, false).
		Update("converted", true)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// GetReferralByCustomerID 按顾客ID获取推荐绑定
func (r *GormAffiliateRepository) GetReferralByCustomerID(customerID uint) (*models.AffiliateReferral, error) {
	if customerID == 0 {
		return nil, nil
	}
	var referral models.AffiliateReferral
	if err := r.db.Where("customer_id = ?", customerID).First(&referral).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &referral, nil
}

// CreateReferral 创建推荐绑定
func (r *GormAffiliateRepository) CreateReferral(referral *models.AffiliateReferral) error {
	return r.db.Create(referral).Error
}

// UpdateReferral 更新推荐绑定
func (r *GormAffiliateRepository) UpdateReferral(referral *models.AffiliateReferral) error {
	return r.db.Save(referral).Error
}

// GetCommissionByOrderNumber 按订单号和推广人查询佣金
func (r *GormAffiliateRepository) GetCommissionByOrderNumber(profileID uint, orderNumber string) (*models.AffiliateCommission, error) {
	orderNo := strings.TrimSpace(orderNumber)
	if profileID == 0 || orderNo == "" {
		return nil, nil
	}
	var commission models.AffiliateCommission
	if err := r.db.Where("affiliate_profile_id = ? AND order_number = ?", profileID, orderNo).
		First(&commission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &commission, nil
}

// CreateCommission 创建佣金记录
func (r *GormAffiliateRepository) CreateCommission(commission *models.AffiliateCommission) error {
	return r.db.Create(commission).Error
}

// UpdateCommission 更新佣金记录
func (r *GormAffiliateRepository) UpdateCommission(commission *models.AffiliateCommission) error {
	return r.db.Save(commission).Error
}

// ListRecentCommissionsByProfile 查询最近佣金记录，按创建时间倒序
func (r *GormAffiliateRepository) ListRecentCommissionsByProfile(profileID uint, limit int) ([]models.AffiliateCommission, error) {
	if profileID == 0 {
		return []models.AffiliateCommission{}, nil
	}
	if limit <= 0 {
		limit = 10
	}
	var rows []models.AffiliateCommission
	if err := r.db.Where("affiliate_profile_id = ?", profileID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListCommissions 查询佣金记录
func (r *GormAffiliateRepository) ListCommissions(filter AffiliateCommissionListFilter) ([]models.AffiliateCommission, int64, error) {
	query := r.db.Model(&models.AffiliateCommission{}).
		Preload("AffiliateProfile").
		Preload("AffiliateProfile.User")
	if filter.ProfileID != 0 {
		query = query.Where("affiliate_commissions.affiliate_profile_id = ?", filter.ProfileID)
	}
	if orderNo := strings.TrimSpace(filter.OrderNumber); orderNo != "" {
		query = query.Where("affiliate_commissions.order_number LIKE ?", "%"+orderNo+"%")
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("affiliate_commissions.status = ?", status)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("affiliate_commissions.created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("affiliate_commissions.created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var rows []models.AffiliateCommission
	if err := query.Order("affiliate_commissions.created_at desc, affiliate_commissions.id desc").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListCommissionsByPayoutIDForUpdate 按结算单查询并锁定佣金记录
func (r *GormAffiliateRepository) ListCommissionsByPayoutIDForUpdate(payoutID uint) ([]models.AffiliateCommission, error) {
	if payoutID == 0 {
		return []models.AffiliateCommission{}, nil
	}
	var rows []models.AffiliateCommission
	if err := lockForUpdate(r.db).
		Where("payout_id = ?", payoutID).
		Order("id asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListApprovedCommissionsForUpdate 查询并锁定可结算佣金
func (r *GormAffiliateRepository) ListApprovedCommissionsForUpdate(profileID uint) ([]models.AffiliateCommission, error) {
	if profileID == 0 {
		return []models.AffiliateCommission{}, nil
	}
	var rows []models.AffiliateCommission
	if err := lockForUpdate(r.db).
		Where("affiliate_profile_id = ? AND status = ? AND payout_id IS NULL",
			profileID, constants.AffiliateCommissionStatusApproved).
		Order("id asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// MarkDueCommissionsApproved 批量将确认期满的待确认佣金转为已确认
func (r *GormAffiliateRepository) MarkDueCommissionsApproved(before, now time.Time) (int64, error) {
	result := r.db.Model(&models.AffiliateCommission{}).
		Where("status = ? AND confirm_at IS NOT NULL AND confirm_at <= ? AND payout_id IS NULL",
			constants.AffiliateCommissionStatusPending, before).
		Updates(map[string]interface{}{
			"status":      constants.AffiliateCommissionStatusApproved,
			"approved_at": now,
			"updated_at":  now,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// BatchUpdateCommissions 批量更新佣金记录
func (r *GormAffiliateRepository) BatchUpdateCommissions(ids []uint, updates map[string]interface{}) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.AffiliateCommission{}).Where("id IN ?", ids).Updates(updates).Error
}

// SumCommissionByProfile 汇总指定状态佣金金额
func (r *GormAffiliateRepository) SumCommissionByProfile(profileID uint, statuses []string, unassignedOnly bool) (decimal.Decimal, error) {
	if profileID == 0 || len(statuses) == 0 {
		return decimal.Zero, nil
	}
	query := r.db.Model(&models.AffiliateCommission{}).
		Where("affiliate_profile_id = ? AND status IN ?", profileID, statuses)
	if unassignedOnly {
		query = query.Where("payout_id IS NULL")
	}

	var row struct {
		Total decimal.Decimal `gorm:"column:total"`
	}
	if err := query.Select("COALESCE(SUM(commission_amount), 0) AS total").Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total.Round(2), nil
}

// CreatePayout 创建结算单
func (r *GormAffiliateRepository) CreatePayout(payout *models.AffiliatePayout) error {
	return r.db.Create(payout).Error
}

// UpdatePayout 更新结算单
func (r *GormAffiliateRepository) UpdatePayout(payout *models.AffiliatePayout) error {
	return r.db.Save(payout).Error
}

// GetPayoutByID 按ID查询结算单
func (r *GormAffiliateRepository) GetPayoutByID(id uint) (*models.AffiliatePayout, error) {
	if id == 0 {
		return nil, nil
	}
	var row models.AffiliatePayout
	if err := r.db.Preload("AffiliateProfile").Preload("AffiliateProfile.User").First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// GetPayoutByIDForUpdate 按ID锁定查询结算单
func (r *GormAffiliateRepository) GetPayoutByIDForUpdate(id uint) (*models.AffiliatePayout, error) {
	if id == 0 {
		return nil, nil
	}
	var row models.AffiliatePayout
	if err := lockForUpdate(r.db).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ListPayouts 查询结算单列表
func (r *GormAffiliateRepository) ListPayouts(filter AffiliatePayoutListFilter) ([]models.AffiliatePayout, int64, error) {
	query := r.db.Model(&models.AffiliatePayout{}).
		Preload("AffiliateProfile").
		Preload("AffiliateProfile.User")

	if filter.ProfileID != 0 {
		query = query.Where("affiliate_payouts.affiliate_profile_id = ?", filter.ProfileID)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("affiliate_payouts.status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var rows []models.AffiliatePayout
	if err := query.Order("affiliate_payouts.id desc").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// UpsertDailyStat 写入或更新单日统计
func (r *GormAffiliateRepository) UpsertDailyStat(stat *models.AffiliateDailyStat) error {
	if stat == nil {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "affiliate_profile_id"}, {Name: "stat_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"clicks", "referrals", "orders", "order_value", "commission_earned", "updated_at",
		}),
	}).Create(stat).Error
}

// ListDailyStats 查询区间内的每日统计
func (r *GormAffiliateRepository) ListDailyStats(profileID uint, from, to time.Time) ([]models.AffiliateDailyStat, error) {
	if profileID == 0 {
		return []models.AffiliateDailyStat{}, nil
	}
	var rows []models.AffiliateDailyStat
	if err := r.db.Where("affiliate_profile_id = ? AND stat_date >= ? AND stat_date <= ?", profileID, from, to).
		Order("stat_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListActiveProfileIDs 查询所有启用中的推广档案ID
func (r *GormAffiliateRepository) ListActiveProfileIDs() ([]uint, error) {
	var ids []uint
	if err := r.db.Model(&models.AffiliateProfile{}).
		Where("status = ?", constants.AffiliateProfileStatusActive).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
