package public

import (
	"errors"
	"strings"
	"time"

	"github.com/erco-market/internal/http/response"
	"github.com/erco-market/internal/service"

	"github.com/gin-gonic/gin"
)

// AffiliateRegisterRequest 推广员入驻申请请求
type AffiliateRegisterRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	WhatsappNumber string `json:"whatsapp_number"`
	DateOfBirth    string `json:"date_of_birth"`
	Gender         string `json:"gender"`
	AddressLine1   string `json:"address_line1" binding:"required"`
	AddressLine2   string `json:"address_line2"`
	City           string `json:"city" binding:"required"`
	State          string `json:"state" binding:"required"`
	PostalCode     string `json:"postal_code"`
	Country        string `json:"country" binding:"required"`
	Occupation     string `json:"occupation"`
	CompanyName    string `json:"company_name"`
	WebsiteURL     string `json:"website_url"`
	Facebook       string `json:"facebook"`
	Instagram      string `json:"instagram"`
	Twitter        string `json:"twitter"`
	LinkedIn       string `json:"linkedin"`
	BankName       string `json:"bank_name"`
	AccountNumber  string `json:"account_number"`
	AccountName    string `json:"account_name"`
	PaymentMethod  string `json:"payment_method" binding:"required"`
	ReferralSource string `json:"referral_source"`
	TermsAccepted  bool   `json:"terms_accepted"`
}

// AffiliateTrackClickRequest 推广点击上报请求
type AffiliateTrackClickRequest struct {
	Code        string `json:"code" binding:"required"`
	VisitorKey  string `json:"visitor_key"`
	LandingPath string `json:"landing_path"`
	Referrer    string `json:"referrer"`
}

// RegisterAffiliate 提交推广员入驻申请
func (h *Handler) RegisterAffiliate(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AffiliateRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	var dateOfBirth *time.Time
	if raw := strings.TrimSpace(req.DateOfBirth); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		dateOfBirth = &parsed
	}

	profile, err := h.AffiliateService.RegisterProfile(uid, service.RegisterAffiliateInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Phone:          req.Phone,
		WhatsappNumber: req.WhatsappNumber,
		DateOfBirth:    dateOfBirth,
		Gender:         req.Gender,
		AddressLine1:   req.AddressLine1,
		AddressLine2:   req.AddressLine2,
		City:           req.City,
		State:          req.State,
		PostalCode:     req.PostalCode,
		Country:        req.Country,
		Occupation:     req.Occupation,
		CompanyName:    req.CompanyName,
		WebsiteURL:     req.WebsiteURL,
		Facebook:       req.Facebook,
		Instagram:      req.Instagram,
		Twitter:        req.Twitter,
		LinkedIn:       req.LinkedIn,
		BankName:       req.BankName,
		AccountNumber:  req.AccountNumber,
		AccountName:    req.AccountName,
		PaymentMethod:  req.PaymentMethod,
		ReferralSource: req.ReferralSource,
		TermsAccepted:  req.TermsAccepted,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAffiliateDisabled):
			respondError(c, response.CodeForbidden, "error.affiliate_disabled", nil)
		case errors.Is(err, service.ErrAffiliateTermsRequired):
			respondError(c, response.CodeBadRequest, "error.affiliate_terms_required", nil)
		case errors.Is(err, service.ErrAffiliatePaymentMethodInvalid):
			respondError(c, response.CodeBadRequest, "error.affiliate_payment_invalid", nil)
		case errors.Is(err, service.ErrAffiliateProfileIncomplete):
			respondError(c, response.CodeBadRequest, "error.affiliate_profile_invalid", nil)
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.affiliate_register_failed", err)
		}
		return
	}
	response.Success(c, profile)
}

// GetAffiliateDashboard 获取推广员仪表盘
// 未入驻返回 registered=false，由前端引导去申请页
func (h *Handler) GetAffiliateDashboard(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	dashboard, err := h.AffiliateService.GetDashboard(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.affiliate_fetch_failed", err)
		return
	}
	response.Success(c, dashboard)
}

// TrackAffiliateClick 记录推广链接点击（公开接口，无需登录）
func (h *Handler) TrackAffiliateClick(c *gin.Context) {
	var req AffiliateTrackClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	err := h.AffiliateService.TrackClick(service.TrackClickInput{
		Code:        req.Code,
		VisitorKey:  req.VisitorKey,
		LandingPath: req.LandingPath,
		Referrer:    req.Referrer,
		ClientIP:    c.ClientIP(),
		UserAgent:   c.GetHeader("User-Agent"),
	})
	if err != nil {
		if errors.Is(err, service.ErrAffiliateCodeInvalid) {
			respondError(c, response.CodeBadRequest, "error.affiliate_code_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}
	response.Success(c, gin.H{"tracked": true})
}

// ApplyAffiliatePayout 推广员申请结算
func (h *Handler) ApplyAffiliatePayout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	payout, err := h.AffiliateService.ApplyPayout(uid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.not_found", nil)
		case errors.Is(err, service.ErrAffiliateProfileStatusInvalid):
			respondError(c, response.CodeForbidden, "error.forbidden", nil)
		case errors.Is(err, service.ErrAffiliatePayoutInsufficient):
			respondError(c, response.CodeBadRequest, "error.affiliate_payout_too_small", nil)
		default:
			respondError(c, response.CodeInternal, "error.affiliate_payout_invalid", err)
		}
		return
	}
	response.Success(c, payout)
}
