package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/erco-market/internal/http/response"
	"github.com/erco-market/internal/repository"
	"github.com/erco-market/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AffiliateProfileStatusRequest 推广员状态更新请求
type AffiliateProfileStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AffiliatePayoutReviewRequest 结算单审核请求
type AffiliatePayoutReviewRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes"`
}

// ListAffiliateProfiles 管理端推广员列表
func (h *Handler) ListAffiliateProfiles(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	profiles, total, err := h.AffiliateService.ListProfiles(repository.AffiliateProfileListFilter{
		Page:          page,
		PageSize:      pageSize,
		Keyword:       strings.TrimSpace(c.Query("keyword")),
		Status:        strings.TrimSpace(c.Query("status")),
		PaymentMethod: strings.TrimSpace(c.Query("payment_method")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.affiliate_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, profiles, buildPagination(page, pageSize, total))
}

// UpdateAffiliateProfileStatus 管理端调整推广员状态
func (h *Handler) UpdateAffiliateProfileStatus(c *gin.Context) {
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	var req AffiliateProfileStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AffiliateService.UpdateProfileStatus(id, strings.ToLower(strings.TrimSpace(req.Status))); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.not_found", nil)
		case errors.Is(err, service.ErrAffiliateProfileStatusInvalid):
			respondError(c, response.CodeBadRequest, "error.status_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.save_failed", err)
		}
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// RecordAffiliateOrderRequest 已支付订单入账请求
// paid_at 缺省按当前时间处理
type RecordAffiliateOrderRequest struct {
	CustomerID  uint   `json:"customer_id" binding:"required"`
	OrderNumber string `json:"order_number" binding:"required"`
	OrderAmount string `json:"order_amount" binding:"required"`
	PaidAt      string `json:"paid_at"`
}

// RecordAffiliateOrder 订单系统回传已支付订单，触发佣金计提
// 客户无推广归属时返回空佣金，不视为错误
func (h *Handler) RecordAffiliateOrder(c *gin.Context) {
	var req RecordAffiliateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.OrderAmount))
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		respondError(c, response.CodeBadRequest, "error.price_invalid", nil)
		return
	}

	paidAt := time.Now()
	if raw := strings.TrimSpace(req.PaidAt); raw != "" {
		parsed, parseErr := time.Parse(time.RFC3339, raw)
		if parseErr != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", parseErr)
			return
		}
		paidAt = parsed
	}

	commission, err := h.AffiliateService.RecordOrderPaid(req.CustomerID, strings.TrimSpace(req.OrderNumber), amount, paidAt)
	if err != nil {
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}
	response.Success(c, gin.H{"commission": commission})
}

// ListAffiliateCommissions 管理端佣金列表
func (h *Handler) ListAffiliateCommissions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	profileID, _ := strconv.ParseUint(c.Query("profile_id"), 10, 64)
	commissions, total, err := h.AffiliateService.ListCommissions(repository.AffiliateCommissionListFilter{
		Page:        page,
		PageSize:    pageSize,
		ProfileID:   uint(profileID),
		Status:      strings.TrimSpace(c.Query("status")),
		OrderNumber: strings.TrimSpace(c.Query("order_number")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.affiliate_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, commissions, buildPagination(page, pageSize, total))
}

// ListAffiliatePayouts 管理端结算单列表
func (h *Handler) ListAffiliatePayouts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	profileID, _ := strconv.ParseUint(c.Query("profile_id"), 10, 64)
	payouts, total, err := h.AffiliateService.ListPayouts(repository.AffiliatePayoutListFilter{
		Page:      page,
		PageSize:  pageSize,
		ProfileID: uint(profileID),
		Status:    strings.TrimSpace(c.Query("status")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.affiliate_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, payouts, buildPagination(page, pageSize, total))
}

// ReviewAffiliatePayout 管理端审核结算单
// approve=true 打款完成并把佣金转已支付，approve=false 驳回并释放佣金
func (h *Handler) ReviewAffiliatePayout(c *gin.Context) {
	adminID, ok := getAdminID(c)
	if !ok {
		return
	}
	id, ok := parsePathID(c, "id")
	if !ok {
		return
	}
	var req AffiliatePayoutReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	payout, err := h.AffiliateService.ReviewPayout(id, adminID, req.Approve, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.not_found", nil)
		case errors.Is(err, service.ErrAffiliatePayoutStatusInvalid):
			respondError(c, response.CodeBadRequest, "error.affiliate_payout_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.save_failed", err)
		}
		return
	}
	response.Success(c, payout)
}
