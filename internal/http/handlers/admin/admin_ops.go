package admin

import (
	"strings"
	"time"

	"github.com/erco-market/internal/http/response"
	"github.com/erco-market/internal/queue"

	"github.com/gin-gonic/gin"
)

// TriggerAffiliateConfirm 手动触发到期佣金确认
// 队列可用时投递异步任务，否则当场执行
func (h *Handler) TriggerAffiliateConfirm(c *gin.Context) {
	if h.QueueClient.Enabled() {
		payload := queue.AffiliateConfirmPayload{TriggeredAt: time.Now().Unix()}
		if err := h.QueueClient.EnqueueAffiliateConfirm(payload); err != nil {
			respondError(c, response.CodeInternal, "error.internal", err)
			return
		}
		response.Success(c, gin.H{"queued": true})
		return
	}

	approved, err := h.AffiliateService.ConfirmDueCommissions()
	if err != nil {
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}
	response.Success(c, gin.H{"queued": false, "approved": approved})
}

// TriggerAffiliateDailyStatsRequest 手动触发日统计请求
// stat_date 缺省统计前一天
type TriggerAffiliateDailyStatsRequest struct {
	StatDate string `json:"stat_date"`
}

// TriggerAffiliateDailyStats 手动触发推广日统计归集
func (h *Handler) TriggerAffiliateDailyStats(c *gin.Context) {
	var req TriggerAffiliateDailyStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	statDate := strings.TrimSpace(req.StatDate)
	day := time.Now().AddDate(0, 0, -1)
	if statDate != "" {
		parsed, parseErr := time.Parse("2006-01-02", statDate)
		if parseErr != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", parseErr)
			return
		}
		day = parsed
	}

	if h.QueueClient.Enabled() {
		payload := queue.AffiliateDailyStatsPayload{StatDate: day.Format("2006-01-02")}
		if err := h.QueueClient.EnqueueAffiliateDailyStats(payload); err != nil {
			respondError(c, response.CodeInternal, "error.internal", err)
			return
		}
		response.Success(c, gin.H{"queued": true, "stat_date": payload.StatDate})
		return
	}

	if err := h.AffiliateService.RollupDailyStats(day); err != nil {
		respondError(c, response.CodeInternal, "error.save_failed", err)
		return
	}
	response.Success(c, gin.H{"queued": false, "stat_date": day.Format("2006-01-02")})
}
