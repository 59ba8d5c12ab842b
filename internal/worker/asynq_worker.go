package worker

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/erco-market/internal/logger"
	"github.com/erco-market/internal/provider"
	"github.com/erco-market/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskChatbotReply, c.handleChatbotReply)
	mux.HandleFunc(queue.TaskAffiliateConfirm, c.handleAffiliateConfirm)
	mux.HandleFunc(queue.TaskAffiliateDailyStats, c.handleAffiliateDailyStats)
}

func (c *Consumer) handleChatbotReply(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_chatbot_reply_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ChatbotReplyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_chatbot_reply_unmarshal_failed", "error", err)
		return err
	}
	sessionKey := strings.TrimSpace(payload.SessionKey)
	if sessionKey == "" {
		logger.Debugw("worker_chatbot_reply_skip_empty_session")
		return nil
	}
	if c.ChatbotService == nil {
		logger.Warnw("worker_chatbot_reply_skip_service_nil", "session_key", sessionKey)
		return nil
	}
	if err := c.ChatbotService.DeliverReply(sessionKey, payload.Sequence); err != nil {
		logger.Warnw("worker_chatbot_reply_failed", "session_key", sessionKey, "sequence", payload.Sequence, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleAffiliateConfirm(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_affiliate_confirm_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.AffiliateConfirmPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_affiliate_confirm_unmarshal_failed", "error", err)
		return err
	}
	if c.AffiliateService == nil {
		logger.Warnw("worker_affiliate_confirm_skip_service_nil")
		return nil
	}
	affected, err := c.AffiliateService.ConfirmDueCommissions()
	if err != nil {
		logger.Warnw("worker_affiliate_confirm_failed", "triggered_at", payload.TriggeredAt, "error", err)
		return err
	}
	if affected > 0 {
		logger.Infow("worker_affiliate_confirm_done", "approved_count", affected)
	}
	return nil
}

func (c *Consumer) handleAffiliateDailyStats(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_affiliate_daily_stats_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.AffiliateDailyStatsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_affiliate_daily_stats_unmarshal_failed", "error", err)
		return err
	}
	day, ok := parseStatDate(payload.StatDate)
	if !ok {
		logger.Debugw("worker_affiliate_daily_stats_skip_invalid_date", "stat_date", payload.StatDate)
		return nil
	}
	if c.AffiliateService == nil {
		logger.Warnw("worker_affiliate_daily_stats_skip_service_nil", "stat_date", payload.StatDate)
		return nil
	}
	if err := c.AffiliateService.RollupDailyStats(day); err != nil {
		logger.Warnw("worker_affiliate_daily_stats_failed", "stat_date", payload.StatDate, "error", err)
		return err
	}
	return nil
}

// parseStatDate 解析统计日期，为空时默认统计前一天。
func parseStatDate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Now().AddDate(0, 0, -1), true
	}
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}
