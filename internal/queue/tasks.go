package queue

import (
	"encoding/json"

	"github.com/erco-market/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskChatbotReply 客服机器人延迟回复任务
	TaskChatbotReply = constants.TaskChatbotReply
	// TaskAffiliateConfirm 到期佣金确认任务
	TaskAffiliateConfirm = constants.TaskAffiliateConfirm
	// TaskAffiliateDailyStats 推广日统计归集任务
	TaskAffiliateDailyStats = constants.TaskAffiliateDailyStats
)

// ChatbotReplyPayload 机器人回复任务载荷
// Sequence 记录入队时的消息条数，会话在等待期间有新消息时旧任务作废
type ChatbotReplyPayload struct {
	SessionKey string `json:"session_key"`
	Sequence   int    `json:"sequence"`
}

// AffiliateConfirmPayload 佣金确认任务载荷
type AffiliateConfirmPayload struct {
	TriggeredAt int64 `json:"triggered_at"`
}

// AffiliateDailyStatsPayload 推广日统计任务载荷
type AffiliateDailyStatsPayload struct {
	StatDate string `json:"stat_date"` // 2006-01-02
}

// NewChatbotReplyTask 创建机器人回复任务
func NewChatbotReplyTask(payload ChatbotReplyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskChatbotReply, body), nil
}

// NewAffiliateConfirmTask 创建佣金确认任务
func NewAffiliateConfirmTask(payload AffiliateConfirmPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAffiliateConfirm, body), nil
}

// NewAffiliateDailyStatsTask 创建推广日统计任务
func NewAffiliateDailyStatsTask(payload AffiliateDailyStatsPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAffiliateDailyStats, body), nil
}
