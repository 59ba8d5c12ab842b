package worker

import (
	"context"
	"errors"
	"time"

	"github.com/erco-market/internal/config"
	"github.com/erco-market/internal/logger"
	"github.com/erco-market/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	affiliateConfirmInterval    = time.Minute
	affiliateDailyStatsInterval = time.Hour

	chatSessionCleanupInterval  = time.Hour
	chatSessionRetentionMaxIdle = 30 * 24 * time.Hour
)

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.AffiliateService != nil {
		go s.runAffiliateConfirmLoop(ctx)
		go s.runAffiliateDailyStatsLoop(ctx)
	}
	if s.consumer != nil && s.consumer.ChatbotService != nil {
		go s.runChatSessionCleanupLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

func (s *Service) runAffiliateConfirmLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.AffiliateService == nil {
		return
	}
	runOnce := func() {
		approved, err := s.consumer.AffiliateService.ConfirmDueCommissions()
		if err != nil {
			logger.Warnw("worker_affiliate_confirm_due_failed", "error", err)
			return
		}
		if approved > 0 {
			logger.Infow("worker_affiliate_confirm_due_done", "approved_count", approved)
		}
	}
	runOnce()

	ticker := time.NewTicker(affiliateConfirmInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}

func (s *Service) runChatSessionCleanupLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.ChatbotService == nil {
		return
	}
	runOnce := func() {
		removed, err := s.consumer.ChatbotService.CleanupInactiveSessions(chatSessionRetentionMaxIdle)
		if err != nil {
			logger.Warnw("worker_chat_session_cleanup_failed", "error", err)
			return
		}
		if removed > 0 {
			logger.Infow("worker_chat_session_cleanup_done", "removed_count", removed)
		}
	}
	runOnce()

	ticker := time.NewTicker(chatSessionCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}

func (s *Service) runAffiliateDailyStatsLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.AffiliateService == nil {
		return
	}
	runOnce := func() {
		yesterday := time.Now().AddDate(0, 0, -1)
		if err := s.consumer.AffiliateService.RollupDailyStats(yesterday); err != nil {
			logger.Warnw("worker_affiliate_daily_stats_failed", "error", err)
		}
	}
	runOnce()

	ticker := time.NewTicker(affiliateDailyStatsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
