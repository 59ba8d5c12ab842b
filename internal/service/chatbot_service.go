package service

import (
	"strings"
	"time"

	"github.com/erco-market/internal/config"
	"github.com/erco-market/internal/constants"
	"github.com/erco-market/internal/logger"
	"github.com/erco-market/internal/models"
	"github.com/erco-market/internal/queue"
	"github.com/erco-market/internal/repository"
	"github.com/google/uuid"
)

// 机器人开场白
const chatbotGreeting = "Hello! I'm your ERCO AI assistant. I can help you find the perfect solar solution. What would you like to know?"

// chatbotQuickQuestions 快捷提问，仅在会话只有开场白时展示
var chatbotQuickQuestions = []string{
	"What size solar system do I need?",
	"How much do solar panels cost?",
	"What's the difference between on-grid and off-grid?",
	"How long does installation take?",
}

// chatbotRule 剧本规则：命中任一关键词（不区分大小写的子串匹配）即回复
type chatbotRule struct {
	keywords []string
	reply    string
}

// 规则按声明顺序匹配，先命中先回复
var chatbotRules = []chatbotRule{
	{
		keywords: []string{"size", "how much"},
		reply: "To determine the right solar system size, I need to know:\n\n" +
			"1. Your monthly electricity consumption (in kWh)\n" +
			"2. Your location and average sunlight hours\n" +
			"3. Your budget range\n\n" +
			"Would you like to take our AI recommendation quiz? It will help me give you personalized suggestions!",
	},
	{
		keywords: []string{"cost", "price"},
		reply: "Solar system costs vary based on:\n\n" +
			"• System size (typically $2,000 - $15,000)\n" +
			"• Quality and brand of components\n" +
			"• Installation complexity\n" +
			"• Location\n\n" +
			"On our marketplace, you can compare prices from multiple vendors to get the best deal. Would you like me to show you some options?",
	},
	{
		keywords: []string{"grid", "off-grid"},
		reply: "Great question!\n\n" +
			"**On-Grid Systems:**\n" +
			"• Connected to utility grid\n" +
			"• Lower cost (no batteries needed)\n" +
			"• Excess energy sold back to grid\n\n" +
			"**Off-Grid Systems:**\n" +
			"• Complete independence\n" +
			"• Requires battery storage\n" +
			"• Higher initial cost\n" +
			"• Perfect for remote areas\n\n" +
			"Which type interests you more?",
	},
	{
		keywords: []string{"installation", "install"},
		reply: "Solar installation typically takes:\n\n" +
			"• 1-3 days for residential systems\n" +
			"• 1-2 weeks for commercial systems\n\n" +
			"The process includes:\n" +
			"1. Site assessment\n" +
			"2. Mounting panel installation\n" +
			"3. Electrical connections\n" +
			"4. System testing\n\n" +
			"Our verified vendors can provide detailed timelines for your specific project!",
	},
}

// chatbotFallbackReply 未命中任何规则时的兜底回复
const chatbotFallbackReply = "That's a great question! I can help you with:\n\n" +
	"• Solar system sizing\n" +
	"• Product recommendations\n" +
	"• Price comparisons\n" +
	"• Technical specifications\n" +
	"• Installation guidance\n\n" +
	"Could you provide more details about what you're looking for?"

// ChatbotService 剧本式客服机器人
type ChatbotService struct {
	cfg   *config.Config
	repo  repository.ChatSessionRepository
	queue *queue.Client
}

// NewChatbotService 创建客服机器人服务
func NewChatbotService(cfg *config.Config, repo repository.ChatSessionRepository, queueClient *queue.Client) *ChatbotService {
	return &ChatbotService{cfg: cfg, repo: repo, queue: queueClient}
}

// ChatbotView 会话视图
type ChatbotView struct {
	SessionKey     string               `json:"session_id"`
	Messages       []models.ChatMessage `json:"messages"`
	QuickQuestions []string             `json:"quick_questions,omitempty"`
	ReplyPending   bool                 `json:"reply_pending"`
}

// StartSession 开启会话，首条消息固定为助手问候语
func (s *ChatbotService) StartSession(userID *uint) (*ChatbotView, error) {
	session := &models.ChatSession{
		SessionKey: uuid.NewString(),
		UserID:     userID,
		Messages: models.ChatMessages{
			{Role: constants.ChatRoleAssistant, Content: chatbotGreeting, Timestamp: time.Now()},
		},
	}
	if err := s.repo.Create(session); err != nil {
		return nil, err
	}
	return s.buildView(session, false), nil
}

// GetSession 读取会话
func (s *ChatbotService) GetSession(sessionKey string) (*ChatbotView, error) {
	session, err := s.loadSession(sessionKey)
	if err != nil {
		return nil, err
	}
	return s.buildView(session, s.hasPendingReply(session)), nil
}

// SendMessage 追加访客消息并安排延迟回复
// 队列可用时机器人回复按固定延迟异步送达，否则同步生成
func (s *ChatbotService) SendMessage(sessionKey, content string) (*ChatbotView, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrChatMessageEmpty
	}

	session, err := s.loadSession(sessionKey)
	if err != nil {
		return nil, err
	}

	session.Messages = append(session.Messages, models.ChatMessage{
		Role:      constants.ChatRoleUser,
		Content:   content,
		Timestamp: time.Now(),
	})
	if err := s.repo.Update(session); err != nil {
		return nil, err
	}

	if s.queue.Enabled() {
		payload := queue.ChatbotReplyPayload{
			SessionKey: session.SessionKey,
			Sequence:   len(session.Messages),
		}
		if err := s.queue.EnqueueChatbotReply(payload, s.replyDelay()); err != nil {
			logger.Warnw("机器人回复任务入队失败，改为同步回复", "session_key", session.SessionKey, "error", err)
			return s.appendReply(session)
		}
		return s.buildView(session, true), nil
	}
	return s.appendReply(session)
}

// DeliverReply 投递延迟回复
// sequence 与当前消息条数不一致说明等待期间有新消息，本次任务作废
func (s *ChatbotService) DeliverReply(sessionKey string, sequence int) error {
	session, err := s.loadSession(sessionKey)
	if err != nil {
		if err == ErrChatSessionInvalid {
			return nil
		}
		return err
	}
	if len(session.Messages) != sequence {
		logger.Debugw("机器人回复任务已过期", "session_key", sessionKey, "sequence", sequence, "messages", len(session.Messages))
		return nil
	}
	_, err = s.appendReply(session)
	return err
}

// CleanupInactiveSessions 清理长期未活跃的会话
func (s *ChatbotService) CleanupInactiveSessions(inactiveFor time.Duration) (int64, error) {
	if inactiveFor <= 0 {
		inactiveFor = 30 * 24 * time.Hour
	}
	return s.repo.DeleteInactiveBefore(time.Now().Add(-inactiveFor))
}

// ComposeReply 按剧本匹配访客提问
func ComposeReply(question string) string {
	lower := strings.ToLower(question)
	for _, rule := range chatbotRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.reply
			}
		}
	}
	return chatbotFallbackReply
}

// QuickQuestions 快捷提问列表
func QuickQuestions() []string {
	out := make([]string, len(chatbotQuickQuestions))
	copy(out, chatbotQuickQuestions)
	return out
}

func (s *ChatbotService) loadSession(sessionKey string) (*models.ChatSession, error) {
	sessionKey = strings.TrimSpace(sessionKey)
	if sessionKey == "" {
		return nil, ErrChatSessionInvalid
	}
	session, err := s.repo.GetBySessionKey(sessionKey)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrChatSessionInvalid
	}
	return session, nil
}

func (s *ChatbotService) appendReply(session *models.ChatSession) (*ChatbotView, error) {
	question := lastUserMessage(session.Messages)
	session.Messages = append(session.Messages, models.ChatMessage{
		Role:      constants.ChatRoleAssistant,
		Content:   ComposeReply(question),
		Timestamp: time.Now(),
	})
	if err := s.repo.Update(session); err != nil {
		return nil, err
	}
	return s.buildView(session, false), nil
}

func (s *ChatbotService) buildView(session *models.ChatSession, replyPending bool) *ChatbotView {
	view := &ChatbotView{
		SessionKey:   session.SessionKey,
		Messages:     append([]models.ChatMessage(nil), session.Messages...),
		ReplyPending: replyPending,
	}
	// 快捷提问只在会话仅有开场白时展示
	if len(session.Messages) == 1 {
		view.QuickQuestions = QuickQuestions()
	}
	return view
}

// hasPendingReply 末条为访客消息说明回复仍在路上
func (s *ChatbotService) hasPendingReply(session *models.ChatSession) bool {
	if len(session.Messages) == 0 {
		return false
	}
	return session.Messages[len(session.Messages)-1].Role == constants.ChatRoleUser
}

func (s *ChatbotService) replyDelay() time.Duration {
	ms := s.cfg.Chatbot.ReplyDelayMS
	if ms <= 0 {
		ms = 1000
	}
	return time.Duration(ms) * time.Millisecond
}

func lastUserMessage(messages models.ChatMessages) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == constants.ChatRoleUser {
			return messages[i].Content
		}
	}
	return ""
}
