package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/erco-market/internal/config"
	"github.com/erco-market/internal/constants"
	"github.com/erco-market/internal/models"
	"github.com/erco-market/internal/queue"
	"github.com/erco-market/internal/repository"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupChatbotServiceTest(t *testing.T) *ChatbotService {
	t.Helper()

	dsn := fmt.Sprintf("file:chatbot_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.ChatSession{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.Chatbot.ReplyDelayMS = 1000

	// 测试不启用队列，回复走同步生成
	queueClient, err := queue.NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("init queue client failed: %v", err)
	}
	return NewChatbotService(cfg, repository.NewChatSessionRepository(db), queueClient)
}

func TestStartSessionSeedsGreeting(t *testing.T) {
	svc := setupChatbotServiceTest(t)

	view, err := svc.StartSession(nil)
	if err != nil {
		t.Fatalf("start session failed: %v", err)
	}
	if view.SessionKey == "" {
		t.Fatalf("expected session key")
	}
	if len(view.Messages) != 1 {
		t.Fatalf("expected single greeting message, got %d", len(view.Messages))
	}
	greeting := view.Messages[0]
	if greeting.Role != constants.ChatRoleAssistant {
		t.Fatalf("expected assistant greeting, got role %s", greeting.Role)
	}
	if !strings.Contains(greeting.Content, "ERCO AI assistant") {
		t.Fatalf("unexpected greeting: %s", greeting.Content)
	}
	if len(view.QuickQuestions) == 0 {
		t.Fatalf("expected quick questions on fresh session")
	}
}

func TestSendMessageMatchesRuleAndHidesQuickQuestions(t *testing.T) {
	svc := setupChatbotServiceTest(t)

	session, err := svc.StartSession(nil)
	if err != nil {
		t.Fatalf("start session failed: %v", err)
	}

	view, err := svc.SendMessage(session.SessionKey, "How much do solar PANELS cost?")
	if err != nil {
		t.Fatalf("send message failed: %v", err)
	}
	if len(view.Messages) != 3 {
		t.Fatalf("expected greeting + question + reply, got %d", len(view.Messages))
	}
	reply := view.Messages[2]
	if reply.Role != constants.ChatRoleAssistant {
		t.Fatalf("expected assistant reply, got %s", reply.Role)
	}
	// "how much" 在规则表中先于 "cost"，应命中系统容量规则
	if !strings.Contains(reply.Content, "solar system size") {
		t.Fatalf("expected first-match rule reply, got: %s", reply.Content)
	}
	if len(view.QuickQuestions) != 0 {
		t.Fatalf("expected quick questions hidden after first exchange")
	}
}

func TestComposeReplyRuleOrderAndFallback(t *testing.T) {
	if reply := ComposeReply("what's the PRICE of a 5kw kit"); !strings.Contains(reply, "Solar system costs vary") {
		t.Fatalf("expected cost rule reply, got: %s", reply)
	}
	if reply := ComposeReply("on-grid or off-grid?"); !strings.Contains(reply, "On-Grid Systems") {
		t.Fatalf("expected grid rule reply, got: %s", reply)
	}
	if reply := ComposeReply("how long does INSTALLATION take"); !strings.Contains(reply, "Site assessment") {
		t.Fatalf("expected installation rule reply, got: %s", reply)
	}
	if reply := ComposeReply("do you ship to Abuja?"); !strings.Contains(reply, "Could you provide more details") {
		t.Fatalf("expected fallback reply, got: %s", reply)
	}
}

func TestSendMessageRejectsEmpty(t *testing.T) {
	svc := setupChatbotServiceTest(t)

	session, err := svc.StartSession(nil)
	if err != nil {
		t.Fatalf("start session failed: %v", err)
	}
	if _, err := svc.SendMessage(session.SessionKey, "   "); !errors.Is(err, ErrChatMessageEmpty) {
		t.Fatalf("expected ErrChatMessageEmpty, got %v", err)
	}
	if _, err := svc.SendMessage("missing-session", "hello"); !errors.Is(err, ErrChatSessionInvalid) {
		t.Fatalf("expected ErrChatSessionInvalid, got %v", err)
	}
}

func TestDeliverReplyStaleSequenceNoop(t *testing.T) {
	svc := setupChatbotServiceTest(t)

	session, err := svc.StartSession(nil)
	if err != nil {
		t.Fatalf("start session failed: %v", err)
	}
	view, err := svc.SendMessage(session.SessionKey, "price?")
	if err != nil {
		t.Fatalf("send message failed: %v", err)
	}
	count := len(view.Messages)

	// 序号已过期，不应追加第二条回复
	if err := svc.DeliverReply(session.SessionKey, count-1); err != nil {
		t.Fatalf("stale deliver failed: %v", err)
	}
	reloaded, err := svc.GetSession(session.SessionKey)
	if err != nil {
		t.Fatalf("reload session failed: %v", err)
	}
	if len(reloaded.Messages) != count {
		t.Fatalf("expected message count unchanged at %d, got %d", count, len(reloaded.Messages))
	}

	// 会话不存在时任务直接作废
	if err := svc.DeliverReply("gone-session", 2); err != nil {
		t.Fatalf("expected missing session ignored, got %v", err)
	}
}

func TestCleanupInactiveSessions(t *testing.T) {
	dsn := fmt.Sprintf("file:chatbot_cleanup_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.ChatSession{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{}
	queueClient, err := queue.NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("init queue client failed: %v", err)
	}
	svc := NewChatbotService(cfg, repository.NewChatSessionRepository(db), queueClient)

	stale, err := svc.StartSession(nil)
	if err != nil {
		t.Fatalf("start stale session failed: %v", err)
	}
	fresh, err := svc.StartSession(nil)
	if err != nil {
		t.Fatalf("start fresh session failed: %v", err)
	}

	old := time.Now().Add(-40 * 24 * time.Hour)
	if err := db.Model(&models.ChatSession{}).Where("session_key = ?", stale.SessionKey).
		Update("updated_at", old).Error; err != nil {
		t.Fatalf("backdate session failed: %v", err)
	}

	removed, err := svc.CleanupInactiveSessions(30 * 24 * time.Hour)
	if err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 session removed, got %d", removed)
	}

	if _, err := svc.GetSession(stale.SessionKey); !errors.Is(err, ErrChatSessionInvalid) {
		t.Fatalf("expected stale session gone, got %v", err)
	}
	if _, err := svc.GetSession(fresh.SessionKey); err != nil {
		t.Fatalf("expected fresh session kept, got %v", err)
	}
}
