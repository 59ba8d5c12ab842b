package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/erco-market/internal/models"

	"gorm.io/gorm"
)

// ChatSessionRepository 客服会话数据访问接口
type ChatSessionRepository interface {
	GetBySessionKey(sessionKey string) (*models.ChatSession, error)
	Create(session *models.ChatSession) error
	Update(session *models.ChatSession) error
	DeleteInactiveBefore(before time.Time) (int64, error)
}

// GormChatSessionRepository GORM 实现
type GormChatSessionRepository struct {
	db *gorm.DB
}

// NewChatSessionRepository 创建客服会话仓库
func NewChatSessionRepository(db *gorm.DB) *GormChatSessionRepository {
	return &GormChatSessionRepository{db: db}
}

// GetBySessionKey 按会话标识获取会话
func (r *GormChatSessionRepository) GetBySessionKey(sessionKey string) (*models.ChatSession, error) {
	key := strings.TrimSpace(sessionKey)
	if key == "" {
		return nil, nil
	}
	var session models.ChatSession
	if err := r.db.Where("session_key = ?", key).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// Create 创建会话
func (r *GormChatSessionRepository) Create(session *models.ChatSession) error {
	return r.db.Create(session).Error
}

// Update 更新会话
func (r *GormChatSessionRepository) Update(session *models.ChatSession) error {
	return r.db.Save(session).Error
}

// DeleteInactiveBefore 清理长时间无更新的会话
func (r *GormChatSessionRepository) DeleteInactiveBefore(before time.Time) (int64, error) {
	result := r.db.Where("updated_at < ?", before).Delete(&models.ChatSession{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
