package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// ChatMessage 聊天消息
type ChatMessage struct {
	Role      string    `json:"role"`      // user/assistant
	Content   string    `json:"content"`   // 消息内容
	Timestamp time.Time `json:"timestamp"` // 消息时间
}

// ChatMessages 聊天消息数组类型
type ChatMessages []ChatMessage

// Value 实现 driver.Valuer 接口
func (m ChatMessages) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan 实现 sql.Scanner 接口
func (m *ChatMessages) Scan(value interface{}) error {
	if value == nil {
		*m = ChatMessages{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, m)
}

// ChatSession 聊天会话表
// 消息只追加，首条为助手问候语
type ChatSession struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                    // 主键
	SessionKey string         `gorm:"type:varchar(64);not null;uniqueIndex" json:"session_id"` // 会话标识
	UserID     *uint          `gorm:"index" json:"user_id,omitempty"`                          // 关联用户（可空）
	Messages   ChatMessages   `gorm:"type:json" json:"messages"`                               // 消息列表
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt  time.Time      `gorm:"index" json:"updated_at"`                                 // 更新时间
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间
}

// TableName 指定表名
func (ChatSession) TableName() string {
	return "ai_chat_sessions"
}
