package public

import (
	"errors"

	"github.com/erco-market/internal/http/response"
	"github.com/erco-market/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatMessageRequest 发送消息请求
type ChatMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// StartChatSession 开启客服会话，游客亦可使用
func (h *Handler) StartChatSession(c *gin.Context) {
	view, err := h.ChatbotService.StartSession(optionalUserID(c))
	if err != nil {
		respondError(c, response.CodeInternal, "error.chat_failed", err)
		return
	}
	response.Success(c, view)
}

// GetChatSession 获取会话消息
func (h *Handler) GetChatSession(c *gin.Context) {
	view, err := h.ChatbotService.GetSession(c.Param("session_id"))
	if err != nil {
		if errors.Is(err, service.ErrChatSessionInvalid) {
			respondError(c, response.CodeNotFound, "error.chat_session_invalid", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.chat_failed", err)
		return
	}
	response.Success(c, view)
}

// SendChatMessage 发送消息，机器人延迟回复
func (h *Handler) SendChatMessage(c *gin.Context) {
	var req ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.chat_message_empty", err)
		return
	}

	view, err := h.ChatbotService.SendMessage(c.Param("session_id"), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChatMessageEmpty):
			respondError(c, response.CodeBadRequest, "error.chat_message_empty", nil)
		case errors.Is(err, service.ErrChatSessionInvalid):
			respondError(c, response.CodeNotFound, "error.chat_session_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.chat_failed", err)
		}
		return
	}
	response.Success(c, view)
}

// optionalUserID 读取登录用户，游客返回 nil
func optionalUserID(c *gin.Context) *uint {
	value, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	if uid, ok := value.(uint); ok && uid > 0 {
		return &uid
	}
	return nil
}
