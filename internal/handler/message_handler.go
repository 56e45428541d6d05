// Package handler 提供 HTTP 请求处理器
// 本文件处理消息查询相关的 API 请求（历史拉取与未读统计走 HTTP，收发走 WebSocket）
package handler

import (
	"strconv"

	"yuanfen_chat_server/internal/service/message"
	"yuanfen_chat_server/internal/service/user"
	"yuanfen_chat_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// MessageHandler 消息查询请求处理器
type MessageHandler struct {
	messageSvc *message.Service
	userSvc    *user.Service
}

// NewMessageHandler 创建消息处理器
func NewMessageHandler(messageSvc *message.Service, userSvc *user.Service) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc, userSvc: userSvc}
}

// GetMessageList 查询会话消息列表
// GET /message/list?matchId=xxx
func (h *MessageHandler) GetMessageList(c *gin.Context) {
	matchId, err := strconv.ParseInt(c.Query("matchId"), 10, 64)
	if err != nil {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "matchId 格式错误"))
		return
	}
	profile, err := currentUserProfile(c, h.userSvc)
	if err != nil {
		HandleError(c, err)
		return
	}
	list, err := h.messageSvc.GetMessageList(profile.Id, matchId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, list)
}

// GetUnreadCount 查询未读消息数
// GET /message/unreadCount?matchId=xxx（matchId 省略时统计全部会话）
func (h *MessageHandler) GetUnreadCount(c *gin.Context) {
	var matchId int64
	if raw := c.Query("matchId"); raw != "" {
		var err error
		matchId, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			HandleError(c, errorx.New(errorx.CodeInvalidParam, "matchId 格式错误"))
			return
		}
	}
	profile, err := currentUserProfile(c, h.userSvc)
	if err != nil {
		HandleError(c, err)
		return
	}
	count, err := h.messageSvc.CountUnread(profile.Id, matchId)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, gin.H{"count": count})
}
