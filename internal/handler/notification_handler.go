// Package handler 提供 HTTP 请求处理器
// 本文件处理通知相关的 API 请求
package handler

import (
	"strconv"

	"yuanfen_chat_server/internal/service/notification"
	"yuanfen_chat_server/internal/service/user"
	"yuanfen_chat_server/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// NotificationHandler 通知请求处理器
type NotificationHandler struct {
	notificationSvc *notification.Service
	userSvc         *user.Service
}

// NewNotificationHandler 创建通知处理器
func NewNotificationHandler(notificationSvc *notification.Service, userSvc *user.Service) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc, userSvc: userSvc}
}

// GetNotifications 查询通知列表
// GET /notification/list
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	profile, err := currentUserProfile(c, h.userSvc)
	if err != nil {
		HandleError(c, err)
		return
	}
	list, err := h.notificationSvc.GetNotifications(profile.Id)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, list)
}

// GetUnreadNotifications 查询未读通知
// GET /notification/unread
func (h *NotificationHandler) GetUnreadNotifications(c *gin.Context) {
	profile, err := currentUserProfile(c, h.userSvc)
	if err != nil {
		HandleError(c, err)
		return
	}
	list, err := h.notificationSvc.GetUnreadNotifications(profile.Id)
	if err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, list)
}

// MarkRead 将单条通知置为已读
// POST /notification/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		HandleError(c, errorx.New(errorx.CodeInvalidParam, "通知 id 格式错误"))
		return
	}
	profile, err := currentUserProfile(c, h.userSvc)
	if err != nil {
		HandleError(c, err)
		return
	}
	if err := h.notificationSvc.MarkRead(profile.Id, id); err != nil {
		HandleError(c, err)
		return
	}
	HandleSuccess(c, nil)
}
