// Package notification 实现通知查询与已读服务
package notification

import (
	"yuanfen_chat_server/internal/dao/mysql/repository"
	"yuanfen_chat_server/internal/dto/respond"
)

// Service 通知服务
type Service struct {
	repos *repository.Repositories
}

// NewService 创建通知服务
func NewService(repos *repository.Repositories) *Service {
	return &Service{repos: repos}
}

// GetNotifications 查询用户全部通知
func (s *Service) GetNotifications(userId int64) ([]*respond.NotificationRespond, error) {
	notifications, err := s.repos.Notification.FindByUserId(userId)
	if err != nil {
		return nil, err
	}
	return respond.NewNotificationRespondList(notifications), nil
}

// GetUnreadNotifications 查询用户未读通知
func (s *Service) GetUnreadNotifications(userId int64) ([]*respond.NotificationRespond, error) {
	notifications, err := s.repos.Notification.FindUnreadByUserId(userId)
	if err != nil {
		return nil, err
	}
	return respond.NewNotificationRespondList(notifications), nil
}

// MarkRead 将单条通知置为已读
// 带 userId 条件，只能操作自己的通知
func (s *Service) MarkRead(userId, notificationId int64) error {
	return s.repos.Notification.MarkRead(notificationId, userId)
}
