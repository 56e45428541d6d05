// Package service 提供 Service 层聚合与构造
// 遵循依赖倒置原则，通过构造函数注入 Repository、缓存与推送依赖
package service

import (
	"yuanfen_chat_server/internal/dao/mysql/repository"
	myredis "yuanfen_chat_server/internal/dao/redis"
	"yuanfen_chat_server/internal/infrastructure/sms"
	"yuanfen_chat_server/internal/service/auth"
	"yuanfen_chat_server/internal/service/match"
	"yuanfen_chat_server/internal/service/message"
	"yuanfen_chat_server/internal/service/notification"
	"yuanfen_chat_server/internal/service/user"
)

// Services 聚合所有 Service 实例
// 作为依赖注入的入口，Handler 层通过此结构访问业务层
type Services struct {
	Auth         *auth.Service
	User         *user.Service
	Message      *message.Service
	Notification *notification.Service
	Match        *match.Service
}

// NewServices 创建并注入所有 Service 实例
// pusher 由连接注册表实现，配对服务用它做实时事件扇出
func NewServices(
	repos *repository.Repositories,
	cache myredis.AsyncCacheService,
	smsService sms.SmsService,
	pusher match.EventPusher,
) *Services {
	return &Services{
		Auth:         auth.NewService(repos, cache, smsService),
		User:         user.NewService(repos),
		Message:      message.NewService(repos, cache),
		Notification: notification.NewService(repos),
		Match:        match.NewService(repos, pusher),
	}
}
