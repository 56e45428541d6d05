// Package match 实现配对会话服务
// 配对形成后通过 EventPusher 向双方实时推送 match 事件，
// 并为双方各落一条 MATCH 通知
package match

import (
	"fmt"
	"time"

	"yuanfen_chat_server/internal/dao/mysql/repository"
	"yuanfen_chat_server/internal/dto/respond"
	"yuanfen_chat_server/internal/model"
	"yuanfen_chat_server/pkg/errorx"
	"yuanfen_chat_server/pkg/enum/notification/notification_type_enum"
)

// ReferenceTypeMatch 通知表中配对类通知的关联类型
const ReferenceTypeMatch = "MATCH"

// EventPusher 实时事件推送接口，由连接注册表实现
// 在此定义避免 service 层反向依赖 chat 包
type EventPusher interface {
	SendToUser(userId int64, channel string, payload any)
}

// Service 配对服务
type Service struct {
	repos  *repository.Repositories
	pusher EventPusher
}

// NewService 创建配对服务
func NewService(repos *repository.Repositories, pusher EventPusher) *Service {
	return &Service{repos: repos, pusher: pusher}
}

// CreateMatch 创建配对
// 双方各收到一条 MATCH 通知和一条 match 实时事件
func (s *Service) CreateMatch(userId, targetUserId int64, compatibilityScore float64) (*respond.MatchRespond, error) {
	if targetUserId == userId {
		return nil, errorx.New(errorx.CodeInvalidParam, "不能与自己配对")
	}
	target, err := s.repos.User.FindByUserId(targetUserId)
	if err != nil {
		return nil, err
	}
	self, err := s.repos.User.FindByUserId(userId)
	if err != nil {
		return nil, err
	}

	// 已存在的配对不允许重复创建
	if existing, err := s.repos.Match.FindBetween(userId, targetUserId); err == nil && existing != nil {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "配对已存在 matchId=%d", existing.Id)
	} else if err != nil && !errorx.IsNotFound(err) {
		return nil, err
	}

	match := &model.Match{
		User1Id:            userId,
		User2Id:            targetUserId,
		MatchedAt:          time.Now(),
		CompatibilityScore: compatibilityScore,
	}
	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Match.Create(match); err != nil {
			return err
		}
		notifications := []*model.Notification{
			{
				UserId:        userId,
				Type:          string(notification_type_enum.Match),
				Content:       fmt.Sprintf("你和 %s 配对成功，开始聊天吧", target.Nickname),
				ReferenceId:   match.Id,
				ReferenceType: ReferenceTypeMatch,
			},
			{
				UserId:        targetUserId,
				Type:          string(notification_type_enum.Match),
				Content:       fmt.Sprintf("你和 %s 配对成功，开始聊天吧", self.Nickname),
				ReferenceId:   match.Id,
				ReferenceType: ReferenceTypeMatch,
			},
		}
		for _, n := range notifications {
			if err := tx.Notification.Create(n); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 实时推送给双方，离线方静默丢弃，上线后走通知列表补偿
	if s.pusher != nil {
		s.pusher.SendToUser(userId, respond.ChannelMatch, &respond.MatchEvent{
			MatchId:     match.Id,
			OtherUserId: targetUserId,
		})
		s.pusher.SendToUser(targetUserId, respond.ChannelMatch, &respond.MatchEvent{
			MatchId:     match.Id,
			OtherUserId: userId,
		})
	}
	return respond.NewMatchRespond(match, userId), nil
}

// GetMatches 查询用户的配对列表
func (s *Service) GetMatches(userId int64) ([]*respond.MatchRespond, error) {
	matches, err := s.repos.Match.FindByUserId(userId)
	if err != nil {
		return nil, err
	}
	list := make([]*respond.MatchRespond, 0, len(matches))
	for i := range matches {
		list = append(list, respond.NewMatchRespond(&matches[i], userId))
	}
	return list, nil
}
