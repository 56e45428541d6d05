// Package message 实现消息生命周期服务
// 负责消息的校验、落库、已读、撤回与未读统计
// 所有写路径都先做参与者与归属校验，越权请求不产生任何副作用
package message

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"yuanfen_chat_server/internal/dao/mysql/repository"
	myredis "yuanfen_chat_server/internal/dao/redis"
	"yuanfen_chat_server/internal/dto/request"
	"yuanfen_chat_server/internal/dto/respond"
	"yuanfen_chat_server/internal/model"
	"yuanfen_chat_server/pkg/constants"
	"yuanfen_chat_server/pkg/errorx"
	"yuanfen_chat_server/pkg/enum/message/message_kind_enum"
	"yuanfen_chat_server/pkg/enum/notification/notification_type_enum"
	"yuanfen_chat_server/pkg/util/snowflake"
)

// ReferenceTypeMessage 通知表中消息类通知的关联类型
const ReferenceTypeMessage = "MESSAGE"

// Service 消息生命周期服务
type Service struct {
	repos *repository.Repositories
	cache myredis.AsyncCacheService
}

// NewService 创建消息服务
func NewService(repos *repository.Repositories, cache myredis.AsyncCacheService) *Service {
	return &Service{repos: repos, cache: cache}
}

// messageListKey 会话消息列表的缓存键
func messageListKey(matchId int64) string {
	return fmt.Sprintf("message_list_%d", matchId)
}

// buildPreview 生成通知预览
// 按字符（rune）计数，超过上限截断并加省略号
func buildPreview(content string) string {
	runes := []rune(content)
	if len(runes) > constants.PREVIEW_MAX_LEN {
		return string(runes[:constants.PREVIEW_CUT_LEN]) + "..."
	}
	return content
}

// loadMatchForParticipant 查找会话并校验用户是其参与者
func (s *Service) loadMatchForParticipant(matchId, userId int64) (*model.Match, error) {
	match, err := s.repos.Match.FindByMatchId(matchId)
	if err != nil {
		return nil, err
	}
	if !match.IsParticipant(userId) {
		return nil, errorx.Newf(errorx.CodeForbidden, "用户 %d 不是会话 %d 的参与者", userId, matchId)
	}
	return match, nil
}

// invalidateMessageList 异步失效会话消息列表缓存
func (s *Service) invalidateMessageList(matchId int64) {
	if s.cache == nil {
		return
	}
	s.cache.SubmitTask(func() {
		if err := s.cache.Delete(context.Background(), messageListKey(matchId)); err != nil {
			zap.L().Warn("失效消息列表缓存失败", zap.Int64("matchId", matchId), zap.Error(err))
		}
	})
}

// SendMessage 校验并持久化一条消息
// 校验链：内容非空 -> 类型合法 -> 会话存在 -> 发送方是参与者 ->
// 接收方是会话的另一方（隐含排除发给自己）
// 消息与 MESSAGE 通知在同一事务内写入，要么都成功要么都回滚
func (s *Service) SendMessage(senderId int64, payload *request.ChatMessagePayload) (*respond.MessageRespond, error) {
	content := strings.TrimSpace(payload.Content)
	if content == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "消息内容不能为空")
	}

	kind := payload.Kind
	if kind == "" {
		kind = string(message_kind_enum.Text)
	}
	if !message_kind_enum.MessageKind(kind).Valid() {
		return nil, errorx.Newf(errorx.CodeInvalidParam, "非法的消息类型 %s", kind)
	}

	match, err := s.loadMatchForParticipant(payload.MatchId, senderId)
	if err != nil {
		return nil, err
	}
	if payload.ReceiverId == senderId {
		return nil, errorx.New(errorx.CodeInvalidParam, "不能给自己发送消息")
	}
	if payload.ReceiverId != match.OtherUser(senderId) {
		return nil, errorx.New(errorx.CodeInvalidParam, "接收方与会话不匹配")
	}

	sender, err := s.repos.User.FindByUserId(senderId)
	if err != nil {
		return nil, err
	}

	message := &model.Message{
		Uuid:       snowflake.GenId(),
		MatchId:    match.Id,
		SenderId:   senderId,
		ReceiverId: payload.ReceiverId,
		Content:    content,
		Kind:       kind,
	}
	notification := &model.Notification{
		UserId:        payload.ReceiverId,
		Type:          string(notification_type_enum.Message),
		Content:       fmt.Sprintf("%s: %s", sender.Nickname, buildPreview(content)),
		ReferenceId:   message.Uuid,
		ReferenceType: ReferenceTypeMessage,
	}

	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Message.Create(message); err != nil {
			return err
		}
		return tx.Notification.Create(notification)
	})
	if err != nil {
		return nil, err
	}

	s.invalidateMessageList(match.Id)
	return respond.NewMessageRespond(message), nil
}

// MarkRead 单条消息置已读
// 只有接收方能读自己的消息；已读与已撤回的消息是 no-op，返回 changed=false
// 状态确实变化时，在同一事务内把关联的 MESSAGE 通知一并置为已读
func (s *Service) MarkRead(actorId, messageId int64) (*respond.MessageRespond, bool, error) {
	message, err := s.repos.Message.FindByUuid(messageId)
	if err != nil {
		return nil, false, err
	}
	if message.ReceiverId != actorId {
		return nil, false, errorx.New(errorx.CodeForbidden, "仅接收方可将消息置为已读")
	}
	if message.IsRead || message.IsDeleted {
		return respond.NewMessageRespond(message), false, nil
	}

	var changed bool
	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		var err error
		changed, err = tx.Message.MarkRead(messageId)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
		return tx.Notification.ResolveByReference(messageId, ReferenceTypeMessage)
	})
	if err != nil {
		return nil, false, err
	}
	if changed {
		message.IsRead = true
		s.invalidateMessageList(message.MatchId)
	}
	return respond.NewMessageRespond(message), changed, nil
}

// MarkConversationRead 整会话批量置已读
// 逐条走条件更新并解决对应通知，整体在一个事务内完成
func (s *Service) MarkConversationRead(actorId, matchId int64) error {
	if _, err := s.loadMatchForParticipant(matchId, actorId); err != nil {
		return err
	}

	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		unread, err := tx.Message.FindUnread(matchId, actorId)
		if err != nil {
			return err
		}
		for i := range unread {
			changed, err := tx.Message.MarkRead(unread[i].Uuid)
			if err != nil {
				return err
			}
			if changed {
				if err := tx.Notification.ResolveByReference(unread[i].Uuid, ReferenceTypeMessage); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateMessageList(matchId)
	return nil
}

// RecallMessage 撤回消息
// 仅发送方可撤回；matchId 与消息实际归属不符时拒绝；重复撤回幂等
// 撤回后关联通知一并解决，避免对方的未读通知指向空占位
func (s *Service) RecallMessage(actorId, messageId, matchId int64) (*respond.MessageRespond, error) {
	message, err := s.repos.Message.FindByUuid(messageId)
	if err != nil {
		return nil, err
	}
	if message.SenderId != actorId {
		return nil, errorx.New(errorx.CodeForbidden, "仅发送方可撤回消息")
	}
	if message.MatchId != matchId {
		return nil, errorx.New(errorx.CodeInvalidParam, "消息与会话不匹配")
	}
	if message.IsDeleted {
		// 幂等：重复撤回直接返回占位视图
		return respond.NewMessageRespond(message), nil
	}

	now := time.Now()
	err = s.repos.Transaction(func(tx *repository.Repositories) error {
		if err := tx.Message.Recall(messageId, now); err != nil {
			return err
		}
		return tx.Notification.ResolveByReference(messageId, ReferenceTypeMessage)
	})
	if err != nil {
		return nil, err
	}

	message.IsDeleted = true
	message.RecalledAt.Time = now
	message.RecalledAt.Valid = true
	s.invalidateMessageList(matchId)
	return respond.NewMessageRespond(message), nil
}

// CountUnread 统计未读数，matchId 为 0 时统计全部会话
func (s *Service) CountUnread(userId, matchId int64) (int64, error) {
	return s.repos.Message.CountUnread(userId, matchId)
}

// GetMessageList 查询会话消息列表
// 先查缓存，未命中时回源数据库并异步写回
func (s *Service) GetMessageList(userId, matchId int64) ([]*respond.MessageRespond, error) {
	if _, err := s.loadMatchForParticipant(matchId, userId); err != nil {
		return nil, err
	}

	key := messageListKey(matchId)
	if s.cache != nil {
		cached, err := s.cache.Get(context.Background(), key)
		if err == nil && cached != "" {
			var list []*respond.MessageRespond
			if err := json.Unmarshal([]byte(cached), &list); err == nil {
				return list, nil
			}
			zap.L().Warn("消息列表缓存解析失败", zap.Int64("matchId", matchId), zap.Error(err))
		}
	}

	messages, err := s.repos.Message.FindByMatchId(matchId)
	if err != nil {
		return nil, err
	}
	list := respond.NewMessageRespondList(messages)

	if s.cache != nil {
		s.cache.SubmitTask(func() {
			data, err := json.Marshal(list)
			if err != nil {
				return
			}
			_ = s.cache.Set(context.Background(), key, string(data), time.Minute*constants.REDIS_TIMEOUT)
		})
	}
	return list, nil
}
