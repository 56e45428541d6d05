// Package chat 实现了实时投递层的核心服务
// dispatcher.go
// 核心职责：入站帧的路由与业务编排
// 1. 按 destination 把帧解码为具体载荷并调用消息服务
// 2. 把业务结果翻译成各出站通道的事件，经 Hub 下发
// 3. 被拒绝的帧只在 errors 通道回执给发起者，不影响其他人
package chat

import (
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"yuanfen_chat_server/internal/dto/request"
	"yuanfen_chat_server/internal/dto/respond"
	"yuanfen_chat_server/pkg/errorx"
	"yuanfen_chat_server/pkg/enum/message/message_status_enum"
)

// inboundEnvelope 入站消息信封
// SenderId 由连接读协程按登录身份填入，不信任载荷自带的身份字段
type inboundEnvelope struct {
	SenderId    int64           `json:"senderId"`
	Destination string          `json:"destination"`
	Payload     json.RawMessage `json:"payload"`
}

// Dispatcher 入站帧分发器
// 由 Broker 的单消费协程驱动，处理过程本身不再起协程，
// 从而保证同一来源的事件按到达顺序生效
type Dispatcher struct {
	hub        *Hub
	msgService MessageService
}

// NewDispatcher 创建分发器
func NewDispatcher(hub *Hub, msgService MessageService) *Dispatcher {
	return &Dispatcher{
		hub:        hub,
		msgService: msgService,
	}
}

// Dispatch 处理一条入站消息
func (d *Dispatcher) Dispatch(data []byte) {
	var env inboundEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		zap.L().Error("入站消息解析失败", zap.Error(err))
		return
	}

	switch env.Destination {
	case request.DestChatSend:
		d.handleChatSend(&env)
	case request.DestChatTyping:
		d.handleTyping(&env)
	case request.DestChatStatus:
		d.handleStatus(&env)
	case request.DestChatRecall:
		d.handleRecall(&env)
	default:
		zap.L().Warn("未知的消息目的地",
			zap.Int64("senderId", env.SenderId), zap.String("destination", env.Destination))
		d.sendError(env.SenderId, env.Destination,
			errorx.Newf(errorx.CodeInvalidParam, "未知的消息目的地 %s", env.Destination))
	}
}

// handleChatSend 处理发送消息
// 落库成功后：
//  1. 发送方收到带 clientMessageId 的回执（chat 通道，SENT）
//  2. 接收方收到新消息（chat 通道，SENT）
//  3. 发送方收到乐观 DELIVERED 状态（chat-status 通道），不等待接收方确认
//  4. 接收方收到该会话的最新未读数（unread 通道）
func (d *Dispatcher) handleChatSend(env *inboundEnvelope) {
	var payload request.ChatMessagePayload
	if err := json.Unmarshal(env.Payload, &payload); err != nil {
		d.sendError(env.SenderId, env.Destination, errorx.Wrap(err, errorx.CodeInvalidParam, "载荷解析失败"))
		return
	}

	msgRsp, err := d.msgService.SendMessage(env.SenderId, &payload)
	if err != nil {
		d.sendError(env.SenderId, env.Destination, err)
		return
	}

	// 发送方回执，带客户端临时 ID 用于对账
	d.hub.SendToUser(env.SenderId, respond.ChannelChat, &respond.ChatMessageEvent{
		Message:         msgRsp,
		Status:          string(message_status_enum.Sent),
		ClientMessageId: payload.ClientMessageId,
	})
	// 推送给接收方
	d.hub.SendToUser(msgRsp.ReceiverId, respond.ChannelChat, &respond.ChatMessageEvent{
		Message: msgRsp,
		Status:  string(message_status_enum.Sent),
	})

	// 乐观 DELIVERED：落库即视为送达，actor 是发送方自己
	messageId := msgRsp.MessageId
	d.hub.SendToUser(env.SenderId, respond.ChannelChatStatus, &respond.MessageStatusEvent{
		MessageId: &messageId,
		MatchId:   msgRsp.MatchId,
		ActorId:   env.SenderId,
		PartnerId: msgRsp.ReceiverId,
		Status:    string(message_status_enum.Delivered),
	})

	// 接收方未读数刷新
	count, err := d.msgService.CountUnread(msgRsp.ReceiverId, msgRsp.MatchId)
	if err != nil {
		zap.L().Error("统计未读数失败", zap.Int64("matchId", msgRsp.MatchId), zap.Error(err))
		return
	}
	d.hub.SendToUser(msgRsp.ReceiverId, respond.ChannelUnread, &respond.UnreadCountEvent{
		MatchId: msgRsp.MatchId,
		Count:   count,
	})
}

// handleTyping 处理输入状态
// 纯转发，不落库；对方离线则静默丢弃
func (d *Dispatcher) handleTyping(env *inboundEnvelope) {
	var payload request.TypingSignalPayload
	if err := json.Unmarshal(env.Payload, &payload); err != nil {
		d.sendError(env.SenderId, env.Destination, errorx.Wrap(err, errorx.CodeInvalidParam, "载荷解析失败"))
		return
	}
	d.hub.SendToUser(payload.PartnerId, respond.ChannelTyping, &respond.TypingEvent{
		MatchId: payload.MatchId,
		UserId:  env.SenderId,
		Typing:  payload.Typing,
	})
}

// handleStatus 处理状态变更
// 仅支持 READ：messageId 为空时整会话批量已读，否则单条已读
// 已读是单调的，重复请求不产生新事件
func (d *Dispatcher) handleStatus(env *inboundEnvelope) {
	var payload request.MessageStatusPayload
	if err := json.Unmarshal(env.Payload, &payload); err != nil {
		d.sendError(env.SenderId, env.Destination, errorx.Wrap(err, errorx.CodeInvalidParam, "载荷解析失败"))
		return
	}
	if payload.Status != string(message_status_enum.Read) {
		d.sendError(env.SenderId, env.Destination,
			errorx.Newf(errorx.CodeInvalidParam, "不支持的状态变更 %s", payload.Status))
		return
	}

	if payload.MessageId == nil {
		// 整会话批量已读
		if err := d.msgService.MarkConversationRead(env.SenderId, payload.MatchId); err != nil {
			d.sendError(env.SenderId, env.Destination, err)
			return
		}
		// 本人未读数清零
		d.hub.SendToUser(env.SenderId, respond.ChannelUnread, &respond.UnreadCountEvent{
			MatchId: payload.MatchId,
			Count:   0,
		})
		// 通知对方：整会话已读
		d.hub.SendToUser(payload.PartnerId, respond.ChannelChatStatus, &respond.MessageStatusEvent{
			MessageId: nil,
			MatchId:   payload.MatchId,
			ActorId:   env.SenderId,
			PartnerId: payload.PartnerId,
			Status:    string(message_status_enum.Read),
		})
		return
	}

	// 单条已读
	msgRsp, changed, err := d.msgService.MarkRead(env.SenderId, *payload.MessageId)
	if err != nil {
		d.sendError(env.SenderId, env.Destination, err)
		return
	}
	if !changed {
		// 已读过或已撤回，无新事件
		return
	}
	// 状态回执发给消息发送方，并向已读方自身回显一份（多端同步）
	messageId := msgRsp.MessageId
	statusEvent := &respond.MessageStatusEvent{
		MessageId: &messageId,
		MatchId:   msgRsp.MatchId,
		ActorId:   env.SenderId,
		PartnerId: msgRsp.SenderId,
		Status:    string(message_status_enum.Read),
	}
	d.hub.SendToUser(msgRsp.SenderId, respond.ChannelChatStatus, statusEvent)
	d.hub.SendToUser(env.SenderId, respond.ChannelChatStatus, statusEvent)
	// 本人未读数刷新
	count, err := d.msgService.CountUnread(env.SenderId, msgRsp.MatchId)
	if err != nil {
		zap.L().Error("统计未读数失败", zap.Int64("matchId", msgRsp.MatchId), zap.Error(err))
		return
	}
	d.hub.SendToUser(env.SenderId, respond.ChannelUnread, &respond.UnreadCountEvent{
		MatchId: msgRsp.MatchId,
		Count:   count,
	})
}

// handleRecall 处理撤回
// 撤回成功后双方都会收到内容置空的占位消息和 DELETED 状态
func (d *Dispatcher) handleRecall(env *inboundEnvelope) {
	var payload request.MessageRecallPayload
	if err := json.Unmarshal(env.Payload, &payload); err != nil {
		d.sendError(env.SenderId, env.Destination, errorx.Wrap(err, errorx.CodeInvalidParam, "载荷解析失败"))
		return
	}

	msgRsp, err := d.msgService.RecallMessage(env.SenderId, payload.MessageId, payload.MatchId)
	if err != nil {
		d.sendError(env.SenderId, env.Destination, err)
		return
	}

	deletedEvent := &respond.ChatMessageEvent{
		Message: msgRsp,
		Status:  string(message_status_enum.Deleted),
	}
	messageId := msgRsp.MessageId
	statusEvent := &respond.MessageStatusEvent{
		MessageId: &messageId,
		MatchId:   msgRsp.MatchId,
		ActorId:   env.SenderId,
		PartnerId: msgRsp.ReceiverId,
		Status:    string(message_status_enum.Deleted),
	}
	for _, userId := range []int64{msgRsp.SenderId, msgRsp.ReceiverId} {
		d.hub.SendToUser(userId, respond.ChannelChat, deletedEvent)
		d.hub.SendToUser(userId, respond.ChannelChatStatus, statusEvent)
	}
}

// sendError 向发起者回执错误，仅发起者可见
func (d *Dispatcher) sendError(userId int64, destination string, err error) {
	code := errorx.GetCode(err)
	msg := "服务繁忙"
	var codeErr *errorx.CodeError
	if errors.As(err, &codeErr) {
		msg = codeErr.Msg
	}
	zap.L().Warn("帧处理被拒绝",
		zap.Int64("userId", userId), zap.String("destination", destination),
		zap.Int("code", code), zap.Error(err))
	d.hub.SendToUser(userId, respond.ChannelErrors, &respond.ErrorEvent{
		Code:        code,
		Msg:         msg,
		Destination: destination,
	})
}
