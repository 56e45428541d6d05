// Package respond 定义 HTTP 与 WebSocket 出站数据结构
package respond

import (
	"time"

	"yuanfen_chat_server/internal/model"
)

// MessageRespond 消息视图
// 由 model.Message 转换而来，已撤回的消息内容置空，仅保留占位
type MessageRespond struct {
	MessageId  int64     `json:"messageId"` // 雪花 ID
	MatchId    int64     `json:"matchId"`
	SenderId   int64     `json:"senderId"`
	ReceiverId int64     `json:"receiverId"`
	Content    string    `json:"content"`
	Kind       string    `json:"kind"`
	IsRead     bool      `json:"isRead"`
	IsDeleted  bool      `json:"isDeleted"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewMessageRespond 将消息实体转换为对外视图
// 撤回的消息不向任何一方透出原文
func NewMessageRespond(m *model.Message) *MessageRespond {
	rsp := &MessageRespond{
		MessageId:  m.Uuid,
		MatchId:    m.MatchId,
		SenderId:   m.SenderId,
		ReceiverId: m.ReceiverId,
		Content:    m.Content,
		Kind:       m.Kind,
		IsRead:     m.IsRead,
		IsDeleted:  m.IsDeleted,
		CreatedAt:  m.CreatedAt,
	}
	if m.IsDeleted {
		rsp.Content = ""
	}
	return rsp
}

// NewMessageRespondList 批量转换消息实体
func NewMessageRespondList(messages []model.Message) []*MessageRespond {
	list := make([]*MessageRespond, 0, len(messages))
	for i := range messages {
		list = append(list, NewMessageRespond(&messages[i]))
	}
	return list
}
