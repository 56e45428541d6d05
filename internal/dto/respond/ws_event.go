package respond

// WebSocket 出站通道名
// 客户端按 channel 字段路由到各自的处理器
const (
	ChannelChat       = "chat"        // 新消息、撤回后的占位更新
	ChannelChatStatus = "chat-status" // 投递状态变更
	ChannelTyping     = "typing"      // 输入状态
	ChannelUnread     = "unread"      // 未读计数
	ChannelMatch      = "match"       // 配对成功
	ChannelPresence   = "presence"    // 在线状态广播
	ChannelErrors     = "errors"      // 被拒绝帧的错误回执
)

// WsEvent WebSocket 出站事件
// 帧格式：{"channel": "chat", "payload": {...}}
type WsEvent struct {
	Channel string `json:"channel"`
	Payload any    `json:"payload"`
}

// ChatMessageEvent chat 通道载荷：一条消息及其当前状态
type ChatMessageEvent struct {
	Message         *MessageRespond `json:"message"`
	Status          string          `json:"status"`
	ClientMessageId string          `json:"clientMessageId,omitempty"` // 仅发送方回执携带
}

// MessageStatusEvent chat-status 通道载荷
// MessageId 为空表示整会话批量状态变更
type MessageStatusEvent struct {
	MessageId *int64 `json:"messageId"`
	MatchId   int64  `json:"matchId"`
	ActorId   int64  `json:"actorId"` // 触发状态变更的用户
	PartnerId int64  `json:"partnerId"`
	Status    string `json:"status"`
}

// TypingEvent typing 通道载荷
type TypingEvent struct {
	MatchId int64 `json:"matchId"`
	UserId  int64 `json:"userId"` // 正在输入的用户
	Typing  bool  `json:"typing"`
}

// UnreadCountEvent unread 通道载荷
type UnreadCountEvent struct {
	MatchId int64 `json:"matchId"`
	Count   int64 `json:"count"`
}

// PresenceEvent presence 通道载荷，0/1 在线阈值跨越时广播
type PresenceEvent struct {
	UserId int64 `json:"userId"`
	Online bool  `json:"online"`
}

// MatchEvent match 通道载荷，配对形成时分别推给双方
type MatchEvent struct {
	MatchId     int64 `json:"matchId"`
	OtherUserId int64 `json:"otherUserId"`
}

// ErrorEvent errors 通道载荷，仅回给出错帧的发起连接
type ErrorEvent struct {
	Code        int    `json:"code"`
	Msg         string `json:"msg"`
	Destination string `json:"destination"` // 出错帧的目的地
}
