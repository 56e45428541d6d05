package request

import "encoding/json"

// WebSocket 入站目的地
// 客户端帧格式：{"destination": "chat.send", "payload": {...}}
const (
	DestChatSend   = "chat.send"   // 发送消息
	DestChatTyping = "chat.typing" // 输入状态
	DestChatStatus = "chat.status" // 已读/状态变更
	DestChatRecall = "chat.recall" // 撤回消息
)

// WsFrame WebSocket 入站帧
// Payload 延迟解析，由分发器按 Destination 解码为具体载荷
type WsFrame struct {
	Destination string          `json:"destination"`
	Payload     json.RawMessage `json:"payload"`
}

// ChatMessagePayload chat.send 载荷
// 发送者身份一律取连接登录身份，载荷中不携带 senderId
type ChatMessagePayload struct {
	MatchId         int64  `json:"matchId"`
	ReceiverId      int64  `json:"receiverId"`
	Content         string `json:"content"`
	Kind            string `json:"kind"`            // TEXT/IMAGE/AUDIO，空值按 TEXT 处理
	ClientMessageId string `json:"clientMessageId"` // 客户端临时 ID，原样回带用于发送方对账
}

// TypingSignalPayload chat.typing 载荷
type TypingSignalPayload struct {
	MatchId   int64 `json:"matchId"`
	PartnerId int64 `json:"partnerId"`
	Typing    bool  `json:"typing"`
}

// MessageStatusPayload chat.status 载荷
// MessageId 为空且 Status=READ 时表示整会话批量已读
type MessageStatusPayload struct {
	MessageId *int64 `json:"messageId"`
	MatchId   int64  `json:"matchId"`
	PartnerId int64  `json:"partnerId"`
	Status    string `json:"status"`
}

// MessageRecallPayload chat.recall 载荷
// MatchId 用于关联校验，与消息实际归属不符时拒绝
type MessageRecallPayload struct {
	MessageId int64 `json:"messageId"`
	MatchId   int64 `json:"matchId"`
}
