// Package chat 实现了实时投递层的核心服务
// conn.go
// 核心职责：单条 WebSocket 连接的读写生命周期
// 1. 读协程：收帧 -> 盖上连接登录身份 -> 投递给 Broker
// 2. 写协程：消费 SendBack 通道 -> 带超时写回前端
// 3. Close 幂等，任一协程出错都会触发完整清理
package chat

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"yuanfen_chat_server/internal/dto/request"
	"yuanfen_chat_server/internal/dto/respond"
)

const (
	// defaultMaxMessageBytes 单帧最大字节数，超限直接断开连接
	defaultMaxMessageBytes = 2 << 20 // 2MB
	// defaultSendTimeout 单条下行写超时，超时视为连接不可用
	defaultSendTimeout = 20 * time.Second
)

// UserConn 单个 WebSocket 连接
// 同一用户可以有多条 UserConn 同时存在（多端在线）
type UserConn struct {
	Conn      *websocket.Conn
	UserId    int64                 // 用户资料 ID，事件路由的身份标识
	AccountId int64                 // 登录账号 ID
	SendBack  chan *respond.WsEvent // 下行事件通道

	hub         *Hub
	broker      MessageBroker
	sendTimeout time.Duration
	closeOnce   sync.Once
}

// NewUserConn 创建连接对象
// maxMessageBytes/sendTimeout 传 0 时取默认值
func NewUserConn(conn *websocket.Conn, userId, accountId int64, hub *Hub, broker MessageBroker,
	maxMessageBytes int64, sendTimeout time.Duration, channelSize int) *UserConn {
	if maxMessageBytes <= 0 {
		maxMessageBytes = defaultMaxMessageBytes
	}
	if sendTimeout <= 0 {
		sendTimeout = defaultSendTimeout
	}
	if channelSize <= 0 {
		channelSize = defaultChannelSize
	}
	conn.SetReadLimit(maxMessageBytes)
	return &UserConn{
		Conn:        conn,
		UserId:      userId,
		AccountId:   accountId,
		SendBack:    make(chan *respond.WsEvent, channelSize),
		hub:         hub,
		broker:      broker,
		sendTimeout: sendTimeout,
	}
}

// Read 读协程主循环
// 每一帧解析出 destination 后，盖上连接的登录身份再投递，
// 载荷里即使伪造 senderId 也不会生效
func (c *UserConn) Read() {
	defer c.Close()
	zap.L().Debug("ws read goroutine start", zap.Int64("userId", c.UserId))
	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			// 正常断开与超限断开都走这里
			zap.L().Info("ws连接读取结束", zap.Int64("userId", c.UserId), zap.Error(err))
			return
		}

		var frame request.WsFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			zap.L().Warn("非法帧，无法解析", zap.Int64("userId", c.UserId), zap.Error(err))
			continue
		}

		envelope := &inboundEnvelope{
			SenderId:    c.UserId,
			Destination: frame.Destination,
			Payload:     frame.Payload,
		}
		raw, err := json.Marshal(envelope)
		if err != nil {
			zap.L().Error("序列化入站消息失败", zap.Error(err))
			continue
		}
		if err := c.broker.Publish(context.Background(), raw); err != nil {
			zap.L().Error("投递入站消息失败", zap.Int64("userId", c.UserId), zap.Error(err))
		}
	}
}

// Write 写协程主循环
// 单次写入带超时，写失败即关闭连接，由客户端负责重连
func (c *UserConn) Write() {
	defer c.Close()
	zap.L().Debug("ws write goroutine start", zap.Int64("userId", c.UserId))
	for event := range c.SendBack {
		if err := c.Conn.SetWriteDeadline(time.Now().Add(c.sendTimeout)); err != nil {
			zap.L().Error("设置写超时失败", zap.Int64("userId", c.UserId), zap.Error(err))
			return
		}
		if err := c.Conn.WriteJSON(event); err != nil {
			zap.L().Error("ws写入失败", zap.Int64("userId", c.UserId), zap.Error(err))
			return
		}
	}
}

// Close 幂等关闭连接
// 必须先从 Hub 注销再关闭 SendBack：注销会等待在途的下发持锁结束，
// 之后不再有协程能向该通道写入，关闭才是安全的
func (c *UserConn) Close() {
	c.closeOnce.Do(func() {
		c.hub.Unregister(c)
		close(c.SendBack)
		if err := c.Conn.Close(); err != nil {
			zap.L().Debug("关闭ws连接", zap.Error(err))
		}
	})
}
