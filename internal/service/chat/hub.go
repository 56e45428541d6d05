// Package chat 实现了实时投递层的核心服务
// hub.go
// 核心职责：连接注册表与事件下发
// 1. 维护 userId -> 连接集合 的映射，支持同一用户多端在线
// 2. 连接注册/注销与在线计数在同一临界区内完成，保证状态一致
// 3. 提供 SendToUser/Broadcast 两种下发方式
package chat

import (
	"sync"

	"go.uber.org/zap"

	"yuanfen_chat_server/internal/dto/respond"
)

// Hub 连接注册表
type Hub struct {
	mu       sync.RWMutex
	conns    map[int64]map[*UserConn]struct{} // userId -> 连接集合
	presence *PresenceTracker
}

// NewHub 创建连接注册表
func NewHub() *Hub {
	return &Hub{
		conns:    make(map[int64]map[*UserConn]struct{}),
		presence: NewPresenceTracker(),
	}
}

// Register 注册连接
// 注册与在线计数在同一临界区内完成，广播在释放锁后进行，
// 避免 Broadcast 需要读锁时造成死锁
func (h *Hub) Register(conn *UserConn) {
	h.mu.Lock()
	set, ok := h.conns[conn.UserId]
	if !ok {
		set = make(map[*UserConn]struct{})
		h.conns[conn.UserId] = set
	}
	set[conn] = struct{}{}
	cameOnline := h.presence.MarkOnline(conn.UserId)
	h.mu.Unlock()

	zap.L().Info("ws连接注册", zap.Int64("userId", conn.UserId))
	if cameOnline {
		h.Broadcast(respond.ChannelPresence, &respond.PresenceEvent{
			UserId: conn.UserId,
			Online: true,
		})
	}
}

// Unregister 注销连接
// 先做成员检查，未注册过的连接不影响在线计数，保证 Close 幂等
func (h *Hub) Unregister(conn *UserConn) {
	h.mu.Lock()
	set, ok := h.conns[conn.UserId]
	if !ok {
		h.mu.Unlock()
		return
	}
	if _, member := set[conn]; !member {
		h.mu.Unlock()
		return
	}
	delete(set, conn)
	if len(set) == 0 {
		delete(h.conns, conn.UserId)
	}
	wentOffline := h.presence.MarkOffline(conn.UserId)
	h.mu.Unlock()

	zap.L().Info("ws连接注销", zap.Int64("userId", conn.UserId))
	if wentOffline {
		h.Broadcast(respond.ChannelPresence, &respond.PresenceEvent{
			UserId: conn.UserId,
			Online: false,
		})
	}
}

// SendToUser 向指定用户的所有在线连接下发事件
// 用户离线时静默丢弃；某条连接写通道满时丢弃该条连接的本次事件，
// 绝不阻塞调用方（分发循环不能被慢连接拖住）
func (h *Hub) SendToUser(userId int64, channel string, payload any) {
	event := &respond.WsEvent{Channel: channel, Payload: payload}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.conns[userId] {
		select {
		case conn.SendBack <- event:
		default:
			zap.L().Warn("连接写通道已满，丢弃事件",
				zap.Int64("userId", userId), zap.String("channel", channel))
		}
	}
}

// Broadcast 向所有在线连接广播事件
func (h *Hub) Broadcast(channel string, payload any) {
	event := &respond.WsEvent{Channel: channel, Payload: payload}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, set := range h.conns {
		for conn := range set {
			select {
			case conn.SendBack <- event:
			default:
				zap.L().Warn("连接写通道已满，丢弃广播事件",
					zap.Int64("userId", conn.UserId), zap.String("channel", channel))
			}
		}
	}
}

// IsOnline 判断用户是否在线
func (h *Hub) IsOnline(userId int64) bool {
	return h.presence.IsOnline(userId)
}

// Presence 返回在线状态跟踪器
func (h *Hub) Presence() *PresenceTracker {
	return h.presence
}
