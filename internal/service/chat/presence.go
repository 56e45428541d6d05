// Package chat 实现了实时投递层的核心服务
// presence.go
// 核心职责：在线状态计数
// 同一用户允许多端同时在线，维护每个用户的活跃连接数，
// 只有 0<->1 的阈值跨越才算上线/下线事件，避免多端场景下的状态抖动
package chat

import "sync"

// PresenceTracker 在线状态跟踪器
// 计数的读改写必须与比较原子完成，因此用互斥锁保护普通 map，
// sync.Map 无法在一次操作内完成"读计数-判断阈值-写回"
type PresenceTracker struct {
	mu     sync.Mutex
	counts map[int64]int // userId -> 活跃连接数
}

// NewPresenceTracker 创建在线状态跟踪器
func NewPresenceTracker() *PresenceTracker {
	return &PresenceTracker{
		counts: make(map[int64]int),
	}
}

// MarkOnline 记录一条新连接
// 返回 true 表示用户从离线变为在线（0 -> 1），需要对外广播
func (p *PresenceTracker) MarkOnline(userId int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counts[userId]++
	return p.counts[userId] == 1
}

// MarkOffline 记录一条连接断开
// 返回 true 表示用户从在线变为离线（1 -> 0），需要对外广播
// 用户不存在或计数已为 0 时不做任何改动
func (p *PresenceTracker) MarkOffline(userId int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	count, ok := p.counts[userId]
	if !ok || count == 0 {
		return false
	}
	if count == 1 {
		delete(p.counts, userId)
		return true
	}
	p.counts[userId] = count - 1
	return false
}

// IsOnline 判断用户当前是否至少有一条活跃连接
func (p *PresenceTracker) IsOnline(userId int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counts[userId] > 0
}

// ConnectionCount 返回用户当前的活跃连接数
func (p *PresenceTracker) ConnectionCount(userId int64) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counts[userId]
}

// OnlineUsers 返回当前所有在线用户 ID
func (p *PresenceTracker) OnlineUsers() []int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	users := make([]int64, 0, len(p.counts))
	for userId := range p.counts {
		users = append(users, userId)
	}
	return users
}
