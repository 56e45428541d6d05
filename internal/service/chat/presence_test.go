package chat

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresenceTrackerThreshold(t *testing.T) {
	p := NewPresenceTracker()

	// 第一条连接触发上线
	assert.True(t, p.MarkOnline(1))
	assert.True(t, p.IsOnline(1))

	// 第二条连接不再触发
	assert.False(t, p.MarkOnline(1))
	assert.Equal(t, 2, p.ConnectionCount(1))

	// 断开一条仍在线
	assert.False(t, p.MarkOffline(1))
	assert.True(t, p.IsOnline(1))

	// 最后一条断开触发下线
	assert.True(t, p.MarkOffline(1))
	assert.False(t, p.IsOnline(1))
	assert.Equal(t, 0, p.ConnectionCount(1))
}

func TestPresenceTrackerOfflineUnknownUser(t *testing.T) {
	p := NewPresenceTracker()

	// 从未上线的用户下线是 no-op
	assert.False(t, p.MarkOffline(42))
	assert.False(t, p.IsOnline(42))

	// 重复下线不会把计数打到负数
	p.MarkOnline(7)
	assert.True(t, p.MarkOffline(7))
	assert.False(t, p.MarkOffline(7))
	assert.False(t, p.MarkOnline(7) == false) // 再次上线仍是 0->1
}

func TestPresenceTrackerOnlineUsers(t *testing.T) {
	p := NewPresenceTracker()
	p.MarkOnline(1)
	p.MarkOnline(2)
	p.MarkOnline(2)

	users := p.OnlineUsers()
	assert.Len(t, users, 2)
	assert.ElementsMatch(t, []int64{1, 2}, users)
}

func TestPresenceTrackerConcurrent(t *testing.T) {
	p := NewPresenceTracker()
	const goroutines = 50

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.MarkOnline(99)
		}()
	}
	wg.Wait()
	assert.Equal(t, goroutines, p.ConnectionCount(99))

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.MarkOffline(99)
		}()
	}
	wg.Wait()
	assert.False(t, p.IsOnline(99))
}
