// Package chat 实现了实时投递层的核心服务
// channel_broker.go
// 核心职责：单机模式下的消息代理实现
// 1. 入站消息经缓冲通道排队，由单协程顺序消费
// 2. 不依赖外部消息队列，适合小规模或开发环境
package chat

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// ChannelBroker 基于 Go channel 的单机消息代理
// Transmit 由唯一的消费协程读取，保证入站事件按发布顺序处理
type ChannelBroker struct {
	Transmit   chan []byte
	dispatcher *Dispatcher
	closeOnce  sync.Once
}

// NewChannelBroker 创建单机消息代理
func NewChannelBroker(dispatcher *Dispatcher) *ChannelBroker {
	return &ChannelBroker{
		Transmit:   make(chan []byte, defaultChannelSize),
		dispatcher: dispatcher,
	}
}

// Publish 实现 MessageBroker 接口：发布消息到转发通道
// 通道满时阻塞发布方（连接读协程），形成天然的背压
func (b *ChannelBroker) Publish(ctx context.Context, msg []byte) error {
	select {
	case b.Transmit <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start 启动消费主循环（阻塞，应在独立协程调用）
func (b *ChannelBroker) Start() {
	zap.L().Info("ChannelBroker 消费循环启动")
	for data := range b.Transmit {
		b.dispatcher.Dispatch(data)
	}
}

// Close 关闭转发通道，消费循环随之退出
func (b *ChannelBroker) Close() {
	b.closeOnce.Do(func() {
		close(b.Transmit)
	})
}

// 确保 ChannelBroker 实现了 MessageBroker 接口
var _ MessageBroker = (*ChannelBroker)(nil)
