// Package chat 实现了实时投递层的核心服务
// kafka_broker.go
// 核心职责：分布式模式下的消息代理实现
// 入站消息写入 Kafka，由本实例的单消费协程顺序拉取并分发
package chat

import (
	"context"
	"errors"
	"io"
	"strconv"
	"sync"

	"go.uber.org/zap"

	myconfig "yuanfen_chat_server/internal/config"
)

// KafkaBroker 基于 Kafka 的消息代理
// 消费用的 context 在构造时创建，Close 与 Start 并发时也能保证停止循环
type KafkaBroker struct {
	client     *KafkaClient
	dispatcher *Dispatcher
	closeOnce  sync.Once
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewKafkaBroker 创建 Kafka 消息代理
func NewKafkaBroker(client *KafkaClient, dispatcher *Dispatcher) *KafkaBroker {
	ctx, cancel := context.WithCancel(context.Background())
	return &KafkaBroker{
		client:     client,
		dispatcher: dispatcher,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Publish 实现 MessageBroker 接口：把入站消息写入 Kafka
// 固定分区键保证同一主题内消息有序
func (b *KafkaBroker) Publish(ctx context.Context, msg []byte) error {
	key := []byte(strconv.Itoa(myconfig.GetConfig().KafkaConfig.Partition))
	return b.client.SendMessage(ctx, key, msg)
}

// Start 启动消费主循环（阻塞，应在独立协程调用）
func (b *KafkaBroker) Start() {
	zap.L().Info("KafkaBroker 消费循环启动")
	for {
		message, err := b.client.Consumer.ReadMessage(b.ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				zap.L().Info("KafkaBroker 消费循环退出")
				return
			}
			zap.L().Error("读取 Kafka 消息失败", zap.Error(err))
			continue
		}
		b.dispatcher.Dispatch(message.Value)
	}
}

// Close 停止消费循环
func (b *KafkaBroker) Close() {
	b.closeOnce.Do(func() {
		b.cancel()
	})
}

// 确保 KafkaBroker 实现了 MessageBroker 接口
var _ MessageBroker = (*KafkaBroker)(nil)
