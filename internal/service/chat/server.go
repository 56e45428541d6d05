// Package chat 实现了实时投递层的核心服务
// server.go
// 核心职责：聊天服务器聚合结构和依赖注入
// 封装 MessageBroker、KafkaClient 等组件，提供统一的生命周期管理
package chat

import (
	"context"

	"yuanfen_chat_server/internal/dto/request"
	"yuanfen_chat_server/internal/dto/respond"
	"yuanfen_chat_server/pkg/constants"
)

// defaultChannelSize 各通道的默认缓冲大小
const defaultChannelSize = constants.CHANNEL_SIZE

// MessageBroker 定义入站消息代理接口
// 支持多种实现：KafkaBroker (分布式), ChannelBroker (单机)
// 两种实现的消费端都是单协程顺序处理，保证同一用户同一通道的事件有序
type MessageBroker interface {
	// Publish 发布入站消息到消息队列/通道
	Publish(ctx context.Context, msg []byte) error
	// Start 启动消息消费循环（阻塞，应在独立协程调用）
	Start()
	// Close 关闭代理资源
	Close()
}

// MessageService 消息生命周期服务接口
// 由 service/message 包实现，在此定义避免包循环依赖
type MessageService interface {
	// SendMessage 校验并持久化消息，返回对外视图
	SendMessage(senderId int64, payload *request.ChatMessagePayload) (*respond.MessageRespond, error)
	// MarkRead 单条消息置已读，返回消息视图和本次是否发生状态变化
	MarkRead(actorId, messageId int64) (*respond.MessageRespond, bool, error)
	// MarkConversationRead 整会话批量置已读
	MarkConversationRead(actorId, matchId int64) error
	// RecallMessage 撤回消息，返回撤回后的占位视图
	RecallMessage(actorId, messageId, matchId int64) (*respond.MessageRespond, error)
	// CountUnread 统计未读数，matchId 为 0 时统计全部
	CountUnread(userId, matchId int64) (int64, error)
}

// ChatServer 聊天服务器聚合结构
// 封装所有实时投递组件，通过依赖注入管理生命周期
type ChatServer struct {
	// Broker 消息代理，根据配置可能是 ChannelBroker 或 KafkaBroker
	Broker MessageBroker

	// KafkaClient Kafka 客户端（仅 Kafka 模式使用）
	KafkaClient *KafkaClient

	// Hub 连接注册表
	Hub *Hub

	mode string // 运行模式: "channel" 或 "kafka"
}

// ChatServerConfig 聊天服务器配置
type ChatServerConfig struct {
	Mode           string // "channel" 或 "kafka"
	Hub            *Hub
	MessageService MessageService
}

// NewChatServer 创建聊天服务器实例
// 根据配置选择 ChannelBroker 或 KafkaBroker
func NewChatServer(cfg ChatServerConfig) *ChatServer {
	cs := &ChatServer{
		Hub:  cfg.Hub,
		mode: cfg.Mode,
	}
	dispatcher := NewDispatcher(cfg.Hub, cfg.MessageService)

	if cfg.Mode == "kafka" {
		// Kafka 模式
		cs.KafkaClient = NewKafkaClient()
		cs.Broker = NewKafkaBroker(cs.KafkaClient, dispatcher)
	} else {
		// Channel 模式（默认）
		cs.Broker = NewChannelBroker(dispatcher)
	}
	return cs
}

// InitKafka 初始化 Kafka 连接（仅 Kafka 模式需要调用）
func (cs *ChatServer) InitKafka() {
	if cs.KafkaClient != nil {
		cs.KafkaClient.KafkaInit()
	}
}

// Start 启动消息消费循环（阻塞）
func (cs *ChatServer) Start() {
	cs.Broker.Start()
}

// Close 关闭聊天服务器
func (cs *ChatServer) Close() {
	cs.Broker.Close()
	if cs.KafkaClient != nil {
		cs.KafkaClient.KafkaClose()
	}
}
