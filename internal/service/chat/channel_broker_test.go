package chat

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yuanfen_chat_server/internal/dto/request"
	"yuanfen_chat_server/internal/dto/respond"
)

// orderedService 记录消息到达顺序
type orderedService struct {
	*fakeMessageService
	mu    sync.Mutex
	order []string
	seen  chan struct{}
}

func (o *orderedService) SendMessage(senderId int64, payload *request.ChatMessagePayload) (*respond.MessageRespond, error) {
	o.mu.Lock()
	o.order = append(o.order, payload.ClientMessageId)
	o.mu.Unlock()
	o.seen <- struct{}{}
	return o.sendRsp, o.sendErr
}

func TestChannelBrokerPreservesOrder(t *testing.T) {
	hub := NewHub()
	svc := &orderedService{
		fakeMessageService: &fakeMessageService{
			sendRsp: &respond.MessageRespond{MessageId: 1, MatchId: 10, SenderId: 1, ReceiverId: 2},
		},
		seen: make(chan struct{}, 32),
	}
	broker := NewChannelBroker(NewDispatcher(hub, svc))
	go broker.Start()
	defer broker.Close()

	clientIds := []string{"a", "b", "c", "d", "e"}
	for _, id := range clientIds {
		raw := marshalEnvelope(t, 1, request.DestChatSend, request.ChatMessagePayload{
			MatchId:         10,
			ReceiverId:      2,
			Content:         "x",
			ClientMessageId: id,
		})
		require.NoError(t, broker.Publish(context.Background(), raw))
	}

	for range clientIds {
		select {
		case <-svc.seen:
		case <-time.After(2 * time.Second):
			t.Fatal("等待消费超时")
		}
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	// 单消费协程保证发布顺序即处理顺序
	assert.Equal(t, clientIds, svc.order)
}

func TestChannelBrokerPublishCanceledContext(t *testing.T) {
	broker := NewChannelBroker(NewDispatcher(NewHub(), &fakeMessageService{}))
	// 塞满缓冲
	for i := 0; i < cap(broker.Transmit); i++ {
		require.NoError(t, broker.Publish(context.Background(), []byte("{}")))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// 通道满且 ctx 已取消时不阻塞，返回错误
	err := broker.Publish(ctx, []byte("{}"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChannelBrokerCloseIdempotent(t *testing.T) {
	broker := NewChannelBroker(NewDispatcher(NewHub(), &fakeMessageService{}))
	broker.Close()
	// 重复关闭不 panic
	broker.Close()
}

func marshalEnvelope(t *testing.T, senderId int64, destination string, payload any) []byte {
	t.Helper()
	raw := mustMarshal(t, payload)
	return mustMarshal(t, inboundEnvelope{
		SenderId:    senderId,
		Destination: destination,
		Payload:     raw,
	})
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}
