package message

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yuanfen_chat_server/internal/dao/mysql/repository"
	"yuanfen_chat_server/internal/dto/request"
	"yuanfen_chat_server/internal/model"
	"yuanfen_chat_server/pkg/errorx"
	"yuanfen_chat_server/pkg/util/snowflake"
)

func TestMain(m *testing.M) {
	if err := snowflake.Init("2024-01-01", 1); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// ==================== 内存版 Repository 替身 ====================

type fakeMatchRepo struct {
	matches map[int64]*model.Match
}

func (f *fakeMatchRepo) FindByMatchId(matchId int64) (*model.Match, error) {
	if m, ok := f.matches[matchId]; ok {
		return m, nil
	}
	return nil, errorx.Newf(errorx.CodeNotFound, "会话 %d 不存在", matchId)
}

func (f *fakeMatchRepo) FindByUserId(userId int64) ([]model.Match, error) {
	var result []model.Match
	for _, m := range f.matches {
		if m.IsParticipant(userId) {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (f *fakeMatchRepo) FindBetween(user1Id, user2Id int64) (*model.Match, error) {
	for _, m := range f.matches {
		if (m.User1Id == user1Id && m.User2Id == user2Id) || (m.User1Id == user2Id && m.User2Id == user1Id) {
			return m, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "配对不存在")
}

func (f *fakeMatchRepo) Create(match *model.Match) error {
	f.matches[match.Id] = match
	return nil
}

type fakeUserRepo struct {
	profiles map[int64]*model.UserProfile
}

func (f *fakeUserRepo) FindByUserId(userId int64) (*model.UserProfile, error) {
	if p, ok := f.profiles[userId]; ok {
		return p, nil
	}
	return nil, errorx.Newf(errorx.CodeNotFound, "用户 %d 不存在", userId)
}

func (f *fakeUserRepo) FindByAccountId(accountId int64) (*model.UserProfile, error) {
	for _, p := range f.profiles {
		if p.AccountId == accountId {
			return p, nil
		}
	}
	return nil, errorx.New(errorx.CodeNotFound, "用户不存在")
}

func (f *fakeUserRepo) Create(profile *model.UserProfile) error {
	f.profiles[profile.Id] = profile
	return nil
}

func (f *fakeUserRepo) Update(profile *model.UserProfile) error {
	f.profiles[profile.Id] = profile
	return nil
}

type fakeMessageRepo struct {
	messages map[int64]*model.Message
}

func (f *fakeMessageRepo) FindByUuid(uuid int64) (*model.Message, error) {
	if m, ok := f.messages[uuid]; ok {
		clone := *m
		return &clone, nil
	}
	return nil, errorx.Newf(errorx.CodeNotFound, "消息 %d 不存在", uuid)
}

func (f *fakeMessageRepo) FindByMatchId(matchId int64) ([]model.Message, error) {
	var result []model.Message
	for _, m := range f.messages {
		if m.MatchId == matchId {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (f *fakeMessageRepo) FindUnread(matchId, receiverId int64) ([]model.Message, error) {
	var result []model.Message
	for _, m := range f.messages {
		if m.MatchId == matchId && m.ReceiverId == receiverId && !m.IsRead && !m.IsDeleted {
			result = append(result, *m)
		}
	}
	return result, nil
}

func (f *fakeMessageRepo) CountUnread(receiverId int64, matchId int64) (int64, error) {
	var count int64
	for _, m := range f.messages {
		if m.ReceiverId != receiverId || m.IsRead || m.IsDeleted {
			continue
		}
		if matchId != 0 && m.MatchId != matchId {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeMessageRepo) Create(message *model.Message) error {
	f.messages[message.Uuid] = message
	return nil
}

func (f *fakeMessageRepo) MarkRead(uuid int64) (bool, error) {
	m, ok := f.messages[uuid]
	if !ok {
		return false, nil
	}
	if m.IsRead || m.IsDeleted {
		return false, nil
	}
	m.IsRead = true
	return true, nil
}

func (f *fakeMessageRepo) Recall(uuid int64, recalledAt time.Time) error {
	m, ok := f.messages[uuid]
	if !ok {
		return errorx.Newf(errorx.CodeNotFound, "消息 %d 不存在", uuid)
	}
	if m.IsDeleted {
		return nil
	}
	m.IsDeleted = true
	m.RecalledAt.Time = recalledAt
	m.RecalledAt.Valid = true
	return nil
}

type fakeNotificationRepo struct {
	notifications []*model.Notification
}

func (f *fakeNotificationRepo) Create(notification *model.Notification) error {
	f.notifications = append(f.notifications, notification)
	return nil
}

func (f *fakeNotificationRepo) ResolveByReference(referenceId int64, referenceType string) error {
	for _, n := range f.notifications {
		if n.ReferenceId == referenceId && n.ReferenceType == referenceType {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) FindByUserId(userId int64) ([]model.Notification, error) {
	var result []model.Notification
	for _, n := range f.notifications {
		if n.UserId == userId {
			result = append(result, *n)
		}
	}
	return result, nil
}

func (f *fakeNotificationRepo) FindUnreadByUserId(userId int64) ([]model.Notification, error) {
	var result []model.Notification
	for _, n := range f.notifications {
		if n.UserId == userId && !n.IsRead {
			result = append(result, *n)
		}
	}
	return result, nil
}

func (f *fakeNotificationRepo) MarkRead(id int64, userId int64) error {
	for _, n := range f.notifications {
		if n.Id == id && n.UserId == userId {
			n.IsRead = true
		}
	}
	return nil
}

// ==================== 测试脚手架 ====================

type testEnv struct {
	svc           *Service
	matches       *fakeMatchRepo
	users         *fakeUserRepo
	messages      *fakeMessageRepo
	notifications *fakeNotificationRepo
}

// newTestEnv 构造预置了用户 1/2 和会话 10 的测试环境
// db 为空的 Repositories 让事务退化为直接执行
func newTestEnv() *testEnv {
	env := &testEnv{
		matches: &fakeMatchRepo{matches: map[int64]*model.Match{
			10: {Id: 10, User1Id: 1, User2Id: 2, MatchedAt: time.Now()},
		}},
		users: &fakeUserRepo{profiles: map[int64]*model.UserProfile{
			1: {Id: 1, AccountId: 100, Nickname: "小明"},
			2: {Id: 2, AccountId: 200, Nickname: "小红"},
		}},
		messages:      &fakeMessageRepo{messages: make(map[int64]*model.Message)},
		notifications: &fakeNotificationRepo{},
	}
	repos := &repository.Repositories{
		Match:        env.matches,
		User:         env.users,
		Message:      env.messages,
		Notification: env.notifications,
	}
	env.svc = NewService(repos, nil)
	return env
}

func (e *testEnv) seedMessage(uuid, matchId, senderId, receiverId int64, content string) *model.Message {
	m := &model.Message{
		Uuid:       uuid,
		MatchId:    matchId,
		SenderId:   senderId,
		ReceiverId: receiverId,
		Content:    content,
		Kind:       "TEXT",
	}
	e.messages.messages[uuid] = m
	return m
}

// ==================== SendMessage ====================

func TestSendMessageSuccess(t *testing.T) {
	env := newTestEnv()

	rsp, err := env.svc.SendMessage(1, &request.ChatMessagePayload{
		MatchId:    10,
		ReceiverId: 2,
		Content:    "  晚上好  ",
	})
	require.NoError(t, err)

	assert.NotZero(t, rsp.MessageId)
	assert.Equal(t, int64(10), rsp.MatchId)
	assert.Equal(t, int64(1), rsp.SenderId)
	assert.Equal(t, int64(2), rsp.ReceiverId)
	// 首尾空白被去除
	assert.Equal(t, "晚上好", rsp.Content)
	assert.Equal(t, "TEXT", rsp.Kind)
	assert.False(t, rsp.IsRead)

	// 消息已落库
	stored, err := env.messages.FindByUuid(rsp.MessageId)
	require.NoError(t, err)
	assert.Equal(t, "晚上好", stored.Content)

	// 恰好一条通知，预览带昵称前缀，指向该消息
	require.Len(t, env.notifications.notifications, 1)
	n := env.notifications.notifications[0]
	assert.Equal(t, int64(2), n.UserId)
	assert.Equal(t, "小明: 晚上好", n.Content)
	assert.Equal(t, rsp.MessageId, n.ReferenceId)
	assert.Equal(t, ReferenceTypeMessage, n.ReferenceType)
	assert.False(t, n.IsRead)
}

func TestSendMessageBlankContent(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.SendMessage(1, &request.ChatMessagePayload{
		MatchId:    10,
		ReceiverId: 2,
		Content:    "   \t\n ",
	})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
	assert.Empty(t, env.messages.messages)
	assert.Empty(t, env.notifications.notifications)
}

func TestSendMessageToSelf(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.SendMessage(1, &request.ChatMessagePayload{
		MatchId:    10,
		ReceiverId: 1,
		Content:    "自言自语",
	})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
	assert.Empty(t, env.messages.messages)
}

func TestSendMessageNotParticipant(t *testing.T) {
	env := newTestEnv()
	env.users.profiles[3] = &model.UserProfile{Id: 3, AccountId: 300, Nickname: "路人"}

	_, err := env.svc.SendMessage(3, &request.ChatMessagePayload{
		MatchId:    10,
		ReceiverId: 2,
		Content:    "我能插一句吗",
	})
	require.Error(t, err)
	assert.True(t, errorx.IsForbidden(err))
	assert.Empty(t, env.messages.messages)
	assert.Empty(t, env.notifications.notifications)
}

func TestSendMessageReceiverMismatch(t *testing.T) {
	env := newTestEnv()
	env.users.profiles[3] = &model.UserProfile{Id: 3, AccountId: 300, Nickname: "路人"}

	// 接收方不是会话的另一方
	_, err := env.svc.SendMessage(1, &request.ChatMessagePayload{
		MatchId:    10,
		ReceiverId: 3,
		Content:    "发错人了",
	})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
	assert.Empty(t, env.messages.messages)
}

func TestSendMessageMatchNotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.SendMessage(1, &request.ChatMessagePayload{
		MatchId:    999,
		ReceiverId: 2,
		Content:    "你好",
	})
	require.Error(t, err)
	assert.True(t, errorx.IsNotFound(err))
}

func TestSendMessageInvalidKind(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.SendMessage(1, &request.ChatMessagePayload{
		MatchId:    10,
		ReceiverId: 2,
		Content:    "你好",
		Kind:       "VIDEO",
	})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
}

func TestSendMessageLongContentPreview(t *testing.T) {
	env := newTestEnv()
	content := strings.Repeat("想", 150)

	rsp, err := env.svc.SendMessage(1, &request.ChatMessagePayload{
		MatchId:    10,
		ReceiverId: 2,
		Content:    content,
	})
	require.NoError(t, err)
	// 消息正文不截断
	assert.Equal(t, content, rsp.Content)

	// 通知预览按字符截到 137 再补省略号
	require.Len(t, env.notifications.notifications, 1)
	expected := "小明: " + strings.Repeat("想", 137) + "..."
	assert.Equal(t, expected, env.notifications.notifications[0].Content)
}

// ==================== MarkRead ====================

func TestMarkReadSuccess(t *testing.T) {
	env := newTestEnv()
	env.seedMessage(1001, 10, 1, 2, "在吗")
	env.notifications.notifications = append(env.notifications.notifications, &model.Notification{
		Id: 1, UserId: 2, ReferenceId: 1001, ReferenceType: ReferenceTypeMessage,
	})

	rsp, changed, err := env.svc.MarkRead(2, 1001)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, rsp.IsRead)

	// 库里的消息与关联通知都已置已读
	assert.True(t, env.messages.messages[1001].IsRead)
	assert.True(t, env.notifications.notifications[0].IsRead)
}

func TestMarkReadByNonReceiver(t *testing.T) {
	env := newTestEnv()
	env.seedMessage(1001, 10, 1, 2, "在吗")

	// 发送方不能把自己的消息置已读
	_, _, err := env.svc.MarkRead(1, 1001)
	require.Error(t, err)
	assert.True(t, errorx.IsForbidden(err))
	assert.False(t, env.messages.messages[1001].IsRead)
}

func TestMarkReadRepeatIsNoop(t *testing.T) {
	env := newTestEnv()
	m := env.seedMessage(1001, 10, 1, 2, "在吗")
	m.IsRead = true

	rsp, changed, err := env.svc.MarkRead(2, 1001)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.True(t, rsp.IsRead)
}

func TestMarkReadRecalledMessage(t *testing.T) {
	env := newTestEnv()
	m := env.seedMessage(1001, 10, 1, 2, "在吗")
	m.IsDeleted = true

	// 已撤回的消息读不动，也不报错
	_, changed, err := env.svc.MarkRead(2, 1001)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.False(t, env.messages.messages[1001].IsRead)
}

func TestMarkReadMessageNotFound(t *testing.T) {
	env := newTestEnv()

	_, _, err := env.svc.MarkRead(2, 9999)
	require.Error(t, err)
	assert.True(t, errorx.IsNotFound(err))
}

// ==================== MarkConversationRead ====================

func TestMarkConversationRead(t *testing.T) {
	env := newTestEnv()
	env.seedMessage(1001, 10, 1, 2, "a")
	env.seedMessage(1002, 10, 1, 2, "b")
	// 反方向的未读消息不应被波及
	env.seedMessage(1003, 10, 2, 1, "c")
	// 已撤回的消息跳过
	recalled := env.seedMessage(1004, 10, 1, 2, "d")
	recalled.IsDeleted = true

	for _, uuid := range []int64{1001, 1002} {
		env.notifications.notifications = append(env.notifications.notifications, &model.Notification{
			UserId: 2, ReferenceId: uuid, ReferenceType: ReferenceTypeMessage,
		})
	}

	require.NoError(t, env.svc.MarkConversationRead(2, 10))

	assert.True(t, env.messages.messages[1001].IsRead)
	assert.True(t, env.messages.messages[1002].IsRead)
	assert.False(t, env.messages.messages[1003].IsRead)
	assert.False(t, env.messages.messages[1004].IsRead)

	for _, n := range env.notifications.notifications {
		assert.True(t, n.IsRead)
	}

	count, err := env.svc.CountUnread(2, 10)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMarkConversationReadNotParticipant(t *testing.T) {
	env := newTestEnv()
	env.seedMessage(1001, 10, 1, 2, "a")

	err := env.svc.MarkConversationRead(3, 10)
	require.Error(t, err)
	assert.True(t, errorx.IsForbidden(err))
	assert.False(t, env.messages.messages[1001].IsRead)
}

// ==================== RecallMessage ====================

func TestRecallMessageSuccess(t *testing.T) {
	env := newTestEnv()
	env.seedMessage(1001, 10, 1, 2, "说错话了")
	env.notifications.notifications = append(env.notifications.notifications, &model.Notification{
		UserId: 2, ReferenceId: 1001, ReferenceType: ReferenceTypeMessage,
	})

	rsp, err := env.svc.RecallMessage(1, 1001, 10)
	require.NoError(t, err)

	// 对外视图是内容置空的占位
	assert.True(t, rsp.IsDeleted)
	assert.Empty(t, rsp.Content)

	stored := env.messages.messages[1001]
	assert.True(t, stored.IsDeleted)
	assert.True(t, stored.RecalledAt.Valid)
	// 库里保留原文，置空只发生在视图层
	assert.Equal(t, "说错话了", stored.Content)

	// 关联通知被一并解决
	assert.True(t, env.notifications.notifications[0].IsRead)
}

func TestRecallMessageByNonSender(t *testing.T) {
	env := newTestEnv()
	env.seedMessage(1001, 10, 1, 2, "秘密")

	_, err := env.svc.RecallMessage(2, 1001, 10)
	require.Error(t, err)
	assert.True(t, errorx.IsForbidden(err))
	assert.False(t, env.messages.messages[1001].IsDeleted)
}

func TestRecallMessageMatchMismatch(t *testing.T) {
	env := newTestEnv()
	env.seedMessage(1001, 10, 1, 2, "秘密")

	_, err := env.svc.RecallMessage(1, 1001, 99)
	require.Error(t, err)
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
	assert.False(t, env.messages.messages[1001].IsDeleted)
}

func TestRecallMessageIdempotent(t *testing.T) {
	env := newTestEnv()
	env.seedMessage(1001, 10, 1, 2, "秘密")

	_, err := env.svc.RecallMessage(1, 1001, 10)
	require.NoError(t, err)

	// 重复撤回返回同样的占位视图，不报错
	rsp, err := env.svc.RecallMessage(1, 1001, 10)
	require.NoError(t, err)
	assert.True(t, rsp.IsDeleted)
	assert.Empty(t, rsp.Content)
}

// ==================== 查询 ====================

func TestCountUnreadAllConversations(t *testing.T) {
	env := newTestEnv()
	env.matches.matches[11] = &model.Match{Id: 11, User1Id: 2, User2Id: 3}
	env.seedMessage(1001, 10, 1, 2, "a")
	env.seedMessage(1002, 11, 3, 2, "b")

	// matchId 为 0 统计全部会话
	count, err := env.svc.CountUnread(2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = env.svc.CountUnread(2, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGetMessageList(t *testing.T) {
	env := newTestEnv()
	env.seedMessage(1001, 10, 1, 2, "a")
	recalled := env.seedMessage(1002, 10, 1, 2, "b")
	recalled.IsDeleted = true

	list, err := env.svc.GetMessageList(2, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)

	// 撤回的消息以内容置空的占位形式出现
	for _, item := range list {
		if item.IsDeleted {
			assert.Empty(t, item.Content)
		}
	}
}

func TestGetMessageListNotParticipant(t *testing.T) {
	env := newTestEnv()
	env.seedMessage(1001, 10, 1, 2, "a")

	_, err := env.svc.GetMessageList(3, 10)
	require.Error(t, err)
	assert.True(t, errorx.IsForbidden(err))
}
