package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yuanfen_chat_server/internal/dao/mysql/repository"
	"yuanfen_chat_server/internal/dto/respond"
	"yuanfen_chat_server/internal/model"
	"yuanfen_chat_server/pkg/errorx"
)

// ==================== 内存版替身 ====================

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

type fakeMatchRepo struct {
	matches map[int64]*model.Match
	nextId  int64
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
	f.nextId++
	match.Id = f.nextId
	f.matches[match.Id] = match
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
	return nil
}

func (f *fakeNotificationRepo) FindByUserId(userId int64) ([]model.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationRepo) FindUnreadByUserId(userId int64) ([]model.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationRepo) MarkRead(id int64, userId int64) error {
	return nil
}

// fakePusher 记录推送调用
type fakePusher struct {
	calls []pushCall
}

type pushCall struct {
	userId  int64
	channel string
	payload any
}

func (f *fakePusher) SendToUser(userId int64, channel string, payload any) {
	f.calls = append(f.calls, pushCall{userId: userId, channel: channel, payload: payload})
}

type testEnv struct {
	svc           *Service
	matches       *fakeMatchRepo
	notifications *fakeNotificationRepo
	pusher        *fakePusher
}

func newTestEnv() *testEnv {
	env := &testEnv{
		matches:       &fakeMatchRepo{matches: make(map[int64]*model.Match)},
		notifications: &fakeNotificationRepo{},
		pusher:        &fakePusher{},
	}
	users := &fakeUserRepo{profiles: map[int64]*model.UserProfile{
		1: {Id: 1, AccountId: 100, Nickname: "小明"},
		2: {Id: 2, AccountId: 200, Nickname: "小红"},
	}}
	repos := &repository.Repositories{
		User:         users,
		Match:        env.matches,
		Notification: env.notifications,
	}
	env.svc = NewService(repos, env.pusher)
	return env
}

// ==================== CreateMatch ====================

func TestCreateMatchSuccess(t *testing.T) {
	env := newTestEnv()

	rsp, err := env.svc.CreateMatch(1, 2, 0.87)
	require.NoError(t, err)

	assert.NotZero(t, rsp.MatchId)
	// 视图站在发起方视角
	assert.Equal(t, int64(2), rsp.OtherUserId)
	assert.Equal(t, 0.87, rsp.CompatibilityScore)

	// 双方各一条 MATCH 通知，文案里是对方的昵称
	require.Len(t, env.notifications.notifications, 2)
	byUser := make(map[int64]*model.Notification)
	for _, n := range env.notifications.notifications {
		byUser[n.UserId] = n
		assert.Equal(t, rsp.MatchId, n.ReferenceId)
		assert.Equal(t, ReferenceTypeMatch, n.ReferenceType)
	}
	assert.Contains(t, byUser[1].Content, "小红")
	assert.Contains(t, byUser[2].Content, "小明")

	// 双方各一条实时 match 事件，otherUserId 互为对方
	require.Len(t, env.pusher.calls, 2)
	for _, call := range env.pusher.calls {
		assert.Equal(t, respond.ChannelMatch, call.channel)
		event := call.payload.(*respond.MatchEvent)
		assert.Equal(t, rsp.MatchId, event.MatchId)
		switch call.userId {
		case 1:
			assert.Equal(t, int64(2), event.OtherUserId)
		case 2:
			assert.Equal(t, int64(1), event.OtherUserId)
		default:
			t.Fatalf("推送给了意外的用户 %d", call.userId)
		}
	}
}

func TestCreateMatchWithSelf(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.CreateMatch(1, 1, 0.5)
	require.Error(t, err)
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))
	assert.Empty(t, env.matches.matches)
	assert.Empty(t, env.pusher.calls)
}

func TestCreateMatchTargetNotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.CreateMatch(1, 999, 0.5)
	require.Error(t, err)
	assert.True(t, errorx.IsNotFound(err))
}

func TestCreateMatchDuplicate(t *testing.T) {
	env := newTestEnv()
	_, err := env.svc.CreateMatch(1, 2, 0.8)
	require.NoError(t, err)

	// 正向重复
	_, err = env.svc.CreateMatch(1, 2, 0.9)
	require.Error(t, err)
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))

	// 反向也算重复
	_, err = env.svc.CreateMatch(2, 1, 0.9)
	require.Error(t, err)
	assert.Equal(t, errorx.CodeInvalidParam, errorx.GetCode(err))

	assert.Len(t, env.matches.matches, 1)
}

func TestCreateMatchWithoutPusher(t *testing.T) {
	env := newTestEnv()
	env.svc.pusher = nil

	// pusher 未注入时创建仍然成功
	rsp, err := env.svc.CreateMatch(1, 2, 0.7)
	require.NoError(t, err)
	assert.NotZero(t, rsp.MatchId)
}

// ==================== GetMatches ====================

func TestGetMatchesViewerPerspective(t *testing.T) {
	env := newTestEnv()
	env.matches.matches[5] = &model.Match{Id: 5, User1Id: 1, User2Id: 2, MatchedAt: time.Now()}
	env.matches.matches[6] = &model.Match{Id: 6, User1Id: 3, User2Id: 1, MatchedAt: time.Now()}
	env.matches.matches[7] = &model.Match{Id: 7, User1Id: 3, User2Id: 4, MatchedAt: time.Now()}

	list, err := env.svc.GetMatches(1)
	require.NoError(t, err)
	require.Len(t, list, 2)

	others := make(map[int64]int64)
	for _, m := range list {
		others[m.MatchId] = m.OtherUserId
	}
	assert.Equal(t, int64(2), others[5])
	assert.Equal(t, int64(3), others[6])
}
