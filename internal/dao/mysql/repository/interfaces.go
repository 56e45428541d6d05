package repository

import (
	"time"

	"yuanfen_chat_server/internal/model"

	"gorm.io/gorm"
)

// ==================== Repository 接口定义 ====================

// AccountRepository 账号数据访问接口
type AccountRepository interface {
	// FindByTelephone 根据手机号查找账号
	FindByTelephone(telephone string) (*model.Account, error)
	// FindById 根据主键查找账号
	FindById(id int64) (*model.Account, error)
	// Create 创建新账号
	Create(account *model.Account) error
}

// UserRepository 用户资料数据访问接口
type UserRepository interface {
	// FindByUserId 根据资料主键查找用户
	FindByUserId(userId int64) (*model.UserProfile, error)
	// FindByAccountId 根据账号 ID 查找用户资料
	FindByAccountId(accountId int64) (*model.UserProfile, error)
	// Create 创建用户资料
	Create(profile *model.UserProfile) error
	// Update 更新用户资料
	Update(profile *model.UserProfile) error
}

// MatchRepository 配对会话数据访问接口
type MatchRepository interface {
	// FindByMatchId 根据会话 ID 查找配对
	FindByMatchId(matchId int64) (*model.Match, error)
	// FindByUserId 查找用户参与的所有配对，按配对时间倒序
	FindByUserId(userId int64) ([]model.Match, error)
	// FindBetween 查找两个用户之间的配对（双向）
	FindBetween(user1Id, user2Id int64) (*model.Match, error)
	// Create 创建配对
	Create(match *model.Match) error
}

// MessageRepository 消息数据访问接口
type MessageRepository interface {
	// FindByUuid 根据雪花 ID 查找消息
	FindByUuid(uuid int64) (*model.Message, error)
	// FindByMatchId 按会话查找消息，按创建时间升序
	FindByMatchId(matchId int64) ([]model.Message, error)
	// FindUnread 查找会话中某用户的未读未撤回消息
	FindUnread(matchId, receiverId int64) ([]model.Message, error)
	// CountUnread 统计某用户的未读未撤回消息数；matchId 为 0 时统计全部会话
	CountUnread(receiverId int64, matchId int64) (int64, error)
	// Create 创建消息
	Create(message *model.Message) error
	// MarkRead 条件置已读：仅当消息未读且未撤回时生效
	// 返回 true 表示本次调用确实改变了状态
	MarkRead(uuid int64) (bool, error)
	// Recall 撤回消息：置 is_deleted 并记录撤回时间
	Recall(uuid int64, recalledAt time.Time) error
}

// NotificationRepository 通知数据访问接口
type NotificationRepository interface {
	// Create 创建通知
	Create(notification *model.Notification) error
	// ResolveByReference 将指定关联对象的未读通知置为已读
	ResolveByReference(referenceId int64, referenceType string) error
	// FindByUserId 查找用户的全部通知，按创建时间倒序
	FindByUserId(userId int64) ([]model.Notification, error)
	// FindUnreadByUserId 查找用户的未读通知
	FindUnreadByUserId(userId int64) ([]model.Notification, error)
	// MarkRead 将单条通知置为已读
	MarkRead(id int64, userId int64) error
}

// ==================== Repository 聚合 ====================

// Repositories 聚合所有 Repository 实例
// 作为依赖注入的入口，Service 层通过此结构访问数据层
type Repositories struct {
	db           *gorm.DB               // GORM 数据库实例
	Account      AccountRepository      // 账号 Repository
	User         UserRepository         // 用户资料 Repository
	Match        MatchRepository        // 配对 Repository
	Message      MessageRepository      // 消息 Repository
	Notification NotificationRepository // 通知 Repository
}

// NewRepositories 创建所有 Repository 实例
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:           db,
		Account:      NewAccountRepository(db),
		User:         NewUserRepository(db),
		Match:        NewMatchRepository(db),
		Message:      NewMessageRepository(db),
		Notification: NewNotificationRepository(db),
	}
}

// Transaction 在数据库事务中执行函数
// 事务内的所有操作要么全部成功，要么全部回滚
// db 为空时（单元测试注入假实现）直接执行 fn，不开事务
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 使用事务 db 创建新的 Repositories 实例
		return fn(NewRepositories(tx))
	})
}
