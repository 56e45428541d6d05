package repository

import (
	"yuanfen_chat_server/internal/model"

	"gorm.io/gorm"
)

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知 Repository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create 创建通知
func (r *notificationRepository) Create(notification *model.Notification) error {
	if err := r.db.Create(notification).Error; err != nil {
		return wrapDBError(err, "创建通知")
	}
	return nil
}

// ResolveByReference 将指定关联对象的未读通知置为已读
// 消息被读取时在同一事务内调用，保证已读状态与通知状态一致
func (r *notificationRepository) ResolveByReference(referenceId int64, referenceType string) error {
	if err := r.db.Model(&model.Notification{}).
		Where("reference_id = ? AND reference_type = ? AND is_read = ?", referenceId, referenceType, false).
		Update("is_read", true).Error; err != nil {
		return wrapDBErrorf(err, "解决通知 reference_id=%d type=%s", referenceId, referenceType)
	}
	return nil
}

// FindByUserId 查找用户的全部通知，按创建时间倒序
func (r *notificationRepository) FindByUserId(userId int64) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := r.db.Where("user_id = ?", userId).Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询通知列表 user_id=%d", userId)
	}
	return notifications, nil
}

// FindUnreadByUserId 查找用户的未读通知
func (r *notificationRepository) FindUnreadByUserId(userId int64) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := r.db.Where("user_id = ? AND is_read = ?", userId, false).
		Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询未读通知 user_id=%d", userId)
	}
	return notifications, nil
}

// MarkRead 将单条通知置为已读，带 user_id 条件防止越权
func (r *notificationRepository) MarkRead(id int64, userId int64) error {
	if err := r.db.Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userId).
		Update("is_read", true).Error; err != nil {
		return wrapDBErrorf(err, "通知置已读 id=%d", id)
	}
	return nil
}
