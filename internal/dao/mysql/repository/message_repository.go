package repository

import (
	"time"

	"yuanfen_chat_server/internal/model"

	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息 Repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// FindByUuid 根据雪花 ID 查找消息
func (r *messageRepository) FindByUuid(uuid int64) (*model.Message, error) {
	var message model.Message
	if err := r.db.Where("uuid = ?", uuid).First(&message).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询消息 uuid=%d", uuid)
	}
	return &message, nil
}

// FindByMatchId 按会话查找消息，按创建时间升序
func (r *messageRepository) FindByMatchId(matchId int64) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.Where("match_id = ?", matchId).Order("created_at ASC").Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询会话消息 match_id=%d", matchId)
	}
	return messages, nil
}

// FindUnread 查找会话中某用户的未读未撤回消息
func (r *messageRepository) FindUnread(matchId, receiverId int64) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.Where("match_id = ? AND receiver_id = ? AND is_read = ? AND is_deleted = ?",
		matchId, receiverId, false, false).Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "查询未读消息 match_id=%d receiver_id=%d", matchId, receiverId)
	}
	return messages, nil
}

// CountUnread 统计某用户的未读未撤回消息数；matchId 为 0 时统计全部会话
func (r *messageRepository) CountUnread(receiverId int64, matchId int64) (int64, error) {
	var count int64
	query := r.db.Model(&model.Message{}).
		Where("receiver_id = ? AND is_read = ? AND is_deleted = ?", receiverId, false, false)
	if matchId != 0 {
		query = query.Where("match_id = ?", matchId)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "统计未读消息 receiver_id=%d", receiverId)
	}
	return count, nil
}

// Create 创建消息
func (r *messageRepository) Create(message *model.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return wrapDBError(err, "创建消息")
	}
	return nil
}

// MarkRead 条件置已读
// 带 is_read=0 AND is_deleted=0 条件更新，已读或已撤回的消息不会被改动
// 通过 RowsAffected 判断本次调用是否真正发生状态变化
func (r *messageRepository) MarkRead(uuid int64) (bool, error) {
	result := r.db.Model(&model.Message{}).
		Where("uuid = ? AND is_read = ? AND is_deleted = ?", uuid, false, false).
		Update("is_read", true)
	if result.Error != nil {
		return false, wrapDBErrorf(result.Error, "消息置已读 uuid=%d", uuid)
	}
	return result.RowsAffected > 0, nil
}

// Recall 撤回消息：置 is_deleted 并记录撤回时间
func (r *messageRepository) Recall(uuid int64, recalledAt time.Time) error {
	if err := r.db.Model(&model.Message{}).
		Where("uuid = ? AND is_deleted = ?", uuid, false).
		Updates(map[string]interface{}{
			"is_deleted":  true,
			"recalled_at": recalledAt,
		}).Error; err != nil {
		return wrapDBErrorf(err, "撤回消息 uuid=%d", uuid)
	}
	return nil
}
