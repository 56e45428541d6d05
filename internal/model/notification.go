package model

import "time"

// Notification 通知表
// 消息通知与对应消息通过 (reference_id, reference_type) 关联，
// 消息被读取时同一事务内将关联通知一并置为已读
type Notification struct {
	Id            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserId        int64     `gorm:"column:user_id;index;not null"`        // 通知接收者
	Type          string    `gorm:"column:type;size:20;not null"`         // MATCH/MESSAGE/SYSTEM
	Content       string    `gorm:"column:content;size:200"`              // 通知文案（含预览）
	ReferenceId   int64     `gorm:"column:reference_id;index"`            // 关联对象 ID（消息 Uuid、会话 ID）
	ReferenceType string    `gorm:"column:reference_type;size:20"`        // 关联对象类型
	IsRead        bool      `gorm:"column:is_read;default:false;index"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notification"
}
