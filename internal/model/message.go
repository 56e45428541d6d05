package model

import (
	"database/sql"

	"gorm.io/gorm"
)

// Message 聊天消息表
// Uuid 为雪花 ID，是对外暴露的消息标识；自增主键仅内部使用
// 撤回是软删除：IsDeleted 置位、RecalledAt 记录时间，行保留用于双方会话记录占位
type Message struct {
	gorm.Model
	Uuid       int64        `gorm:"column:uuid;uniqueIndex;not null"`      // 雪花 ID，对外消息标识
	MatchId    int64        `gorm:"column:match_id;index;not null"`        // 所属会话
	SenderId   int64        `gorm:"column:sender_id;index;not null"`       // 发送方用户 ID
	ReceiverId int64        `gorm:"column:receiver_id;index;not null"`     // 接收方用户 ID
	Content    string       `gorm:"column:content;type:text;not null"`     // 消息内容
	Kind       string       `gorm:"column:kind;size:10;default:TEXT"`      // 消息类型 TEXT/IMAGE/AUDIO
	IsRead     bool         `gorm:"column:is_read;default:false;index"`    // 接收方是否已读
	IsDeleted  bool         `gorm:"column:is_deleted;default:false;index"` // 发送方是否撤回
	RecalledAt sql.NullTime `gorm:"column:recalled_at"`                    // 撤回时间
}

// TableName 指定表名
func (Message) TableName() string {
	return "message"
}
