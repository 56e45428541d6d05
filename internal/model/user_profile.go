package model

import "time"

// UserProfile 用户资料表
// 与 Account 一对一，业务层消息收发方均引用本表主键
type UserProfile struct {
	Id        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	AccountId int64     `gorm:"column:account_id;uniqueIndex;not null"` // 关联账号 ID
	Nickname  string    `gorm:"column:nickname;size:50;not null"`
	Avatar    string    `gorm:"column:avatar;size:255"`
	Bio       string    `gorm:"column:bio;size:500"` // 个人简介
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName 指定表名
func (UserProfile) TableName() string {
	return "user_profile"
}
