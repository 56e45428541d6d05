// Package model 定义数据库表结构
package model

import "time"

// Account 账号表，保存登录凭证
// 密码只存 bcrypt 哈希，任何查询不得将其带出到响应层
type Account struct {
	Id        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Telephone string    `gorm:"column:telephone;uniqueIndex;size:20;not null"` // 手机号，登录唯一标识
	Email     string    `gorm:"column:email;size:100"`
	Password  string    `gorm:"column:password;size:100;not null"` // bcrypt 哈希
	Role      int8      `gorm:"column:role;default:0"`             // 0 普通用户 1 管理员
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName 指定表名
func (Account) TableName() string {
	return "account"
}
