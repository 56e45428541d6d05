// Package message_status_enum 定义消息投递状态的封闭枚举
// 所有状态判断必须用枚举常量做穷举分支，禁止裸字符串比较
package message_status_enum

// MessageStatus 消息投递状态
// SENT      已落库并开始分发
// DELIVERED 发送方侧的乐观送达（不等待接收方确认）
// READ      接收方已读（单调，不可回退）
// DELETED   发送方撤回（终态）
type MessageStatus string

const (
	Sent      MessageStatus = "SENT"
	Delivered MessageStatus = "DELIVERED"
	Read      MessageStatus = "READ"
	Deleted   MessageStatus = "DELETED"
)

// Valid 判断取值是否属于封闭枚举
func (s MessageStatus) Valid() bool {
	switch s {
	case Sent, Delivered, Read, Deleted:
		return true
	}
	return false
}
