// Package notification_type_enum 定义通知类型的封闭枚举
package notification_type_enum

// NotificationType 通知类型
type NotificationType string

const (
	Match   NotificationType = "MATCH"   // 配对成功通知
	Message NotificationType = "MESSAGE" // 新消息通知
	System  NotificationType = "SYSTEM"  // 系统通知
)

// Valid 判断取值是否属于封闭枚举
func (t NotificationType) Valid() bool {
	switch t {
	case Match, Message, System:
		return true
	}
	return false
}
