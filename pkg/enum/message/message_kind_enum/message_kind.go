// Package message_kind_enum 定义消息内容类型的封闭枚举
// 线上协议固定为字符串 TEXT/IMAGE/AUDIO，入库与下发均使用同一取值
package message_kind_enum

// MessageKind 消息内容类型
type MessageKind string

const (
	Text  MessageKind = "TEXT"  // 文本消息
	Image MessageKind = "IMAGE" // 图片消息
	Audio MessageKind = "AUDIO" // 语音消息
)

// Valid 判断取值是否属于封闭枚举
func (k MessageKind) Valid() bool {
	switch k {
	case Text, Image, Audio:
		return true
	}
	return false
}
