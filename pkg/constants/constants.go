package constants

const (
	CHANNEL_SIZE  = 100 // 通道大小（消息转发通道、连接写通道）
	REDIS_TIMEOUT = 1   // redis 缓存过期时间 (分钟)

	// 通知预览长度限制
	// 内容超过 PREVIEW_MAX_LEN 个字符时截断为前 PREVIEW_CUT_LEN 个字符加省略号
	PREVIEW_MAX_LEN = 140
	PREVIEW_CUT_LEN = 137

	REFRESH_TOKEN_EXPIRY_HOURS = 168 // Refresh Token 有效期（小时），168小时 = 7天
)
