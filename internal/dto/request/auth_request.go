// Package request 定义 HTTP 与 WebSocket 入站数据结构
// HTTP 请求体带 validator 标签，由 gin 绑定时统一校验
package request

// SendSmsCodeRequest 发送短信验证码请求
type SendSmsCodeRequest struct {
	Telephone string `json:"telephone" binding:"required,len=11"`
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Telephone string `json:"telephone" binding:"required,len=11"`
	Password  string `json:"password" binding:"required,min=6,max=32"`
	SmsCode   string `json:"smsCode" binding:"required,len=6"`
	Nickname  string `json:"nickname" binding:"required,max=50"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Telephone string `json:"telephone" binding:"required,len=11"`
	Password  string `json:"password" binding:"required"`
}

// RefreshTokenRequest 刷新令牌请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}
