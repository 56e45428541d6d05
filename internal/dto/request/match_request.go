package request

// CreateMatchRequest 创建配对请求
type CreateMatchRequest struct {
	TargetUserId       int64   `json:"targetUserId" binding:"required"`
	CompatibilityScore float64 `json:"compatibilityScore"`
}
