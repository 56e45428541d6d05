package respond

import "yuanfen_chat_server/internal/model"

// UserProfileRespond 用户资料视图
type UserProfileRespond struct {
	UserId   int64  `json:"userId"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
	Bio      string `json:"bio"`
}

// NewUserProfileRespond 将用户资料实体转换为对外视图
func NewUserProfileRespond(p *model.UserProfile) *UserProfileRespond {
	return &UserProfileRespond{
		UserId:   p.Id,
		Nickname: p.Nickname,
		Avatar:   p.Avatar,
		Bio:      p.Bio,
	}
}
