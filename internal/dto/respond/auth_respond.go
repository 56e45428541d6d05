package respond

// RegisterRespond 注册响应
type RegisterRespond struct {
	UserId    int64  `json:"userId"`
	AccountId int64  `json:"accountId"`
	Nickname  string `json:"nickname"`
}

// LoginRespond 登录响应，携带双令牌
type LoginRespond struct {
	UserId       int64  `json:"userId"`
	AccountId    int64  `json:"accountId"`
	Nickname     string `json:"nickname"`
	Avatar       string `json:"avatar"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenPairRespond 刷新令牌响应
type TokenPairRespond struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
