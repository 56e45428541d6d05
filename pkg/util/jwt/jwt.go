// Package jwt 封装 JWT 令牌的签发与解析
// 采用双令牌方案：短期 Access Token 用于接口与 WebSocket 握手鉴权，
// 长期 Refresh Token 仅用于换发新的令牌对
package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"yuanfen_chat_server/pkg/errorx"
)

const (
	// TokenIssuer 令牌签发者标识
	TokenIssuer = "yuanfen_chat"

	// SubjectAccessToken 访问令牌的主题标识
	SubjectAccessToken = "access_token"
	// SubjectRefreshToken 刷新令牌的主题标识
	SubjectRefreshToken = "refresh_token"
)

var (
	secretKey          []byte
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
)

// Claims 自定义 JWT 载荷
// AccountId 是账号主键，握手与中间件据此定位当前用户
type Claims struct {
	AccountId int64  `json:"account_id"`
	TokenID   string `json:"token_id"` // 令牌唯一标识，refresh token 轮换时校验
	jwt.RegisteredClaims
}

// Init 初始化 JWT 配置，服务启动时调用一次
func Init(secret string, accessExpiryMinutes int, refreshExpiryHours int) {
	secretKey = []byte(secret)
	accessTokenExpiry = time.Duration(accessExpiryMinutes) * time.Minute
	refreshTokenExpiry = time.Duration(refreshExpiryHours) * time.Hour
}

// GenerateAccessToken 生成访问令牌
func GenerateAccessToken(accountId int64) (string, error) {
	return generateToken(accountId, SubjectAccessToken, accessTokenExpiry, uuid.NewString())
}

// GenerateRefreshToken 生成刷新令牌，返回令牌字符串和 tokenID
// tokenID 需要存入 redis，轮换时比对防止旧令牌重放
func GenerateRefreshToken(accountId int64) (string, string, error) {
	tokenID := uuid.NewString()
	token, err := generateToken(accountId, SubjectRefreshToken, refreshTokenExpiry, tokenID)
	if err != nil {
		return "", "", err
	}
	return token, tokenID, nil
}

func generateToken(accountId int64, subject string, expiry time.Duration, tokenID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		AccountId: accountId,
		TokenID:   tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secretKey)
	if err != nil {
		return "", errorx.Wrap(err, errorx.CodeServerBusy, "签发令牌失败")
	}
	return signed, nil
}

// ParseToken 解析并校验令牌
// 签名无效、已过期、签发者不符均返回 CodeUnauthorized
func ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errorx.Wrap(err, errorx.CodeUnauthorized, "令牌已过期")
		}
		return nil, errorx.Wrap(err, errorx.CodeUnauthorized, "令牌无效")
	}
	if !token.Valid {
		return nil, errorx.New(errorx.CodeUnauthorized, "令牌无效")
	}
	if claims.Issuer != TokenIssuer {
		return nil, errorx.New(errorx.CodeUnauthorized, "令牌签发者不符")
	}
	return claims, nil
}
