package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yuanfen_chat_server/pkg/errorx"
)

func initTestKey() {
	Init("test-secret", 30, 168)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	initTestKey()

	token, err := GenerateAccessToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.AccountId)
	assert.Equal(t, SubjectAccessToken, claims.Subject)
	assert.Equal(t, TokenIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.TokenID)
}

func TestRefreshTokenCarriesTokenID(t *testing.T) {
	initTestKey()

	token, tokenID, err := GenerateRefreshToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, tokenID)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, SubjectRefreshToken, claims.Subject)
	// 载荷中的 tokenID 与返回值一致，轮换校验依赖这一点
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestParseTokenWrongSecret(t *testing.T) {
	initTestKey()
	token, err := GenerateAccessToken(42)
	require.NoError(t, err)

	Init("another-secret", 30, 168)
	defer initTestKey()

	_, err = ParseToken(token)
	require.Error(t, err)
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))
}

func TestParseTokenExpired(t *testing.T) {
	// 过期时长为负，签出的令牌立即过期
	Init("test-secret", -1, 168)
	defer initTestKey()

	token, err := GenerateAccessToken(42)
	require.NoError(t, err)

	_, err = ParseToken(token)
	require.Error(t, err)
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))
}

func TestParseTokenGarbage(t *testing.T) {
	initTestKey()

	_, err := ParseToken("not.a.token")
	require.Error(t, err)
	assert.Equal(t, errorx.CodeUnauthorized, errorx.GetCode(err))
}
