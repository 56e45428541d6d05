package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveBearerTokenFromHeader(t *testing.T) {
	req := httptest.NewRequest("GET", "/ws", nil)
	req.Header.Set("Authorization", "Bearer header-token")

	assert.Equal(t, "header-token", resolveBearerToken(req))
}

func TestResolveBearerTokenHeaderWinsOverQuery(t *testing.T) {
	req := httptest.NewRequest("GET", "/ws?token=query-token", nil)
	req.Header.Set("Authorization", "Bearer header-token")

	// Authorization 头优先级最高
	assert.Equal(t, "header-token", resolveBearerToken(req))
}

func TestResolveBearerTokenFromQueryParam(t *testing.T) {
	req := httptest.NewRequest("GET", "/ws?token=query-token", nil)

	assert.Equal(t, "query-token", resolveBearerToken(req))
}

func TestResolveBearerTokenFromRawQuery(t *testing.T) {
	// 前端直接把令牌拼在 ? 后面的情况
	req := httptest.NewRequest("GET", "/ws?eyJhbGciOiJIUzI1NiJ9.abc.def", nil)

	assert.Equal(t, "eyJhbGciOiJIUzI1NiJ9.abc.def", resolveBearerToken(req))
}

func TestResolveBearerTokenRawQueryWithOtherParams(t *testing.T) {
	// 带 = 的查询串不能整体当令牌
	req := httptest.NewRequest("GET", "/ws?foo=bar", nil)

	assert.Empty(t, resolveBearerToken(req))
}

func TestResolveBearerTokenMalformedHeader(t *testing.T) {
	req := httptest.NewRequest("GET", "/ws?token=fallback", nil)
	req.Header.Set("Authorization", "Basic abc123")

	// 非 Bearer 格式的头被忽略，回落到查询参数
	assert.Equal(t, "fallback", resolveBearerToken(req))
}

func TestResolveBearerTokenEmpty(t *testing.T) {
	req := httptest.NewRequest("GET", "/ws", nil)

	assert.Empty(t, resolveBearerToken(req))
}
