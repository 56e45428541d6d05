package errorx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeNotFound, GetCode(New(CodeNotFound, "不存在")))
	// 非 CodeError 回落到服务繁忙
	assert.Equal(t, CodeServerBusy, GetCode(errors.New("plain")))
	assert.Equal(t, CodeServerBusy, GetCode(nil))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeDBError, "查询失败")

	assert.Equal(t, "查询失败: connection refused", err.Error())
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, CodeDBError, GetCode(err))

	// 多层包装后仍能提取最外层错误码
	outer := fmt.Errorf("service: %w", err)
	assert.Equal(t, CodeDBError, GetCode(outer))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(New(CodeNotFound, "消息不存在")))
	assert.True(t, IsNotFound(errors.New("record not found")))
	assert.False(t, IsNotFound(New(CodeForbidden, "越权")))
	assert.False(t, IsNotFound(nil))
}

func TestIsForbidden(t *testing.T) {
	assert.True(t, IsForbidden(New(CodeForbidden, "越权")))
	assert.False(t, IsForbidden(New(CodeNotFound, "不存在")))
	assert.False(t, IsForbidden(nil))
}
