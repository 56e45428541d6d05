package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetRandomInt(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := GetRandomInt(6)
		assert.Len(t, code, 6)
		for _, c := range code {
			assert.True(t, c >= '0' && c <= '9', "非数字字符: %c", c)
		}
	}
}

func TestGetRandomIntZeroLength(t *testing.T) {
	assert.Empty(t, GetRandomInt(0))
}
