// Package random 随机数工具
package random

import (
	"math/rand"
)

// GetRandomInt 生成指定位数的随机数字字符串，用于短信验证码
func GetRandomInt(length int) string {
	digits := "0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = digits[rand.Intn(len(digits))]
	}
	return string(b)
}
