package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGenerateRandomToken 测试随机 token 生成
func TestGenerateRandomToken(t *testing.T) {
	token, err := GenerateRandomToken(32)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

// TestGenerateRandomToken_Length 测试 token 长度随输入增长
func TestGenerateRandomToken_Length(t *testing.T) {
	tests := []struct {
		numBytes  int
		minLength int // 无填充 base64 编码后的最小长度
	}{
		{16, 22},
		{32, 43},
		{64, 86},
	}

	for _, tt := range tests {
		token, err := GenerateRandomToken(tt.numBytes)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(token), tt.minLength)
	}
}

// TestGenerateRandomToken_InvalidLength 测试非法长度
func TestGenerateRandomToken_InvalidLength(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := GenerateRandomToken(n)
		assert.Error(t, err)
	}
}

// TestGenerateRandomToken_Uniqueness 测试 token 唯一性
func TestGenerateRandomToken_Uniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateRandomToken(32)
		require.NoError(t, err)
		assert.False(t, seen[token], "duplicate token generated")
		seen[token] = true
	}
}
