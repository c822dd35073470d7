package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateRandomToken 生成 URL 安全的随机 token
// numBytes 为熵的字节数，返回值为其无填充 base64 编码
func GenerateRandomToken(numBytes int) (string, error) {
	if numBytes <= 0 {
		return "", fmt.Errorf("token byte count must be positive, got %d", numBytes)
	}

	buf := make([]byte, numBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
