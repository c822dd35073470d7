package generator

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// KeyGenerator 存储键生成器
type KeyGenerator struct{}

// NewKeyGenerator 创建存储键生成器
func NewKeyGenerator() *KeyGenerator {
	return &KeyGenerator{}
}

// PlacementKey 生成对象存储的放置键
// 格式: users/{userID}/{folderID}/{unixMilli}_{sanitizedName}
// 每个用户一个独立命名空间，避免跨用户键冲突
func (g *KeyGenerator) PlacementKey(userID, folderID uint, name string, uploadTime time.Time) string {
	return fmt.Sprintf("users/%d/%d/%d_%s", userID, folderID, uploadTime.UnixMilli(), SanitizeName(name))
}

// SanitizeName 将名称中的非字母数字字符替换为下划线
func SanitizeName(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
