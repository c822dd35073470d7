package storage

import (
	"context"
	"io"
	"strings"
)

// StoredObject 对象存储返回的结果
// Key 用于后续删除，URL 为外部可访问地址
type StoredObject struct {
	URL string
	Key string
}

// Provider 存储提供者接口 - 依赖倒置的核心抽象
// 定义了存储层的基本操作，所有存储实现必须遵循此接口
type Provider interface {
	// Upload 上传文件到存储，返回持久 URL 和存储键
	Upload(ctx context.Context, key string, file io.Reader, size int64, contentType string) (*StoredObject, error)

	// Delete 通过存储键从存储删除文件
	Delete(ctx context.Context, key string) error

	// Health 检查存储健康状态
	Health(ctx context.Context) error

	// Name 返回存储名称
	Name() string
}

// IsValidStorageKey 校验存储键，拒绝路径穿越
func IsValidStorageKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") {
		return false
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}
