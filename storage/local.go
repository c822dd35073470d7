package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// LocalStorage 本地文件存储实现
type LocalStorage struct {
	absBasePath string
	baseURL     string
}

// NewLocalStorage 创建本地存储提供者
// baseURL 用于拼接可访问的文件 URL，如 http://localhost:8080
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for '%s': %w", basePath, err)
	}

	if err := os.MkdirAll(absPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create local storage directory '%s': %w", absPath, err)
	}

	testFile := filepath.Join(absPath, ".write_test_"+strconv.FormatInt(time.Now().UnixNano(), 10))
	f, err := os.Create(testFile)
	if err != nil {
		return nil, fmt.Errorf("local storage directory '%s' is not writable: %w", absPath, err)
	}
	_ = f.Close()
	_ = os.Remove(testFile)

	return &LocalStorage{
		absBasePath: absPath + string(os.PathSeparator),
		baseURL:     strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload 保存文件到本地存储
func (s *LocalStorage) Upload(ctx context.Context, key string, file io.Reader, size int64, contentType string) (*StoredObject, error) {
	if !IsValidStorageKey(key) {
		return nil, fmt.Errorf("invalid storage key: %s", key)
	}

	dstPath := filepath.Join(s.absBasePath, key)
	if !strings.HasPrefix(dstPath, s.absBasePath) {
		return nil, fmt.Errorf("invalid file path, potential directory traversal: %s", key)
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for '%s': %w", key, err)
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file '%s': %w", dstPath, err)
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to copy file content to '%s': %w", dstPath, err)
	}

	return &StoredObject{
		URL: fmt.Sprintf("%s/files/%s", s.baseURL, key),
		Key: key,
	}, nil
}

// Delete 从本地存储删除文件
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	if !IsValidStorageKey(key) {
		return fmt.Errorf("invalid storage key: %s", key)
	}

	fullPath := filepath.Join(s.absBasePath, key)
	if !strings.HasPrefix(fullPath, s.absBasePath) {
		return fmt.Errorf("invalid file path, potential directory traversal: %s", key)
	}

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete file '%s': %w", key, err)
	}
	return nil
}

// Health 检查本地存储健康状态
func (s *LocalStorage) Health(ctx context.Context) error {
	_, err := os.Stat(s.absBasePath)
	return err
}

// Name 返回存储名称
func (s *LocalStorage) Name() string {
	return "local"
}
