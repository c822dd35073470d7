package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/studio-b12/gowebdav"
)

// WebDAVConfig WebDAV 配置结构
type WebDAVConfig struct {
	URL      string
	Username string
	Password string
	RootPath string
}

// WebDAVStorage WebDAV 存储实现
type WebDAVStorage struct {
	client   *gowebdav.Client
	baseURL  string
	rootPath string
}

// NewWebDAVStorage 创建 WebDAV 存储提供者
func NewWebDAVStorage(cfg WebDAVConfig) (*WebDAVStorage, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("webdav URL is required")
	}

	rootPath := strings.Trim(cfg.RootPath, "/")
	if rootPath != "" {
		rootPath = "/" + rootPath
	}

	client := gowebdav.NewClient(cfg.URL, cfg.Username, cfg.Password)

	// 验证连接
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	checkPath := rootPath
	if checkPath == "" {
		checkPath = "/"
	}
	if err := runWithContext(ctx, func() error {
		_, err := client.ReadDir(checkPath)
		return err
	}); err != nil {
		return nil, fmt.Errorf("webdav connection test failed: %w", err)
	}

	return &WebDAVStorage{
		client:   client,
		baseURL:  strings.TrimRight(cfg.URL, "/"),
		rootPath: rootPath,
	}, nil
}

// runWithContext gowebdav 客户端不接受上下文，这里包一层超时控制
func runWithContext(ctx context.Context, fn func() error) error {
	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

// fullPath 生成完整的 WebDAV 路径
func (s *WebDAVStorage) fullPath(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.rootPath != "" {
		return s.rootPath + "/" + key
	}
	return "/" + key
}

// ensureParentDir 逐级创建父目录
func (s *WebDAVStorage) ensureParentDir(ctx context.Context, fullPath string) error {
	parentDir := path.Dir(fullPath)
	if parentDir == "/" || parentDir == "." {
		return nil
	}

	currentPath := ""
	for _, part := range strings.Split(strings.Trim(parentDir, "/"), "/") {
		if part == "" {
			continue
		}
		currentPath = currentPath + "/" + part

		p := currentPath
		err := runWithContext(ctx, func() error {
			return s.client.Mkdir(p, os.FileMode(0755))
		})
		if err != nil && !isCollectionExistsError(err) {
			return fmt.Errorf("failed to create directory %s: %w", p, err)
		}
	}
	return nil
}

// isCollectionExistsError 判断是否为目录已存在的错误
func isCollectionExistsError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	for _, s := range []string{"already exists", "conflict", "Conflict", "409", "Method Not Allowed", "405"} {
		if strings.Contains(errStr, s) {
			return true
		}
	}
	return false
}

// Upload 保存文件到 WebDAV
func (s *WebDAVStorage) Upload(ctx context.Context, key string, file io.Reader, size int64, contentType string) (*StoredObject, error) {
	if !IsValidStorageKey(key) {
		return nil, fmt.Errorf("invalid storage key: %s", key)
	}

	fullPath := s.fullPath(key)

	if err := s.ensureParentDir(ctx, fullPath); err != nil {
		return nil, fmt.Errorf("failed to ensure parent directory for %s: %w", key, err)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	if err := runWithContext(ctx, func() error {
		return s.client.Write(fullPath, data, 0644)
	}); err != nil {
		return nil, fmt.Errorf("failed to write file %s: %w", key, err)
	}

	return &StoredObject{
		URL: s.baseURL + fullPath,
		Key: key,
	}, nil
}

// Delete 从 WebDAV 删除文件
func (s *WebDAVStorage) Delete(ctx context.Context, key string) error {
	fullPath := s.fullPath(key)

	if err := runWithContext(ctx, func() error {
		return s.client.Remove(fullPath)
	}); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", key, err)
	}
	return nil
}

// Health 检查 WebDAV 健康状态
func (s *WebDAVStorage) Health(ctx context.Context) error {
	checkPath := s.rootPath
	if checkPath == "" {
		checkPath = "/"
	}
	return runWithContext(ctx, func() error {
		_, err := s.client.ReadDir(checkPath)
		return err
	})
}

// Name 返回存储名称
func (s *WebDAVStorage) Name() string {
	return "webdav"
}
