package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/auriko/image-vault/database/models"
	foldersRepo "github.com/auriko/image-vault/database/repo/folders"
	imagesRepo "github.com/auriko/image-vault/database/repo/images"
	"github.com/auriko/image-vault/internal/apperrors"
	"github.com/auriko/image-vault/storage"
	"github.com/auriko/image-vault/utils/generator"
	"gorm.io/gorm"
)

// searchResultLimit 搜索结果上限
const searchResultLimit = 50

// UploadInput 上传输入
type UploadInput struct {
	Name        string
	FolderID    uint
	File        io.Reader
	Size        int64
	ContentType string
}

// Service 图片服务 - 校验输入、限定所有者范围并编排存储与元数据操作
type Service struct {
	repo    *imagesRepo.Repository
	folders *foldersRepo.Repository
	storage storage.Provider
	keys    *generator.KeyGenerator
}

// NewService 创建图片服务
func NewService(repo *imagesRepo.Repository, folders *foldersRepo.Repository, storageProvider storage.Provider) *Service {
	return &Service{
		repo:    repo,
		folders: folders,
		storage: storageProvider,
		keys:    generator.NewKeyGenerator(),
	}
}

// List 获取用户在指定文件夹下的图片，按名称升序
// folderID 为 nil 时返回未归档（根目录）的图片
func (s *Service) List(ctx context.Context, userID uint, folderID *uint) ([]*models.Image, error) {
	if folderID != nil {
		if _, err := s.getOwnedFolder(ctx, *folderID, userID); err != nil {
			return nil, err
		}
	}

	images, err := s.repo.ListByUserAndFolder(ctx, userID, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	return images, nil
}

// Search 按名称子串搜索用户图片，最多返回 50 条
// 空白查询直接返回空列表，不访问数据库
func (s *Service) Search(ctx context.Context, userID uint, query string) ([]*models.Image, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*models.Image{}, nil
	}

	images, err := s.repo.SearchByName(ctx, userID, query, searchResultLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search images: %w", err)
	}
	return images, nil
}

// Upload 上传图片：校验输入和文件夹归属，检查重名，
// 先写对象存储再写元数据，存储失败不产生任何记录
func (s *Service) Upload(ctx context.Context, userID uint, input UploadInput) (*models.Image, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.New(apperrors.TypeValidation, "Image name is required")
	}
	if input.FolderID == 0 {
		return nil, apperrors.New(apperrors.TypeValidation, "Folder ID is required")
	}
	if input.File == nil {
		return nil, apperrors.New(apperrors.TypeValidation, "Image file is required")
	}

	folder, err := s.getOwnedFolder(ctx, input.FolderID, userID)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByName(ctx, userID, &input.FolderID, name, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check image name availability: %w", err)
	}
	if exists {
		return nil, apperrors.New(apperrors.TypeConflict, "Image with this name already exists in the folder")
	}

	key := s.keys.PlacementKey(userID, input.FolderID, name, time.Now())
	stored, err := s.storage.Upload(ctx, key, input.File, input.Size, input.ContentType)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.TypeUploadFailed, "Failed to upload image to storage", err)
	}

	image := &models.Image{
		Name:        name,
		URL:         stored.URL,
		StorageKey:  stored.Key,
		FileSize:    input.Size,
		ContentType: input.ContentType,
		FolderID:    &input.FolderID,
		UserID:      userID,
	}
	if err := s.repo.Create(ctx, image); err != nil {
		return nil, fmt.Errorf("failed to persist image record: %w", err)
	}

	image.Folder = folder
	return image, nil
}

// Rename 重命名图片（仅名称字段，文件夹归属不可变）
func (s *Service) Rename(ctx context.Context, userID, imageID uint, newName string) (*models.Image, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, apperrors.New(apperrors.TypeValidation, "Image name is required")
	}

	image, err := s.getOwnedImage(ctx, imageID, userID)
	if err != nil {
		return nil, err
	}

	// 检查重名时排除自身，文件夹取自已有记录而非客户端输入
	exists, err := s.repo.ExistsByName(ctx, userID, image.FolderID, newName, image.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check image name availability: %w", err)
	}
	if exists {
		return nil, apperrors.New(apperrors.TypeConflict, "Image with this name already exists in the folder")
	}

	if err := s.repo.UpdateName(ctx, image.ID, newName); err != nil {
		return nil, fmt.Errorf("failed to rename image: %w", err)
	}

	image.Name = newName
	return image, nil
}

// Delete 删除图片：存储清理为尽力而为，元数据删除无条件执行
func (s *Service) Delete(ctx context.Context, userID, imageID uint) error {
	image, err := s.getOwnedImage(ctx, imageID, userID)
	if err != nil {
		return err
	}

	// 存储删除失败只记录日志，不阻塞元数据删除
	if err := s.storage.Delete(ctx, image.StorageKey); err != nil {
		log.Printf("Failed to delete stored object '%s' for image %d: %v", image.StorageKey, image.ID, err)
	}

	if err := s.repo.Delete(ctx, image); err != nil {
		return fmt.Errorf("failed to delete image record: %w", err)
	}
	return nil
}

func (s *Service) getOwnedFolder(ctx context.Context, folderID, userID uint) (*models.Folder, error) {
	folder, err := s.folders.GetByIDAndUser(ctx, folderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.TypeNotFound, "Folder not found")
		}
		return nil, fmt.Errorf("failed to get folder: %w", err)
	}
	return folder, nil
}

func (s *Service) getOwnedImage(ctx context.Context, imageID, userID uint) (*models.Image, error) {
	image, err := s.repo.GetByIDAndUser(ctx, imageID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.TypeNotFound, "Image not found")
		}
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	return image, nil
}
