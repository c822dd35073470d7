package folders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/auriko/image-vault/database/models"
	foldersRepo "github.com/auriko/image-vault/database/repo/folders"
	imagesRepo "github.com/auriko/image-vault/database/repo/images"
	"github.com/auriko/image-vault/internal/apperrors"
	"gorm.io/gorm"
)

// Service 文件夹服务
type Service struct {
	repo   *foldersRepo.Repository
	images *imagesRepo.Repository
}

// NewService 创建文件夹服务
func NewService(repo *foldersRepo.Repository, images *imagesRepo.Repository) *Service {
	return &Service{repo: repo, images: images}
}

// Create 创建文件夹，名称在用户范围内唯一
func (s *Service) Create(ctx context.Context, userID uint, name string) (*models.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.New(apperrors.TypeValidation, "Folder name is required")
	}

	exists, err := s.repo.ExistsByName(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check folder name availability: %w", err)
	}
	if exists {
		return nil, apperrors.New(apperrors.TypeConflict, "Folder with this name already exists")
	}

	folder := &models.Folder{
		UserID: userID,
		Name:   name,
		Path:   "/" + name,
	}
	if err := s.repo.Create(ctx, folder); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	return folder, nil
}

// List 获取用户文件夹列表，按名称升序
func (s *Service) List(ctx context.Context, userID uint) ([]*models.Folder, error) {
	folders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	return folders, nil
}

// Delete 删除文件夹，仅允许删除空文件夹
func (s *Service) Delete(ctx context.Context, userID, folderID uint) error {
	folder, err := s.repo.GetByIDAndUser(ctx, folderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.New(apperrors.TypeNotFound, "Folder not found")
		}
		return fmt.Errorf("failed to get folder: %w", err)
	}

	count, err := s.images.CountByFolder(ctx, folder.ID)
	if err != nil {
		return fmt.Errorf("failed to count folder images: %w", err)
	}
	if count > 0 {
		return apperrors.New(apperrors.TypeConflict, "Folder is not empty")
	}

	if err := s.repo.Delete(ctx, folder); err != nil {
		return fmt.Errorf("failed to delete folder: %w", err)
	}
	return nil
}
