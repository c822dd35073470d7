package folders

import (
	"context"

	"github.com/auriko/image-vault/database/models"
	"gorm.io/gorm"
)

// Repository 文件夹仓库 - 封装所有文件夹相关的数据库操作
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的文件夹仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetByIDAndUser 通过 ID 获取用户文件夹
func (r *Repository) GetByIDAndUser(ctx context.Context, folderID, userID uint) (*models.Folder, error) {
	var folder models.Folder
	err := r.db.WithContext(ctx).
		First(&folder, "id = ? AND user_id = ?", folderID, userID).Error
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

// ListByUser 获取用户文件夹列表
func (r *Repository) ListByUser(ctx context.Context, userID uint) ([]*models.Folder, error) {
	var folders []*models.Folder
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name asc").
		Find(&folders).Error
	if err != nil {
		return nil, err
	}
	return folders, nil
}

// ExistsByName 检查用户是否已有同名文件夹
func (r *Repository) ExistsByName(ctx context.Context, userID uint, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Folder{}).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建文件夹
func (r *Repository) Create(ctx context.Context, folder *models.Folder) error {
	return r.db.WithContext(ctx).Create(folder).Error
}

// Delete 删除文件夹
func (r *Repository) Delete(ctx context.Context, folder *models.Folder) error {
	return r.db.WithContext(ctx).Delete(folder).Error
}
