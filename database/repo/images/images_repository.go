package images

import (
	"context"
	"strings"

	"github.com/auriko/image-vault/database/models"
	"gorm.io/gorm"
)

// Repository 图片仓库 - 封装所有图片相关的数据库操作
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的图片仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByUserAndFolder 获取用户在指定文件夹下的图片列表
// folderID 为 nil 时返回未归档（根目录）的图片
func (r *Repository) ListByUserAndFolder(ctx context.Context, userID uint, folderID *uint) ([]*models.Image, error) {
	query := r.db.WithContext(ctx).
		Preload("Folder").
		Where("user_id = ?", userID)

	if folderID != nil {
		query = query.Where("folder_id = ?", *folderID)
	} else {
		query = query.Where("folder_id IS NULL")
	}

	var images []*models.Image
	if err := query.Order("name asc").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// likeEscaper 转义 LIKE 模式中的通配符，查询串按字面量匹配
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchByName 按名称子串搜索用户图片（不区分大小写，跨所有文件夹）
func (r *Repository) SearchByName(ctx context.Context, userID uint, name string, limit int) ([]*models.Image, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(name)) + "%"

	var images []*models.Image
	err := r.db.WithContext(ctx).
		Preload("Folder").
		Where(`user_id = ? AND LOWER(name) LIKE ? ESCAPE '\'`, userID, pattern).
		Order("name asc").
		Limit(limit).
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

// GetByIDAndUser 通过 ID 获取用户图片
func (r *Repository) GetByIDAndUser(ctx context.Context, imageID, userID uint) (*models.Image, error) {
	var image models.Image
	err := r.db.WithContext(ctx).
		Preload("Folder").
		First(&image, "id = ? AND user_id = ?", imageID, userID).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

// ExistsByName 检查同一用户同一文件夹下是否已存在同名图片
// excludeID 大于 0 时排除指定图片（重命名时排除自身）
func (r *Repository) ExistsByName(ctx context.Context, userID uint, folderID *uint, name string, excludeID uint) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Image{}).
		Where("user_id = ? AND name = ?", userID, name)

	if folderID != nil {
		query = query.Where("folder_id = ?", *folderID)
	} else {
		query = query.Where("folder_id IS NULL")
	}
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByFolder 统计文件夹下的图片数量
func (r *Repository) CountByFolder(ctx context.Context, folderID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Image{}).
		Where("folder_id = ?", folderID).
		Count(&count).Error
	return count, err
}

// Create 创建图片记录
func (r *Repository) Create(ctx context.Context, image *models.Image) error {
	return r.db.WithContext(ctx).Create(image).Error
}

// UpdateName 更新图片名称
func (r *Repository) UpdateName(ctx context.Context, imageID uint, name string) error {
	return r.db.WithContext(ctx).
		Model(&models.Image{}).
		Where("id = ?", imageID).
		Update("name", name).Error
}

// Delete 删除图片记录
func (r *Repository) Delete(ctx context.Context, image *models.Image) error {
	return r.db.WithContext(ctx).Delete(image).Error
}
