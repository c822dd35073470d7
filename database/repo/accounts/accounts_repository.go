package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/auriko/image-vault/database/models"
	"github.com/auriko/image-vault/utils"
	cryptopackage "github.com/auriko/image-vault/utils/crypto"
	"gorm.io/gorm"
)

// ErrUserNotFound 用户不存在错误
var ErrUserNotFound = errors.New("user not found")

// Repository 用户仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的用户仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateDefaultAdminUser 创建默认管理员用户
// 返回生成的随机密码，让调用者决定如何展示
func (r *Repository) CreateDefaultAdminUser() (string, error) {
	var count int64

	if err := r.db.Model(&models.User{}).Where("username = ?", "admin").Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to check admin user existence: %w", err)
	}

	if count == 0 {
		randomPassword, err := utils.GenerateRandomToken(16)
		if err != nil {
			return "", fmt.Errorf("failed to generate random password: %w", err)
		}

		hashedPassword, err := cryptopackage.GenerateFromPassword(randomPassword)
		if err != nil {
			return "", fmt.Errorf("failed to hash default password: %w", err)
		}

		user := &models.User{
			Username: "admin",
			Password: hashedPassword,
		}

		if err := r.db.Create(user).Error; err != nil {
			return "", fmt.Errorf("failed to create default admin user: %w", err)
		}

		return randomPassword, nil
	}

	return "", nil
}

// GetUserByUsername 通过用户名获取用户
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
