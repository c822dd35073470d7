package accounts

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/auriko/image-vault/database/models"
	cryptopackage "github.com/auriko/image-vault/utils/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

// setupTestDB 创建独立的内存测试数据库
func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:accounts_repo_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

// TestCreateDefaultAdminUser 测试默认管理员创建
func TestCreateDefaultAdminUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	password, err := repo.CreateDefaultAdminUser()
	require.NoError(t, err)
	assert.NotEmpty(t, password)

	user, err := repo.GetUserByUsername(context.Background(), "admin")
	require.NoError(t, err)

	// 密码以 Argon2id 哈希存储且可验证
	match, err := cryptopackage.ComparePasswordAndHash(password, user.Password)
	require.NoError(t, err)
	assert.True(t, match)
}

// TestCreateDefaultAdminUser_Idempotent 测试重复调用不重复创建
func TestCreateDefaultAdminUser_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	_, err := repo.CreateDefaultAdminUser()
	require.NoError(t, err)

	password, err := repo.CreateDefaultAdminUser()
	require.NoError(t, err)
	assert.Empty(t, password)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// TestGetUserByUsername_NotFound 测试用户不存在
func TestGetUserByUsername_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	_, err := repo.GetUserByUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
