package folders

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/auriko/image-vault/api/common"
	"github.com/auriko/image-vault/api/middleware"
	"github.com/auriko/image-vault/database/models"
	foldersRepo "github.com/auriko/image-vault/database/repo/folders"
	imagesRepo "github.com/auriko/image-vault/database/repo/images"
	foldersSvc "github.com/auriko/image-vault/internal/folders"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testUserID uint = 1

var testDBCounter int64

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

// setupTestRouter 构建带认证桩的测试路由
func setupTestRouter(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:folders_handler_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Folder{}, &models.Image{}))

	service := foldersSvc.NewService(foldersRepo.NewRepository(db), imagesRepo.NewRepository(db))
	handler := NewHandler(service)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, testUserID)
		c.Next()
	})

	group := router.Group("/api/v1/folders")
	group.GET("", handler.ListFolders)
	group.POST("", handler.CreateFolder)
	group.DELETE("/:id", handler.DeleteFolder)

	return &testEnv{db: db, router: router}
}

func (e *testEnv) perform(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["message"]
}

// TestCreateFolderRequest_Binding 测试创建文件夹请求绑定
func TestCreateFolderRequest_Binding(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req createFolderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			common.RespondError(c, http.StatusBadRequest, err.Error())
			return
		}
		common.RespondData(c, http.StatusOK, req)
	})

	tests := []struct {
		name       string
		body       map[string]interface{}
		wantStatus int
	}{
		{
			name:       "valid request",
			body:       map[string]interface{}{"name": "Vacation"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing name",
			body:       map[string]interface{}{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "name too long",
			body:       map[string]interface{}{"name": strings.Repeat("a", 101)},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jsonBody, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/test", bytes.NewReader(jsonBody))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

// TestCreateFolder 测试创建文件夹接口
func TestCreateFolder(t *testing.T) {
	env := setupTestRouter(t)

	body, _ := json.Marshal(map[string]string{"name": "vacation"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/folders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := env.perform(req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "vacation", resp["name"])
	assert.Equal(t, "/vacation", resp["path"])
	assert.NotZero(t, resp["id"])
}

// TestCreateFolder_Duplicate 测试重名文件夹冲突
func TestCreateFolder_Duplicate(t *testing.T) {
	env := setupTestRouter(t)
	require.NoError(t, env.db.Create(&models.Folder{UserID: testUserID, Name: "vacation", Path: "/vacation"}).Error)

	body, _ := json.Marshal(map[string]string{"name": "vacation"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/folders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := env.perform(req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Folder with this name already exists", decodeMessage(t, w))
}

// TestListFolders 测试文件夹列表按名称升序
func TestListFolders(t *testing.T) {
	env := setupTestRouter(t)
	require.NoError(t, env.db.Create(&models.Folder{UserID: testUserID, Name: "work", Path: "/work"}).Error)
	require.NoError(t, env.db.Create(&models.Folder{UserID: testUserID, Name: "archive", Path: "/archive"}).Error)
	require.NoError(t, env.db.Create(&models.Folder{UserID: 42, Name: "other", Path: "/other"}).Error)

	w := env.perform(httptest.NewRequest(http.MethodGet, "/api/v1/folders", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var resp []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "archive", resp[0]["name"])
	assert.Equal(t, "work", resp[1]["name"])
}

// TestDeleteFolder 测试删除文件夹接口
func TestDeleteFolder(t *testing.T) {
	env := setupTestRouter(t)
	folder := &models.Folder{UserID: testUserID, Name: "temp", Path: "/temp"}
	require.NoError(t, env.db.Create(folder).Error)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/folders/%d", folder.ID), nil)
	w := env.perform(req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Folder deleted successfully", decodeMessage(t, w))
}

// TestDeleteFolder_NotEmpty 测试非空文件夹拒绝删除
func TestDeleteFolder_NotEmpty(t *testing.T) {
	env := setupTestRouter(t)
	folder := &models.Folder{UserID: testUserID, Name: "pets", Path: "/pets"}
	require.NoError(t, env.db.Create(folder).Error)
	require.NoError(t, env.db.Create(&models.Image{
		Name:        "cat.png",
		URL:         "http://localhost/files/cat.png",
		StorageKey:  "users/1/cat.png",
		FileSize:    64,
		ContentType: "image/png",
		FolderID:    &folder.ID,
		UserID:      testUserID,
	}).Error)

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/folders/%d", folder.ID), nil)
	w := env.perform(req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Folder is not empty", decodeMessage(t, w))
}

// TestDeleteFolder_NotFound 测试删除不存在的文件夹
func TestDeleteFolder_NotFound(t *testing.T) {
	env := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/folders/9999", nil)
	w := env.perform(req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Folder not found", decodeMessage(t, w))
}
