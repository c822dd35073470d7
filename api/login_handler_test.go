package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/auriko/image-vault/database/models"
	accountsRepo "github.com/auriko/image-vault/database/repo/accounts"
	"github.com/auriko/image-vault/internal/auth"
	cryptopackage "github.com/auriko/image-vault/utils/crypto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

func setupLoginRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:login_handler_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	jwtService, err := auth.NewJWTService("test-secret", time.Hour)
	require.NoError(t, err)
	loginService := auth.NewLoginService(accountsRepo.NewRepository(db), jwtService)
	handler := NewLoginHandler(loginService)

	router := gin.New()
	router.POST("/api/auth/login", handler.LoginHandlerFunc)
	return router, db
}

func performLogin(router *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	jsonBody, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestLoginHandler_Success 测试登录成功返回令牌
func TestLoginHandler_Success(t *testing.T) {
	router, db := setupLoginRouter(t)

	hash, err := cryptopackage.GenerateFromPassword("secret123")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{Username: "alice", Password: hash}).Error)

	w := performLogin(router, map[string]string{"username": "alice", "password": "secret123"})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["access_token"])
	assert.Greater(t, resp["access_token_expiry"], float64(time.Now().Unix()))
}

// TestLoginHandler_InvalidCredentials 测试错误凭据返回 401
func TestLoginHandler_InvalidCredentials(t *testing.T) {
	router, db := setupLoginRouter(t)

	hash, err := cryptopackage.GenerateFromPassword("secret123")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{Username: "alice", Password: hash}).Error)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"wrong password", map[string]string{"username": "alice", "password": "wrong"}},
		{"unknown user", map[string]string{"username": "nobody", "password": "secret123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performLogin(router, tt.body)
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "Invalid credentials", resp["message"])
		})
	}
}

// TestLoginHandler_BindingValidation 测试请求体校验
func TestLoginHandler_BindingValidation(t *testing.T) {
	router, _ := setupLoginRouter(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing username", map[string]string{"password": "secret123"}},
		{"missing password", map[string]string{"username": "alice"}},
		{"empty body", map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performLogin(router, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
