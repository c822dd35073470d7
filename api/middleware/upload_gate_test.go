package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupGateRouter(t *testing.T, cfg IntakeConfig, reached *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/upload", UploadGate(cfg), func(c *gin.Context) {
		*reached = true
		c.Status(http.StatusOK)
	})
	return router
}

func gateRequest(t *testing.T, withFile bool, contentType string, size int) *http.Request {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("name", "cat.png"))

	if withFile {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="image"; filename="cat.png"`)
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(bytes.Repeat([]byte("x"), size))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

// TestUploadGate_AllowsValidFile 测试合规文件放行
func TestUploadGate_AllowsValidFile(t *testing.T) {
	reached := false
	router := setupGateRouter(t, IntakeConfig{
		MaxSizeBytes: 1024,
		AllowedTypes: []string{"image/png"},
	}, &reached)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, gateRequest(t, true, "image/png", 128))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, reached)
}

// TestUploadGate_RejectsOversize 测试超限文件拒绝且消息固定
func TestUploadGate_RejectsOversize(t *testing.T) {
	reached := false
	router := setupGateRouter(t, IntakeConfig{
		MaxSizeBytes: 1024,
		AllowedTypes: []string{"image/png"},
	}, &reached)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, gateRequest(t, true, "image/png", 2048))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, reached)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// 即使配置的上限不是 5MB，消息也保持不变
	assert.Equal(t, "File size too large. Maximum size is 5MB.", resp["message"])
}

// TestUploadGate_RejectsDisallowedType 测试类型白名单
func TestUploadGate_RejectsDisallowedType(t *testing.T) {
	reached := false
	router := setupGateRouter(t, IntakeConfig{
		MaxSizeBytes: 1024,
		AllowedTypes: []string{"image/jpeg", "image/png"},
	}, &reached)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, gateRequest(t, true, "application/pdf", 128))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, reached)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid file type. Allowed types: image/jpeg, image/png", resp["message"])
}

// TestUploadGate_PassThroughWithoutFile 测试无文件部分时放行给 handler
func TestUploadGate_PassThroughWithoutFile(t *testing.T) {
	reached := false
	router := setupGateRouter(t, IntakeConfig{
		MaxSizeBytes: 1024,
		AllowedTypes: []string{"image/png"},
	}, &reached)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, gateRequest(t, false, "", 0))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, reached)
}

// TestUploadGate_PassThroughNonMultipart 测试非 multipart 请求放行
func TestUploadGate_PassThroughNonMultipart(t *testing.T) {
	reached := false
	router := setupGateRouter(t, IntakeConfig{
		MaxSizeBytes: 1024,
		AllowedTypes: []string{"image/png"},
	}, &reached)

	req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewReader([]byte(`{"name":"cat"}`)))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, fmt.Sprintf("body: %s", w.Body.String()))
	assert.True(t, reached)
}
