package common

import (
	"log"
	"net/http"

	"github.com/auriko/image-vault/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// RespondData sends a success response with the payload as body.
func RespondData(c *gin.Context, httpStatus int, payload interface{}) {
	c.JSON(httpStatus, payload)
}

// RespondMessage sends a {"message": ...} response.
func RespondMessage(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, gin.H{"message": message})
}

// RespondError sends an error response with message.
func RespondError(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, gin.H{"message": message})
}

// RespondAppError 将业务错误映射为 HTTP 响应
// 未分类的内部错误只返回通用消息，细节写入服务端日志
func RespondAppError(c *gin.Context, err error) {
	if appErr, ok := apperrors.As(err); ok {
		status := apperrors.ToHTTPStatus(appErr.Type)
		if status == http.StatusInternalServerError {
			log.Printf("Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		}
		RespondError(c, status, appErr.Message)
		return
	}

	log.Printf("Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	RespondError(c, http.StatusInternalServerError, "Internal server error")
}
