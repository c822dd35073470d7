package middleware

import (
	"strings"

	"github.com/auriko/image-vault/api/common"
	"github.com/auriko/image-vault/internal/apperrors"
	"github.com/auriko/image-vault/utils/validator"
	"github.com/gin-gonic/gin"
)

// sizeLimitMessage 固定的超限提示
// 注意：消息中的 "5MB" 与可配置上限无关，保持与历史行为一致
const sizeLimitMessage = "File size too large. Maximum size is 5MB."

// IntakeConfig 上传入口约束配置
type IntakeConfig struct {
	MaxSizeBytes int64
	AllowedTypes []string
}

// UploadGate 在 handler 之前拒绝超限或类型不符的文件
// 请求中没有文件部分时直接放行，由 handler 负责必填校验
func UploadGate(cfg IntakeConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := c.MultipartForm()
		if err != nil || form == nil {
			c.Next()
			return
		}

		files := form.File["image"]
		if len(files) == 0 {
			c.Next()
			return
		}

		fileHeader := files[0]

		if cfg.MaxSizeBytes > 0 && fileHeader.Size > cfg.MaxSizeBytes {
			err := apperrors.New(apperrors.TypeSizeLimit, sizeLimitMessage)
			common.RespondError(c, apperrors.ToHTTPStatus(err.Type), err.Message)
			c.Abort()
			return
		}

		contentType := fileHeader.Header.Get("Content-Type")
		if !validator.IsAllowedContentType(contentType, cfg.AllowedTypes) {
			err := apperrors.New(apperrors.TypeFileType,
				"Invalid file type. Allowed types: "+strings.Join(cfg.AllowedTypes, ", "))
			common.RespondError(c, apperrors.ToHTTPStatus(err.Type), err.Message)
			c.Abort()
			return
		}

		c.Next()
	}
}
