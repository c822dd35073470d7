package images

import (
	"net/http"
	"strconv"

	"github.com/auriko/image-vault/api/common"
	"github.com/auriko/image-vault/api/middleware"
	"github.com/gin-gonic/gin"
)

// DeleteImage 删除图片
// 存储清理为尽力而为，结果不影响响应
func (h *Handler) DeleteImage(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)

	imageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid image ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, uint(imageID)); err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondMessage(c, http.StatusOK, "Image deleted successfully")
}
