package images

import (
	"net/http"

	"github.com/auriko/image-vault/api/common"
	"github.com/auriko/image-vault/api/middleware"
	"github.com/gin-gonic/gin"
)

// SearchImages 按名称子串搜索图片，最多返回 50 条
// 空查询返回空列表而非错误
func (h *Handler) SearchImages(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)

	images, err := h.service.Search(c.Request.Context(), userID, c.Query("q"))
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondData(c, http.StatusOK, toImageResponses(images))
}
