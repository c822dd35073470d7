package images

import (
	"net/http"
	"strconv"

	"github.com/auriko/image-vault/api/common"
	"github.com/auriko/image-vault/api/middleware"
	"github.com/gin-gonic/gin"
)

// ListImages 获取文件夹下的图片列表
// 未提供 folder 参数时返回未归档（根目录）的图片
func (h *Handler) ListImages(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)

	var folderID *uint
	if folderParam := c.Query("folder"); folderParam != "" {
		id, err := strconv.ParseUint(folderParam, 10, 32)
		if err != nil {
			common.RespondError(c, http.StatusBadRequest, "Invalid folder ID")
			return
		}
		parsed := uint(id)
		folderID = &parsed
	}

	images, err := h.service.List(c.Request.Context(), userID, folderID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondData(c, http.StatusOK, toImageResponses(images))
}
