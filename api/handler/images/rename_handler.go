package images

import (
	"net/http"
	"strconv"

	"github.com/auriko/image-vault/api/common"
	"github.com/auriko/image-vault/api/middleware"
	"github.com/gin-gonic/gin"
)

type renameImageRequest struct {
	Name string `json:"name"`
}

// RenameImage 重命名图片（不支持移动文件夹）
func (h *Handler) RenameImage(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)

	imageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid image ID")
		return
	}

	var req renameImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "Image name is required")
		return
	}

	image, err := h.service.Rename(c.Request.Context(), userID, uint(imageID), req.Name)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondData(c, http.StatusOK, toImageResponse(image))
}
