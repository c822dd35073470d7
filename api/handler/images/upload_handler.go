package images

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/auriko/image-vault/api/common"
	"github.com/auriko/image-vault/api/middleware"
	imagesSvc "github.com/auriko/image-vault/internal/images"
	"github.com/gin-gonic/gin"
)

// UploadImage 处理图片上传
// 文件大小和类型已由上传入口中间件校验
func (h *Handler) UploadImage(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		common.RespondError(c, http.StatusBadRequest, "Image name is required")
		return
	}

	folderParam := c.PostForm("folderId")
	if folderParam == "" {
		common.RespondError(c, http.StatusBadRequest, "Folder ID is required")
		return
	}
	folderID, err := strconv.ParseUint(folderParam, 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid folder ID")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Image file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		common.RespondError(c, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}
	defer func() { _ = file.Close() }()

	image, err := h.service.Upload(c.Request.Context(), userID, imagesSvc.UploadInput{
		Name:        name,
		FolderID:    uint(folderID),
		File:        file,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondData(c, http.StatusCreated, toImageResponse(image))
}
