package folders

import (
	"net/http"
	"strconv"
	"time"

	"github.com/auriko/image-vault/api/common"
	"github.com/auriko/image-vault/api/middleware"
	"github.com/auriko/image-vault/database/models"
	foldersSvc "github.com/auriko/image-vault/internal/folders"
	"github.com/gin-gonic/gin"
)

// Handler 文件夹接口处理器
type Handler struct {
	service *foldersSvc.Service
}

// NewHandler 创建文件夹接口处理器
func NewHandler(service *foldersSvc.Service) *Handler {
	return &Handler{service: service}
}

type createFolderRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type folderResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	CreatedAt time.Time `json:"createdAt"`
}

func toFolderResponse(folder *models.Folder) *folderResponse {
	return &folderResponse{
		ID:        folder.ID,
		Name:      folder.Name,
		Path:      folder.Path,
		CreatedAt: folder.CreatedAt,
	}
}

// CreateFolder 创建文件夹
func (h *Handler) CreateFolder(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)

	var req createFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, http.StatusBadRequest, "Folder name is required")
		return
	}

	folder, err := h.service.Create(c.Request.Context(), userID, req.Name)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondData(c, http.StatusCreated, toFolderResponse(folder))
}

// ListFolders 获取文件夹列表
func (h *Handler) ListFolders(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)

	folders, err := h.service.List(c.Request.Context(), userID)
	if err != nil {
		common.RespondAppError(c, err)
		return
	}

	responses := make([]*folderResponse, 0, len(folders))
	for _, folder := range folders {
		responses = append(responses, toFolderResponse(folder))
	}
	common.RespondData(c, http.StatusOK, responses)
}

// DeleteFolder 删除文件夹（仅空文件夹）
func (h *Handler) DeleteFolder(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)

	folderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		common.RespondError(c, http.StatusBadRequest, "Invalid folder ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, uint(folderID)); err != nil {
		common.RespondAppError(c, err)
		return
	}

	common.RespondMessage(c, http.StatusOK, "Folder deleted successfully")
}
