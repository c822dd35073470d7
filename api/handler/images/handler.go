package images

import (
	"time"

	"github.com/auriko/image-vault/database/models"
	imagesSvc "github.com/auriko/image-vault/internal/images"
)

// Handler 图片接口处理器
type Handler struct {
	service *imagesSvc.Service
}

// NewHandler 创建图片接口处理器
func NewHandler(service *imagesSvc.Service) *Handler {
	return &Handler{service: service}
}

type folderInfo struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

type imageResponse struct {
	ID          uint        `json:"id"`
	Name        string      `json:"name"`
	URL         string      `json:"url"`
	Size        int64       `json:"size"`
	ContentType string      `json:"contentType"`
	Folder      *folderInfo `json:"folder,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func toImageResponse(image *models.Image) *imageResponse {
	resp := &imageResponse{
		ID:          image.ID,
		Name:        image.Name,
		URL:         image.URL,
		Size:        image.FileSize,
		ContentType: image.ContentType,
		CreatedAt:   image.CreatedAt,
	}
	if image.Folder != nil {
		resp.Folder = &folderInfo{
			Name: image.Folder.Name,
			Path: image.Folder.Path,
		}
	}
	return resp
}

func toImageResponses(images []*models.Image) []*imageResponse {
	responses := make([]*imageResponse, 0, len(images))
	for _, image := range images {
		responses = append(responses, toImageResponse(image))
	}
	return responses
}
