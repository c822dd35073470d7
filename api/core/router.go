package core

import (
	"net/http"
	"time"

	"github.com/auriko/image-vault/api"
	"github.com/auriko/image-vault/api/common"
	handlerFolders "github.com/auriko/image-vault/api/handler/folders"
	handlerImages "github.com/auriko/image-vault/api/handler/images"
	"github.com/auriko/image-vault/api/middleware"
	"github.com/auriko/image-vault/config"
	"github.com/auriko/image-vault/internal/auth"
	foldersSvc "github.com/auriko/image-vault/internal/folders"
	imagesSvc "github.com/auriko/image-vault/internal/images"
	"github.com/auriko/image-vault/storage"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var startTime = time.Now()

// RouterDependencies 路由注册依赖
type RouterDependencies struct {
	DB             *gorm.DB
	StorageFactory *storage.Factory
	ImageService   *imagesSvc.Service
	FolderService  *foldersSvc.Service
	JWTService     *auth.JWTService
	LoginService   *auth.LoginService
	AuthLimiter    *middleware.IPRateLimiter
	APILimiter     *middleware.IPRateLimiter
	Config         *config.Config
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(router *gin.Engine, deps *RouterDependencies) {
	registerBasicRoutes(router, deps)
	registerAPIRoutes(router, deps)
}

// registerBasicRoutes 注册基础路由
func registerBasicRoutes(router *gin.Engine, deps *RouterDependencies) {
	router.GET("/health", func(c *gin.Context) {
		health := gin.H{
			"status":  "ok",
			"uptime":  time.Since(startTime).Round(time.Second).String(),
			"version": config.Version,
			"checks": gin.H{
				"database": checkDatabaseHealth(deps.DB),
				"storage":  checkStorageHealth(deps.StorageFactory),
			},
		}
		httpStatus := http.StatusOK
		for _, checkResult := range health["checks"].(gin.H) {
			if result, ok := checkResult.(string); ok && result != "ok" {
				httpStatus = http.StatusServiceUnavailable
				break
			}
		}
		c.JSON(httpStatus, health)
	})

	router.GET("/version", func(c *gin.Context) {
		common.RespondData(c, http.StatusOK, gin.H{
			"version": config.Version,
			"commit":  config.CommitHash,
		})
	})

	// 本地存储时直接提供文件访问
	if deps.Config.StorageType == "local" && deps.Config.StorageLocalPath != "" {
		router.Static("/files", deps.Config.StorageLocalPath)
	}
}

// registerAPIRoutes 注册 API 路由
func registerAPIRoutes(router *gin.Engine, deps *RouterDependencies) {
	imageHandler := handlerImages.NewHandler(deps.ImageService)
	folderHandler := handlerFolders.NewHandler(deps.FolderService)
	loginHandler := api.NewLoginHandler(deps.LoginService)

	intake := middleware.IntakeConfig{
		MaxSizeBytes: deps.Config.UploadMaxSizeBytes,
		AllowedTypes: deps.Config.AllowedUploadTypes(),
	}

	apiGroup := router.Group("/api")
	apiGroup.Use(func(c *gin.Context) { // 所有API禁止缓存
		c.Header("Cache-Control", "no-store")
		c.Next()
	})
	{
		// 认证路由
		authGroup := apiGroup.Group("/auth")
		authGroup.Use(deps.AuthLimiter.Middleware())
		{
			authGroup.POST("/login", loginHandler.LoginHandlerFunc) // POST /api/auth/login
		}

		v1 := apiGroup.Group("/v1")
		v1.Use(deps.APILimiter.Middleware())
		v1.Use(middleware.Auth(deps.JWTService))
		{
			// Images
			imagesGroup := v1.Group("/images")
			{
				imagesGroup.GET("", imageHandler.ListImages)                                             // GET /api/v1/images?folder={id}
				imagesGroup.GET("/search", imageHandler.SearchImages)                                    // GET /api/v1/images/search?q={text}
				imagesGroup.POST("/upload", middleware.UploadGate(intake), imageHandler.UploadImage)     // POST /api/v1/images/upload
				imagesGroup.PUT("/:id", imageHandler.RenameImage)                                        // PUT /api/v1/images/{id}
				imagesGroup.DELETE("/:id", imageHandler.DeleteImage)                                     // DELETE /api/v1/images/{id}
			}

			// Folders
			foldersGroup := v1.Group("/folders")
			{
				foldersGroup.GET("", folderHandler.ListFolders)         // GET /api/v1/folders
				foldersGroup.POST("", folderHandler.CreateFolder)       // POST /api/v1/folders
				foldersGroup.DELETE("/:id", folderHandler.DeleteFolder) // DELETE /api/v1/folders/{id}
			}
		}
	}
}
