package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/auriko/image-vault/api/core"
	"github.com/auriko/image-vault/config"
	"github.com/auriko/image-vault/database"
	accountsRepo "github.com/auriko/image-vault/database/repo/accounts"
	foldersRepo "github.com/auriko/image-vault/database/repo/folders"
	imagesRepo "github.com/auriko/image-vault/database/repo/images"
	"github.com/auriko/image-vault/internal/auth"
	foldersSvc "github.com/auriko/image-vault/internal/folders"
	imagesSvc "github.com/auriko/image-vault/internal/images"
	"github.com/auriko/image-vault/storage"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start API server",
	Run: func(cmd *cobra.Command, args []string) {
		RunServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func RunServer() {
	config.InitConfig()
	cfg := config.Get()

	if err := os.MkdirAll("./data", os.ModePerm); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	db, err := database.NewDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 自动DDL
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	// 创建默认管理员用户
	accounts := accountsRepo.NewRepository(db)
	if password, err := accounts.CreateDefaultAdminUser(); err != nil {
		log.Printf("[Warning] Failed to create default admin user: %v", err)
	} else if password != "" {
		log.Printf("Created default admin user 'admin' with password: %s", password)
	}

	storageFactory, err := storage.NewFactory(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	jwtService, err := auth.NewJWTService(cfg.JwtSecret, cfg.JwtExpiresIn)
	if err != nil {
		log.Fatalf("Failed to initialize JWT: %v", err)
	}

	imagesRepository := imagesRepo.NewRepository(db)
	foldersRepository := foldersRepo.NewRepository(db)

	deps := &core.RouterDependencies{
		DB:             db,
		StorageFactory: storageFactory,
		ImageService:   imagesSvc.NewService(imagesRepository, foldersRepository, storageFactory.GetDefault()),
		FolderService:  foldersSvc.NewService(foldersRepository, imagesRepository),
		JWTService:     jwtService,
		LoginService:   auth.NewLoginService(accounts, jwtService),
		Config:         cfg,
	}

	// 启动gin
	server, cleanup := core.StartServer(deps)
	go func() {
		log.Printf("Server started on %s", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// 处理退出signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if cleanup != nil {
		cleanup()
	}

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("Server exited successfully")
}
