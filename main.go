package main

import (
	"flag"
	"log"
	"os"

	"k8s.io/klog/v2"

	"github.com/bioguide/backend/config"
	"github.com/bioguide/backend/internal/handler"
	"github.com/bioguide/backend/internal/pkg/bootstrap"
	"github.com/bioguide/backend/internal/pkg/database"
	"github.com/bioguide/backend/internal/pkg/imagestore"
	"github.com/bioguide/backend/internal/repository"
	"github.com/bioguide/backend/internal/router"
	"github.com/bioguide/backend/internal/service"
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	cfg := config.GetConfig()

	if err := os.MkdirAll(cfg.Data.Dir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	if err := os.MkdirAll(cfg.Data.UploadDir, 0755); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	db, err := database.InitDB(cfg.Database.Type, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}
	if err := bootstrap.Run(db, adminPassword); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	images, err := imagestore.New(cfg.Data.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize image store: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	chapterRepo := repository.NewChapterRepository(db)
	slideRepo := repository.NewSlideRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	authSvc := service.NewAuthService(userRepo)
	activitySvc := service.NewActivityService(activityRepo)
	chapterSvc := service.NewChapterService(chapterRepo, slideRepo)
	slideSvc := service.NewSlideService(slideRepo, chapterRepo)
	userSvc := service.NewUserService(userRepo, activityRepo)
	statsSvc := service.NewStatsService(chapterRepo, slideRepo, userRepo, statsRepo, activitySvc)

	r := router.Setup(cfg,
		authSvc,
		handler.NewAuthHandler(authSvc, activitySvc),
		handler.NewPublicHandler(chapterSvc, slideSvc, statsSvc, activitySvc),
		handler.NewChapterHandler(chapterSvc, slideSvc, activitySvc),
		handler.NewSlideHandler(slideSvc, activitySvc, images),
		handler.NewUserHandler(userSvc, activitySvc),
		handler.NewMaintenanceHandler(statsSvc, activitySvc),
	)

	log.Printf("Server starting on port %s...", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
