package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/bioguide/backend/config"
	"github.com/bioguide/backend/internal/handler"
	"github.com/bioguide/backend/internal/middleware"
	"github.com/bioguide/backend/internal/service"
)

func Setup(
	cfg *config.Config,
	auth service.AuthService,
	authHandler *handler.AuthHandler,
	publicHandler *handler.PublicHandler,
	chapterHandler *handler.ChapterHandler,
	slideHandler *handler.SlideHandler,
	userHandler *handler.UserHandler,
	maintenanceHandler *handler.MaintenanceHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	store := cookie.NewStore([]byte(cfg.Session.Secret))
	r.Use(sessions.Sessions(cfg.Session.Name, store))
	r.Use(middleware.LoadUser(auth))

	// uploaded slide images
	r.Static("/uploads", cfg.Data.UploadDir)

	api := r.Group("/api/:lang")
	{
		api.GET("/chapters", publicHandler.ListChapters)
		api.GET("/chapters/:id", publicHandler.GetChapter)
		api.GET("/slides/:id", publicHandler.GetSlide)

		api.POST("/admin/login", authHandler.Login)
		api.POST("/admin/logout", authHandler.Logout)

		admin := api.Group("/admin", middleware.RequireAdmin())
		{
			admin.GET("/dashboard", maintenanceHandler.Dashboard)
			admin.GET("/export", maintenanceHandler.Export)

			chapters := admin.Group("/chapters")
			{
				chapters.GET("", chapterHandler.List)
				chapters.POST("", chapterHandler.Create)
				chapters.PUT("/:id", chapterHandler.Update)
				chapters.DELETE("/:id", chapterHandler.Delete)
				chapters.POST("/:id/reorder", chapterHandler.Reorder)
				chapters.GET("/:id/slides", chapterHandler.ListSlides)
			}

			slides := admin.Group("/slides")
			{
				slides.POST("", slideHandler.Create)
				slides.PUT("/:id", slideHandler.Update)
				slides.DELETE("/:id", slideHandler.Delete)
				slides.POST("/:id/reorder", slideHandler.Reorder)
				slides.POST("/:id/image", slideHandler.UploadImage)
			}

			users := admin.Group("/users")
			{
				users.GET("", userHandler.List)
				users.POST("", userHandler.Create)
				users.PUT("/:id", userHandler.Update)
				users.POST("/:id/toggle-status", userHandler.ToggleStatus)
			}

			admin.GET("/profile", userHandler.Profile)
			admin.PUT("/profile", userHandler.UpdateProfile)

			maintenance := admin.Group("/maintenance")
			{
				maintenance.POST("/purge-activities", maintenanceHandler.PurgeActivities)
				maintenance.POST("/reset-views", maintenanceHandler.ResetViews)
				maintenance.POST("/rollup", maintenanceHandler.Rollup)
			}
		}
	}

	return r
}
