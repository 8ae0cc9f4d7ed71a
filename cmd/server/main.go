// @title           Photobooth Backend API
// @version         1.0.0
// @description     Order management backend for a school photo-booth event: orders, editing projects, raffle draws and print-template packing behind a CRUD REST API.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"photobooth-backend/docs"
	"photobooth-backend/internal/config"
	"photobooth-backend/internal/database"
	"photobooth-backend/internal/handlers"
	"photobooth-backend/internal/middleware"
	"photobooth-backend/internal/printing"
	"photobooth-backend/internal/raffle"
	"photobooth-backend/internal/storage"
	"photobooth-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Swagger host follows the deployed base URL.
	if baseURL, err := url.Parse(cfg.BaseURL); err == nil && baseURL.Host != "" {
		docs.SwaggerInfo.Host = baseURL.Host
		if baseURL.Scheme == "https" {
			docs.SwaggerInfo.Schemes = []string{"https", "http"}
		} else {
			docs.SwaggerInfo.Schemes = []string{"http", "https"}
		}
	}

	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize migrator")
	}
	if err := migrator.Run(); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}
	migrator.Close()
	log.Info().Msg("migrations completed")

	db, err := store.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	var blobStore storage.Store
	switch cfg.StorageBackend {
	case config.StorageBackendSupabase:
		blobStore = storage.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseStorageBucket)
	default:
		blobStore = storage.NewLocalStore(cfg.UploadsDir, cfg.BaseURL)
	}

	allocator := printing.NewAllocator(db)
	lifecycle := printing.NewLifecycle(db)
	engine := raffle.NewEngine(db)

	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(cfg)
	ordersHandler := handlers.NewOrdersHandler(db)
	projectsHandler := handlers.NewProjectsHandler(db, allocator)
	designsHandler := handlers.NewDesignsHandler(db)
	printTemplatesHandler := handlers.NewPrintTemplatesHandler(db, lifecycle)
	slotsHandler := handlers.NewSlotsHandler(db)
	raffleHandler := handlers.NewRaffleHandler(db, engine)
	uploadsHandler := handlers.NewUploadsHandler(blobStore)

	router := gin.Default()
	router.Use(corsMiddleware(cfg.FrontendOrigins))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", healthHandler.Health)

	// Stored blobs are public: the canvas editor loads them cross-origin.
	router.GET("/uploads/*key", uploadsHandler.ServeUpload)
	router.HEAD("/uploads/*key", uploadsHandler.ServeUpload)

	router.POST("/api/v1/auth/login", authHandler.Login)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	api.GET("/orders", ordersHandler.ListOrders)
	api.POST("/orders", ordersHandler.CreateOrder)
	api.POST("/orders/bulk-update", ordersHandler.BulkUpdateOrders)
	api.GET("/orders/:id", ordersHandler.GetOrder)
	api.PATCH("/orders/:id", ordersHandler.UpdateOrder)
	api.POST("/orders/:id/deliver", ordersHandler.DeliverOrder)

	api.GET("/projects", projectsHandler.ListProjects)
	api.POST("/projects", projectsHandler.CreateProject)
	api.GET("/projects/:id", projectsHandler.GetProject)
	api.PATCH("/projects/:id", projectsHandler.UpdateProject)
	api.DELETE("/projects/:id", projectsHandler.DeleteProject)
	api.POST("/projects/:id/photo", projectsHandler.RecordPhoto)
	api.POST("/projects/:id/complete", projectsHandler.CompleteProject)

	api.GET("/templates", designsHandler.ListDesigns)
	api.POST("/templates", designsHandler.CreateDesign)

	api.GET("/print-templates", printTemplatesHandler.ListPrintTemplates)
	api.GET("/print-templates/count", printTemplatesHandler.CountPrintTemplates)
	api.GET("/print-templates/:id", printTemplatesHandler.GetPrintTemplate)
	api.PATCH("/print-templates/:id", printTemplatesHandler.UpdatePrintTemplate)
	api.POST("/print-templates/:id/download", printTemplatesHandler.DownloadPrintTemplate)
	api.POST("/print-templates/:id/print", printTemplatesHandler.PrintPrintTemplate)

	api.GET("/template-slots", slotsHandler.ListSlots)
	api.DELETE("/template-slots", slotsHandler.DeleteSlots)
	api.POST("/template-slots/bulk", slotsHandler.BulkUpsertSlots)
	api.GET("/template-slots/printed-summary", slotsHandler.PrintedSummary)

	api.GET("/raffle-entries", raffleHandler.ListEntries)
	api.POST("/raffle-entries/bulk", raffleHandler.BulkCreateEntries)
	api.PATCH("/raffle-entries/:id", raffleHandler.UpdateEntry)
	api.GET("/raffle-winners", raffleHandler.ListWinners)
	api.POST("/raffle/draw", raffleHandler.Draw)

	api.POST("/uploads/project-image", uploadsHandler.UploadProjectImage)

	log.Info().Str("port", cfg.Port).Str("environment", cfg.Environment).Msg("server starting")
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// corsMiddleware allows the configured origins; entries starting with "*."
// match any subdomain of the suffix (ngrok tunnels rotate hostnames).
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cors.New(cfg)
	}

	cfg.AllowOriginFunc = func(origin string) bool {
		for _, allowed := range origins {
			if origin == allowed {
				return true
			}
			if strings.HasPrefix(allowed, "*.") {
				if u, err := url.Parse(origin); err == nil &&
					strings.HasSuffix(u.Hostname(), allowed[1:]) {
					return true
				}
			}
		}
		return false
	}
	return cors.New(cfg)
}
