package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"rule/resume-analyzer/internal/config"
	"rule/resume-analyzer/internal/handlers"
	"rule/resume-analyzer/internal/providers"
	"rule/resume-analyzer/internal/repositories"
	"rule/resume-analyzer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	docRepo := repositories.NewDocumentRepository(db)
	analysisRepo := repositories.NewAnalysisRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize storage
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	resultStore := services.NewFileResultStore(cfg.Storage.OutputsPath)
	if err := resultStore.EnsureDir(); err != nil {
		log.Fatalf("❌ Failed to create outputs directory: %v", err)
	}

	jobDescStore := services.NewJobDescriptionStore(cfg.Storage.JobDescPath)
	log.Println("✅ Storage initialized successfully")

	// Initialize LLM gateway
	configStore, err := providers.NewConfigStore(cfg.LLM.ConfigPath)
	if err != nil {
		log.Fatalf("❌ Failed to initialize LLM configuration: %v", err)
	}

	gateway := providers.NewGateway(configStore, cfg.LLM.RequestTimeout)
	log.Printf("✅ LLM gateway initialized (provider: %s)\n", gateway.ActiveConfig().Provider)

	// Initialize pipeline services
	classifier := services.NewDocumentClassifier(cfg.Pipeline.MinTextLength)
	nativeExtractor := services.NewNativeExtractor()
	ocrExtractor := services.NewOCRExtractor(cfg.Pipeline.OCRDPI)

	extractor := services.NewStructuredExtractor(gateway)
	validator := services.NewSchemaValidator(cfg.Pipeline.EligibilityThreshold, extractor)

	analyzer := services.NewAnalyzerService(
		classifier,
		nativeExtractor,
		ocrExtractor,
		gateway,
		validator,
		resultStore,
		analysisRepo,
	)

	batch := services.NewBatchService(analyzer, cfg.Pipeline.BatchConcurrency)
	analytics := services.NewAnalyticsService(resultStore)
	log.Println("✅ Pipeline services initialized successfully")

	// Initialize handlers
	analyzeHandler := handlers.NewAnalyzeHandler(
		docRepo,
		storageService,
		jobDescStore,
		analyzer,
		batch,
		cfg.Storage.MaxFileSize,
	)
	resultHandler := handlers.NewResultHandler(resultStore)
	jobDescHandler := handlers.NewJobDescriptionHandler(jobDescStore)
	configHandler := handlers.NewConfigHandler(configStore)
	analyticsHandler := handlers.NewAnalyticsHandler(analytics)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Analyzer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 20,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Post("/analyze-batch", analyzeHandler.HandleAnalyzeBatch)
	api.Get("/analysis/:id", resultHandler.HandleGetResult)

	api.Get("/job-description", jobDescHandler.HandleGet)
	api.Post("/job-description", jobDescHandler.HandleSave)

	api.Get("/llm/config", configHandler.HandleGetConfig)
	api.Put("/llm/config", configHandler.HandleUpdateConfig)
	api.Get("/llm/providers", configHandler.HandleListProviders)

	api.Get("/analytics/summary", analyticsHandler.HandleSummary)
	api.Get("/analytics/export", analyticsHandler.HandleExport)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Analyzer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/analyze",
				"POST /api/v1/analyze-batch",
				"GET /api/v1/analysis/:id",
				"GET /api/v1/job-description",
				"POST /api/v1/job-description",
				"GET /api/v1/llm/config",
				"PUT /api/v1/llm/config",
				"GET /api/v1/llm/providers",
				"GET /api/v1/analytics/summary",
				"GET /api/v1/analytics/export",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
