package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ocrapi/docs"
	"ocrapi/internal/config"
	"ocrapi/internal/database"
	"ocrapi/internal/database/migration"
	handlers "ocrapi/internal/http/handler"
	"ocrapi/internal/http/middleware"
	"ocrapi/internal/ocr"
	otelsetup "ocrapi/internal/otel"
	"ocrapi/internal/repository/postgres"
	"ocrapi/internal/service"
	"ocrapi/internal/storage"
)

// @title OCR API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()
	loc := time.UTC

	// Initialize tracing; degrades to a noop provider when the exporter fails
	shutdownTracing, err := otelsetup.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Scratch directory for PDF page rendering
	if err := os.MkdirAll(cfg.OCR.UploadDir, 0o755); err != nil {
		log.Fatalf("failed to create upload dir %s: %v", cfg.OCR.UploadDir, err)
	}

	// Local OCR engine plus PDF rasterizer
	engine, err := ocr.NewEngine(cfg.OCR.Engine, cfg.OCR.Languages)
	if err != nil {
		log.Fatalf("failed to initialize OCR engine: %v", err)
	}
	defer engine.Close()

	converter := ocr.NewPDFConverter(cfg.OCR.PdftoppmPath, cfg.OCR.DPI, cfg.OCR.UploadDir)
	if !converter.Available() {
		log.Printf("pdftoppm not found on PATH; PDF uploads will fail until installed")
	}

	// Optional cloud fallback for low-confidence extractions
	var fallback ocr.DocumentRecognizer
	if cfg.Vision.Enabled {
		vision, err := ocr.NewVisionEngine(ctx, cfg.Vision)
		if err != nil {
			log.Fatalf("failed to initialize vision fallback: %v", err)
		}
		defer vision.Close()
		fallback = vision
	}

	// Initialize repositories and services
	docRepo := postgres.NewDocumentPostgres(db)
	docSvc := service.NewDocumentService(objStore, docRepo, engine, converter, fallback, service.PipelineOptions{
		FallbackMinChars: cfg.OCR.FallbackMinChars,
		Workers:          cfg.OCR.Workers,
	})

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	app.Use(cors.New())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	app.Use(otelfiber.Middleware())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register prometheus collectors: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected service
	handlers.RegisterRoutes(app, db, docSvc, cfg.AuthToken)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
