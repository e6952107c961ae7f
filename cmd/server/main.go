package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"relaybot/internal/catalog"
	"relaybot/internal/config"
	"relaybot/internal/document"
	"relaybot/internal/handlers"
	"relaybot/internal/jobs"
	"relaybot/internal/llm"
	"relaybot/internal/logging"
	"relaybot/internal/middleware"
	"relaybot/internal/services"
	"relaybot/internal/store"
)

// defaultInferenceEndpoint serves the providers without first-party
// adapters through one OpenAI-shaped gateway.
const defaultInferenceEndpoint = "https://models.inference.ai.azure.com"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize structured logging (JSON in production, text in dev)
	logging.Init()

	log.Println("🚀 Starting RelayBot Server...")

	// Load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found or error loading it: %v", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// Load configuration
	cfg := config.Load()
	log.Printf("📋 Configuration loaded (Port: %s, Store: %s, Env: %s)", cfg.Port, cfg.StoreBackend, cfg.Environment)

	// Initialize the memory store
	memoryStore, err := newStore(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize %s store: %v", cfg.StoreBackend, err)
	}
	defer memoryStore.Close()
	log.Printf("✅ Memory store ready (%s)", cfg.StoreBackend)

	// Load the model catalog
	cat := catalog.Default()
	if cfg.ModelsFile != "" {
		descriptors, err := config.LoadCatalog(cfg.ModelsFile)
		if err != nil {
			log.Fatalf("❌ Failed to load models file: %v", err)
		}
		cat = catalog.New(descriptors)
		log.Printf("📦 Loaded %d models from %s", cat.Len(), cfg.ModelsFile)
	}
	log.Printf("🤖 Model catalog ready (%d models, %d providers)", cat.Len(), len(cat.Providers()))

	// Validate the default model up front so a typo fails fast
	if _, err := cat.Resolve(cfg.DefaultModel); err != nil {
		log.Fatalf("❌ Default model %q is not in the catalog", cfg.DefaultModel)
	}

	// Initialize metrics
	metrics := services.InitMetrics()

	// Initialize core services
	memoryService := services.NewMemoryService(memoryStore, cfg.DefaultModel, cfg.MaxMemoryMessages)
	routerService := services.NewRouterService(cat, buildAdapters(cfg, cat), cfg.ProviderRPS, metrics)

	documentService, err := document.NewService(cfg.UploadsDir, cfg.MaxFileSizeMB)
	if err != nil {
		log.Fatalf("❌ Failed to initialize document service: %v", err)
	}

	dispatchService := services.NewDispatchService(
		memoryService, routerService, cat, documentService, metrics, cfg.MaxChunkLength,
	)

	// Start the upload cleanup job
	cleanupJob, err := jobs.NewCleanupJob(cfg.UploadsDir, time.Duration(cfg.UploadTTLMinutes)*time.Minute)
	if err != nil {
		log.Fatalf("❌ Failed to create cleanup job: %v", err)
	}
	if err := cleanupJob.Start(); err != nil {
		log.Fatalf("❌ Failed to start cleanup job: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:   "RelayBot",
		BodyLimit: (cfg.MaxFileSizeMB + 1) * 1024 * 1024,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())

	// Prometheus metrics middleware
	prometheus := fiberprometheus.New("relaybot")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)
	log.Println("📊 Prometheus metrics endpoint enabled at /metrics")

	app.Use(cors.New(cors.Config{
		AllowOrigins: getEnvDefault("ALLOWED_ORIGINS", "*"),
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,X-API-Key",
	}))

	// Global API rate limiter
	app.Use("/api", limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
	}))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cat)
	modelsHandler := handlers.NewModelsHandler(cat)
	chatHandler := handlers.NewChatHandler(dispatchService)

	// Routes
	app.Get("/health", healthHandler.Handle)
	app.Get("/api/models", modelsHandler.List)
	app.Get("/api/models/:provider", modelsHandler.ListByProvider)

	authed := app.Group("/api", middleware.APIKeyMiddleware(cfg.APIKey))
	authed.Post("/chat", chatHandler.HandleChat)
	authed.Post("/command", chatHandler.HandleCommand)

	// The webhook endpoint authenticates with signatures, not the API key
	if cfg.WebhookPublicKey != "" {
		webhookHandler, err := handlers.NewWebhookHandler(dispatchService, cfg.WebhookPublicKey)
		if err != nil {
			log.Fatalf("❌ Failed to initialize webhook handler: %v", err)
		}
		app.Post("/api/webhook", webhookHandler.HandleInteraction)
		log.Println("🔗 Webhook endpoint enabled at /api/webhook")
	} else {
		log.Println("⚠️  WEBHOOK_PUBLIC_KEY not set, webhook endpoint disabled")
	}

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("\n🛑 Shutting down server...")

		if err := cleanupJob.Stop(); err != nil {
			log.Printf("⚠️ Error stopping cleanup job: %v", err)
		}

		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️ Error shutting down server: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// newStore selects the memory store backend from configuration.
func newStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case "redis":
		return store.NewRedisStore(cfg.RedisURL)
	case "sqlite":
		return store.NewSQLiteStore(cfg.SQLitePath)
	default:
		return store.NewFileStore(cfg.MemoryDir)
	}
}

// buildAdapters wires one adapter per catalog provider. Providers
// without a dedicated adapter share the OpenAI-shaped inference
// gateway.
func buildAdapters(cfg *config.Config, cat *catalog.Catalog) map[string]llm.Adapter {
	endpoint := cfg.AIEndpoint
	if endpoint == "" {
		endpoint = defaultInferenceEndpoint
	}

	adapters := map[string]llm.Adapter{
		"openai":    llm.NewOpenAIAdapter(cfg.OpenAIAPIKey, ""),
		"anthropic": llm.NewAnthropicAdapter(cfg.AnthropicAPIKey),
		"google":    llm.NewGoogleAdapter(cfg.GoogleAPIKey, ""),
	}

	for _, provider := range cat.Providers() {
		if _, ok := adapters[provider]; ok {
			continue
		}
		adapters[provider] = llm.NewAzureAdapter(endpoint, cfg.AIAPIKey, provider)
	}

	return adapters
}

func getEnvDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
