package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"relaybot/internal/models"
)

// Config holds all application configuration
type Config struct {
	Port        string
	Environment string

	// Memory store
	StoreBackend string // "file", "redis" or "sqlite"
	MemoryDir    string
	RedisURL     string
	SQLitePath   string

	// Conversation policy
	DefaultModel      string
	MaxMemoryMessages int
	MaxChunkLength    int

	// Attachments
	UploadsDir       string
	MaxFileSizeMB    int
	UploadTTLMinutes int

	// Optional catalog override file
	ModelsFile string

	// API surface
	APIKey           string // shared secret for /api endpoints; empty disables auth
	WebhookPublicKey string // hex-encoded ed25519 key for signed interactions

	// Provider credentials
	OpenAIAPIKey    string
	AnthropicAPIKey string
	GoogleAPIKey    string
	AIEndpoint      string // catalog-wide inference endpoint
	AIAPIKey        string

	// Outbound rate limit per provider (requests per second)
	ProviderRPS float64
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "3001"),
		Environment: getEnv("ENVIRONMENT", "development"),

		StoreBackend: getEnv("STORE_BACKEND", "file"),
		MemoryDir:    getEnv("MEMORY_DIR", "./data/memory"),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379"),
		SQLitePath:   getEnv("SQLITE_PATH", "./data/memory.db"),

		DefaultModel:      getEnv("DEFAULT_MODEL", "gpt-4"),
		MaxMemoryMessages: getIntEnv("MAX_MEMORY_MESSAGES", 50),
		MaxChunkLength:    getIntEnv("MAX_CHUNK_LENGTH", 2000),

		UploadsDir:       getEnv("UPLOADS_DIR", "./uploads"),
		MaxFileSizeMB:    getIntEnv("MAX_FILE_SIZE_MB", 10),
		UploadTTLMinutes: getIntEnv("UPLOAD_TTL_MINUTES", 60),

		ModelsFile: getEnv("MODELS_FILE", ""),

		APIKey:           getEnv("API_KEY", ""),
		WebhookPublicKey: getEnv("WEBHOOK_PUBLIC_KEY", ""),

		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		GoogleAPIKey:    getEnv("GOOGLE_API_KEY", ""),
		AIEndpoint:      getEnv("AI_ENDPOINT", ""),
		AIAPIKey:        getEnv("AI_API_KEY", ""),

		ProviderRPS: getFloatEnv("PROVIDER_RPS", 5),
	}
}

// LoadCatalog loads a model catalog override from a JSON file.
// The file is a flat array of model descriptors.
func LoadCatalog(filePath string) ([]models.ModelDescriptor, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read models file: %w", err)
	}

	var descriptors []models.ModelDescriptor
	if err := json.Unmarshal(data, &descriptors); err != nil {
		return nil, fmt.Errorf("failed to parse models JSON: %w", err)
	}

	return descriptors, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
