package config

import (
	"os"
	"strconv"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// OCRConfig holds settings for the local text extraction pipeline.
type OCRConfig struct {
	// Engine selects the local OCR engine ("tesseract").
	Engine string
	// Languages is a '+'-separated Tesseract language list, e.g. "eng+deu".
	Languages string
	// Workers bounds concurrent page recognition for multi-page documents.
	Workers int
	// DPI is the render resolution used when rasterizing PDF pages.
	DPI int
	// PdftoppmPath overrides the pdftoppm binary location; empty means PATH lookup.
	PdftoppmPath string
	// FallbackMinChars is the minimum rune count of trimmed text below which
	// the cloud fallback is consulted.
	FallbackMinChars int
	// UploadDir is the writable scratch directory for page rendering.
	UploadDir string
}

// VisionConfig holds Google Cloud Vision fallback settings.
type VisionConfig struct {
	Enabled bool
	// CredentialsFile points at a service account JSON key. When empty the
	// client falls back to GOOGLE_APPLICATION_CREDENTIALS / ADC.
	CredentialsFile string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost   string
	Port      string
	AuthToken string
	Database  DatabaseConfig
	MinIO     MinIOConfig
	OCR       OCRConfig
	Vision    VisionConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:   getEnv("APP_HOST", "localhost:8000"),
		Port:      getEnv("PORT", "8000"), // default only for non-sensitive value
		AuthToken: getEnv("AUTH_TOKEN", ""),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		OCR: OCRConfig{
			Engine:           getEnv("OCR_ENGINE", "tesseract"),
			Languages:        getEnv("OCR_LANGUAGES", "eng"),
			Workers:          getEnvInt("OCR_WORKERS", 2),
			DPI:              getEnvInt("OCR_DPI", 300),
			PdftoppmPath:     getEnv("PDFTOPPM_PATH", ""),
			FallbackMinChars: getEnvInt("OCR_FALLBACK_MIN_CHARS", 100),
			UploadDir:        getEnv("UPLOAD_DIR", "/app/uploads"),
		},
		Vision: VisionConfig{
			Enabled:         getEnvBool("VISION_ENABLED", false),
			CredentialsFile: getEnv("VISION_CREDENTIALS_FILE", ""),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
