package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "localhost:8000", cfg.AppHost)
	assert.Empty(t, cfg.AuthToken)

	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	assert.Equal(t, 300, cfg.Database.ConnMaxLifetimeSec)

	assert.False(t, cfg.MinIO.UseSSL)

	assert.Equal(t, "tesseract", cfg.OCR.Engine)
	assert.Equal(t, "eng", cfg.OCR.Languages)
	assert.Equal(t, 2, cfg.OCR.Workers)
	assert.Equal(t, 300, cfg.OCR.DPI)
	assert.Equal(t, 100, cfg.OCR.FallbackMinChars)
	assert.Equal(t, "/app/uploads", cfg.OCR.UploadDir)

	assert.False(t, cfg.Vision.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("AUTH_TOKEN", "secret")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("OCR_LANGUAGES", "eng+deu")
	t.Setenv("OCR_WORKERS", "4")
	t.Setenv("OCR_FALLBACK_MIN_CHARS", "50")
	t.Setenv("VISION_ENABLED", "true")
	t.Setenv("VISION_CREDENTIALS_FILE", "/etc/gcv/key.json")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "secret", cfg.AuthToken)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "eng+deu", cfg.OCR.Languages)
	assert.Equal(t, 4, cfg.OCR.Workers)
	assert.Equal(t, 50, cfg.OCR.FallbackMinChars)
	assert.True(t, cfg.Vision.Enabled)
	assert.Equal(t, "/etc/gcv/key.json", cfg.Vision.CredentialsFile)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "lots")
	t.Setenv("MINIO_USE_SSL", "yes please")
	t.Setenv("OCR_DPI", "")

	cfg := Load()

	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.False(t, cfg.MinIO.UseSSL)
	assert.Equal(t, 300, cfg.OCR.DPI)
}
