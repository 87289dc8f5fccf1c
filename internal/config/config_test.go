package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowOrigins)
	assert.Equal(t, 0.5, cfg.Watermark.Opacity)
	assert.Equal(t, 60.0, cfg.Watermark.FontSize)
	assert.Equal(t, 80, cfg.Watermark.XSpacing)
	assert.Equal(t, "white", cfg.Watermark.ColorKey)
	assert.Equal(t, 16, cfg.Watermark.KeyOffset)
	assert.Equal(t, "soffice", cfg.Converter.Binary)
	assert.Equal(t, "pdfcpu", cfg.PDF.Binary)
	assert.Equal(t, 24*time.Hour, cfg.Storage.CacheDuration)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("WATERMARK_OPACITY", "0.3")
	t.Setenv("WATERMARK_KEEP_LEGACY", "true")
	t.Setenv("CONVERTER_TIMEOUT", "45s")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("WATERMARK_X_SPACING", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.3, cfg.Watermark.Opacity)
	assert.True(t, cfg.Watermark.KeepLegacyOut)
	assert.Equal(t, 45*time.Second, cfg.Converter.Timeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowOrigins)
	assert.Equal(t, 80, cfg.Watermark.XSpacing)
}
