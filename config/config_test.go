package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	require.Equal(t, 0.9, cfg.Threshold)
	require.Equal(t, 10, cfg.MaxItems)
	require.Equal(t, []int{91}, cfg.ExcludedObjects)
	require.Equal(t, "./test_images", cfg.SaveDestination)
	require.Equal(t, "./output_images", cfg.OutputDestination)
	require.Equal(t, 2000, cfg.MaxWidth)
	require.Equal(t, 2000, cfg.MaxHeight)
	require.True(t, cfg.Resize)
	require.Equal(t, 0.75, cfg.ResizeScale)
	require.Equal(t, "png", cfg.Extension())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("THRESHOLD", "0.5")
	t.Setenv("MAX_ITEMS", "3")
	t.Setenv("RESIZE", "false")
	t.Setenv("EXCLUDED_OBJECTS", "91, 1,91")
	t.Setenv("IMAGE_FORMAT", "jpeg")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("MODEL_HUB_URL", "http://localhost:9000/")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	require.Equal(t, 0.5, cfg.Threshold)
	require.Equal(t, 3, cfg.MaxItems)
	require.False(t, cfg.Resize)
	require.Equal(t, []int{91, 1}, cfg.ExcludedObjects)
	require.Equal(t, "JPEG", cfg.ImageFormat)
	require.Equal(t, "jpeg", cfg.Extension())
	require.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	require.Equal(t, "http://localhost:9000", cfg.ModelHubURL)
}

func TestLoad_EnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("MAX_WIDTH=640\nMAX_HEIGHT=480\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("MAX_WIDTH")
		os.Unsetenv("MAX_HEIGHT")
	})

	cfg, err := Load(envFile)
	require.NoError(t, err)
	require.Equal(t, 640, cfg.MaxWidth)
	require.Equal(t, 480, cfg.MaxHeight)
}

func TestLoad_BadNumber(t *testing.T) {
	t.Setenv("MAX_ITEMS", "many")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.ErrorContains(t, err, "MAX_ITEMS")
}

func TestLoad_NaNRejected(t *testing.T) {
	for _, key := range []string{"THRESHOLD", "RESIZE_SCALE"} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, "NaN")

			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_DecimalIntegers(t *testing.T) {
	t.Setenv("MAX_WIDTH", "0800")
	t.Setenv("EXCLUDED_OBJECTS", "010,91")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	require.Equal(t, 800, cfg.MaxWidth)
	require.Equal(t, []int{10, 91}, cfg.ExcludedObjects)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"threshold above one", func(c *Config) { c.Threshold = 1.5 }},
		{"negative threshold", func(c *Config) { c.Threshold = -0.1 }},
		{"zero max items", func(c *Config) { c.MaxItems = 0 }},
		{"zero max width", func(c *Config) { c.MaxWidth = 0 }},
		{"scale of one", func(c *Config) { c.ResizeScale = 1 }},
		{"zero scale", func(c *Config) { c.ResizeScale = 0 }},
		{"nan threshold", func(c *Config) { c.Threshold = math.NaN() }},
		{"nan scale", func(c *Config) { c.ResizeScale = math.NaN() }},
		{"empty destination", func(c *Config) { c.SaveDestination = "" }},
		{"unknown format", func(c *Config) { c.ImageFormat = "WEBP" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	// масштаб не важен, если уменьшение отключено
	cfg := Default()
	cfg.Resize = false
	cfg.ResizeScale = 2
	require.NoError(t, cfg.Validate())
}

func TestParseIDs(t *testing.T) {
	ids, err := ParseIDs("")
	require.NoError(t, err)
	require.Empty(t, ids)

	ids, err = ParseIDs("1,2, 2 ,3,")
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, ids)

	ids, err = ParseIDs("010, 7")
	require.NoError(t, err)
	require.Equal(t, []int{10, 7}, ids)

	_, err = ParseIDs("1,x")
	require.Error(t, err)

	_, err = ParseIDs("0x5b")
	require.Error(t, err)
}
