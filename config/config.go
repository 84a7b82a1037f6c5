package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/spf13/cast"
)

// ErrInvalidConfig возвращается, если параметры не проходят проверку
var ErrInvalidConfig = errors.New("invalid config")

// SupportedFormats форматы, в которых можно сохранять результаты
var SupportedFormats = []string{"PNG", "JPEG", "JPG", "GIF", "TIFF", "TIF", "BMP"}

// Config параметры запуска детектора
type Config struct {
	ModelName     string // id модели в хабе или путь к .onnx файлу
	ModelFile     string // путь к onnx файлу внутри репозитория модели
	ModelCacheDir string
	ModelHubURL   string

	Threshold       float64
	MaxItems        int
	ExcludedObjects []int // 91 это класс "no object" у DETR на COCO

	SaveDestination   string
	OutputDestination string
	ImageFormat       string

	Resize      bool
	ResizeScale float64
	MaxWidth    int
	MaxHeight   int

	HTTPTimeout time.Duration
	LogLevel    string
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		ModelName:         "Xenova/detr-resnet-50",
		ModelFile:         "onnx/model.onnx",
		ModelCacheDir:     "./models",
		ModelHubURL:       "https://huggingface.co",
		Threshold:         0.9,
		MaxItems:          10,
		ExcludedObjects:   []int{91},
		SaveDestination:   "./test_images",
		OutputDestination: "./output_images",
		ImageFormat:       "PNG",
		Resize:            true,
		ResizeScale:       0.75,
		MaxWidth:          2000,
		MaxHeight:         2000,
		HTTPTimeout:       30 * time.Second,
		LogLevel:          "info",
	}
}

// Load читает .env (если есть) и переменные окружения поверх значений по умолчанию
func Load(envFiles ...string) (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load(envFiles...)

	cfg := Default()
	cfg.ModelName = getEnv("MODEL_NAME", cfg.ModelName)
	cfg.ModelFile = getEnv("MODEL_FILE", cfg.ModelFile)
	cfg.ModelCacheDir = getEnv("MODEL_CACHE_DIR", cfg.ModelCacheDir)
	cfg.ModelHubURL = strings.TrimRight(getEnv("MODEL_HUB_URL", cfg.ModelHubURL), "/")
	cfg.SaveDestination = getEnv("SAVE_DESTINATION", cfg.SaveDestination)
	cfg.OutputDestination = getEnv("OUTPUT_DESTINATION", cfg.OutputDestination)
	cfg.ImageFormat = strings.ToUpper(getEnv("IMAGE_FORMAT", cfg.ImageFormat))
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	var err error
	if v, ok := os.LookupEnv("THRESHOLD"); ok {
		if cfg.Threshold, err = cast.ToFloat64E(v); err != nil {
			return nil, fmt.Errorf("parse THRESHOLD: %w", err)
		}
	}
	if v, ok := os.LookupEnv("MAX_ITEMS"); ok {
		if cfg.MaxItems, err = strconv.Atoi(strings.TrimSpace(v)); err != nil {
			return nil, fmt.Errorf("parse MAX_ITEMS: %w", err)
		}
	}
	if v, ok := os.LookupEnv("MAX_WIDTH"); ok {
		if cfg.MaxWidth, err = strconv.Atoi(strings.TrimSpace(v)); err != nil {
			return nil, fmt.Errorf("parse MAX_WIDTH: %w", err)
		}
	}
	if v, ok := os.LookupEnv("MAX_HEIGHT"); ok {
		if cfg.MaxHeight, err = strconv.Atoi(strings.TrimSpace(v)); err != nil {
			return nil, fmt.Errorf("parse MAX_HEIGHT: %w", err)
		}
	}
	if v, ok := os.LookupEnv("RESIZE"); ok {
		if cfg.Resize, err = cast.ToBoolE(v); err != nil {
			return nil, fmt.Errorf("parse RESIZE: %w", err)
		}
	}
	if v, ok := os.LookupEnv("RESIZE_SCALE"); ok {
		if cfg.ResizeScale, err = cast.ToFloat64E(v); err != nil {
			return nil, fmt.Errorf("parse RESIZE_SCALE: %w", err)
		}
	}
	if v, ok := os.LookupEnv("HTTP_TIMEOUT"); ok {
		if cfg.HTTPTimeout, err = cast.ToDurationE(v); err != nil {
			return nil, fmt.Errorf("parse HTTP_TIMEOUT: %w", err)
		}
	}
	if v, ok := os.LookupEnv("EXCLUDED_OBJECTS"); ok {
		if cfg.ExcludedObjects, err = ParseIDs(v); err != nil {
			return nil, fmt.Errorf("parse EXCLUDED_OBJECTS: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет значения параметров
func (c *Config) Validate() error {
	switch {
	case c.ModelName == "":
		return fmt.Errorf("%w: model name is empty", ErrInvalidConfig)
	case math.IsNaN(c.Threshold) || c.Threshold < 0 || c.Threshold > 1:
		return fmt.Errorf("%w: threshold %.3f is outside [0, 1]", ErrInvalidConfig, c.Threshold)
	case c.MaxItems < 1:
		return fmt.Errorf("%w: max items must be positive, got %d", ErrInvalidConfig, c.MaxItems)
	case c.MaxWidth < 1 || c.MaxHeight < 1:
		return fmt.Errorf("%w: max size %dx%d must be positive", ErrInvalidConfig, c.MaxWidth, c.MaxHeight)
	case c.Resize && (math.IsNaN(c.ResizeScale) || c.ResizeScale <= 0 || c.ResizeScale >= 1):
		// при scale >= 1 цикл уменьшения никогда не закончится
		return fmt.Errorf("%w: resize scale %.3f is outside (0, 1)", ErrInvalidConfig, c.ResizeScale)
	case c.SaveDestination == "" || c.OutputDestination == "":
		return fmt.Errorf("%w: destination directories must be set", ErrInvalidConfig)
	case !lo.Contains(SupportedFormats, strings.ToUpper(c.ImageFormat)):
		return fmt.Errorf("%w: unsupported image format %q", ErrInvalidConfig, c.ImageFormat)
	}

	return nil
}

// Extension расширение файлов для выбранного формата
func (c *Config) Extension() string {
	return strings.ToLower(c.ImageFormat)
}

// ParseIDs разбирает десятичные id классов через запятую, дубликаты отбрасываются
func ParseIDs(s string) ([]int, error) {
	ids := make([]int, 0)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return lo.Uniq(ids), nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
