package container

import (
	"errors"
	"fmt"
	"log/slog"

	"object-masker/config"
	app "object-masker/internal/application"
	"object-masker/internal/domain/entity"
	"object-masker/internal/domain/port"
	"object-masker/internal/infrastructure/imageio"
	"object-masker/internal/infrastructure/render"
)

// Container собирает сервисы приложения из конфигурации
type Container struct {
	MaskingService *app.MaskingService
}

// New связывает загрузчик, отрисовку и детектор в MaskingService.
// writer задаётся снаружи, чтобы можно было запускаться без записи на диск.
func New(cfg *config.Config, detector port.ObjectDetector, model *entity.Model, writer port.ImageWriter, logger *slog.Logger) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	renderer, err := render.NewRenderer(render.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	if writer == nil {
		fw, err := imageio.NewFileWriter(cfg.ImageFormat)
		if err != nil {
			return nil, err
		}
		writer = fw
	}

	opts := app.MaskingOptions{
		SaveDestination:   cfg.SaveDestination,
		OutputDestination: cfg.OutputDestination,
		Extension:         cfg.Extension(),
		Resize:            cfg.Resize,
		ResizeScale:       cfg.ResizeScale,
		MaxWidth:          cfg.MaxWidth,
		MaxHeight:         cfg.MaxHeight,
		Extract: app.ExtractOptions{
			Threshold: cfg.Threshold,
			MaxItems:  cfg.MaxItems,
			Excluded:  cfg.ExcludedObjects,
			Model:     model,
		},
	}

	loader := imageio.NewLoader(cfg.HTTPTimeout, logger)

	return &Container{
		MaskingService: app.NewMaskingService(loader, writer, detector, renderer, opts, logger),
	}, nil
}
