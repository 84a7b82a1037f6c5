package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"object-masker/config"
	"object-masker/internal/container"
	"object-masker/internal/domain/port"
	"object-masker/internal/infrastructure/modelstore"
	"object-masker/internal/infrastructure/storage"
	"object-masker/internal/infrastructure/vision"
	"object-masker/internal/logging"
)

const defaultImage = "http://images.cocodataset.org/val2017/000000039769.jpg"

const (
	flagImagePath = "image_path"
	flagEnv       = "env"
	flagDebug     = "debug"
	flagDryRun    = "dry-run"
)

func main() {
	app := &cli.App{
		Name:      "object-masker",
		Usage:     "detect objects on an image and save their masks",
		ArgsUsage: "[image path or URL]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagImagePath,
				Aliases: []string{"i"},
				Usage:   "path or URL of the image to process",
				Value:   defaultImage,
			},
			&cli.StringFlag{
				Name:  flagEnv,
				Usage: "dotenv file with settings",
				Value: ".env",
			},
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "enable debug logging",
			},
			&cli.BoolFlag{
				Name:  flagDryRun,
				Usage: "run detection without writing files",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("failed", "err", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String(flagEnv))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := cfg.LogLevel
	if c.Bool(flagDebug) {
		level = "debug"
	}
	logger := logging.New(os.Stderr, level)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	imagePath := c.String(flagImagePath)
	if c.Args().Present() {
		imagePath = c.Args().First()
	}

	// без OpenCV нет смысла качать модель
	if err := vision.Available(); err != nil {
		return err
	}

	var models port.ModelStore = modelstore.NewStore(cfg.ModelCacheDir, cfg.ModelFile, cfg.ModelHubURL, logger)
	model, err := models.Resolve(ctx, cfg.ModelName)
	if err != nil {
		return fmt.Errorf("resolve model %s: %w", cfg.ModelName, err)
	}
	logger.Info("model ready", "path", model.Path, "labels", len(model.Labels))

	detector, err := vision.NewDETRDetector(model.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := detector.Close(); err != nil {
			logger.Warn("close detector", "err", err)
		}
	}()

	var writer port.ImageWriter
	if c.Bool(flagDryRun) {
		writer = storage.NewMemoryImageStore()
		logger.Info("dry run, results are kept in memory")
	}

	appContainer, err := container.New(cfg, detector, model, writer, logger)
	if err != nil {
		return err
	}

	report, err := appContainer.MaskingService.Process(ctx, imagePath)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("interrupted")
		}
		return err
	}

	for _, obj := range report.Objects {
		logger.Info("object",
			"index", obj.Index,
			"class", obj.Label,
			"score", fmt.Sprintf("%.3f", obj.Score),
			"box", fmt.Sprintf("[%.0f %.0f %.0f %.0f]", obj.Box.Min.X, obj.Box.Min.Y, obj.Box.Max.X, obj.Box.Max.Y),
		)
	}
	logger.Info("done",
		"image", report.BaseName,
		"objects", len(report.Objects),
		"drawn", report.Drawn,
		"files", len(report.Files),
	)

	return nil
}
