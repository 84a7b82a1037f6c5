package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/disintegration/imaging"

	"object-masker/internal/domain/entity"
	"object-masker/internal/domain/port"
)

// Суффиксы выходных файлов
const (
	suffixDetected          = "detected"
	suffixComplementary     = "complementary"
	suffixThis              = "this"
	suffixThisMask          = "this_mask"
	suffixComplementaryMask = "complementary_mask"
)

// MaskingOptions параметры конвейера
type MaskingOptions struct {
	SaveDestination   string
	OutputDestination string
	Extension         string

	Resize      bool
	ResizeScale float64
	MaxWidth    int
	MaxHeight   int

	Extract ExtractOptions
}

// MaskingService прогоняет изображение через детектор и сохраняет рамки и маски.
type MaskingService struct {
	loader   port.ImageLoader
	writer   port.ImageWriter
	detector port.ObjectDetector
	renderer port.Renderer
	opts     MaskingOptions
	logger   *slog.Logger
}

// NewMaskingService создаёт сервис обработки изображений.
func NewMaskingService(
	loader port.ImageLoader,
	writer port.ImageWriter,
	detector port.ObjectDetector,
	renderer port.Renderer,
	opts MaskingOptions,
	logger *slog.Logger,
) *MaskingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MaskingService{
		loader:   loader,
		writer:   writer,
		detector: detector,
		renderer: renderer,
		opts:     opts,
		logger:   logger,
	}
}

// Process обрабатывает одно изображение: детекция, рамки, общая маска и маски каждого объекта.
func (s *MaskingService) Process(ctx context.Context, imagePath string) (*entity.Report, error) {
	if s.detector == nil {
		return nil, errors.New("detector is not configured")
	}

	if err := s.createDirectories(); err != nil {
		return nil, err
	}

	img, err := s.loader.Load(ctx, imagePath)
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", imagePath, err)
	}
	if img.Bounds().Empty() {
		return nil, entity.ErrEmptyImage
	}
	// Дальше все координаты считаются от (0, 0)
	if img.Bounds().Min != (image.Point{}) {
		img = imaging.Clone(img)
	}

	img = s.resize(img)
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	s.logger.Info("image ready", "width", width, "height", height)

	pred, err := s.detector.Predict(ctx, img)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	objects, drawn, err := ExtractObjects(pred, width, height, s.opts.Extract)
	if err != nil {
		return nil, fmt.Errorf("extract objects: %w", err)
	}

	report := &entity.Report{
		BaseName: BaseName(imagePath),
		Width:    width,
		Height:   height,
		Objects:  objects,
		Drawn:    len(drawn),
	}

	composite := s.renderer.CompositeMask(width, height, drawn)
	outputs := []struct {
		img    image.Image
		suffix string
	}{
		{s.renderer.Annotate(img, drawn), suffixDetected},
		{composite, suffixComplementary},
		{img, suffixThis},
	}
	for _, out := range outputs {
		path := FileName(s.opts.SaveDestination, report.BaseName, out.suffix, s.opts.Extension)
		if err := s.save(report, out.img, path); err != nil {
			return nil, err
		}
	}

	s.logger.Info("detected objects", "queries", pred.NumQueries(), "objects", len(objects), "drawn", len(drawn))

	if err := s.masking(ctx, report, composite); err != nil {
		return nil, err
	}

	return report, nil
}

// masking сохраняет пару масок для каждого объекта
func (s *MaskingService) masking(ctx context.Context, report *entity.Report, composite image.Image) error {
	for i, obj := range report.Objects {
		if err := ctx.Err(); err != nil {
			return err
		}

		this, complementary := s.renderer.ObjectMasks(composite, obj)

		thisPath := MaskFileName(s.opts.SaveDestination, report.BaseName, suffixThisMask, i, s.opts.Extension)
		if err := s.save(report, this, thisPath); err != nil {
			return err
		}

		complementaryPath := MaskFileName(s.opts.SaveDestination, report.BaseName, suffixComplementaryMask, i, s.opts.Extension)
		if err := s.save(report, complementary, complementaryPath); err != nil {
			return err
		}

		s.logger.Debug("object masked", "index", obj.Index, "class", obj.Label, "score", obj.Score)
	}

	return nil
}

// resize уменьшает изображение, пока оно не влезет в MaxWidth x MaxHeight
func (s *MaskingService) resize(img image.Image) image.Image {
	if !s.opts.Resize {
		return img
	}

	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	steps := ResizeSteps(width, height, s.opts.MaxWidth, s.opts.MaxHeight, s.opts.ResizeScale)
	if len(steps) == 0 {
		return img
	}

	for i, size := range steps {
		s.logger.Debug("resizing image", "step", i+1, "width", size.X, "height", size.Y)
	}

	// пересэмплируем один раз сразу в итоговый размер
	final := steps[len(steps)-1]
	return imaging.Resize(img, final.X, final.Y, imaging.Lanczos)
}

func (s *MaskingService) createDirectories() error {
	for _, dir := range []string{s.opts.SaveDestination, s.opts.OutputDestination} {
		if err := s.writer.EnsureDir(dir); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

func (s *MaskingService) save(report *entity.Report, img image.Image, path string) error {
	if err := s.writer.Write(img, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	report.Files = append(report.Files, path)
	return nil
}
