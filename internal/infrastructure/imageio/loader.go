package imageio

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"net/http"
	"time"

	"github.com/disintegration/imaging"

	"object-masker/internal/domain/entity"
	"object-masker/internal/domain/port"
)

// Loader читает изображения с диска или скачивает их по HTTP
type Loader struct {
	client *http.Client
	logger *slog.Logger
}

// NewLoader создаёт загрузчик с таймаутом на HTTP запросы
func NewLoader(timeout time.Duration, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Load возвращает изображение по пути или URL
func (l *Loader) Load(ctx context.Context, path string) (image.Image, error) {
	var (
		img image.Image
		err error
	)

	if entity.IsRemote(path) {
		img, err = l.download(ctx, path)
	} else {
		img, err = imaging.Open(path, imaging.AutoOrientation(true))
	}
	if err != nil {
		return nil, err
	}

	if img.Bounds().Empty() {
		return nil, entity.ErrEmptyImage
	}

	l.logger.Debug("image loaded", "path", path,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return img, nil
}

// download скачивает и декодирует изображение
func (l *Loader) download(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", entity.ErrBadStatus, resp.StatusCode)
	}

	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	return img, nil
}

var _ port.ImageLoader = (*Loader)(nil)
