package port

import (
	"context"
	"image"
)

// ImageLoader интерфейс загрузки исходного изображения
type ImageLoader interface {
	// Load читает изображение с диска или по URL
	Load(ctx context.Context, path string) (image.Image, error)
}

// ImageWriter интерфейс сохранения результатов
type ImageWriter interface {
	// EnsureDir создаёт каталог, если его ещё нет
	EnsureDir(dir string) error

	// Write кодирует изображение и сохраняет его по указанному пути
	Write(img image.Image, path string) error
}
