package imageio

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/disintegration/imaging"

	"object-masker/internal/domain/entity"
	"object-masker/internal/domain/port"
)

// FileWriter сохраняет изображения на диск в заданном формате
type FileWriter struct {
	format imaging.Format
}

// NewFileWriter создаёт писатель для формата вроде "PNG" или "jpeg"
func NewFileWriter(formatName string) (*FileWriter, error) {
	format, err := imaging.FormatFromExtension(strings.ToLower(formatName))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", entity.ErrUnsupportedFormat, formatName)
	}
	return &FileWriter{format: format}, nil
}

// EnsureDir создаёт каталог вместе с родителями
func (w *FileWriter) EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// Write кодирует изображение в файл
func (w *FileWriter) Write(img image.Image, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return imaging.Encode(f, img, w.format)
}

var _ port.ImageWriter = (*FileWriter)(nil)
