package port

import (
	"context"
	"image"

	"object-masker/internal/domain/entity"
)

// ObjectDetector интерфейс предобученного детектора объектов
type ObjectDetector interface {
	// Predict запускает модель и возвращает сырые логиты и прямоугольники
	Predict(ctx context.Context, img image.Image) (*entity.Prediction, error)

	// Close освобождает ресурсы модели
	Close() error
}
