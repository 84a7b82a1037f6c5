package port

import (
	"context"

	"object-masker/internal/domain/entity"
)

// ModelStore интерфейс хранилища предобученных моделей
type ModelStore interface {
	// Resolve находит модель локально или скачивает её в кэш
	Resolve(ctx context.Context, name string) (*entity.Model, error)
}
