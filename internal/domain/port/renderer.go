package port

import (
	"image"

	"object-masker/internal/domain/entity"
)

// Renderer интерфейс отрисовки рамок и масок
type Renderer interface {
	// Annotate рисует рамки и подписи поверх копии изображения
	Annotate(src image.Image, objects []entity.DetectedObject) image.Image

	// CompositeMask рисует все объекты белым на чёрном фоне
	CompositeMask(width, height int, objects []entity.DetectedObject) image.Image

	// ObjectMasks возвращает маску только этого объекта и общую маску без него
	ObjectMasks(composite image.Image, obj entity.DetectedObject) (this, complementary image.Image)
}
