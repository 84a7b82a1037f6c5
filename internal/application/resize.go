package app

import (
	"image"
	"math"
)

// ResizeSteps возвращает размеры после каждого уменьшения в scale раз,
// пока обе стороны не влезут в ограничения. Пустой результат значит, что уменьшать не нужно.
func ResizeSteps(width, height, maxWidth, maxHeight int, scale float64) []image.Point {
	if math.IsNaN(scale) || scale <= 0 || scale >= 1 || maxWidth < 1 || maxHeight < 1 {
		return nil
	}

	var steps []image.Point
	for width > maxWidth || height > maxHeight {
		width = max(1, int(float64(width)*scale))
		height = max(1, int(float64(height)*scale))
		steps = append(steps, image.Pt(width, height))
	}

	return steps
}

// FitWithin итоговый размер после всех уменьшений и число шагов
func FitWithin(width, height, maxWidth, maxHeight int, scale float64) (int, int, int) {
	steps := ResizeSteps(width, height, maxWidth, maxHeight, scale)
	if len(steps) == 0 {
		return width, height, 0
	}

	last := steps[len(steps)-1]
	return last.X, last.Y, len(steps)
}
