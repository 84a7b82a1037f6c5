//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"fmt"
	"image"

	"object-masker/internal/domain/entity"
	"object-masker/internal/domain/port"
)

// DETRDetector заглушка детектора для сборки без OpenCV
type DETRDetector struct{}

// Available возвращает ErrDetectorUnavailable: сборка без тега gocv.
func Available() error {
	return fmt.Errorf("%w: gocv build tag is not enabled", entity.ErrDetectorUnavailable)
}

// NewDETRDetector возвращает ошибку, если сборка без тега gocv.
func NewDETRDetector(modelPath string) (*DETRDetector, error) {
	return nil, fmt.Errorf("%w (model %s)", Available(), modelPath)
}

// Predict возвращает ошибку, если сборка без тега gocv.
func (d *DETRDetector) Predict(ctx context.Context, img image.Image) (*entity.Prediction, error) {
	_ = ctx
	_ = img
	return nil, Available()
}

// Close ничего не делает
func (d *DETRDetector) Close() error {
	return nil
}

var _ port.ObjectDetector = (*DETRDetector)(nil)
