//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"object-masker/internal/domain/entity"
	"object-masker/internal/domain/port"
)

// Имена входа и выходов DETR в экспортированной ONNX модели
const (
	InputName       = "pixel_values"
	LogitsOutput    = "logits"
	PredBoxesOutput = "pred_boxes"
)

// DETRDetector запускает ONNX модель DETR через OpenCV DNN
type DETRDetector struct {
	net gocv.Net
}

// Available сообщает, что детектор собран с OpenCV
func Available() error {
	return nil
}

// NewDETRDetector загружает модель из .onnx файла
func NewDETRDetector(modelPath string) (*DETRDetector, error) {
	net := gocv.ReadNetFromONNX(modelPath)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load model %s", modelPath)
	}

	net.SetPreferableBackend(gocv.NetBackendDefault)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	return &DETRDetector{net: net}, nil
}

// Predict возвращает логиты и нормированные рамки для каждого query
func (d *DETRDetector) Predict(ctx context.Context, img image.Image) (*entity.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mat, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("convert image: %w", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, entity.ErrEmptyImage
	}

	// Mat хранится в BGR, swapRB переводит в RGB
	width, height := InputSize(mat.Cols(), mat.Rows())
	blob := gocv.BlobFromImage(mat, 1.0/255.0, image.Pt(width, height), gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	data, err := blob.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	if err := NormalizeCHW(data, height, width); err != nil {
		return nil, err
	}

	d.net.SetInput(blob, InputName)
	outputs := d.net.ForwardLayers([]string{LogitsOutput, PredBoxesOutput})
	defer func() {
		for i := range outputs {
			outputs[i].Close()
		}
	}()

	if len(outputs) != 2 {
		return nil, fmt.Errorf("model returned %d outputs, want 2", len(outputs))
	}

	// logits: [1, queries, classes], pred_boxes: [1, queries, 4]
	shape := outputs[0].Size()
	if len(shape) != 3 {
		return nil, fmt.Errorf("unexpected logits shape %v", shape)
	}

	logits, err := outputs[0].DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("read logits: %w", err)
	}
	boxes, err := outputs[1].DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("read boxes: %w", err)
	}

	return DecodeOutputs(logits, boxes, shape[1], shape[2])
}

// Close освобождает сеть OpenCV
func (d *DETRDetector) Close() error {
	if d == nil {
		return errors.New("detector is nil")
	}
	return d.net.Close()
}

var _ port.ObjectDetector = (*DETRDetector)(nil)
