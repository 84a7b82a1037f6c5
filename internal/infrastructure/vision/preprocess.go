package vision

import (
	"fmt"
	"math"

	"object-masker/internal/domain/entity"
)

// Параметры препроцессинга DETR (как в feature extractor модели)
const (
	shortestEdge = 800
	longestEdge  = 1333
)

var (
	imageNetMean = [3]float32{0.485, 0.456, 0.406}
	imageNetStd  = [3]float32{0.229, 0.224, 0.225}
)

// InputSize считает размер входа сети: короткая сторона 800, длинная не больше 1333
func InputSize(width, height int) (int, int) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}

	short, long := float64(min(width, height)), float64(max(width, height))
	size := float64(shortestEdge)
	if long/short*size > longestEdge {
		size = math.Round(longestEdge * short / long)
	}

	if width < height {
		return int(size), int(size * float64(height) / float64(width))
	}
	return int(size * float64(width) / float64(height)), int(size)
}

// NormalizeCHW нормирует блоб 1x3xHxW со значениями в [0, 1] средним и дисперсией ImageNet
func NormalizeCHW(data []float32, height, width int) error {
	plane := height * width
	if len(data) != 3*plane {
		return fmt.Errorf("blob has %d values, want %d", len(data), 3*plane)
	}

	for c := 0; c < 3; c++ {
		channel := data[c*plane : (c+1)*plane]
		for i, v := range channel {
			channel[i] = (v - imageNetMean[c]) / imageNetStd[c]
		}
	}
	return nil
}

// DecodeOutputs копирует выходы сети (logits [Q x C], pred_boxes [Q x 4]) в Prediction
func DecodeOutputs(logits, boxes []float32, queries, classes int) (*entity.Prediction, error) {
	if queries <= 0 || classes <= 0 {
		return nil, fmt.Errorf("bad output shape %dx%d", queries, classes)
	}
	if len(logits) < queries*classes {
		return nil, fmt.Errorf("logits have %d values, want %d", len(logits), queries*classes)
	}
	if len(boxes) < queries*4 {
		return nil, fmt.Errorf("boxes have %d values, want %d", len(boxes), queries*4)
	}

	pred := &entity.Prediction{
		Logits: make([][]float32, queries),
		Boxes:  make([][4]float32, queries),
	}
	for q := 0; q < queries; q++ {
		row := make([]float32, classes)
		copy(row, logits[q*classes:(q+1)*classes])
		pred.Logits[q] = row
		copy(pred.Boxes[q][:], boxes[q*4:(q+1)*4])
	}

	return pred, nil
}
