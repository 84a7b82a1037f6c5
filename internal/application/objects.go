package app

import (
	"math"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"

	"object-masker/internal/domain/entity"
)

// ExtractOptions параметры отбора объектов из предсказания
type ExtractOptions struct {
	Threshold float64       // минимальная вероятность класса
	MaxItems  int           // сколько объектов получают собственные маски
	Excluded  []int         // id классов, которые пропускаются
	Model     *entity.Model // источник названий классов, может быть nil
}

// Softmax переводит логиты в вероятности
func Softmax(logits []float64) []float64 {
	probs := make([]float64, len(logits))
	if len(logits) == 0 {
		return probs
	}
	copy(probs, logits)
	floats.AddConst(-floats.LogSumExp(logits), probs)
	for i, v := range probs {
		probs[i] = math.Exp(v)
	}
	return probs
}

// ExtractObjects отбирает объекты по уверенности и переводит их рамки в пиксели.
// drawn содержит все прошедшие фильтр объекты, objects только первые MaxItems из них.
func ExtractObjects(pred *entity.Prediction, width, height int, opts ExtractOptions) (objects, drawn []entity.DetectedObject, err error) {
	if err := pred.Validate(); err != nil {
		return nil, nil, err
	}

	w, h := float64(width), float64(height)
	objects = make([]entity.DetectedObject, 0, opts.MaxItems)
	drawn = make([]entity.DetectedObject, 0)

	for i, row := range pred.Logits {
		logits := make([]float64, len(row))
		for j, v := range row {
			logits[j] = float64(v)
		}

		cls := floats.MaxIdx(logits)
		score := Softmax(logits)[cls]
		if lo.Contains(opts.Excluded, cls) || score < opts.Threshold {
			continue
		}

		b := pred.Boxes[i]
		obj := entity.DetectedObject{
			Index: i,
			Box:   entity.BoxFromCenter(float64(b[0])*w, float64(b[1])*h, float64(b[2])*w, float64(b[3])*h),
			Class: cls,
			Label: opts.Model.Label(cls),
			Score: score,
		}

		drawn = append(drawn, obj)
		if len(objects) < opts.MaxItems {
			objects = append(objects, obj)
		}
	}

	return objects, drawn, nil
}
