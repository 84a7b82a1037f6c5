package entity

import "fmt"

// Prediction сырой выход DETR для одного изображения
type Prediction struct {
	Logits [][]float32  // по строке логитов на каждый query, последний класс "no object"
	Boxes  [][4]float32 // (cx, cy, w, h) в долях от размеров изображения
}

// NumQueries количество запросов в предсказании
func (p *Prediction) NumQueries() int {
	return len(p.Logits)
}

// Validate проверяет согласованность логитов и прямоугольников
func (p *Prediction) Validate() error {
	if len(p.Logits) != len(p.Boxes) {
		return fmt.Errorf("prediction has %d logit rows but %d boxes", len(p.Logits), len(p.Boxes))
	}
	for i, row := range p.Logits {
		if len(row) == 0 {
			return fmt.Errorf("prediction query %d has no logits", i)
		}
	}
	return nil
}
