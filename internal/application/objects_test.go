package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"object-masker/internal/domain/entity"
)

const numClasses = 92

// row логиты, в которых класс cls сильно выделяется
func row(cls int, logit float32) []float32 {
	r := make([]float32, numClasses)
	r[cls] = logit
	return r
}

func defaultExtract() ExtractOptions {
	return ExtractOptions{
		Threshold: 0.9,
		MaxItems:  10,
		Excluded:  []int{91},
		Model:     &entity.Model{Labels: map[int]string{17: "cat"}},
	}
}

func TestSoftmax(t *testing.T) {
	probs := Softmax([]float64{1, 1, 1, 1})
	for _, p := range probs {
		require.InDelta(t, 0.25, p, 1e-9)
	}

	// большие логиты не переполняются
	probs = Softmax([]float64{1000, 0})
	require.InDelta(t, 1, probs[0], 1e-9)
	require.InDelta(t, 0, probs[1], 1e-9)

	require.Empty(t, Softmax(nil))
}

func TestExtractObjects_Filtering(t *testing.T) {
	pred := &entity.Prediction{
		Logits: [][]float32{
			row(17, 12), // уверенный кот
			row(91, 20), // "no object"
			row(0, 0),   // равномерное распределение
			row(75, 12), // пульт без названия
		},
		Boxes: [][4]float32{
			{0.5, 0.5, 0.2, 0.4},
			{0.5, 0.5, 1, 1},
			{0.5, 0.5, 1, 1},
			{0.25, 0.25, 0.1, 0.1},
		},
	}

	objects, drawn, err := ExtractObjects(pred, 100, 50, defaultExtract())
	require.NoError(t, err)
	require.Len(t, objects, 2)
	require.Equal(t, objects, drawn)

	cat := objects[0]
	require.Equal(t, 0, cat.Index)
	require.Equal(t, 17, cat.Class)
	require.Equal(t, "cat", cat.Label)
	require.Greater(t, cat.Score, 0.9)
	require.Equal(t, entity.Box{Min: entity.Point{X: 40, Y: 15}, Max: entity.Point{X: 60, Y: 35}}, cat.Box)

	remote := objects[1]
	require.Equal(t, 3, remote.Index)
	require.Equal(t, "75", remote.Label)
	require.Equal(t, entity.Box{Min: entity.Point{X: 20, Y: 10.5}, Max: entity.Point{X: 30, Y: 14.5}}, remote.Box)
}

func TestExtractObjects_Threshold(t *testing.T) {
	pred := &entity.Prediction{
		Logits: [][]float32{row(17, 5)},
		Boxes:  [][4]float32{{0.5, 0.5, 0.1, 0.1}},
	}

	// exp(5) / (exp(5) + 91) ~ 0.62
	opts := defaultExtract()
	objects, _, err := ExtractObjects(pred, 10, 10, opts)
	require.NoError(t, err)
	require.Empty(t, objects)

	opts.Threshold = 0.5
	objects, _, err = ExtractObjects(pred, 10, 10, opts)
	require.NoError(t, err)
	require.Len(t, objects, 1)
}

func TestExtractObjects_MaxItems(t *testing.T) {
	pred := &entity.Prediction{}
	for i := 0; i < 5; i++ {
		pred.Logits = append(pred.Logits, row(17, 12))
		pred.Boxes = append(pred.Boxes, [4]float32{0.5, 0.5, 0.1, 0.1})
	}

	opts := defaultExtract()
	opts.MaxItems = 3
	objects, drawn, err := ExtractObjects(pred, 100, 100, opts)
	require.NoError(t, err)
	require.Len(t, objects, 3)
	require.Len(t, drawn, 5)
	require.Equal(t, []int{0, 1, 2}, []int{objects[0].Index, objects[1].Index, objects[2].Index})
}

func TestExtractObjects_InvalidPrediction(t *testing.T) {
	pred := &entity.Prediction{
		Logits: [][]float32{row(17, 12)},
	}
	_, _, err := ExtractObjects(pred, 10, 10, defaultExtract())
	require.Error(t, err)
}
