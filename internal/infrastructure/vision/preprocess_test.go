package vision

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInputSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"landscape", 640, 480, 1066, 800},
		{"portrait", 480, 640, 800, 1066},
		{"square", 500, 500, 800, 800},
		{"very wide", 1000, 200, 1335, 267},
		{"empty", 0, 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := InputSize(tt.width, tt.height)
			require.Equal(t, tt.wantW, w)
			require.Equal(t, tt.wantH, h)
		})
	}
}

func TestNormalizeCHW(t *testing.T) {
	data := []float32{
		0.485, 1, // R
		0.456, 0, // G
		0.406, 0.631, // B
	}
	require.NoError(t, NormalizeCHW(data, 1, 2))

	require.InDelta(t, 0, data[0], 1e-6)
	require.InDelta(t, (1-0.485)/0.229, data[1], 1e-5)
	require.InDelta(t, 0, data[2], 1e-6)
	require.InDelta(t, -0.456/0.224, data[3], 1e-5)
	require.InDelta(t, 0, data[4], 1e-6)
	require.InDelta(t, (0.631-0.406)/0.225, data[5], 1e-5)

	require.Error(t, NormalizeCHW(make([]float32, 5), 1, 2))
}

func TestDecodeOutputs(t *testing.T) {
	logits := []float32{1, 2, 3, 4, 5, 6}
	boxes := []float32{0.5, 0.5, 0.1, 0.2, 0.25, 0.75, 0.5, 0.5}

	pred, err := DecodeOutputs(logits, boxes, 2, 3)
	require.NoError(t, err)
	require.Equal(t, 2, pred.NumQueries())
	require.Equal(t, []float32{4, 5, 6}, pred.Logits[1])
	require.Equal(t, [4]float32{0.25, 0.75, 0.5, 0.5}, pred.Boxes[1])
	require.NoError(t, pred.Validate())

	// строки не ссылаются на исходный буфер
	logits[0] = 100
	require.Equal(t, float32(1), pred.Logits[0][0])

	_, err = DecodeOutputs(logits, boxes, 3, 3)
	require.Error(t, err)
	_, err = DecodeOutputs(logits, boxes[:4], 2, 3)
	require.Error(t, err)
	_, err = DecodeOutputs(logits, boxes, 0, 3)
	require.Error(t, err)
}
