package entity

import (
	"image"
	"math"
)

// Point точка в пиксельных координатах изображения
type Point struct {
	X float64
	Y float64
}

// Box прямоугольник, заданный двумя углами
type Box struct {
	Min Point // левый верхний угол
	Max Point // правый нижний угол
}

// BoxFromCenter строит прямоугольник по центру и размерам.
// Половины размеров округляются вниз, как при целочисленном делении.
func BoxFromCenter(cx, cy, w, h float64) Box {
	halfW, halfH := math.Floor(w/2), math.Floor(h/2)
	return Box{
		Min: Point{X: cx - halfW, Y: cy - halfH},
		Max: Point{X: cx + halfW, Y: cy + halfH},
	}
}

// Center возвращает координаты центра прямоугольника
func (b Box) Center() Point {
	return Point{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Rect переводит прямоугольник в пиксели и обрезает его по границам изображения.
// Координаты отбрасывают дробную часть, правый и нижний край входят в прямоугольник.
func (b Box) Rect(bounds image.Rectangle) image.Rectangle {
	r := image.Rect(
		int(b.Min.X), int(b.Min.Y),
		int(b.Max.X)+1, int(b.Max.Y)+1,
	)
	return r.Intersect(bounds)
}

// DetectedObject объект, прошедший фильтрацию по уверенности
type DetectedObject struct {
	Index int     // номер запроса (query) в выходе модели
	Box   Box     // границы объекта
	Class int     // id класса
	Label string  // название класса, если известно
	Score float64 // вероятность класса после softmax
}
