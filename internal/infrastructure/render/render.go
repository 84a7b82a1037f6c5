package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"object-masker/internal/domain/entity"
	"object-masker/internal/domain/port"
)

// Options параметры отрисовки рамок
type Options struct {
	LineWidth float64 // толщина рамки в пикселях
	FontSize  float64 // размер подписи в пунктах
	ShowScore bool    // дописывать вероятность к названию класса
}

// DefaultOptions настройки по умолчанию
func DefaultOptions() Options {
	return Options{
		LineWidth: 2,
		FontSize:  14,
		ShowScore: false,
	}
}

// Renderer рисует рамки объектов и бинарные маски
type Renderer struct {
	opts Options
	face font.Face
}

// NewRenderer создаёт рендерер со шрифтом Go Regular
func NewRenderer(opts Options) (*Renderer, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	return &Renderer{
		opts: opts,
		face: truetype.NewFace(f, &truetype.Options{Size: opts.FontSize}),
	}, nil
}

// Annotate рисует рамку и подпись класса в центре каждого объекта
func (r *Renderer) Annotate(src image.Image, objects []entity.DetectedObject) image.Image {
	dc := gg.NewContextForImage(src)
	dc.SetFontFace(r.face)
	dc.SetLineWidth(r.opts.LineWidth)

	for _, obj := range objects {
		b := obj.Box
		dc.SetColor(ClassColor(obj.Class))
		dc.DrawRectangle(b.Min.X, b.Min.Y, b.Max.X-b.Min.X, b.Max.Y-b.Min.Y)
		dc.Stroke()

		c := b.Center()
		dc.SetColor(White)
		dc.DrawStringAnchored(r.caption(obj), c.X, c.Y, 0.5, 0.5)
	}

	return dc.Image()
}

// CompositeMask рисует все объекты белым на чёрном фоне
func (r *Renderer) CompositeMask(width, height int, objects []entity.DetectedObject) image.Image {
	dc := gg.NewContext(width, height)
	dc.SetColor(Black)
	dc.Clear()

	bounds := image.Rect(0, 0, width, height)
	for _, obj := range objects {
		fillRect(dc, obj.Box.Rect(bounds), White)
	}

	return dc.Image()
}

// ObjectMasks возвращает маску одного объекта и общую маску, где этот объект закрашен чёрным
func (r *Renderer) ObjectMasks(composite image.Image, obj entity.DetectedObject) (image.Image, image.Image) {
	bounds := composite.Bounds()
	rect := obj.Box.Rect(bounds)

	this := gg.NewContext(bounds.Dx(), bounds.Dy())
	this.SetColor(Black)
	this.Clear()
	fillRect(this, rect, White)

	complementary := gg.NewContextForImage(composite)
	fillRect(complementary, rect, Black)

	return this.Image(), complementary.Image()
}

func (r *Renderer) caption(obj entity.DetectedObject) string {
	if r.opts.ShowScore {
		return fmt.Sprintf("%s %.2f", obj.Label, obj.Score)
	}
	return obj.Label
}

// fillRect заливает прямоугольник по целым пикселям, чтобы маска оставалась бинарной
func fillRect(dc *gg.Context, rect image.Rectangle, c color.Color) {
	if rect.Empty() {
		return
	}
	dc.SetColor(c)
	dc.DrawRectangle(float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()))
	dc.Fill()
}

var _ port.Renderer = (*Renderer)(nil)
