package entity

// Report итог обработки одного изображения
type Report struct {
	BaseName string           // имя исходного файла без расширения
	Width    int              // ширина после уменьшения
	Height   int              // высота после уменьшения
	Objects  []DetectedObject // объекты, для которых сохранены маски
	Drawn    int              // сколько прямоугольников нарисовано на изображении
	Files    []string         // записанные файлы
}
