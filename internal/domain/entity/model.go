package entity

import "strconv"

// Model локальная копия предобученной модели
type Model struct {
	Path   string         // путь к .onnx файлу
	Labels map[int]string // id2label из config.json
}

// Label возвращает название класса или его id, если названия нет
func (m *Model) Label(class int) string {
	if m != nil {
		if label, ok := m.Labels[class]; ok && label != "" {
			return label
		}
	}
	return strconv.Itoa(class)
}
