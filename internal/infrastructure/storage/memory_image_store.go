package storage

import (
	"image"
	"sort"
	"sync"

	"object-masker/internal/domain/port"
)

// MemoryImageStore in-memory хранилище результатов, ничего не пишет на диск
type MemoryImageStore struct {
	mu     sync.RWMutex
	images map[string]image.Image
	dirs   map[string]struct{}
}

// NewMemoryImageStore создаёт новое in-memory хранилище
func NewMemoryImageStore() *MemoryImageStore {
	return &MemoryImageStore{
		images: make(map[string]image.Image),
		dirs:   make(map[string]struct{}),
	}
}

// EnsureDir запоминает каталог
func (s *MemoryImageStore) EnsureDir(dir string) error {
	s.mu.Lock()
	s.dirs[dir] = struct{}{}
	s.mu.Unlock()

	return nil
}

// Write сохраняет изображение под указанным путём
func (s *MemoryImageStore) Write(img image.Image, path string) error {
	s.mu.Lock()
	s.images[path] = img
	s.mu.Unlock()

	return nil
}

// Get возвращает сохранённое изображение
func (s *MemoryImageStore) Get(path string) (image.Image, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	img, ok := s.images[path]
	return img, ok
}

// Paths возвращает пути всех сохранённых изображений по алфавиту
func (s *MemoryImageStore) Paths() []string {
	s.mu.RLock()
	paths := make([]string, 0, len(s.images))
	for p := range s.images {
		paths = append(paths, p)
	}
	s.mu.RUnlock()

	sort.Strings(paths)
	return paths
}

// HasDir сообщает, создавался ли каталог
func (s *MemoryImageStore) HasDir(dir string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.dirs[dir]
	return ok
}

// Проверка реализации интерфейса
var _ port.ImageWriter = (*MemoryImageStore)(nil)
