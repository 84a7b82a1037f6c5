package modelstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter"

	"object-masker/internal/domain/entity"
	"object-masker/internal/domain/port"
)

// Store находит модель на диске или скачивает её из хаба в локальный кэш
type Store struct {
	cacheDir  string
	modelFile string
	hubURL    string
	logger    *slog.Logger
}

// NewStore создаёт хранилище моделей.
// modelFile путь к onnx файлу внутри репозитория модели, hubURL адрес хаба без завершающего слэша.
func NewStore(cacheDir, modelFile, hubURL string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		cacheDir:  cacheDir,
		modelFile: modelFile,
		hubURL:    strings.TrimRight(hubURL, "/"),
		logger:    logger,
	}
}

// Resolve возвращает локальный путь к модели и названия её классов
func (s *Store) Resolve(ctx context.Context, name string) (*entity.Model, error) {
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return s.local(name)
	}
	if strings.HasSuffix(name, ".onnx") {
		return nil, fmt.Errorf("model file %s does not exist", name)
	}

	if !validRepoID(name) {
		return nil, fmt.Errorf("invalid model id %q", name)
	}

	dir := filepath.Join(s.cacheDir, filepath.FromSlash(name))
	modelPath := filepath.Join(dir, filepath.FromSlash(s.modelFile))
	if err := s.fetch(ctx, s.fileURL(name, s.modelFile), modelPath); err != nil {
		return nil, err
	}

	model := &entity.Model{Path: modelPath}

	configPath := filepath.Join(dir, configFile)
	if err := s.fetch(ctx, s.fileURL(name, configFile), configPath); err != nil {
		// без подписей рамки получат номера классов
		s.logger.Warn("model config is not available", "model", name, "error", err)
		return model, nil
	}

	labels, err := LoadLabels(configPath)
	if err != nil {
		return nil, err
	}
	model.Labels = labels

	return model, nil
}

// local использует уже лежащий на диске .onnx файл
func (s *Store) local(path string) (*entity.Model, error) {
	labels, err := LoadLabels(filepath.Join(filepath.Dir(path), configFile))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	s.logger.Debug("using local model", "path", path, "labels", len(labels))
	return &entity.Model{Path: path, Labels: labels}, nil
}

// validRepoID не пускает id вида "../x" за пределы каталога кэша
func validRepoID(name string) bool {
	if name == "" || strings.HasPrefix(name, "/") || strings.Contains(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}

func (s *Store) fileURL(repo, file string) string {
	return fmt.Sprintf("%s/%s/resolve/main/%s", s.hubURL, repo, file)
}

// fetch скачивает файл, если его ещё нет в кэше
func (s *Store) fetch(ctx context.Context, src, dst string) error {
	if _, err := os.Stat(dst); err == nil {
		s.logger.Debug("model file cached", "path", dst)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	s.logger.Info("downloading model file", "url", src)

	// Качаем во временный файл, чтобы оборванная загрузка не попала в кэш
	tmp := dst + ".part"
	client := &getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  tmp,
		Mode: getter.ClientModeFile,
	}
	if err := client.Get(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("download %s: %w", src, err)
	}

	if err := os.Rename(tmp, dst); err != nil {
		return fmt.Errorf("move %s to cache: %w", tmp, err)
	}

	return nil
}

var _ port.ModelStore = (*Store)(nil)
