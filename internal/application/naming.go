package app

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"object-masker/internal/domain/entity"
)

const defaultBaseName = "image"

// BaseName возвращает имя файла без каталога и без всего, что идёт после первой точки
func BaseName(imagePath string) string {
	name := filepath.Base(imagePath)
	if entity.IsRemote(imagePath) {
		if u, err := url.Parse(imagePath); err == nil {
			name = path.Base(u.Path)
		}
	}

	if i := strings.Index(name, "."); i >= 0 {
		name = name[:i]
	}
	if name == "" || name == "/" {
		return defaultBaseName
	}
	return name
}

// FileName путь вида {dir}/{base}_{suffix}.{ext}
func FileName(dir, base, suffix, ext string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", base, suffix, ext))
}

// MaskFileName путь вида {dir}/{base}_{suffix}{index:03d}.{ext}
func MaskFileName(dir, base, suffix string, index int, ext string) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s%03d.%s", base, suffix, index, ext))
}
