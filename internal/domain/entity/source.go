package entity

import "strings"

// IsRemote сообщает, что изображение нужно скачивать по сети
func IsRemote(path string) bool {
	return strings.HasPrefix(path, "http")
}
