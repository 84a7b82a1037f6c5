package modelstore

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// configFile имя конфигурации модели рядом с весами
const configFile = "config.json"

// modelConfig часть config.json, нужная для подписей
type modelConfig struct {
	ID2Label map[string]string `json:"id2label"`
}

// LoadLabels читает id2label из config.json модели
func LoadLabels(path string) (map[int]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg modelConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	labels := make(map[int]string, len(cfg.ID2Label))
	for key, label := range cfg.ID2Label {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("parse %s: label id %q is not a number", path, key)
		}
		labels[id] = label
	}

	return labels, nil
}
