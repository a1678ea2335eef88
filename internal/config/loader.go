package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load загружает каталог заданий из YAML или JSON файла
func Load(filename string) (*Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read task catalog %s: %w", filename, err)
	}

	catalog, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse task catalog %s: %w", filename, err)
	}

	return catalog, nil
}

// Parse разбирает документ каталога. Поддерживается как список заданий
// верхнего уровня, так и объект с ключом tasks. JSON разбирается тем же
// декодером, так как является подмножеством YAML.
func Parse(data []byte) (*Catalog, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("document is empty")
	}

	var catalog Catalog
	switch node := root.Content[0]; node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(&catalog.Tasks); err != nil {
			return nil, fmt.Errorf("invalid task list: %w", err)
		}
	case yaml.MappingNode:
		if err := node.Decode(&catalog); err != nil {
			return nil, fmt.Errorf("invalid catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("document must be a list of tasks or an object with a tasks key")
	}

	normalizeCatalog(&catalog)

	// Валидация каталога
	if err := validateConfig(&catalog); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	return &catalog, nil
}

func normalizeCatalog(catalog *Catalog) {
	for i := range catalog.Tasks {
		task := &catalog.Tasks[i]
		task.Question = strings.TrimSpace(task.Question)
		task.Type = TaskType(strings.ToLower(strings.TrimSpace(string(task.Type))))
		task.ExpectedAnswer = strings.TrimSpace(task.ExpectedAnswer)
		task.ExpectedColumn = strings.TrimSpace(task.ExpectedColumn)
	}
}

// validateConfig проверяет корректность каталога. Неизвестный тип задания
// ошибкой не считается: такие задания пропускаются при проведении интервью.
func validateConfig(catalog *Catalog) error {
	if len(catalog.Tasks) == 0 {
		return fmt.Errorf("catalog contains no tasks")
	}

	seen := make(map[string]int, len(catalog.Tasks))
	for i, task := range catalog.Tasks {
		if task.Question == "" {
			return fmt.Errorf("task %d must have a question", i+1)
		}
		if prev, ok := seen[task.Question]; ok {
			return fmt.Errorf("task %d duplicates the question of task %d", i+1, prev+1)
		}
		seen[task.Question] = i
	}

	return nil
}
