package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	reportPrefix = "interview_"
	reportExt    = ".json"
)

// SaveReport сохраняет отчет интервью в JSON файл и возвращает путь к нему
func SaveReport(dir string, report *Report) (string, error) {
	// Создаем директорию если её нет
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create results dir %s: %w", dir, err)
	}

	path := filepath.Join(dir, reportPrefix+report.InterviewID+reportExt)

	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(path, jsonData, 0o644); err != nil {
		return "", fmt.Errorf("write report %s: %w", path, err)
	}

	return path, nil
}

// LoadReport загружает отчет интервью из JSON файла
func LoadReport(dir, interviewID string) (*Report, error) {
	path := filepath.Join(dir, reportPrefix+interviewID+reportExt)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", path, err)
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", path, err)
	}

	return &report, nil
}

// ListReports возвращает идентификаторы всех сохраненных отчетов
func ListReports(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read results dir %s: %w", dir, err)
	}

	ids := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, reportPrefix) || filepath.Ext(name) != reportExt {
			continue
		}
		id := strings.TrimSuffix(strings.TrimPrefix(name, reportPrefix), reportExt)
		if id != "" {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	return ids, nil
}
