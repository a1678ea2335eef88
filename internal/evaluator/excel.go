package evaluator

import (
	"fmt"
	"io"
	"strings"

	"excel-interviewer/internal/config"

	"github.com/xuri/excelize/v2"
)

const (
	ScoreUnreadable    = 0
	ScoreColumnMissing = 5
	ScoreColumnEmpty   = 7
	ScoreColumnFilled  = 10
)

// Sheet представляет первый лист книги: имена колонок и строки данных
type Sheet struct {
	Columns []string
	Rows    [][]string
}

// ReadSheet читает первый лист книги xlsx. Первая строка листа считается
// строкой заголовков.
func ReadSheet(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	// Заголовок это первая непустая строка
	for len(rows) > 0 && blankRow(rows[0]) {
		rows = rows[1:]
	}

	sheet := &Sheet{}
	if len(rows) == 0 {
		return sheet, nil
	}
	for _, name := range rows[0] {
		sheet.Columns = append(sheet.Columns, strings.TrimSpace(name))
	}
	sheet.Rows = rows[1:]
	return sheet, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ColumnIndex возвращает индекс колонки по имени или -1
func (s *Sheet) ColumnIndex(name string) int {
	name = strings.TrimSpace(name)
	for i, column := range s.Columns {
		if column == name {
			return i
		}
	}
	return -1
}

// ColumnHasData сообщает, есть ли в колонке хотя бы одна непустая ячейка
func (s *Sheet) ColumnHasData(index int) bool {
	for _, row := range s.Rows {
		if index < len(row) && strings.TrimSpace(row[index]) != "" {
			return true
		}
	}
	return false
}

// ScoreExcel оценивает загруженную таблицу по наличию ожидаемой колонки.
// Первое подходящее правило определяет результат: нечитаемый файл 0,
// нет колонки 5, колонка пустая 7, колонка с данными 10.
func (s *Service) ScoreExcel(r io.Reader, task config.Task) Result {
	expected := strings.TrimSpace(task.ExpectedColumn)
	if expected == "" {
		s.logger.Warn("excel task has no expected column", "question", task.Question)
		return Result{
			Score:    MinScore,
			Feedback: "Task is misconfigured: no expected column is defined for this question.",
		}
	}

	result := scoreSheet(r, expected)
	s.logger.Info("excel answer scored", "question", task.Question, "score", result.Score, "feedback", result.Feedback)
	return result
}

func scoreSheet(r io.Reader, expected string) Result {
	sheet, err := ReadSheet(r)
	if err != nil {
		return Result{
			Score:    ScoreUnreadable,
			Feedback: fmt.Sprintf("Error reading Excel file: %v", err),
		}
	}

	index := sheet.ColumnIndex(expected)
	switch {
	case index < 0:
		return Result{
			Score:    ScoreColumnMissing,
			Feedback: fmt.Sprintf("Expected column %q not found. Partial credit.", expected),
		}
	case !sheet.ColumnHasData(index):
		return Result{
			Score:    ScoreColumnEmpty,
			Feedback: fmt.Sprintf("Column %q found but empty.", expected),
		}
	default:
		return Result{
			Score:    ScoreColumnFilled,
			Feedback: fmt.Sprintf("Column %q found with valid data.", expected),
		}
	}
}
