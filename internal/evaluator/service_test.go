package evaluator

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"excel-interviewer/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeCompleter struct {
	content string
	err     error

	system string
	user   string
}

func (f *fakeCompleter) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	f.system = systemPrompt
	f.user = userPrompt
	return f.content, f.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func textTask() config.Task {
	return config.Task{
		Question:       "How do you sum a range?",
		Type:           config.TaskTypeText,
		ExpectedAnswer: "Use =SUM(A1:A10)",
	}
}

func excelTask() config.Task {
	return config.Task{
		Question:       "Add a Total column",
		Type:           config.TaskTypeExcel,
		ExpectedColumn: "Total",
	}
}

// workbook строит xlsx в памяти; rows[0] это заголовки
func workbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantScore int
		wantOK    bool
	}{
		{name: "dash feedback", input: "Score: 8/10 — good use of formulas", wantScore: 8, wantOK: true},
		{name: "multiline", input: "Score: 10/10\nPerfect.", wantScore: 10, wantOK: true},
		{name: "spaces around slash", input: "Score:  3 / 10", wantScore: 3, wantOK: true},
		{name: "markdown bold", input: "**Score:** 6/10", wantScore: 6, wantOK: true},
		{name: "clamped", input: "Score: 15/10", wantScore: 10, wantOK: true},
		{name: "embedded later", input: "Feedback first.\nScore: 2/10", wantScore: 2, wantOK: true},
		{name: "missing token", input: "8/10, nice work", wantOK: false},
		{name: "wrong denominator", input: "Score: 8/100", wantOK: false},
		{name: "no number", input: "Score: great/10", wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			score, ok := ParseScore(tc.input)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.wantScore, score)
			}
		})
	}
}

func TestScoreTextParsesModelScore(t *testing.T) {
	llm := &fakeCompleter{content: "Score: 8/10 — good use of formulas"}
	svc := New(llm, quietLogger())

	result := svc.ScoreText(context.Background(), "=SUM(B1:B5)", textTask())

	assert.Equal(t, 8, result.Score)
	assert.Equal(t, "Score: 8/10 — good use of formulas", result.Feedback)
	assert.Equal(t, "You are a strict but fair Excel interviewer.", llm.system)
	assert.Contains(t, llm.user, "How do you sum a range?")
	assert.Contains(t, llm.user, "Use =SUM(A1:A10)")
	assert.Contains(t, llm.user, "=SUM(B1:B5)")
}

func TestScoreTextDefaultsWhenPatternMissing(t *testing.T) {
	content := "Reasonable answer, but it misses absolute references."
	svc := New(&fakeCompleter{content: content}, quietLogger())

	result := svc.ScoreText(context.Background(), "something", textTask())

	assert.Equal(t, DefaultTextScore, result.Score)
	assert.Equal(t, content, result.Feedback)
}

func TestScoreTextDowngradesClientFailure(t *testing.T) {
	svc := New(&fakeCompleter{err: errors.New("connection refused")}, quietLogger())

	result := svc.ScoreText(context.Background(), "answer", textTask())

	assert.Equal(t, 0, result.Score)
	assert.Contains(t, result.Feedback, "connection refused")
}

func TestScoreTextWithoutClient(t *testing.T) {
	svc := New(nil, quietLogger())

	result := svc.ScoreText(context.Background(), "answer", textTask())

	assert.Equal(t, 0, result.Score)
	assert.NotEmpty(t, result.Feedback)
}

func TestScoreTextMisconfiguredTask(t *testing.T) {
	llm := &fakeCompleter{content: "Score: 9/10"}
	svc := New(llm, quietLogger())
	task := textTask()
	task.ExpectedAnswer = ""

	result := svc.ScoreText(context.Background(), "answer", task)

	assert.Equal(t, 0, result.Score)
	assert.Contains(t, result.Feedback, "misconfigured")
	assert.Empty(t, llm.user, "model must not be called")
}

func TestScoreExcelLadder(t *testing.T) {
	tests := []struct {
		name         string
		rows         [][]interface{}
		wantScore    int
		wantFeedback string
	}{
		{
			name: "column with data",
			rows: [][]interface{}{
				{"Item", "Total"},
				{"Apples", 12},
				{"Pears", 7},
			},
			wantScore:    10,
			wantFeedback: "found with valid data",
		},
		{
			name: "column missing",
			rows: [][]interface{}{
				{"Item", "Sum"},
				{"Apples", 12},
			},
			wantScore:    5,
			wantFeedback: "not found",
		},
		{
			name: "column empty",
			rows: [][]interface{}{
				{"Item", "Total"},
				{"Apples"},
				{"Pears", "  "},
			},
			wantScore:    7,
			wantFeedback: "found but empty",
		},
		{
			name: "header only",
			rows: [][]interface{}{
				{"Total", "Item"},
			},
			wantScore:    7,
			wantFeedback: "found but empty",
		},
		{
			name: "header with padding",
			rows: [][]interface{}{
				{" Total "},
				{1},
			},
			wantScore:    10,
			wantFeedback: "found with valid data",
		},
		{
			name: "header below blank rows",
			rows: [][]interface{}{
				{},
				{"", "  "},
				{"Item", "Total"},
				{"Apples", 12},
			},
			wantScore:    10,
			wantFeedback: "found with valid data",
		},
		{
			name:         "empty sheet",
			rows:         nil,
			wantScore:    5,
			wantFeedback: "not found",
		},
	}

	svc := New(nil, quietLogger())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := svc.ScoreExcel(workbook(t, tc.rows), excelTask())
			assert.Equal(t, tc.wantScore, result.Score)
			assert.Contains(t, result.Feedback, tc.wantFeedback)
		})
	}
}

func TestScoreExcelUnreadableFile(t *testing.T) {
	svc := New(nil, quietLogger())

	result := svc.ScoreExcel(bytes.NewReader([]byte("definitely not a workbook")), excelTask())

	assert.Equal(t, 0, result.Score)
	assert.NotEmpty(t, result.Feedback)
	assert.Contains(t, result.Feedback, "Error reading Excel file")
}

func TestScoreExcelMisconfiguredTask(t *testing.T) {
	svc := New(nil, quietLogger())
	task := excelTask()
	task.ExpectedColumn = ""

	result := svc.ScoreExcel(workbook(t, [][]interface{}{{"Total"}, {1}}), task)

	assert.Equal(t, 0, result.Score)
	assert.Contains(t, result.Feedback, "misconfigured")
}
