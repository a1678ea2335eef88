package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const catalogYAML = `- question: What does VLOOKUP do?
  type: text
  expected_answer: Looks up a value in the first column of a range
- question: Build a chart
  type: chart
- question: Add a Total column
  type: excel
  expected_column: Total
`

type harness struct {
	dir     string
	tasks   string
	results string
}

func newHarness(t *testing.T) harness {
	t.Helper()
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("NO_COLOR", "1")

	dir := t.TempDir()
	h := harness{
		dir:     dir,
		tasks:   filepath.Join(dir, "tasks.yaml"),
		results: filepath.Join(dir, "results"),
	}
	require.NoError(t, os.WriteFile(h.tasks, []byte(catalogYAML), 0o644))
	return h
}

func (h harness) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	out, _, err := h.runApp(t, stdin, args...)
	return out, err
}

func (h harness) runApp(t *testing.T, stdin string, args ...string) (string, *App, error) {
	t.Helper()
	base := []string{
		"--env-file", filepath.Join(h.dir, "absent.env"),
		"--tasks", h.tasks,
		"--results-dir", h.results,
		"--log-file", filepath.Join(h.dir, "interviewer.log"),
	}
	cmd, app := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(base, args...))
	err := executeCommand(cmd, app)
	return out.String(), app, err
}

func TestValidateCommand(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "validate")
	require.NoError(t, err)

	assert.Contains(t, out, "3 task(s), 2 valid")
	assert.Contains(t, out, `skipped  #2 "Build a chart": unknown type "chart"`)
}

func TestValidateCommandMissingCatalog(t *testing.T) {
	h := newHarness(t)
	h.tasks = filepath.Join(h.dir, "missing.yaml")

	_, err := h.run(t, "", "validate")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFailedCommandClosesLogFile(t *testing.T) {
	h := newHarness(t)
	h.tasks = filepath.Join(h.dir, "missing.yaml")

	_, app, err := h.runApp(t, "", "validate")
	require.Error(t, err)

	sink, ok := app.logSink.(*os.File)
	require.True(t, ok, "log sink should be the log file")
	_, err = sink.Write([]byte("late write\n"))
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestScoreExcelCommand(t *testing.T) {
	h := newHarness(t)

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Total"))
	path := filepath.Join(h.dir, "answer.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	out, err := h.run(t, "", "score", "excel", "--question", "2", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Q2/2. Add a Total column")
	assert.Contains(t, out, `Score: 7 | Feedback: Column "Total" found but empty.`)

	_, err = h.run(t, "", "score", "excel", "--question", "1", path)
	assert.ErrorContains(t, err, "expects a text answer")
}

func TestScoreTextCommandWithoutAPIKey(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "", "score", "text", "-q", "1", "It", "looks", "things", "up")
	require.NoError(t, err)
	assert.Contains(t, out, "Score: 0 | Feedback: Error evaluating answer: OPENAI_API_KEY is not configured")
}

func TestInterviewCommandExportsReport(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, "some answer\n/finish\n/quit\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Overall Score: 0.00")
	assert.Contains(t, out, "Report saved to")

	listed, err := h.run(t, "", "results", "list")
	require.NoError(t, err)
	id := strings.TrimSpace(listed)
	require.NotEmpty(t, id)

	shown, err := h.run(t, "", "results", "show", id)
	require.NoError(t, err)
	assert.Contains(t, shown, "Interview "+id)
	assert.Contains(t, shown, "- Q: What does VLOOKUP do? | Score: 0")

	logData, err := os.ReadFile(filepath.Join(h.dir, "interviewer.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logData), "text evaluation failed")
	assert.Contains(t, string(logData), "sessions_started=1")
	assert.Contains(t, string(logData), "reports_rendered=1")
}
