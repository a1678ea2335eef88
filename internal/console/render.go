package console

import (
	"fmt"
	"strings"

	"excel-interviewer/internal/config"
	"excel-interviewer/internal/interviewer"
	"excel-interviewer/internal/metrics"
	"excel-interviewer/internal/storage"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleColor   = lipgloss.Color("33")
	mutedColor   = lipgloss.Color("242")
	goodColor    = lipgloss.Color("42")
	partialColor = lipgloss.Color("214")
	badColor     = lipgloss.Color("196")
)

// stylize применяет цвет, если вывод идет в терминал
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func bold(text string, noColor bool) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Render(text)
}

func scoreColor(score int) lipgloss.Color {
	switch {
	case score >= 8:
		return goodColor
	case score >= 5:
		return partialColor
	default:
		return badColor
	}
}

// RenderQuestion выводит вопрос и подсказку по формату ответа
func RenderQuestion(index, total int, task config.Task, noColor bool) string {
	var b strings.Builder
	b.WriteString(bold(fmt.Sprintf("Q%d/%d. %s", index+1, total, task.Question), noColor))
	b.WriteString("\n")
	switch task.Type {
	case config.TaskTypeExcel:
		b.WriteString(stylize("Upload Excel file: enter the path to an .xlsx file", noColor, mutedColor))
	default:
		b.WriteString(stylize("Your answer:", noColor, mutedColor))
	}
	return b.String()
}

// RenderOutcome выводит оценку только что отправленного ответа
func RenderOutcome(outcome interviewer.Outcome, noColor bool) string {
	resp := outcome.Response
	if outcome.Duplicate {
		return stylize("This question is already answered; the first answer is kept.", noColor, mutedColor) +
			"\n" + formatScoreLine(resp, noColor)
	}
	return formatScoreLine(resp, noColor)
}

func formatScoreLine(resp storage.Response, noColor bool) string {
	score := stylize(fmt.Sprintf("Score: %d", resp.Score), noColor, scoreColor(resp.Score))
	return score + " | Feedback: " + resp.Feedback
}

// RenderReport выводит итоговый отчет: среднюю оценку и отзыв по каждому вопросу
func RenderReport(report *storage.Report, noColor bool) string {
	var b strings.Builder
	b.WriteString(stylize("Final Report", noColor, titleColor))
	b.WriteString("\n")

	if report.AverageScore == nil {
		b.WriteString("No responses submitted.\n")
		return b.String()
	}

	b.WriteString(bold(fmt.Sprintf("Overall Score: %.2f", *report.AverageScore), noColor))
	b.WriteString("\n")
	for _, resp := range report.Responses {
		b.WriteString(fmt.Sprintf("- Q: %s | Score: %d | Feedback: %s\n",
			resp.Question, resp.Score, oneLine(resp.Feedback)))
	}
	return b.String()
}

// RenderStatus выводит прогресс сессии и счетчики
func RenderStatus(session *interviewer.Session, snap metrics.Snapshot, noColor bool) string {
	var b strings.Builder
	b.WriteString(stylize("Interview progress", noColor, titleColor))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("ID: %s\n", session.ID))
	b.WriteString(fmt.Sprintf("Answered: %d/%d\n", session.Answered(), len(session.Tasks)))

	for _, status := range session.Status() {
		mark := "[ ]"
		detail := ""
		if status.State == interviewer.StateRecorded {
			mark = "[x]"
			detail = fmt.Sprintf(" (score %d)", status.Response.Score)
		}
		b.WriteString(fmt.Sprintf("%s Q%d. %s%s\n", mark, status.Index+1, status.Task.Question, detail))
	}

	if len(session.Skipped) > 0 {
		b.WriteString(stylize(fmt.Sprintf("%d invalid task(s) skipped", len(session.Skipped)), noColor, mutedColor))
		b.WriteString("\n")
	}

	b.WriteString(stylize(fmt.Sprintf("Sessions started: %d | Reports: %d", snap.SessionsStarted, snap.ReportsRendered), noColor, mutedColor))
	b.WriteString("\n")
	b.WriteString(stylize(fmt.Sprintf("Scored: %d text, %d excel | Duplicates ignored: %d | API calls: %d/%d ok",
		snap.TextAnswersScored, snap.ExcelAnswersScored, snap.DuplicatesIgnored,
		snap.APICallsSuccessful, snap.APICallsTotal), noColor, mutedColor))
	b.WriteString("\n")
	return b.String()
}

func oneLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
