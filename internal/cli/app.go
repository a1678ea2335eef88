package cli

import (
	"fmt"
	"os"

	"excel-interviewer/internal/api"
	"excel-interviewer/internal/config"
	"excel-interviewer/internal/evaluator"
	"excel-interviewer/internal/interviewer"

	"golang.org/x/term"
)

// loadCatalog загружает каталог заданий; ошибка останавливает запуск
func (a *App) loadCatalog() (*config.Catalog, error) {
	catalog, err := config.Load(a.Config.Interview.TasksFile)
	if err != nil {
		a.Logger.Error("failed to load task catalog", "path", a.Config.Interview.TasksFile, "error", err)
		return nil, err
	}
	a.Logger.Info("task catalog loaded", "path", a.Config.Interview.TasksFile, "tasks", catalog.GetTotalTasks())
	return catalog, nil
}

// newEvaluator создает оценщик. Без валидной конфигурации OpenAI текстовые
// ответы получают 0 баллов с пояснением, табличные оцениваются как обычно.
func (a *App) newEvaluator() *evaluator.Service {
	if err := a.Config.OpenAI.ValidateConfig(); err != nil {
		a.Logger.Warn("text evaluation degraded", "reason", err.Error())
	} else {
		a.Logger.Info("text evaluation enabled", "model_info", a.Config.OpenAI.GetModelInfo())
	}
	client := api.NewOpenAIClient(a.Config.OpenAI, a.Metrics, a.Logger)
	return evaluator.New(client, a.Logger)
}

func (a *App) newInterviewer() *interviewer.Service {
	return interviewer.New(a.newEvaluator(), a.Metrics, a.Logger, a.Config.Interview.MaxUploadBytes)
}

func (a *App) noColor() bool {
	if a.flags.noColor || os.Getenv("NO_COLOR") != "" {
		return true
	}
	return !term.IsTerminal(int(os.Stdout.Fd()))
}

func (a *App) logMetrics() {
	snap := a.Metrics.GetSnapshot()
	a.Logger.Info("session metrics",
		"sessions_started", snap.SessionsStarted,
		"reports_rendered", snap.ReportsRendered,
		"text_scored", snap.TextAnswersScored,
		"excel_scored", snap.ExcelAnswersScored,
		"duplicates_ignored", snap.DuplicatesIgnored,
		"uploads_rejected", snap.UploadsRejected,
		"scoring_failures", snap.ScoringFailures,
		"api_calls", fmt.Sprintf("%d/%d", snap.APICallsSuccessful, snap.APICallsTotal),
	)
}
