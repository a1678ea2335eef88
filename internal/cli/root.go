// Package cli собирает зависимости приложения и описывает команды cobra.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"excel-interviewer/internal/config"
	"excel-interviewer/internal/metrics"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// App хранит общие зависимости команд
type App struct {
	Config  *config.AppConfig
	Logger  *slog.Logger
	Metrics *metrics.Metrics

	logSink io.Closer
	flags   rootFlags
}

type rootFlags struct {
	envFile    string
	tasksFile  string
	logLevel   string
	logFile    string
	resultsDir string
	noColor    bool
}

// NewRootCommand создает корневую команду. Без подкоманды запускается интервью.
func NewRootCommand() *cobra.Command {
	root, _ := newRootCommand()
	return root
}

func newRootCommand() (*cobra.Command, *App) {
	app := &App{}

	root := &cobra.Command{
		Use:           "excel-interviewer",
		Short:         "AI-powered Excel mock interviewer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runInterview(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&app.flags.envFile, "env-file", ".env", "path to the .env file")
	pf.StringVar(&app.flags.tasksFile, "tasks", "", "path to the task catalog (overrides TASKS_FILE)")
	pf.StringVar(&app.flags.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")
	pf.StringVar(&app.flags.logFile, "log-file", "", `diagnostic log file, "-" for stderr (overrides LOG_FILE)`)
	pf.StringVar(&app.flags.resultsDir, "results-dir", "", "directory for exported reports (overrides RESULTS_DIR)")
	pf.BoolVar(&app.flags.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newInterviewCommand(app),
		newValidateCommand(app),
		newScoreCommand(app),
		newResultsCommand(app),
	)

	return root, app
}

// Execute запускает CLI и возвращает код выхода
func Execute() int {
	root, app := newRootCommand()
	if err := executeCommand(root, app); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	return 0
}

// executeCommand выполняет команду и закрывает лог-файл, в том числе при ошибке
func executeCommand(root *cobra.Command, app *App) error {
	defer app.close()
	return root.Execute()
}

func (a *App) init(cmd *cobra.Command) error {
	// Загружаем переменные окружения
	if err := godotenv.Load(a.flags.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", a.flags.envFile, err)
	}

	a.Config = config.LoadAppConfig()
	if a.flags.tasksFile != "" {
		a.Config.Interview.TasksFile = a.flags.tasksFile
	}
	if a.flags.resultsDir != "" {
		a.Config.Interview.ResultsDir = a.flags.resultsDir
	}
	if a.flags.logLevel != "" {
		a.Config.Log.Level = a.flags.logLevel
	}
	if a.flags.logFile != "" {
		a.Config.Log.File = a.flags.logFile
	}

	logger, sink, err := newLogger(a.Config.Log)
	if err != nil {
		return err
	}
	a.Logger = logger
	a.logSink = sink
	a.Metrics = metrics.NewMetrics()

	a.Logger.Debug("command started", "command", cmd.CommandPath())
	return nil
}

func (a *App) close() {
	if a.logSink != nil {
		_ = a.logSink.Close()
	}
}

// newLogger создает текстовый slog логгер. Файл открывается только на дозапись.
func newLogger(cfg config.LogConfig) (*slog.Logger, io.Closer, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	var (
		w      io.Writer = os.Stderr
		closer io.Closer
	)
	if cfg.File != "" && cfg.File != "-" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file %s: %w", cfg.File, err)
		}
		w = f
		closer = f
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, closer, nil
}

func parseLevel(value string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", value)
	}
	return level, nil
}
