package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"excel-interviewer/internal/console"

	"github.com/spf13/cobra"
)

func newInterviewCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "interview",
		Short: "Run an interactive interview in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runInterview(cmd)
		},
	}
}

func (a *App) runInterview(cmd *cobra.Command) error {
	catalog, err := a.loadCatalog()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// После первого сигнала возвращаем обработку по умолчанию: повторный Ctrl-C завершает процесс
	context.AfterFunc(ctx, stop)

	handler := console.NewHandler(cmd.InOrStdin(), cmd.OutOrStdout(), a.newInterviewer(), catalog, console.Options{
		NoColor:    a.noColor(),
		ResultsDir: a.Config.Interview.ResultsDir,
	}, a.Logger)

	err = handler.Run(ctx)
	a.logMetrics()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
