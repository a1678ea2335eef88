package cli

import (
	"fmt"
	"os"
	"strings"

	"excel-interviewer/internal/config"
	"excel-interviewer/internal/console"
	"excel-interviewer/internal/interviewer"

	"github.com/spf13/cobra"
)

func newScoreCommand(app *App) *cobra.Command {
	var question int

	score := &cobra.Command{
		Use:   "score",
		Short: "Score a single answer without running the interview",
	}
	score.PersistentFlags().IntVarP(&question, "question", "q", 1, "question number as shown in the interview (1-based)")

	score.AddCommand(
		&cobra.Command{
			Use:   "text <answer>",
			Short: "Score a free-text answer",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.scoreOne(cmd, question, config.TaskTypeText, func(svc *interviewer.Service, session *interviewer.Session) (interviewer.Outcome, error) {
					return svc.SubmitText(cmd.Context(), session, question-1, strings.Join(args, " "))
				})
			},
		},
		&cobra.Command{
			Use:   "excel <file.xlsx>",
			Short: "Score a spreadsheet answer",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.scoreOne(cmd, question, config.TaskTypeExcel, func(svc *interviewer.Service, session *interviewer.Session) (interviewer.Outcome, error) {
					f, err := os.Open(args[0])
					if err != nil {
						return interviewer.Outcome{}, fmt.Errorf("open %s: %w", args[0], err)
					}
					defer f.Close()

					size := int64(-1)
					if info, err := f.Stat(); err == nil {
						size = info.Size()
					}
					return svc.SubmitExcel(session, question-1, f, size)
				})
			},
		},
	)

	return score
}

type submitFunc func(svc *interviewer.Service, session *interviewer.Session) (interviewer.Outcome, error)

func (a *App) scoreOne(cmd *cobra.Command, question int, want config.TaskType, submit submitFunc) error {
	catalog, err := a.loadCatalog()
	if err != nil {
		return err
	}

	svc := a.newInterviewer()
	session := svc.NewSession(catalog)
	if question < 1 || question > len(session.Tasks) {
		return fmt.Errorf("question %d does not exist, the catalog has %d valid question(s)", question, len(session.Tasks))
	}
	if task := session.Tasks[question-1]; task.Type != want {
		return fmt.Errorf("question %d expects a %s answer", question, task.Type)
	}

	outcome, err := submit(svc, session)
	if err != nil {
		return err
	}

	noColor := a.noColor()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, console.RenderQuestion(question-1, len(session.Tasks), session.Tasks[question-1], noColor))
	fmt.Fprintln(out, console.RenderOutcome(outcome, noColor))
	return nil
}
