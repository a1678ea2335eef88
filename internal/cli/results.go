package cli

import (
	"fmt"

	"excel-interviewer/internal/console"
	"excel-interviewer/internal/storage"

	"github.com/spf13/cobra"
)

func newResultsCommand(app *App) *cobra.Command {
	results := &cobra.Command{
		Use:   "results",
		Short: "Inspect exported interview reports",
	}

	results.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List exported reports",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ids, err := storage.ListReports(app.Config.Interview.ResultsDir)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(ids) == 0 {
					fmt.Fprintf(out, "No reports in %s\n", app.Config.Interview.ResultsDir)
					return nil
				}
				for _, id := range ids {
					fmt.Fprintln(out, id)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <interview-id>",
			Short: "Print an exported report",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				report, err := storage.LoadReport(app.Config.Interview.ResultsDir, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Interview %s (%s)\n", report.InterviewID, report.Timestamp)
				fmt.Fprint(out, console.RenderReport(report, app.noColor()))
				return nil
			},
		},
	)

	return results
}
