package cli

import (
	"fmt"

	"excel-interviewer/internal/config"

	"github.com/spf13/cobra"
)

func newValidateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the task catalog and list tasks that will be skipped",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := app.loadCatalog()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			valid := catalog.ValidTasks()
			fmt.Fprintf(out, "Catalog %s: %d task(s), %d valid\n",
				app.Config.Interview.TasksFile, catalog.GetTotalTasks(), len(valid))

			for i, task := range catalog.Tasks {
				switch {
				case !task.Type.Valid():
					fmt.Fprintf(out, "  skipped  #%d %q: unknown type %q\n", i+1, task.Question, task.Type)
				case task.Type == config.TaskTypeText && task.ExpectedAnswer == "":
					fmt.Fprintf(out, "  warning  #%d %q: no expected_answer, answers will score 0\n", i+1, task.Question)
				case task.Type == config.TaskTypeExcel && task.ExpectedColumn == "":
					fmt.Fprintf(out, "  warning  #%d %q: no expected_column, answers will score 0\n", i+1, task.Question)
				}
			}
			return nil
		},
	}
}
