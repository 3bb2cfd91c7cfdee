package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pnidkit/internal/application/commands"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show recorded check runs",
	Long: `List the check runs recorded with check --record for this drawing,
most recent first. With a run ID, print that run's problems.`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{needs: needsPath},
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if len(args) == 1 {
			run, err := commands.NewShowRunCommand(store, args[0]).Execute(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s  %s  %d problems\n", run.ID, run.At.Format("2006-01-02 15:04:05"), run.ProblemCount)
			printProblems("Problems", run.Problems)
			return nil
		}

		runs, err := commands.NewHistoryCommand(store, historyLimit).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No recorded runs")
			return nil
		}
		for _, r := range runs {
			fmt.Printf("%s  %s  sheets %-3d connectors %-4d problems %d\n",
				r.ID, r.At.Format("2006-01-02 15:04:05"), r.Sheets, r.Connectors, r.ProblemCount)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of runs to show, 0 for all")
	rootCmd.AddCommand(historyCmd)
}
