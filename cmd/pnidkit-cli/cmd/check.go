package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pnidkit/internal/application/commands"
	"pnidkit/internal/domain"
	"pnidkit/internal/ports"
)

var (
	problemColor = color.New(color.FgRed, color.Bold)
	sheetColor   = color.New(color.FgCyan)
	okColor      = color.New(color.FgGreen, color.Bold)
)

var (
	checkUtility bool
	checkRecord  bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check off-page connectors",
	Long: `Check every main connector against the sheet numbering: tag present,
route present, direction matching the side of the sheet, tag prefix
matching the sheet on exit, linked drawing set only on off-drawing
connectors. Each connector reports at most its first problem.

Exits with status 1 when any problem is found.

Examples:
  pnidkit-cli check
  pnidkit-cli check --utility --record`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var store ports.ReportStore
		if checkRecord {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()
			store = s
		}

		result, err := commands.NewCheckCommand(GetSession(), store, checkUtility, checkRecord).Execute(cmd.Context())
		if err != nil {
			return err
		}

		printProblems("Main connectors", result.Main)
		if checkUtility {
			printProblems("Utility connectors", result.Utility)
		}
		if checkRecord {
			fmt.Printf("Recorded run %s\n", result.Run.ID)
		}
		if result.Run.ProblemCount > 0 {
			return errProblemsFound
		}
		return nil
	},
}

func printProblems(title string, problems []domain.Problem) {
	fmt.Println(title)
	if len(problems) == 0 {
		okColor.Println("  no problems")
		return
	}
	for _, p := range problems {
		fmt.Printf("  %s %-12s %s  (%.2f, %.2f) %s\n",
			sheetColor.Sprintf("[%s]", sheetOrDash(p.Sheet)),
			p.Tag,
			problemColor.Sprint(p.Message),
			p.X, p.Y, p.Handle)
	}
	fmt.Printf("  %d problems\n", len(problems))
}

var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Pair connectors across sheets",
	Long: `Pair each exiting connector with the entering connector of the same
tag and print where the line leaves and arrives. Tags used by more than
two connectors are listed as duplicates.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewLinksCommand(GetSession()).Execute(cmd.Context())
		if err != nil {
			return err
		}

		for _, l := range result.Links {
			fmt.Println(l)
		}
		if len(result.Duplicates) > 0 {
			problemColor.Printf("Duplicate tags: %s\n", strings.Join(result.Duplicates, ", "))
		}
		return nil
	},
}

var loopsCmd = &cobra.Command{
	Use:   "loops",
	Short: "Group instruments into loops",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loops, err := commands.NewLoopsCommand(GetSession()).Execute(cmd.Context())
		if err != nil {
			return err
		}

		for _, l := range loops {
			fmt.Printf("%-12s %s\n", l.Name, strings.Join(l.Tags, " "))
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVarP(&checkUtility, "utility", "u", false, "also check utility connectors")
	checkCmd.Flags().BoolVar(&checkRecord, "record", false, "store the run in the check history")
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(linksCmd)
	rootCmd.AddCommand(loopsCmd)
}
