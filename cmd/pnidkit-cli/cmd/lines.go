package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pnidkit/internal/application/commands"
)

var linesSync bool

var linesCmd = &cobra.Command{
	Use:   "lines",
	Short: "List pipe line tags",
	Long: `List every pipe line tag. Tags that do not parse are flagged; tags
that parse but are not in canonical form are marked with *.

With --sync, rewrite those tags in canonical form and save the drawing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewLinesCommand(GetSession(), linesSync).Execute(cmd.Context())
		if err != nil {
			return err
		}

		for _, l := range result.Lines {
			switch {
			case !l.Valid:
				fmt.Printf("! [%s] %-24s %s\n", sheetOrDash(l.Sheet), l.Raw, problemColor.Sprint("unparsed"))
			case l.Changed:
				fmt.Printf("* [%s] %-24s -> %s\n", sheetOrDash(l.Sheet), l.Raw, l.Canonical)
			default:
				fmt.Printf("  [%s] %s\n", sheetOrDash(l.Sheet), l.Raw)
			}
		}
		if linesSync {
			fmt.Printf("Synced %d tags\n", result.Synced)
		}
		return nil
	},
}

func init() {
	linesCmd.Flags().BoolVar(&linesSync, "sync", false, "rewrite non-canonical tags and save")
	rootCmd.AddCommand(linesCmd)
}
