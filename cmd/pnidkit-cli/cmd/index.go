package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pnidkit/internal/application/commands"
)

var indexPattern string

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Show the symbol index",
	Long: `List every template name in the drawing with its placement count, in
the order names were first seen.

With --pattern, list the placements whose template name fully matches
the pattern instead.

Examples:
  pnidkit-cli index
  pnidkit-cli index --pattern 'Border.*'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if indexPattern != "" {
			return printFind(cmd, indexPattern)
		}

		entries, err := commands.NewIndexCommand(GetSession()).Execute(cmd.Context())
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("%6d  %s\n", e.Count, e.Name)
		}
		return nil
	},
}

var findCmd = &cobra.Command{
	Use:   "find <pattern>",
	Short: "Find placements by template name",
	Long: `List placements whose template name fully matches a regular
expression, with their sheet and TAG attribute.

Examples:
  pnidkit-cli find 'Connector_.*'
  pnidkit-cli find 'Valve_(Gate|Ball)'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printFind(cmd, args[0])
	},
}

func printFind(cmd *cobra.Command, pattern string) error {
	rows, err := commands.NewFindCommand(GetSession(), pattern).Execute(cmd.Context())
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("No placements found")
		return nil
	}
	for _, r := range rows {
		fmt.Printf("%-6s %-20s [%s] %-16s %s\n", r.Handle, r.Name, sheetOrDash(r.Sheet), r.Tag, r.At)
	}
	return nil
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search tags",
	Long: `Search placement tags and template names.

Results are ranked by relevance using fuzzy matching.

Examples:
  pnidkit-cli search 0101-03
  pnidkit-cli search PT-1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := commands.NewSearchCommand(GetSession(), args[0]).Execute(cmd.Context())
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println("No results found")
			return nil
		}

		for _, r := range results {
			fmt.Printf("[%s] %s %s (%s)\n", sheetOrDash(r.Sheet), r.Tag, r.Name, r.Handle)
		}
		return nil
	},
}

func sheetOrDash(s string) string {
	if s == "" {
		return "----"
	}
	return s
}

func init() {
	indexCmd.Flags().StringVarP(&indexPattern, "pattern", "p", "", "list placements matching this template name pattern")
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(searchCmd)
}
