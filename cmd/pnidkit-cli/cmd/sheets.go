package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pnidkit/internal/application/commands"
)

var sheetsCmd = &cobra.Command{
	Use:   "sheets",
	Short: "List sheets in layout order",
	Long: `List the drawing's sheets top row first, left to right, with the
number assigned by the layout and the number written in the title block.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewListSheetsCommand(GetSession()).Execute(cmd.Context())
		if err != nil {
			return err
		}

		for _, s := range result.Sheets {
			title := s.Title
			if !s.HasTitle {
				title = "(untitled)"
			}
			fmt.Printf("row %-3d %-4s  %-20s %-6s %v - %v\n",
				s.Row, sheetOrDash(s.Number), title, s.Handle, s.Bounds.Min, s.Bounds.Max)
		}
		for _, h := range result.DroppedTitles {
			fmt.Printf("dropped title block %s\n", h)
		}
		return nil
	},
}

var renumberWrite bool

var renumberCmd = &cobra.Command{
	Use:   "renumber",
	Short: "Write layout numbers into title blocks",
	Long: `Compare the drawing number of each title block with the number the
layout assigns. With --write, replace the trailing digits of changed
title numbers and save the drawing.

Examples:
  pnidkit-cli renumber
  pnidkit-cli renumber --write`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewRenumberCommand(GetSession(), renumberWrite).Execute(cmd.Context())
		if err != nil {
			return err
		}

		for _, r := range result.Sheets {
			mark := " "
			if r.Changed {
				mark = "*"
			}
			fmt.Printf("%s row %-3d %-20s -> %s\n", mark, r.Row, r.Old, r.New)
		}
		switch {
		case result.Changed == 0:
			fmt.Println("All sheets numbered")
		case result.Written:
			fmt.Printf("Renumbered %d sheets\n", result.Changed)
		default:
			fmt.Printf("%d sheets to renumber, run with --write to apply\n", result.Changed)
		}
		return nil
	},
}

func init() {
	renumberCmd.Flags().BoolVar(&renumberWrite, "write", false, "write the new numbers and save")
	rootCmd.AddCommand(sheetsCmd)
	rootCmd.AddCommand(renumberCmd)
}
