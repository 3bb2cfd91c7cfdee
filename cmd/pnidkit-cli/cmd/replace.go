package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pnidkit/internal/application/commands"
)

var replaceTextCmd = &cobra.Command{
	Use:   "replace-text <pattern> <replacement>",
	Short: "Replace text in every attribute",
	Long: `Substitute a regular expression in every attribute text of the
drawing and save it. The replacement may refer to groups as $1.

Examples:
  pnidkit-cli replace-text '^0101-(\d+)$' '0201-$1'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewReplaceTextCommand(GetSession(), args[0], args[1]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Replaced %d texts\n", result.Replaced)
		return nil
	},
}

var replaceBlockCmd = &cobra.Command{
	Use:   "replace-block <from> <to>",
	Short: "Replace every placement of a template",
	Long: `Replace every placement of one template with another at the same
point, scale, rotation and layer, carrying attributes and dynamic
properties over, then save the drawing.

Examples:
  pnidkit-cli replace-block Valve_Gate_Old Valve_Gate`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := commands.NewReplaceBlockCommand(GetSession(), args[0], args[1]).Execute(cmd.Context())
		if err != nil {
			return err
		}
		for _, r := range result.Replaced {
			fmt.Printf("%s -> %s\n", r.OldHandle, r.NewHandle)
		}
		fmt.Printf("Replaced %d blocks\n", len(result.Replaced))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replaceTextCmd)
	rootCmd.AddCommand(replaceBlockCmd)
}
