package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pnidkit/internal/application"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Parse and generate pipe line tags",
	Long: `Parse a pipe line tag into its fields, or generate one from fields.

Examples:
  pnidkit-cli tag parse CW101-100-A1-H
  pnidkit-cli tag gen --service CW --number 101 --size 100 --spec A1`,
	Annotations: map[string]string{needs: needsNothing},
}

var tagParseCmd = &cobra.Command{
	Use:         "parse <tag>",
	Short:       "Split a line tag into fields",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{needs: needsNothing},
	RunE: func(cmd *cobra.Command, args []string) error {
		t := application.ParseLineTag(args[0])
		if t.IsZero() {
			return fmt.Errorf("not a line tag: %q", args[0])
		}
		fmt.Printf("service:    %s\n", t.Service)
		fmt.Printf("number:     %s\n", t.Number)
		fmt.Printf("size:       %s\n", t.Size)
		fmt.Printf("spec:       %s\n", t.Spec)
		fmt.Printf("insulation: %s\n", t.Insulation)
		return nil
	},
}

var tagFields struct {
	service, number, size, spec, insulation string
}

var tagGenCmd = &cobra.Command{
	Use:         "gen",
	Short:       "Generate a line tag; missing fields become ?",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{needs: needsNothing},
	RunE: func(cmd *cobra.Command, args []string) error {
		f := tagFields
		fmt.Println(application.GenLineTag(f.service, f.number, f.size, f.spec, f.insulation))
		return nil
	},
}

func init() {
	tagGenCmd.Flags().StringVar(&tagFields.service, "service", "", "service code, e.g. CW")
	tagGenCmd.Flags().StringVar(&tagFields.number, "number", "", "line number")
	tagGenCmd.Flags().StringVar(&tagFields.size, "size", "", "nominal size")
	tagGenCmd.Flags().StringVar(&tagFields.spec, "spec", "", "piping spec")
	tagGenCmd.Flags().StringVar(&tagFields.insulation, "insulation", "", "insulation code, omitted when empty")
	rootCmd.AddCommand(tagCmd)
	tagCmd.AddCommand(tagParseCmd)
	tagCmd.AddCommand(tagGenCmd)
}
