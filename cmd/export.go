package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bomlens/bomlens/pkg/export"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <file|url>...",
	Short: "Writes the analysis result to disk.",
	Long:  "Writes the full analysis result as a JSON document, or as a directory of CSV files with one file per metrics table.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			return fmt.Errorf("--out is required")
		}
		format, _ := cmd.Flags().GetString("format")

		res, _, err := runAnalysis(args)
		if err != nil {
			return err
		}

		switch format {
		case "json":
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			return export.WriteJSON(res, f)
		case "csv":
			return export.WriteCSV(res, out)
		default:
			return fmt.Errorf("unknown format %q (want json or csv)", format)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("out", "o", "", "Output file (json) or directory (csv)")
	exportCmd.Flags().StringP("format", "f", "json", "Output format: json or csv")
}
