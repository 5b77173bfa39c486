package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// insightsCmd represents the insights command
var insightsCmd = &cobra.Command{
	Use:   "insights <file|url>...",
	Short: "Prints the generated insights.",
	Long:  "Prints the deterministic, metric-backed insight list for a batch of BOM files.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, _, err := runAnalysis(args)
		if err != nil {
			return err
		}

		if len(res.Insights) == 0 {
			fmt.Println("No data to generate insights.")
			return nil
		}
		for _, i := range res.Insights {
			fmt.Println("- " + i.Message)
		}
		for _, n := range res.Notes {
			fmt.Println("note: " + n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}
