package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// costsCmd represents the costs command
var costsCmd = &cobra.Command{
	Use:   "costs <file|url>...",
	Short: "Prints the cost distribution summary.",
	Long:  "Prints total, average and median product cost, a fixed-width cost histogram and the box-plot summary statistics.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, _, err := runAnalysis(args)
		if err != nil {
			return err
		}

		if res.Costs == nil {
			for _, n := range res.Notes {
				fmt.Println(n)
			}
			return nil
		}

		c := res.Costs
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintf(w, "Total BOM cost\t%s\t\n", c.TotalCost.StringFixed(2))
		fmt.Fprintf(w, "Average product cost\t%s\t\n", c.AverageCost.StringFixed(2))
		fmt.Fprintf(w, "Median product cost\t%s\t\n", c.MedianCost.StringFixed(2))
		fmt.Fprintf(w, "Q1 / Q2 / Q3\t%.2f / %.2f / %.2f\t\n", c.Box.Q1, c.Box.Q2, c.Box.Q3)
		fmt.Fprintf(w, "Whiskers\t%.2f - %.2f\t\n", c.Box.LowWhisker, c.Box.HighWhisker)
		fmt.Fprintf(w, "Outliers\t%d\t\n", len(c.Box.Outliers))
		w.Flush()

		fmt.Println()
		maxCount := 0
		for _, b := range c.Histogram {
			if b.Count > maxCount {
				maxCount = b.Count
			}
		}
		for _, b := range c.Histogram {
			bar := ""
			if maxCount > 0 {
				bar = strings.Repeat("#", b.Count*40/maxCount)
			}
			fmt.Printf("%12.2f - %-12.2f %4d %s\n", b.Low, b.High, b.Count, bar)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(costsCmd)
}
