package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// componentsCmd represents the components command
var componentsCmd = &cobra.Command{
	Use:   "components <file|url>...",
	Short: "Prints the component usage table.",
	Long:  "Prints component usage across all products, ranked by how many products reference each component.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, _, err := runAnalysis(args)
		if err != nil {
			return err
		}

		components := res.Components
		if all, _ := cmd.Flags().GetBool("all"); !all {
			if topN := analysisConfig().TopN; topN > 0 && len(components) > topN {
				components = components[:topN]
			}
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "COMPONENT\tNAME\tUSED IN\tTOTAL QTY\tAVG UNIT COST\tTOTAL COST\t")
		for _, c := range components {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\t\n",
				c.ComponentID, c.Name, c.UsageCount, c.TotalQuantity,
				c.AverageUnitCost.StringFixed(4), c.TotalCost.StringFixed(2))
		}
		w.Flush()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(componentsCmd)
	componentsCmd.Flags().Bool("all", false, "Print every component instead of the top N")
}
