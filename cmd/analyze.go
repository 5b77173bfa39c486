package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bomlens/bomlens/pkg/analysis"
	"github.com/bomlens/bomlens/pkg/bom"
	"github.com/bomlens/bomlens/pkg/export"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <file|url>...",
	Short: "Runs the full analysis and prints the overview.",
	Long:  "Runs the full analysis over one or more BOM files and prints the overview metrics, the top complexity ranking and the generated insights.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, _, err := runAnalysis(args)
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return export.WriteJSON(res, os.Stdout)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "PRODUCTS\tCOMPONENTS\tRECORDS\tTOTAL COST\tAVG COST\t")
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\t\n",
			res.Overview.Products, res.Overview.Components, res.Overview.Records,
			res.Overview.TotalCost.StringFixed(2), res.Overview.AverageCost.StringFixed(2))
		w.Flush()

		if len(res.Products) > 0 {
			fmt.Println()
			printProductTable(res.Products, analysisConfig().TopN)
		}

		if len(res.Insights) > 0 {
			fmt.Println()
			for _, i := range res.Insights {
				fmt.Println("- " + i.Message)
			}
		}

		for _, n := range res.Notes {
			fmt.Println("note: " + n)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().Bool("json", false, "Print the full analysis result as JSON")
}

// runAnalysis is the shared pipeline behind every subcommand: load sources,
// normalize, analyze.
func runAnalysis(locations []string) (*analysis.Result, *bom.Batch, error) {
	sources, err := bom.LoadSources(locations)
	if err != nil {
		return nil, nil, err
	}

	batch, err := bom.Normalize(sources, batchColumns())
	if err != nil {
		return nil, nil, err
	}

	res, err := analysis.Run(batch, analysisConfig())
	if err != nil {
		return nil, nil, err
	}
	return res, batch, nil
}

func analysisConfig() analysis.Config {
	return analysis.Config{
		Buckets:     viper.GetInt("analysis.buckets"),
		TopN:        viper.GetInt("analysis.topn"),
		CountWeight: viper.GetFloat64("complexity.count_weight"),
		CostWeight:  viper.GetFloat64("complexity.cost_weight"),
	}
}

func batchColumns() bom.Columns {
	cols := bom.DefaultColumns()
	if v := viper.GetString("columns.product"); v != "" {
		cols.Product = v
	}
	if v := viper.GetString("columns.component"); v != "" {
		cols.Component = v
	}
	if v := viper.GetString("columns.name"); v != "" {
		cols.Name = v
	}
	if v := viper.GetString("columns.cost"); v != "" {
		cols.Cost = v
	}
	if v := viper.GetString("columns.quantity"); v != "" {
		cols.Quantity = v
	}
	cols.SubComponents = viper.GetStringSlice("columns.subcomponents")
	return cols
}

func printProductTable(products []analysis.ProductMetrics, topN int) {
	if topN > 0 && len(products) > topN {
		products = products[:topN]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "PRODUCT\tCOMPONENTS\tTOTAL COST\tQTY RANGE\tCOMPLEXITY\t")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%d\t%s\t%d-%d\t%.2f\t\n",
			p.ProductID, p.ComponentCount, p.TotalCost.StringFixed(2),
			p.MinQuantity, p.MaxQuantity, p.ComplexityScore)
	}
	w.Flush()
}
