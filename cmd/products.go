package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// productsCmd represents the products command
var productsCmd = &cobra.Command{
	Use:   "products <file|url>...",
	Short: "Prints the per-product metrics table.",
	Long:  "Prints the per-product metrics table ranked by complexity, or the detail view of a single product with --product.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, batch, err := runAnalysis(args)
		if err != nil {
			return err
		}

		productID, _ := cmd.Flags().GetString("product")
		if productID == "" {
			printProductTable(res.Products, 0)
			return nil
		}
		productID = strings.ToUpper(strings.TrimSpace(productID))

		for _, p := range res.Products {
			if p.ProductID != productID {
				continue
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
			fmt.Fprintf(w, "Product\t%s\t\n", p.ProductID)
			fmt.Fprintf(w, "Components\t%d\t\n", p.ComponentCount)
			fmt.Fprintf(w, "Variety\t%d\t\n", p.Variety)
			fmt.Fprintf(w, "Total cost\t%s\t\n", p.TotalCost.StringFixed(2))
			fmt.Fprintf(w, "Quantity range\t%d-%d\t\n", p.MinQuantity, p.MaxQuantity)
			fmt.Fprintf(w, "Complexity\t%.2f\t\n", p.ComplexityScore)
			fmt.Fprintf(w, "Records\t%d\t\n", len(batch.RecordsFor(p.ProductID)))
			w.Flush()
			return nil
		}
		return fmt.Errorf("unknown product %s", productID)
	},
}

func init() {
	rootCmd.AddCommand(productsCmd)
	productsCmd.Flags().StringP("product", "p", "", "Show the detail view of one product")
}
