package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bomlens/bomlens/pkg/analysis"
	"github.com/bomlens/bomlens/pkg/bom"
	"github.com/bomlens/bomlens/pkg/requirements"
)

// requireCmd represents the require command
var requireCmd = &cobra.Command{
	Use:   "require <file|url>...",
	Short: "Checks stock against the requirements for a production run.",
	Long:  "Scales the BOM quantities of one product by a desired build quantity and compares them against an on-hand stock file.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, _ := cmd.Flags().GetString("product")
		if productID == "" {
			return fmt.Errorf("--product is required")
		}
		productID = strings.ToUpper(strings.TrimSpace(productID))
		desired, _ := cmd.Flags().GetInt("quantity")
		stockPath, _ := cmd.Flags().GetString("stock")
		if stockPath == "" {
			return fmt.Errorf("--stock is required")
		}

		sources, err := bom.LoadSources(args)
		if err != nil {
			return err
		}
		batch, err := bom.Normalize(sources, batchColumns())
		if err != nil {
			return err
		}

		stockData, err := os.ReadFile(stockPath)
		if err != nil {
			return err
		}
		stock, err := requirements.ParseStock(bom.Source{Name: stockPath, Data: stockData})
		if err != nil {
			return err
		}

		components := analysis.CalculateComponents(batch)
		lines, err := requirements.Calculate(batch, components, productID, desired, stock)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight)
		fmt.Fprintln(w, "COMPONENT\tNAME\tREQUIRED\tIN STOCK\tSUFFICIENT\t")
		short := 0
		for _, l := range lines {
			ok := "yes"
			if !l.Sufficient {
				ok = "NO"
				short++
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t\n", l.ComponentID, l.Name, l.Required, l.InStock, ok)
		}
		w.Flush()

		if short > 0 {
			fmt.Printf("\n%d of %d components are short for %d units of %s\n", short, len(lines), desired, productID)
		} else {
			fmt.Printf("\nStock covers %d units of %s\n", desired, productID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(requireCmd)
	requireCmd.Flags().StringP("product", "p", "", "Product to build")
	requireCmd.Flags().IntP("quantity", "q", 1, "Desired build quantity")
	requireCmd.Flags().StringP("stock", "s", "", "Stock CSV file (component, on_hand)")
}
