package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shopintel/competitor-xray/internal/catalog"
	"github.com/shopintel/competitor-xray/internal/model"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the built-in reference products",
	RunE: func(_ *cobra.Command, _ []string) error {
		formatProducts(os.Stdout, catalog.ReferenceProducts())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(productsCmd)
}

func formatProducts(out io.Writer, products []model.Product) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ASIN\tTITLE\tPRICE\tRATING\tREVIEWS\tCATEGORY")
	for _, p := range products {
		_, _ = fmt.Fprintf(w, "%s\t%s\t$%.2f\t%.1f\t%d\t%s\n",
			p.ASIN, p.Title, p.Price, p.Rating, p.Reviews, p.Category)
	}
	_ = w.Flush()
}
