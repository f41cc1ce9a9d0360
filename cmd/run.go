package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/shopintel/competitor-xray/internal/catalog"
	"github.com/shopintel/competitor-xray/internal/model"
	"github.com/shopintel/competitor-xray/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the pipeline against a reference product",
	Long:  "Runs the four-stage pipeline against a built-in reference product (--asin) or a custom one (--title/--price/...), printing the step trace and the selected competitor.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := initPipeline()
		if err != nil {
			return err
		}
		defer env.Close()

		ref, err := resolveReference(cmd)
		if err != nil {
			return err
		}

		asJSON, _ := cmd.Flags().GetBool("json")

		var observer pipeline.StepObserver
		if !asJSON {
			observer = func(step model.PipelineStep) {
				fmt.Fprintf(os.Stderr, "✓ %s (%dms)\n", step.Kind, step.DurationMs)
			}
		}

		exec, err := env.Pipeline.Run(cmd.Context(), ref, observer)
		if err != nil {
			return eris.Wrap(err, "run")
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(exec)
		}

		formatExecution(os.Stdout, exec)
		return nil
	},
}

func init() {
	runCmd.Flags().String("asin", "", "ASIN of a built-in reference product (default: first in catalog)")
	runCmd.Flags().String("title", "", "custom reference product title")
	runCmd.Flags().Float64("price", 0, "custom reference product price")
	runCmd.Flags().Float64("rating", 0, "custom reference product rating")
	runCmd.Flags().Int("reviews", 0, "custom reference product review count")
	runCmd.Flags().String("category", "", "custom reference product category")
	runCmd.Flags().Bool("json", false, "print the full execution as JSON")
	rootCmd.AddCommand(runCmd)
}

// resolveReference builds the reference product from flags: a custom product
// when --title is given, otherwise a built-in catalog entry.
func resolveReference(cmd *cobra.Command) (model.Product, error) {
	title, _ := cmd.Flags().GetString("title")
	if title != "" {
		price, _ := cmd.Flags().GetFloat64("price")
		rating, _ := cmd.Flags().GetFloat64("rating")
		reviews, _ := cmd.Flags().GetInt("reviews")
		category, _ := cmd.Flags().GetString("category")
		return model.Product{
			ASIN:     "CUSTOM",
			Title:    title,
			Price:    price,
			Rating:   rating,
			Reviews:  reviews,
			Category: category,
		}, nil
	}

	asin, _ := cmd.Flags().GetString("asin")
	if asin == "" {
		return catalog.ReferenceProducts()[0], nil
	}
	return catalog.FindReference(asin)
}

// formatExecution writes a human-readable trace summary.
func formatExecution(out io.Writer, exec *model.Execution) {
	fmt.Fprintf(out, "Execution %s (%s, %dms)\n", exec.ID, exec.Status, exec.DurationMs)
	fmt.Fprintf(out, "Reference: %s ($%.2f)\n\n", exec.ReferenceProduct.Title, exec.ReferenceProduct.Price)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tDURATION\tREASONING")
	for _, step := range exec.Steps {
		fmt.Fprintf(w, "%s\t%dms\t%s\n", step.Kind, step.DurationMs, step.Reasoning)
	}
	w.Flush()

	fmt.Fprintln(out)
	if exec.FinalOutput != nil {
		fmt.Fprintf(out, "Winner: %s ($%.2f, %.1f★, %d reviews)\n",
			exec.FinalOutput.Title, exec.FinalOutput.Price,
			exec.FinalOutput.Rating, exec.FinalOutput.Reviews)
	} else {
		fmt.Fprintln(out, "No competitor selected: no candidates passed all filters.")
	}
}
