package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/shopintel/competitor-xray/internal/catalog"
	"github.com/shopintel/competitor-xray/internal/model"
)

var batchConcurrency int

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run the pipeline for every built-in reference product",
	Long:  "Runs the pipeline concurrently for each built-in reference product, then prints the recorded execution history.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initPipeline()
		if err != nil {
			return err
		}
		defer env.Close()

		refs := catalog.ReferenceProducts()
		if err := processBatch(ctx, refs, batchConcurrency, func(ctx context.Context, ref model.Product) (*model.Execution, error) {
			return env.Pipeline.Run(ctx, ref, nil)
		}); err != nil {
			return err
		}

		execs, err := env.Store.List(ctx)
		if err != nil {
			return eris.Wrap(err, "batch: list executions")
		}
		if len(execs) == 0 {
			fmt.Fprintln(os.Stderr, "No executions recorded.")
			return nil
		}
		formatExecutionsList(os.Stdout, execs)
		return nil
	},
}

func init() {
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 3, "max concurrent pipeline runs")
	rootCmd.AddCommand(batchCmd)
}

// runFunc is the callback signature for running the pipeline on one reference.
type runFunc func(ctx context.Context, ref model.Product) (*model.Execution, error)

// processBatch runs the references concurrently. Individual run failures are
// logged and counted but do not abort the batch.
func processBatch(ctx context.Context, refs []model.Product, concurrency int, run runFunc) error {
	if len(refs) == 0 {
		zap.L().Info("no reference products to process")
		return nil
	}

	zap.L().Info("processing batch",
		zap.Int("references", len(refs)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for _, ref := range refs {
		ref := ref
		g.Go(func() error {
			log := zap.L().With(zap.String("asin", ref.ASIN), zap.String("title", ref.Title))

			exec, err := run(gctx, ref)
			if err != nil {
				failed.Add(1)
				log.Error("pipeline run failed", zap.Error(err))
				return nil // don't abort batch on individual failure
			}

			succeeded.Add(1)
			log.Info("pipeline run complete",
				zap.String("execution_id", exec.ID),
				zap.Bool("winner_found", exec.FinalOutput != nil),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "batch processing")
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return nil
}
