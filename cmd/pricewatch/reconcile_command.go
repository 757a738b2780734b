package main

import (
	"errors"
	"fmt"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"pricewatch/internal/catalog"
	"pricewatch/internal/config"
	"pricewatch/internal/images"
	"pricewatch/internal/logging"
	"pricewatch/internal/pricing"
	"pricewatch/internal/reconcile"
	"pricewatch/internal/unmatched"
)

func newReconcileCommand(ctx *commandContext) *cobra.Command {
	var skipImages bool

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Run one reconciliation cycle over the snapshot tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			lock := flock.New(cfg.LockPath())
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return errors.New("another reconciliation run is already in progress")
			}
			defer func() { _ = lock.Unlock() }()

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			cat, err := catalog.Open(cfg)
			if err != nil {
				return fmt.Errorf("open catalog database: %w", err)
			}
			defer cat.Close()

			prices, err := pricing.Open(cfg)
			if err != nil {
				return fmt.Errorf("open pricing database: %w", err)
			}
			defer prices.Close()

			var pipeline *images.Pipeline
			if cfg.Images.Enabled && !skipImages {
				blobs, err := newBlobStore(cfg)
				if err != nil {
					return err
				}
				pipeline = images.NewPipeline(cfg.Images, cat, blobs, logger)
			}

			engine := reconcile.New(cfg, cat, prices, pipeline, unmatched.New(cfg.Paths.UnmatchedLog), logger)
			summaries, err := engine.Run(runCtx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(summaries) == 0 {
				fmt.Fprintln(out, "No snapshots found.")
				return nil
			}
			fmt.Fprintln(out, renderSummaries(summaries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipImages, "skip-images", false, "Skip image backfill for this run")
	return cmd
}

func newBlobStore(cfg *config.Config) (images.BlobStore, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendS3:
		return images.NewS3Store(cfg.Storage)
	case config.StorageBackendDir:
		return images.NewDirStore(cfg.Storage.Dir, cfg.Storage.PublicBaseURL)
	default:
		return nil, fmt.Errorf("storage.backend: unsupported value %q", cfg.Storage.Backend)
	}
}

func renderSummaries(summaries []reconcile.Summary) string {
	rows := make([][]string, 0, len(summaries))
	var totals reconcile.Summary
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Store,
			strconv.Itoa(s.Raw),
			strconv.Itoa(s.Matched),
			strconv.Itoa(s.Unmatched),
			strconv.Itoa(s.Dropped),
			strconv.Itoa(s.OutOfStock),
		})
		totals.Raw += s.Raw
		totals.Matched += s.Matched
		totals.Unmatched += s.Unmatched
		totals.Dropped += s.Dropped
		totals.OutOfStock += s.OutOfStock
	}
	if len(summaries) > 1 {
		rows = append(rows, []string{
			"TOTAL",
			strconv.Itoa(totals.Raw),
			strconv.Itoa(totals.Matched),
			strconv.Itoa(totals.Unmatched),
			strconv.Itoa(totals.Dropped),
			strconv.Itoa(totals.OutOfStock),
		})
	}
	return renderTable(
		[]string{"Store", "Raw", "Matched", "Unmatched", "Dropped", "Out of Stock"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
	)
}
