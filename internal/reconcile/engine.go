package reconcile

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"pricewatch/internal/catalog"
	"pricewatch/internal/config"
	"pricewatch/internal/images"
	"pricewatch/internal/ingest"
	"pricewatch/internal/logging"
	"pricewatch/internal/pricing"
	"pricewatch/internal/unmatched"
)

// imagePlaceholder is the value scrapers emit when a listing has no image.
const imagePlaceholder = "N/A"

// Summary reports the per-store outcome of one reconciliation run.
type Summary struct {
	Store      string
	Raw        int
	Dropped    int
	Matched    int
	Unmatched  int
	OutOfStock int
}

// Engine runs one reconciliation cycle: ingest raw snapshots, match them to
// canonical specification records, collapse duplicates to minimum-price
// winners, persist pricing and history, reconcile stock status, and trigger
// image backfill. Persistence is per-product best-effort; a failed product
// is logged and the batch continues.
type Engine struct {
	cfg       *config.Config
	catalog   *catalog.Store
	pricing   *pricing.Store
	pipeline  *images.Pipeline
	unmatched *unmatched.Log
	logger    *slog.Logger
	now       func() time.Time
}

// New wires a reconciliation engine. The image pipeline may be nil to skip
// backfill entirely.
func New(cfg *config.Config, cat *catalog.Store, prices *pricing.Store, pipeline *images.Pipeline, log *unmatched.Log, logger *slog.Logger) *Engine {
	return &Engine{
		cfg:       cfg,
		catalog:   cat,
		pricing:   prices,
		pipeline:  pipeline,
		unmatched: log,
		logger:    logging.NewComponentLogger(logger, "reconcile"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run executes one full reconciliation cycle over the input tree and returns
// per-store summaries ordered by store name.
func (e *Engine) Run(ctx context.Context) ([]Summary, error) {
	start := e.now()
	if err := e.unmatched.Reset(start); err != nil {
		return nil, err
	}

	batches, err := ingest.LoadBatches(e.cfg.Paths.InputDir, e.logger)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(batches))
	for name := range batches {
		names = append(names, name)
	}
	sort.Strings(names)

	summaries := make([]Summary, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return summaries, err
		}
		summary := e.reconcileStore(ctx, name, batches[name])
		summaries = append(summaries, summary)
	}

	e.logger.Info("run completed",
		logging.Int("stores", len(summaries)),
		logging.Duration("elapsed", e.now().Sub(start)))
	return summaries, nil
}

func (e *Engine) reconcileStore(ctx context.Context, name string, batch []ingest.RawObservation) Summary {
	summary := Summary{Store: name, Raw: len(batch)}
	log := e.logger.With(logging.String(logging.FieldStore, name))
	log.Info("reconciling store", logging.Int("raw", len(batch)))

	storeRecord, err := e.pricing.GetOrCreateStore(ctx, name)
	if err != nil {
		log.Error("resolve store row failed, skipping batch", logging.Error(err))
		return summary
	}

	resolver, unmatchedBuffer := e.resolveBatch(ctx, log, batch, &summary)
	summary.Matched = resolver.Len()

	if err := e.unmatched.Append(unmatchedBuffer); err != nil {
		log.Warn("flush unmatched buffer failed", logging.Error(err))
	}

	e.persistWinners(ctx, log, storeRecord.ID, resolver.Winners())
	summary.OutOfStock = e.closeStock(ctx, log, storeRecord.ID, resolver.SpecIDs())

	if err := e.pricing.TouchStore(ctx, storeRecord.ID, e.now()); err != nil {
		log.Warn("update store timestamp failed", logging.Error(err))
	}

	log.Info("store reconciled",
		logging.Int("matched", summary.Matched),
		logging.Int("unmatched", summary.Unmatched),
		logging.Int("dropped", summary.Dropped),
		logging.Int("out_of_stock", summary.OutOfStock))
	return summary
}

// resolveBatch interleaves specification matching with the dedup fold, and
// buffers unmatched-record lines for one batched write per store.
func (e *Engine) resolveBatch(ctx context.Context, log *slog.Logger, batch []ingest.RawObservation, summary *Summary) (*Resolver, []string) {
	resolver := NewResolver()
	var buffer []string

	for _, obs := range batch {
		if strings.TrimSpace(obs.Category) == "" || obs.PartNumber.IsZero() || obs.Price.IsZero() {
			summary.Dropped++
			continue
		}

		tables, known := catalog.TablesFor(obs.Category)
		if !known {
			summary.Dropped++
			log.Debug("unknown category",
				logging.String("category", obs.Category),
				logging.String(logging.FieldSource, obs.SourceFile))
			continue
		}

		ref, err := e.catalog.FindSpec(ctx, tables, obs.PartNumber.Candidates())
		if err != nil {
			summary.Dropped++
			log.Warn("spec lookup failed", logging.Error(err))
			continue
		}
		if ref == nil {
			summary.Unmatched++
			buffer = append(buffer, unmatched.Entry(obs.SourceFile, obs.URL, obs.Category, obs.PartNumber.String()))
			continue
		}

		price, err := ingest.ParsePrice(obs.Price.String())
		if err != nil {
			summary.Dropped++
			log.Debug("unparseable price",
				logging.String("price", obs.Price.String()),
				logging.String(logging.FieldSource, obs.SourceFile))
			continue
		}

		resolver.Observe(Winner{
			SpecID:    ref.ID,
			SpecTable: ref.Table,
			Price:     price,
			URL:       obs.URL,
			ImageURL:  obs.ImageURL,
		})
	}
	return resolver, buffer
}

// persistWinners upserts current pricing and appends history for each
// resolved product. A failure on one product never aborts the rest, and the
// history insert is skipped when the upsert fails so the two stay paired.
func (e *Engine) persistWinners(ctx context.Context, log *slog.Logger, storeID string, winners []Winner) {
	for _, winner := range winners {
		now := e.now()
		err := e.pricing.UpsertPricing(ctx, pricing.PricingRow{
			SpecID:      winner.SpecID,
			SpecTable:   winner.SpecTable,
			StoreID:     storeID,
			Price:       winner.Price,
			InStock:     true,
			URL:         winner.URL,
			LastUpdated: now,
		})
		if err != nil {
			log.Error("pricing upsert failed",
				logging.String(logging.FieldSpecID, winner.SpecID),
				logging.Error(err))
			continue
		}

		err = e.pricing.InsertHistory(ctx, pricing.HistoryEntry{
			SpecID:     winner.SpecID,
			SpecTable:  winner.SpecTable,
			StoreID:    storeID,
			Price:      winner.Price,
			RecordedAt: now,
		})
		if err != nil {
			log.Error("history insert failed",
				logging.String(logging.FieldSpecID, winner.SpecID),
				logging.Error(err))
		}

		e.maybeBackfillImage(ctx, log, winner)
	}
}

// maybeBackfillImage hands a winner to the image pipeline when it carries a
// usable source URL. Backfill runs only after pricing for the product is
// persisted and its failure is never more than a log line.
func (e *Engine) maybeBackfillImage(ctx context.Context, log *slog.Logger, winner Winner) {
	if e.pipeline == nil {
		return
	}
	source := strings.TrimSpace(winner.ImageURL)
	if source == "" || source == imagePlaceholder {
		return
	}
	if err := e.pipeline.Backfill(ctx, winner.SpecTable, winner.SpecID, source); err != nil {
		log.Warn("image backfill failed",
			logging.String(logging.FieldSpecID, winner.SpecID),
			logging.Error(err))
	}
}

// closeStock flips products that were in stock before this run but absent
// from the matched set, and returns how many were flipped.
func (e *Engine) closeStock(ctx context.Context, log *slog.Logger, storeID string, matched map[string]struct{}) int {
	active, err := e.pricing.ActiveSpecIDs(ctx, storeID)
	if err != nil {
		log.Error("query active products failed", logging.Error(err))
		return 0
	}

	var missing []string
	for specID := range active {
		if _, ok := matched[specID]; !ok {
			missing = append(missing, specID)
		}
	}
	if len(missing) == 0 {
		return 0
	}
	sort.Strings(missing)

	if err := e.pricing.MarkOutOfStock(ctx, storeID, missing, e.now()); err != nil {
		log.Error("mark out of stock failed", logging.Error(err))
		return 0
	}
	return len(missing)
}
