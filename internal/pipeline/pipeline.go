// Package pipeline sequences the four stages of a run: fetch, enrich,
// store, notify. Records fail independently; only a fetch failure aborts
// the whole run, because without source data there is nothing to process.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/solentra/enrichflow/internal/db"
	"github.com/solentra/enrichflow/internal/enrichment"
	"github.com/solentra/enrichflow/internal/models"
	"github.com/solentra/enrichflow/internal/notify"
)

// Fetcher retrieves the record batch that seeds a run.
type Fetcher interface {
	FetchRecords(ctx context.Context) ([]models.RawRecord, error)
}

// Deps carries the four stage collaborators plus an optional logger.
type Deps struct {
	Fetcher  Fetcher
	Enricher enrichment.Enricher
	Store    db.ResultStore
	Notifier notify.Notifier
	Logger   *slog.Logger
}

// Pipeline runs the fetch -> enrich -> store -> notify sequence for one
// request and assembles the report.
type Pipeline struct {
	fetcher  Fetcher
	enricher enrichment.Enricher
	store    db.ResultStore
	notifier notify.Notifier
	logger   *slog.Logger
}

func New(deps Deps) (*Pipeline, error) {
	if deps.Fetcher == nil {
		return nil, ErrNilFetcher
	}
	if deps.Enricher == nil {
		return nil, ErrNilEnricher
	}
	if deps.Store == nil {
		return nil, ErrNilStore
	}
	if deps.Notifier == nil {
		return nil, ErrNilNotifier
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Pipeline{
		fetcher:  deps.Fetcher,
		enricher: deps.Enricher,
		store:    deps.Store,
		notifier: deps.Notifier,
		logger:   logger,
	}, nil
}

// Run executes one request. It always returns a report: per-record
// failures land in the report's errors in fetch order, and the caller
// never sees a raw error surface.
func (p *Pipeline) Run(ctx context.Context, req models.PipelineRequest) models.PipelineReport {
	runID := uuid.NewString()
	logger := p.logger.With(slog.String("runID", runID), slog.String("source", req.Source))
	logger.Debug("[Pipeline] Run requested", slog.String("email", req.Email))

	start := time.Now()

	records, err := p.fetcher.FetchRecords(ctx)
	if err != nil {
		logger.Error("[Pipeline] Fetch failed, aborting run", slog.String("error", err.Error()))
		return models.PipelineReport{
			Items:            []models.ReportItem{},
			NotificationSent: false,
			ProcessedAt:      models.UTCTimestamp(time.Now()),
			Errors:           []string{fmt.Sprintf("API Fetch Error: %v", err)},
		}
	}

	items := make([]models.ReportItem, 0, len(records))
	errs := make([]string, 0)

	for i, record := range records {
		item, failure := p.processRecord(ctx, record, req.Source)
		if failure != "" {
			logger.Warn("[Pipeline] Record failed",
				slog.Int("record", i),
				slog.String("error", failure))
			errs = append(errs, failure)
			continue
		}
		items = append(items, item)
	}

	notificationSent := true
	if err := p.notifier.Notify(ctx); err != nil {
		logger.Error("[Pipeline] Notification failed", slog.String("error", err.Error()))
		notificationSent = false
		errs = append(errs, err.Error())
	}

	logger.Info("[Pipeline] Run complete",
		slog.Int("items", len(items)),
		slog.Int("errors", len(errs)),
		slog.Duration("took", time.Since(start)))

	return models.PipelineReport{
		Items:            items,
		NotificationSent: notificationSent,
		ProcessedAt:      models.UTCTimestamp(time.Now()),
		Errors:           errs,
	}
}

// processRecord runs the per-record stages. A non-empty failure string is
// the report-ready error message. Panics surface as processing failures so
// one bad record cannot take down the run.
func (p *Pipeline) processRecord(ctx context.Context, record models.RawRecord, source string) (item models.ReportItem, failure string) {
	defer func() {
		if r := recover(); r != nil {
			item = models.ReportItem{}
			failure = fmt.Sprintf("Processing Error: %v", r)
		}
	}()

	text, err := record.CanonicalText()
	if err != nil {
		return models.ReportItem{}, fmt.Sprintf("Processing Error: %v", err)
	}

	analysis, err := p.enricher.Enrich(ctx, text)
	if err != nil {
		return models.ReportItem{}, fmt.Sprintf("AI Error: %v", err)
	}

	timestamp, err := p.store.Insert(ctx, models.EnrichedRecord{
		Original:  text,
		Analysis:  analysis.Summary,
		Sentiment: analysis.Sentiment,
		Source:    source,
	})
	if err != nil {
		return models.ReportItem{}, fmt.Sprintf("Storage Error: %v", err)
	}

	return models.ReportItem{
		Original:  text,
		Analysis:  analysis.Summary,
		Sentiment: analysis.Sentiment,
		Stored:    true,
		Timestamp: timestamp,
	}, ""
}
