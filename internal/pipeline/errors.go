package pipeline

import "errors"

// Construction errors. Every collaborator is required; there are no
// default fallbacks except the logger.
var (
	ErrNilFetcher  = errors.New("pipeline: fetcher is required")
	ErrNilEnricher = errors.New("pipeline: enricher is required")
	ErrNilStore    = errors.New("pipeline: store is required")
	ErrNilNotifier = errors.New("pipeline: notifier is required")
)
