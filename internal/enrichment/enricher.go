// Package enrichment turns a record's canonical text into a short summary
// and a sentiment label. The default backend asks an OpenAI chat model;
// a local VADER backend covers deployments without an API key, and an
// optional Valkey cache can sit in front of either.
package enrichment

import (
	"context"
	"fmt"

	"github.com/solentra/enrichflow/internal/models"
)

// The three sentiment labels the pipeline stores. Parsing falls back to
// SentimentObjective when a response carries no usable label.
const (
	SentimentEnthusiastic = "enthusiastic"
	SentimentCritical     = "critical"
	SentimentObjective    = "objective"
)

// Enricher produces an Analysis for one record's canonical text.
type Enricher interface {
	Enrich(ctx context.Context, text string) (models.Analysis, error)
}

const promptTemplate = `Analyze this data in 2 sentences and classify sentiment as enthusiastic, critical, or objective:
%s
Return format:
Summary: ...
Sentiment: ...`

// PromptFor returns the instruction sent to the model for text.
func PromptFor(text string) string {
	return fmt.Sprintf(promptTemplate, text)
}
