package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// PipelineRequest is the body of POST /pipeline. Email identifies the
// caller in logs only; Source tags every record stored during the run.
type PipelineRequest struct {
	Email  string `json:"email"`
	Source string `json:"source"`
}

// Analysis is the parsed output of one enrichment call.
type Analysis struct {
	Summary   string `json:"summary"`
	Sentiment string `json:"sentiment"`
}

// EnrichedRecord is a fully processed record ready for persistence. The
// storage timestamp is generated by the store at insert time, not here.
type EnrichedRecord struct {
	Original  string
	Analysis  string
	Sentiment string
	Source    string
}

// ReportItem is one successfully stored record as it appears in the
// response. Timestamp echoes the value the store generated for the row.
type ReportItem struct {
	Original  string `json:"original"`
	Analysis  string `json:"analysis"`
	Sentiment string `json:"sentiment"`
	Stored    bool   `json:"stored"`
	Timestamp string `json:"timestamp"`
}

// PipelineReport is the full response for one run. Items holds the stored
// subset in fetch order; Errors holds one message per failed stage, also
// in fetch order. Both are empty slices, never null, when nothing matched.
type PipelineReport struct {
	Items            []ReportItem `json:"items"`
	NotificationSent bool         `json:"notificationSent"`
	ProcessedAt      string       `json:"processedAt"`
	Errors           []string     `json:"errors"`
}

// RawRecord is one entity from the source provider, held as unparsed JSON
// until it is rendered for enrichment.
type RawRecord []byte

// CanonicalText renders the record as compact JSON with object keys sorted
// at every nesting level, so equal records always produce the same string.
// The result feeds the enrichment prompt and becomes the stored "original".
func (r RawRecord) CanonicalText() (string, error) {
	var value any
	if err := json.Unmarshal(r, &value); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return "", err
	}

	return strings.TrimSpace(buf.String()), nil
}

const timestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// UTCTimestamp formats t as ISO-8601 UTC with microsecond precision and a
// trailing "Z". Stored rows and report timestamps all use this format.
func UTCTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
