package enrichment

import (
	"strings"

	"github.com/solentra/enrichflow/internal/models"
)

// ParseAnalysis extracts the "Summary:" and "Sentiment:" lines from a
// model response. Prefixes match case-insensitively after trimming, and
// the last occurrence of each wins. Sentiment values are lowercased and
// stripped of trailing periods; a missing or blank sentiment falls back
// to "objective", and a missing summary stays empty. Formatting
// deviations never produce an error.
func ParseAnalysis(content string) models.Analysis {
	summary := ""
	sentiment := ""

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		lower := strings.ToLower(trimmed)

		if strings.HasPrefix(lower, "summary:") {
			summary = strings.TrimSpace(trimmed[len("summary:"):])
		}
		if strings.HasPrefix(lower, "sentiment:") {
			sentiment = normalizeSentiment(trimmed[len("sentiment:"):])
		}
	}

	if sentiment == "" {
		sentiment = SentimentObjective
	}

	return models.Analysis{Summary: summary, Sentiment: sentiment}
}

// normalizeSentiment lowercases a raw label and drops surrounding
// whitespace and trailing periods, so "Enthusiastic." and " ENTHUSIASTIC "
// both become "enthusiastic".
func normalizeSentiment(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimRight(s, ".")
	s = strings.TrimSpace(s)
	return strings.ToLower(s)
}
