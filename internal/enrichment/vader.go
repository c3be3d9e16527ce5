package enrichment

import (
	"context"
	"html"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/solentra/enrichflow/internal/models"
)

// VaderEnricher scores text with a local VADER lexicon instead of calling
// an external model. It keeps the pipeline runnable offline and without an
// API key; summaries are clipped from the input rather than written.
type VaderEnricher struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderEnricher() *VaderEnricher {
	return &VaderEnricher{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Compound score cutoffs mapping VADER polarity onto the report labels.
const (
	enthusiasticThreshold = 0.20
	criticalThreshold     = -0.20
)

func (e *VaderEnricher) Enrich(ctx context.Context, text string) (models.Analysis, error) {
	plainText := ConvertMarkdownToText(text)

	score := e.analyzer.PolarityScores(plainText).Compound

	label := SentimentObjective
	if score >= enthusiasticThreshold {
		label = SentimentEnthusiastic
	} else if score <= criticalThreshold {
		label = SentimentCritical
	}

	return models.Analysis{Summary: summarize(plainText), Sentiment: label}, nil
}

var (
	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]+>`)
)

// RemoveLinks strips markdown links (keeping the anchor text) and bare URLs.
func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1")

	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText renders markdown and flattens the result to a
// single line of plain text. The renderer escapes quotes and ampersands
// into HTML entities, so those are decoded back after the tags go.
func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plainText := tagPattern.ReplaceAllString(string(output), " ")
	plainText = html.UnescapeString(plainText)
	plainText = strings.Join(strings.Fields(plainText), " ")

	return RemoveLinks(plainText)
}

const (
	maxSummarySentences = 2
	maxSummaryRunes     = 280
)

// summarize clips the first two sentences, approximating the length of a
// model-written summary.
func summarize(text string) string {
	sentences := strings.SplitAfter(text, ". ")
	if len(sentences) > maxSummarySentences {
		text = strings.Join(sentences[:maxSummarySentences], "")
	}

	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) > maxSummaryRunes {
		text = string(runes[:maxSummaryRunes]) + "..."
	}
	return text
}
