package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalTextSortsKeys(t *testing.T) {
	record := RawRecord(`{"zeta": 1, "alpha": {"nested_b": true, "nested_a": "x"}, "mid": [3, 1, 2]}`)

	text, err := record.CanonicalText()
	require.NoError(t, err)

	assert.Equal(t, `{"alpha":{"nested_a":"x","nested_b":true},"mid":[3,1,2],"zeta":1}`, text)
}

func TestCanonicalTextIsDeterministic(t *testing.T) {
	record := RawRecord(`{"name": "Leanne Graham", "id": 1, "address": {"city": "Gwenborough", "zipcode": "92998-3874"}}`)

	first, err := record.CanonicalText()
	require.NoError(t, err)
	second, err := record.CanonicalText()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCanonicalTextKeepsHTMLCharacters(t *testing.T) {
	record := RawRecord(`{"note": "a < b && c > d"}`)

	text, err := record.CanonicalText()
	require.NoError(t, err)

	assert.Equal(t, `{"note":"a < b && c > d"}`, text)
}

func TestCanonicalTextRejectsInvalidJSON(t *testing.T) {
	record := RawRecord(`{"broken":`)

	_, err := record.CanonicalText()
	assert.Error(t, err)
}

func TestPipelineReportJSONShape(t *testing.T) {
	report := PipelineReport{
		Items:            []ReportItem{},
		NotificationSent: false,
		ProcessedAt:      "2026-08-25T10:00:00.000000Z",
		Errors:           []string{},
	}

	body, err := json.Marshal(report)
	require.NoError(t, err)

	assert.Equal(t,
		`{"items":[],"notificationSent":false,"processedAt":"2026-08-25T10:00:00.000000Z","errors":[]}`,
		string(body))
}

func TestReportItemJSONShape(t *testing.T) {
	item := ReportItem{
		Original:  `{"id":1}`,
		Analysis:  "A short summary.",
		Sentiment: "objective",
		Stored:    true,
		Timestamp: "2026-08-25T10:00:00.000001Z",
	}

	body, err := json.Marshal(item)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"original": "{\"id\":1}",
		"analysis": "A short summary.",
		"sentiment": "objective",
		"stored": true,
		"timestamp": "2026-08-25T10:00:00.000001Z"
	}`, string(body))
}

func TestUTCTimestamp(t *testing.T) {
	moment := time.Date(2026, time.August, 25, 9, 30, 15, 123456000, time.UTC)

	assert.Equal(t, "2026-08-25T09:30:15.123456Z", UTCTimestamp(moment))
}

func TestUTCTimestampConvertsZones(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*60*60)
	moment := time.Date(2026, time.August, 25, 11, 30, 15, 0, zone)

	assert.Equal(t, "2026-08-25T09:30:15.000000Z", UTCTimestamp(moment))
}
