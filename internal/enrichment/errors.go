package enrichment

import "fmt"

// EnrichError wraps a transport or service failure from the analysis
// backend. A malformed-but-present response body is not an error; it
// parses leniently instead.
type EnrichError struct {
	Provider string
	Err      error
}

func (e *EnrichError) Error() string {
	return fmt.Sprintf("%s enrichment failed: %v", e.Provider, e.Err)
}

func (e *EnrichError) Unwrap() error { return e.Err }
