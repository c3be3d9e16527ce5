package clients

import "fmt"

// FetchError wraps any failure to retrieve the source batch: building or
// sending the request, a non-2xx status, or an undecodable payload. A
// fetch failure aborts the whole run, so there is exactly one per report.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
