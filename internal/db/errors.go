package db

import "fmt"

// StoreError wraps a persistence failure for one record. The pipeline
// records it against that record and keeps going.
type StoreError struct {
	Driver string
	Err    error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s insert failed: %v", e.Driver, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
