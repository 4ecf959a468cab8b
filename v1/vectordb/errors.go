package vectordb

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is checks against the typed errors below.
var (
	ErrEmbedding = errors.New("embedding failed")
	ErrStore     = errors.New("store operation failed")
	ErrDecode    = errors.New("row decoding failed")
)

// EmbeddingError means the query text could not be turned into a vector.
// No store call has been made when it is returned.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("vectordb: %v: %v", ErrEmbedding, e.Err)
}

func (e *EmbeddingError) Unwrap() error        { return e.Err }
func (e *EmbeddingError) Is(target error) bool { return target == ErrEmbedding }

// StoreError means building or executing a query against the table failed.
type StoreError struct {
	// Op names the failed step, e.g. "schema", "vector search", "execute".
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("vectordb: %v during %s: %v", ErrStore, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error        { return e.Err }
func (e *StoreError) Is(target error) bool { return target == ErrStore }

// DecodeError means a returned row could not be decoded into the payload type.
type DecodeError struct {
	// Index is the position of the row in the result set.
	Index int
	// ID is the row identifier, when one was found.
	ID  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("vectordb: %v at row %d (id %q): %v", ErrDecode, e.Index, e.ID, e.Err)
}

func (e *DecodeError) Unwrap() error        { return e.Err }
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }
