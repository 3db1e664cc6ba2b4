package quote

import (
	"context"
	"fmt"
	"time"
)

// Quote is one price snapshot. A new Quote replaces the previous one
// wholesale; fields are never updated in place.
type Quote struct {
	Price     float64
	Change24h float64

	// Change1h is nil when the endpoint omitted percent_change_1h.
	Change1h *float64

	// FetchedAt is when the data was received from the endpoint.
	FetchedAt time.Time

	// Stale marks a quote that is being shown after a failed refresh.
	Stale bool
}

// MarkStale returns a copy of q tagged as stale.
func (q Quote) MarkStale() Quote {
	q.Stale = true
	return q
}

// HasChange1h reports whether the 1h change was present in the response.
func (q Quote) HasChange1h() bool {
	return q.Change1h != nil
}

// Source produces quotes. Fetch blocks until the endpoint answers or ctx ends.
type Source interface {
	Fetch(ctx context.Context) (Quote, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(ctx context.Context) (Quote, error)

// Fetch calls f.
func (f SourceFunc) Fetch(ctx context.Context) (Quote, error) {
	return f(ctx)
}

// FetchError is a transport failure or a non-2xx response.
type FetchError struct {
	Endpoint   string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// DecodeError is a response body that is not a valid quote.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode quote: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// wireQuote mirrors the JSON body served by the endpoint.
// Pointers distinguish a missing field from a zero value.
type wireQuote struct {
	Price     *float64 `json:"price"`
	Change1h  *float64 `json:"percent_change_1h"`
	Change24h *float64 `json:"percent_change_24h"`
}
