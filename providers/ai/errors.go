package ai

import (
	"errors"
	"fmt"
	"time"
)

// ErrPayloadTooLarge is returned when an attachment exceeds the practical
// size ceiling for inline base64 transport. It is distinct from transport
// failures so callers can tell "your file is too big" from "the network
// broke".
var ErrPayloadTooLarge = errors.New("msgmodel: attachment exceeds maximum inline payload size")

// TransportError reports a connection-level failure before any response
// was received: connection refused, DNS failure, TLS failure. It never
// carries a status code — if the backend answered at all, the failure is
// an *APIError instead.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("msgmodel: transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError reports a non-2xx status from the backend. Body is the raw
// error body verbatim — never reformatted — so callers can branch on
// provider-specific error semantics.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("msgmodel: API error (status %d): %s", e.StatusCode, e.Body)
}

// StreamError reports an I/O failure in the middle of an established
// stream. Chunks already yielded remain valid. It is distinct from
// *TransportError, which applies only to the initial connection attempt.
type StreamError struct {
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("msgmodel: streaming interrupted: %v", e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }

// TimeoutError reports that no new data arrived within the configured idle
// timeout. Chunks already yielded remain valid and are not retracted.
type TimeoutError struct {
	Idle time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("msgmodel: stream idle timeout after %s", e.Idle)
}

// ConfigurationError reports a caller-side setup problem: an unknown
// provider name, a missing credential, or conflicting request options.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "msgmodel: configuration error: " + e.Reason
}
