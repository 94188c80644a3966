package ai

import (
	"context"
	"net/http"
)

// Provider is the interface every backend implementation must satisfy.
// It covers the full lifecycle of a single request: authentication,
// payload construction, dispatch, and response interpretation.
type Provider interface {
	// Query sends a request and blocks until the complete response has
	// been received. Connection-level failures are reported as a
	// *TransportError; a non-2xx status from the backend is reported as
	// an *APIError carrying the status code and raw body.
	Query(ctx context.Context, request Request) (*Response, error)

	// Stream sends a request with streaming enabled and returns a Stream
	// that yields text fragments as they arrive. Pre-stream errors (auth,
	// bad request, network) are returned as a normal error; mid-stream
	// errors are yielded through the iterator.
	Stream(ctx context.Context, request Request) (*Stream, error)

	// WithAPIKey sets the API key used for authenticating requests.
	WithAPIKey(apiKey string) Provider

	// WithBaseURL overrides the default base URL for API requests.
	WithBaseURL(baseURL string) Provider

	// WithHttpClient sets the HTTP client used for outbound requests.
	WithHttpClient(httpClient *http.Client) Provider
}
