package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/LeoooDias/msgModel/providers/ai"
)

// HeaderOption is a custom header applied to an outbound request. Adapters
// use it for provider-specific authentication (x-goog-api-key) and policy
// headers (X-OpenAI-No-Store).
type HeaderOption struct {
	Key   string
	Value string
}

// CloseWithLog closes the given closer, logging a failure instead of
// returning it. Used in defers where a close error must not override the
// primary error path.
func CloseWithLog(closer io.Closer) {
	if err := closer.Close(); err != nil {
		slog.Warn("failed to close response body", "error", err)
	}
}

// DoPostSync performs a synchronous HTTP POST with a JSON body and decodes
// the response into OutputStruct. The raw response body is returned
// alongside the decoded value so callers can expose it verbatim.
//
// Error classification:
//   - request construction / marshal failures return a plain error
//   - failures before any response (connection refused, DNS, TLS) return
//     an *ai.TransportError
//   - a non-2xx status returns an *ai.APIError carrying the status code
//     and the raw error body, never reformatted
//
// The response body is always closed before returning.
func DoPostSync[OutputStruct any](ctx context.Context, client *http.Client, url string, apiKey string, body any, headers ...HeaderOption) ([]byte, *OutputStruct, error) {
	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("error marshaling body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	for _, header := range headers {
		req.Header.Set(header.Key, header.Value)
	}

	res, err := httpClient.Do(req)
	if err != nil {
		return nil, nil, &ai.TransportError{Err: err}
	}
	defer CloseWithLog(res.Body)

	respBody, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBodySize))
	if err != nil {
		// A connection dropped while reading a synchronous body is still a
		// transport failure; stream errors are reserved for SSE delivery.
		return nil, nil, &ai.TransportError{Err: fmt.Errorf("reading response body: %w", err)}
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return respBody, nil, &ai.APIError{StatusCode: res.StatusCode, Body: string(respBody)}
	}

	var resStruct OutputStruct
	if err = json.Unmarshal(respBody, &resStruct); err != nil {
		return respBody, nil, fmt.Errorf("error unmarshaling response body (status %d): %w\nResponse preview: %s", res.StatusCode, err, TruncateString(string(respBody), 500))
	}

	return respBody, &resStruct, nil
}
