// Package gemini implements the ai.Provider interface for Google's Gemini
// API (generateContent / streamGenerateContent). Attachments travel as
// inline_data parts: Gemini consumes PDFs, images, and audio natively as
// long as the MIME type is specific — application/octet-stream is rejected
// by the API, which is why MIME resolution upstream matters.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/LeoooDias/msgModel/internal/utils"
	"github.com/LeoooDias/msgModel/providers/ai"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.0-flash"
)

// GeminiProvider implements the ai.Provider interface for the Gemini API.
type GeminiProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New creates a Gemini provider with defaults from the environment.
// Environment variables:
//   - GEMINI_API_KEY: API key for authentication
//   - GEMINI_API_BASE_URL: base URL override (optional)
func New() *GeminiProvider {
	apiKey := os.Getenv("GEMINI_API_KEY")
	baseURL := os.Getenv("GEMINI_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &GeminiProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// WithAPIKey sets the API key for the provider.
func (provider *GeminiProvider) WithAPIKey(apiKey string) ai.Provider {
	provider.apiKey = apiKey
	return provider
}

// WithBaseURL sets the base URL for the API.
func (provider *GeminiProvider) WithBaseURL(baseURL string) ai.Provider {
	provider.baseURL = baseURL
	return provider
}

// WithHttpClient sets a custom HTTP client.
func (provider *GeminiProvider) WithHttpClient(httpClient *http.Client) ai.Provider {
	provider.client = httpClient
	return provider
}

// Query implements the ai.Provider interface. It sends a non-streaming
// generateContent request and returns the raw response together with the
// extracted text.
func (provider *GeminiProvider) Query(ctx context.Context, request ai.Request) (*ai.Response, error) {
	if provider.apiKey == "" {
		return nil, &ai.ConfigurationError{Reason: "GEMINI_API_KEY is not set"}
	}

	model := request.Model
	if model == "" {
		model = defaultModel
	}
	url := fmt.Sprintf("%s/models/%s:generateContent", provider.baseURL, model)

	raw, _, err := utils.DoPostSync[json.RawMessage](
		ctx,
		provider.client,
		url,
		"", // Gemini authenticates via its own header, not Bearer auth
		buildPayload(request),
		utils.HeaderOption{Key: "x-goog-api-key", Value: provider.apiKey},
	)
	if err != nil {
		return nil, err
	}

	return &ai.Response{Raw: raw, Text: extractText(raw)}, nil
}

// extractText pulls the text parts of the first candidate out of a raw
// generateContent response and joins them. Absent or malformed fields
// yield "".
func extractText(raw []byte) string {
	var response generateContentResponse
	if err := json.Unmarshal(raw, &response); err != nil {
		return ""
	}

	for _, candidate := range response.Candidates {
		if candidate.Content == nil {
			continue
		}
		var texts []string
		for _, candidatePart := range candidate.Content.Parts {
			if candidatePart.Text != "" {
				texts = append(texts, candidatePart.Text)
			}
		}
		if len(texts) > 0 {
			return strings.Join(texts, "\n")
		}
	}
	return ""
}
