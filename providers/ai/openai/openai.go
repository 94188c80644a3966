// Package openai implements the ai.Provider interface for the OpenAI
// Chat Completions API, including SSE streaming.
//
// Zero Data Retention is enforced: the X-OpenAI-No-Store header is sent
// with every request and cannot be disabled. File uploads are inlined
// (base64 in the prompt payload) — there is no Files API usage, which
// keeps operation stateless and the data in memory.
package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/LeoooDias/msgModel/internal/utils"
	"github.com/LeoooDias/msgModel/providers/ai"
)

const (
	defaultBaseURL          = "https://api.openai.com/v1"
	chatCompletionsEndpoint = "/chat/completions"
	defaultModel            = "gpt-4o-mini"
)

// zdrHeader opts every request into Zero Data Retention. Not configurable.
var zdrHeader = utils.HeaderOption{Key: "X-OpenAI-No-Store", Value: "true"}

// OpenAIProvider implements the ai.Provider interface for the OpenAI API.
type OpenAIProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New creates an OpenAI provider with defaults from the environment.
// Environment variables:
//   - OPENAI_API_KEY: API key for authentication
//   - OPENAI_API_BASE_URL: base URL override (optional)
func New() *OpenAIProvider {
	apiKey := os.Getenv("OPENAI_API_KEY")
	baseURL := os.Getenv("OPENAI_API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &OpenAIProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// WithAPIKey sets the API key for the provider.
func (provider *OpenAIProvider) WithAPIKey(apiKey string) ai.Provider {
	provider.apiKey = apiKey
	return provider
}

// WithBaseURL sets the base URL for the API.
func (provider *OpenAIProvider) WithBaseURL(baseURL string) ai.Provider {
	provider.baseURL = baseURL
	return provider
}

// WithHttpClient sets a custom HTTP client.
func (provider *OpenAIProvider) WithHttpClient(httpClient *http.Client) ai.Provider {
	provider.client = httpClient
	return provider
}

// Query implements the ai.Provider interface. It sends a non-streaming
// chat completions request and returns the raw response together with the
// extracted text.
func (provider *OpenAIProvider) Query(ctx context.Context, request ai.Request) (*ai.Response, error) {
	if provider.apiKey == "" {
		return nil, &ai.ConfigurationError{Reason: "OPENAI_API_KEY is not set"}
	}

	payload := buildPayload(request, false)

	raw, _, err := utils.DoPostSync[json.RawMessage](
		ctx,
		provider.client,
		provider.baseURL+chatCompletionsEndpoint,
		provider.apiKey,
		payload,
		zdrHeader,
	)
	if err != nil {
		return nil, err
	}

	return &ai.Response{Raw: raw, Text: extractText(raw)}, nil
}

// extractText pulls the first non-empty message content out of a raw chat
// completions response ({"choices":[{"message":{"content":"..."}}]}).
// Absent, null, or non-string content yields "" — never an error, since
// the rest of the response may still matter to the caller.
func extractText(raw []byte) string {
	var response struct {
		Choices []struct {
			Message struct {
				Content json.RawMessage `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &response); err != nil {
		return ""
	}

	for _, choice := range response.Choices {
		var text string
		if err := json.Unmarshal(choice.Message.Content, &text); err == nil && text != "" {
			return text
		}
	}
	return ""
}
