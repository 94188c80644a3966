package openai

/*
	CHAT COMPLETIONS API - INPUT
*/

// chatCompletionRequest represents the /v1/chat/completions request format.
// MaxTokens and MaxCompletionTokens are mutually exclusive on the wire; the
// model classification in capabilities.go decides which one is populated.
type chatCompletionRequest struct {
	Model               string        `json:"model"`
	Messages            []chatMessage `json:"messages"`
	MaxTokens           *int          `json:"max_tokens,omitempty"`            // Legacy models only
	MaxCompletionTokens *int          `json:"max_completion_tokens,omitempty"` // gpt-4o and later
	Temperature         *float32      `json:"temperature,omitempty"`
	TopP                *float32      `json:"top_p,omitempty"`
	Stream              *bool         `json:"stream,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`    // system, user
	Content any    `json:"content"` // string or []contentPart for multimodal
}

// contentPart is one block of a multimodal user message.
type contentPart struct {
	Type     string            `json:"type"` // "text" or "image_url"
	Text     string            `json:"text,omitempty"`
	ImageURL *contentPartImage `json:"image_url,omitempty"`
}

type contentPartImage struct {
	URL string `json:"url"` // data URI for inline images
}

/*
	CHAT COMPLETIONS API - STREAMING OUTPUT
*/

// chatCompletionStreamChunk is one SSE record of a streaming response:
// {"choices":[{"delta":{"content":"..."},"finish_reason":null}]}.
type chatCompletionStreamChunk struct {
	Choices []streamChoice `json:"choices"`
}

type streamChoice struct {
	Delta        streamDelta `json:"delta"`
	FinishReason *string     `json:"finish_reason"`
}

type streamDelta struct {
	Content *string `json:"content"`
}
