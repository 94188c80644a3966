package ai

import "encoding/json"

/*
	##### PROVIDER INPUT #####
*/

// Request is the provider-neutral description of a single call. It is
// built once per call by the dispatcher and never mutated afterwards;
// nothing in a Request is shared across concurrent calls.
type Request struct {
	Prompt            string            `json:"prompt"`                       // User prompt, always appended last in the payload
	SystemInstruction string            `json:"system_instruction,omitempty"` // Optional system instruction
	File              *FileDescriptor   `json:"file,omitempty"`               // Optional attachment, already encoded
	Model             string            `json:"model,omitempty"`              // Model identifier; provider default when empty
	GenerationConfig  *GenerationConfig `json:"generation_config,omitempty"`  // Optional sampling parameters
}

// FileDescriptor is a provider-neutral in-memory attachment: base64 data
// paired with the resolved MIME type and a filename. MimeType is never
// empty (the resolver falls back to application/octet-stream). Descriptors
// are consumed by the adapter that receives them and never persisted.
type FileDescriptor struct {
	MimeType string `json:"mime_type"`
	Filename string `json:"filename"`
	Data     string `json:"data"` // base64-encoded content
}

// GenerationConfig holds the sampling parameters shared across backends.
type GenerationConfig struct {
	MaxTokens   int     `json:"max_tokens,omitempty"`  // Response token ceiling; wire name is model-dependent for OpenAI
	Temperature float32 `json:"temperature,omitempty"` // Sampling temperature [0..2]
	TopP        float32 `json:"top_p,omitempty"`       // Nucleus sampling [0..1]
}

/*
	##### PROVIDER OUTPUT #####
*/

// Response is the completed result of a non-streaming call. Raw holds the
// backend's response body verbatim; Text is the plain text extracted from
// it by the adapter's extraction rule. An absent or malformed content
// field yields Text == "" — never an error, since headers and metadata may
// still matter to the caller.
type Response struct {
	Raw  json.RawMessage `json:"raw"`
	Text string          `json:"text"`
}
