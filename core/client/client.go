package client

import (
	"context"
	"fmt"
	"time"

	"github.com/LeoooDias/msgModel/config"
	"github.com/LeoooDias/msgModel/core/files"
	"github.com/LeoooDias/msgModel/providers/ai"
	"github.com/LeoooDias/msgModel/providers/ai/gemini"
	"github.com/LeoooDias/msgModel/providers/ai/openai"
)

// providerDefaults holds the per-provider settings applied when a call
// does not override them.
type providerDefaults struct {
	model      string
	generation *ai.GenerationConfig
}

// Client routes calls to the provider selected by name. Adding a backend
// means registering another ai.Provider implementation under a new name —
// the dispatch logic never changes.
type Client struct {
	providers      map[string]ai.Provider
	defaults       map[string]providerDefaults
	defaultTimeout time.Duration
}

// New creates an empty client. Providers are added with Register;
// NewFromConfig wires the built-in backends from a config.Config.
func New() *Client {
	return &Client{
		providers: map[string]ai.Provider{},
		defaults:  map[string]providerDefaults{},
	}
}

// NewFromConfig creates a client with the built-in providers ("openai",
// "gemini") configured from cfg.
func NewFromConfig(cfg *config.Config) *Client {
	c := New()
	c.defaultTimeout = time.Duration(cfg.StreamTimeoutSeconds) * time.Second

	c.RegisterWithDefaults("openai",
		openai.New().WithAPIKey(cfg.OpenAI.APIKey).WithBaseURL(cfg.OpenAI.BaseURL),
		cfg.OpenAI.Model,
		&ai.GenerationConfig{
			MaxTokens:   cfg.OpenAI.MaxTokens,
			Temperature: cfg.OpenAI.Temperature,
			TopP:        cfg.OpenAI.TopP,
		},
	)
	c.RegisterWithDefaults("gemini",
		gemini.New().WithAPIKey(cfg.Gemini.APIKey).WithBaseURL(cfg.Gemini.BaseURL),
		cfg.Gemini.Model,
		&ai.GenerationConfig{
			MaxTokens:   cfg.Gemini.MaxTokens,
			Temperature: cfg.Gemini.Temperature,
			TopP:        cfg.Gemini.TopP,
		},
	)

	return c
}

// Register adds a provider under the given name, replacing any previous
// registration.
func (c *Client) Register(name string, provider ai.Provider) {
	c.providers[name] = provider
}

// RegisterWithDefaults adds a provider together with the model and
// generation settings applied when a call does not override them.
func (c *Client) RegisterWithDefaults(name string, provider ai.Provider, model string, generation *ai.GenerationConfig) {
	c.providers[name] = provider
	c.defaults[name] = providerDefaults{model: model, generation: generation}
}

// Query sends a single non-streaming request to the named provider.
func (c *Client) Query(ctx context.Context, providerName, prompt string, opts ...RequestOption) (*ai.Response, error) {
	provider, _, request, err := c.prepare(providerName, prompt, opts)
	if err != nil {
		return nil, err
	}

	return provider.Query(ctx, *request)
}

// Stream sends a streaming request to the named provider and returns the
// pipeline-wrapped stream: idle timeout enforced, per-chunk callback
// honored, transport closed on every exit path. The caller must consume
// the returned stream (see ai.Stream).
func (c *Client) Stream(ctx context.Context, providerName, prompt string, opts ...RequestOption) (*ai.Stream, error) {
	provider, options, request, err := c.prepare(providerName, prompt, opts)
	if err != nil {
		return nil, err
	}

	timeout := c.defaultTimeout
	if options.timeoutSet {
		timeout = options.timeout
	}

	// The derived context is the pipeline's handle on the transport:
	// cancelling it closes the provider's HTTP response body.
	streamCtx, cancel := context.WithCancel(ctx)

	source, err := provider.Stream(streamCtx, *request)
	if err != nil {
		cancel()
		return nil, err
	}

	return pipeline(cancel, source, timeout, options.onChunk), nil
}

// prepare resolves the provider, applies options and per-provider
// defaults, and builds the immutable ai.Request for the call.
func (c *Client) prepare(providerName, prompt string, opts []RequestOption) (ai.Provider, *requestOptions, *ai.Request, error) {
	provider, found := c.providers[providerName]
	if !found {
		return nil, nil, nil, &ai.ConfigurationError{Reason: fmt.Sprintf("unknown provider %q", providerName)}
	}

	options := &requestOptions{}
	for _, opt := range opts {
		opt(options)
	}

	request := &ai.Request{
		Prompt:            prompt,
		SystemInstruction: options.systemInstruction,
		Model:             options.model,
		GenerationConfig:  options.generation,
	}

	if defaults, ok := c.defaults[providerName]; ok {
		if request.Model == "" {
			request.Model = defaults.model
		}
		if request.GenerationConfig == nil {
			request.GenerationConfig = defaults.generation
		}
	}

	attachment, err := resolveAttachment(options)
	if err != nil {
		return nil, nil, nil, err
	}
	request.File = attachment

	return provider, options, request, nil
}

// resolveAttachment builds the file descriptor from whichever single file
// source the caller supplied. Supplying more than one source is a
// configuration error — the path/bytes exclusivity is a caller-facing
// contract, not something to reconcile silently.
func resolveAttachment(options *requestOptions) (*ai.FileDescriptor, error) {
	sources := 0
	if options.filePath != "" {
		sources++
	}
	if options.fileSet {
		sources++
	}
	if options.attachment != nil {
		sources++
	}
	if sources > 1 {
		return nil, &ai.ConfigurationError{Reason: "more than one file source supplied (path, bytes, and attachment are mutually exclusive)"}
	}

	switch {
	case options.filePath != "":
		return files.FromPath(options.filePath)
	case options.fileSet:
		return files.FromBytes(options.fileBytes, options.filename, options.nameHint)
	case options.attachment != nil:
		return options.attachment, nil
	}
	return nil, nil
}
