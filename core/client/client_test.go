package client

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"testing"

	"github.com/LeoooDias/msgModel/providers/ai"
)

// fakeProvider records the last request it received and replies with
// canned data. The stub chunks are yielded one per call on Stream.
type fakeProvider struct {
	lastRequest *ai.Request
	queryText   string
	chunks      []string
	streamErr   error
}

func (f *fakeProvider) Query(ctx context.Context, request ai.Request) (*ai.Response, error) {
	f.lastRequest = &request
	return &ai.Response{Text: f.queryText}, nil
}

func (f *fakeProvider) Stream(ctx context.Context, request ai.Request) (*ai.Stream, error) {
	f.lastRequest = &request
	if f.streamErr != nil {
		return nil, f.streamErr
	}
	chunks := f.chunks
	return ai.NewStream(func(yield func(string, error) bool) {
		for _, chunk := range chunks {
			if ctx.Err() != nil {
				return
			}
			if !yield(chunk, nil) {
				return
			}
		}
	}), nil
}

func (f *fakeProvider) WithAPIKey(string) ai.Provider           { return f }
func (f *fakeProvider) WithBaseURL(string) ai.Provider          { return f }
func (f *fakeProvider) WithHttpClient(*http.Client) ai.Provider { return f }

// TestQuery_UnknownProvider verifies that dispatching to an unregistered
// name fails with *ai.ConfigurationError.
func TestQuery_UnknownProvider(t *testing.T) {
	c := New()

	_, err := c.Query(context.Background(), "nonexistent", "hi")

	var configErr *ai.ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected *ai.ConfigurationError, got %T: %v", err, err)
	}
}

// TestQuery_DispatchesByName verifies that each registered provider
// receives only its own calls.
func TestQuery_DispatchesByName(t *testing.T) {
	first := &fakeProvider{queryText: "from-first"}
	second := &fakeProvider{queryText: "from-second"}

	c := New()
	c.Register("first", first)
	c.Register("second", second)

	response, err := c.Query(context.Background(), "second", "hi")
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if response.Text != "from-second" {
		t.Errorf("expected response from second provider, got %q", response.Text)
	}
	if first.lastRequest != nil {
		t.Error("expected first provider to receive no calls")
	}
}

// TestQuery_AppliesRegisteredDefaults verifies that per-provider model and
// generation defaults fill in when the call does not override them.
func TestQuery_AppliesRegisteredDefaults(t *testing.T) {
	provider := &fakeProvider{}
	c := New()
	c.RegisterWithDefaults("fake", provider, "default-model", &ai.GenerationConfig{MaxTokens: 1024})

	if _, err := c.Query(context.Background(), "fake", "hi"); err != nil {
		t.Fatalf("Query returned error: %v", err)
	}

	if provider.lastRequest.Model != "default-model" {
		t.Errorf("expected default model, got %q", provider.lastRequest.Model)
	}
	if provider.lastRequest.GenerationConfig == nil || provider.lastRequest.GenerationConfig.MaxTokens != 1024 {
		t.Errorf("expected default generation config, got %+v", provider.lastRequest.GenerationConfig)
	}
}

// TestQuery_CallOptionsOverrideDefaults verifies that per-call options win
// over registered defaults.
func TestQuery_CallOptionsOverrideDefaults(t *testing.T) {
	provider := &fakeProvider{}
	c := New()
	c.RegisterWithDefaults("fake", provider, "default-model", nil)

	_, err := c.Query(context.Background(), "fake", "hi",
		WithModel("override-model"),
		WithSystemInstruction("be terse"),
	)
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}

	if provider.lastRequest.Model != "override-model" {
		t.Errorf("expected override model, got %q", provider.lastRequest.Model)
	}
	if provider.lastRequest.SystemInstruction != "be terse" {
		t.Errorf("expected system instruction, got %q", provider.lastRequest.SystemInstruction)
	}
}

// TestQuery_FileBytesAttached verifies the in-memory file source: resolved
// MIME type and base64 data arrive on the request.
func TestQuery_FileBytesAttached(t *testing.T) {
	provider := &fakeProvider{}
	c := New()
	c.Register("fake", provider)

	_, err := c.Query(context.Background(), "fake", "hi",
		WithFileBytes([]byte("col1,col2"), "data.csv"),
	)
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}

	file := provider.lastRequest.File
	if file == nil {
		t.Fatal("expected a file descriptor on the request")
	}
	if file.MimeType != "text/csv" {
		t.Errorf("expected text/csv, got %s", file.MimeType)
	}
	if file.Data != base64.StdEncoding.EncodeToString([]byte("col1,col2")) {
		t.Errorf("unexpected data: %s", file.Data)
	}
}

// TestQuery_MultipleFileSourcesRejected verifies the path/bytes/attachment
// exclusivity contract.
func TestQuery_MultipleFileSourcesRejected(t *testing.T) {
	provider := &fakeProvider{}
	c := New()
	c.Register("fake", provider)

	_, err := c.Query(context.Background(), "fake", "hi",
		WithFilePath("/tmp/a.txt"),
		WithFileBytes([]byte("x"), "b.txt"),
	)

	var configErr *ai.ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected *ai.ConfigurationError, got %T: %v", err, err)
	}
	if provider.lastRequest != nil {
		t.Error("expected the provider not to be called")
	}
}

// TestQuery_AttachmentPassedThrough verifies that a pre-encoded descriptor
// skips resolution entirely.
func TestQuery_AttachmentPassedThrough(t *testing.T) {
	provider := &fakeProvider{}
	c := New()
	c.Register("fake", provider)

	descriptor := &ai.FileDescriptor{MimeType: "application/pdf", Filename: "r.pdf", Data: "cGRm"}
	_, err := c.Query(context.Background(), "fake", "hi", WithAttachment(descriptor))
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}

	if provider.lastRequest.File != descriptor {
		t.Error("expected the descriptor to pass through unchanged")
	}
}

// TestStream_ProviderErrorPropagates verifies that a provider failure on
// stream setup is returned directly from Stream.
func TestStream_ProviderErrorPropagates(t *testing.T) {
	setupFailure := &ai.APIError{StatusCode: 401, Body: "bad key"}
	provider := &fakeProvider{streamErr: setupFailure}
	c := New()
	c.Register("fake", provider)

	_, err := c.Stream(context.Background(), "fake", "hi")

	var apiErr *ai.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 401 {
		t.Fatalf("expected the provider's *ai.APIError, got %T: %v", err, err)
	}
}
