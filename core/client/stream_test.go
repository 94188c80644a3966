package client

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/LeoooDias/msgModel/providers/ai"
)

// stallingProvider yields its chunks and then blocks until the call
// context is cancelled, simulating a backend that goes quiet mid-stream.
type stallingProvider struct {
	chunks []string
}

func (s *stallingProvider) Query(ctx context.Context, request ai.Request) (*ai.Response, error) {
	return &ai.Response{}, nil
}

func (s *stallingProvider) Stream(ctx context.Context, request ai.Request) (*ai.Stream, error) {
	chunks := s.chunks
	return ai.NewStream(func(yield func(string, error) bool) {
		for _, chunk := range chunks {
			if !yield(chunk, nil) {
				return
			}
		}
		<-ctx.Done()
	}), nil
}

func (s *stallingProvider) WithAPIKey(string) ai.Provider           { return s }
func (s *stallingProvider) WithBaseURL(string) ai.Provider          { return s }
func (s *stallingProvider) WithHttpClient(*http.Client) ai.Provider { return s }

// TestStream_CollectsAllChunks verifies the plain streaming path end to
// end through the pipeline.
func TestStream_CollectsAllChunks(t *testing.T) {
	c := New()
	c.Register("fake", &fakeProvider{chunks: []string{"one ", "two ", "three"}})

	stream, err := c.Stream(context.Background(), "fake", "hi")
	if err != nil {
		t.Fatalf("Stream returned error: %v", err)
	}

	text, err := stream.Collect()
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	if text != "one two three" {
		t.Errorf("expected full text, got %q", text)
	}
}

// TestStream_OnChunkStopAfterN verifies cooperative abort: returning
// StopStream from the handler after N chunks delivers exactly N chunks and
// no error.
func TestStream_OnChunkStopAfterN(t *testing.T) {
	c := New()
	c.Register("fake", &fakeProvider{chunks: []string{"1", "2", "3", "4", "5"}})

	seen := 0
	stream, err := c.Stream(context.Background(), "fake", "hi",
		WithOnChunk(func(chunk string) error {
			seen++
			if seen >= 2 {
				return StopStream
			}
			return nil
		}),
	)
	if err != nil {
		t.Fatalf("Stream returned error: %v", err)
	}

	var chunks []string
	for chunk, iterErr := range stream.Iter() {
		if iterErr != nil {
			t.Fatalf("expected graceful stop, got error: %v", iterErr)
		}
		chunks = append(chunks, chunk)
	}

	if len(chunks) != 2 {
		t.Fatalf("expected exactly 2 chunks, got %d: %v", len(chunks), chunks)
	}
	if chunks[0] != "1" || chunks[1] != "2" {
		t.Errorf("unexpected chunks: %v", chunks)
	}
}

// TestStream_OnChunkErrorSurfaces verifies the third handler signal: a
// non-StopStream error aborts the stream and reaches the consumer.
func TestStream_OnChunkErrorSurfaces(t *testing.T) {
	c := New()
	c.Register("fake", &fakeProvider{chunks: []string{"a", "b", "c"}})

	handlerFailure := errors.New("content policy tripped")
	stream, err := c.Stream(context.Background(), "fake", "hi",
		WithOnChunk(func(chunk string) error {
			return handlerFailure
		}),
	)
	if err != nil {
		t.Fatalf("Stream returned error: %v", err)
	}

	text, err := stream.Collect()
	if !errors.Is(err, handlerFailure) {
		t.Fatalf("expected handler error, got %v", err)
	}
	// The chunk that triggered the abort was already delivered.
	if text != "a" {
		t.Errorf("expected 'a' before the abort, got %q", text)
	}
}

// TestStream_IdleTimeout verifies that a stalled stream fails with
// *ai.TimeoutError while chunks yielded before the stall stay valid.
func TestStream_IdleTimeout(t *testing.T) {
	c := New()
	c.Register("stall", &stallingProvider{chunks: []string{"before-stall"}})

	stream, err := c.Stream(context.Background(), "stall", "hi",
		WithTimeout(50*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("Stream returned error: %v", err)
	}

	text, err := stream.Collect()
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}

	var timeoutErr *ai.TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("expected *ai.TimeoutError, got %T: %v", err, err)
	}
	if timeoutErr.Idle != 50*time.Millisecond {
		t.Errorf("expected the configured idle window, got %s", timeoutErr.Idle)
	}
	if text != "before-stall" {
		t.Errorf("expected chunks before the stall to be preserved, got %q", text)
	}
}

// TestStream_TimerResetsOnEachChunk verifies that a slow-but-steady stream
// outlives the idle window as long as every gap stays under it.
func TestStream_TimerResetsOnEachChunk(t *testing.T) {
	c := New()

	// Yields 4 chunks with 30ms gaps; total 120ms exceeds the 80ms window,
	// but no single gap does.
	c.Register("steady", providerFunc(func(ctx context.Context, request ai.Request) (*ai.Stream, error) {
		return ai.NewStream(func(yield func(string, error) bool) {
			for range 4 {
				select {
				case <-time.After(30 * time.Millisecond):
				case <-ctx.Done():
					return
				}
				if !yield("tick.", nil) {
					return
				}
			}
		}), nil
	}))

	stream, err := c.Stream(context.Background(), "steady", "hi",
		WithTimeout(80*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("Stream returned error: %v", err)
	}

	text, err := stream.Collect()
	if err != nil {
		t.Fatalf("expected the steady stream to survive, got %v", err)
	}
	if text != "tick.tick.tick.tick." {
		t.Errorf("expected all 4 chunks, got %q", text)
	}
}

// TestStream_SlowHandlerDoesNotTriggerTimeout verifies that time spent in
// the per-chunk handler does not count against the idle window: a handler
// slower than the timeout must not kill a stream whose chunks are all
// immediately available.
func TestStream_SlowHandlerDoesNotTriggerTimeout(t *testing.T) {
	c := New()
	c.Register("fake", &fakeProvider{chunks: []string{"a", "b", "c", "d"}})

	stream, err := c.Stream(context.Background(), "fake", "hi",
		WithTimeout(20*time.Millisecond),
		WithOnChunk(func(chunk string) error {
			time.Sleep(40 * time.Millisecond)
			return nil
		}),
	)
	if err != nil {
		t.Fatalf("Stream returned error: %v", err)
	}

	text, err := stream.Collect()
	if err != nil {
		t.Fatalf("expected the stream to complete, got %v", err)
	}
	if text != "abcd" {
		t.Errorf("expected all 4 chunks, got %q", text)
	}
}

// TestStream_ConsumerBreakCancelsContext verifies that breaking out of the
// range loop cancels the provider's context, releasing the transport.
func TestStream_ConsumerBreakCancelsContext(t *testing.T) {
	c := New()

	providerCtxDone := make(chan struct{})
	c.Register("watch", providerFunc(func(ctx context.Context, request ai.Request) (*ai.Stream, error) {
		go func() {
			<-ctx.Done()
			close(providerCtxDone)
		}()
		return ai.NewStream(func(yield func(string, error) bool) {
			for {
				if !yield("x", nil) {
					return
				}
			}
		}), nil
	}))

	stream, err := c.Stream(context.Background(), "watch", "hi")
	if err != nil {
		t.Fatalf("Stream returned error: %v", err)
	}

	for range stream.Iter() {
		break
	}

	select {
	case <-providerCtxDone:
	case <-time.After(time.Second):
		t.Fatal("expected the provider context to be cancelled after the break")
	}
}

// providerFunc adapts a stream function to the ai.Provider interface for
// pipeline tests.
type providerFunc func(ctx context.Context, request ai.Request) (*ai.Stream, error)

func (p providerFunc) Query(ctx context.Context, request ai.Request) (*ai.Response, error) {
	return &ai.Response{}, nil
}

func (p providerFunc) Stream(ctx context.Context, request ai.Request) (*ai.Stream, error) {
	return p(ctx, request)
}

func (p providerFunc) WithAPIKey(string) ai.Provider           { return p }
func (p providerFunc) WithBaseURL(string) ai.Provider          { return p }
func (p providerFunc) WithHttpClient(*http.Client) ai.Provider { return p }
