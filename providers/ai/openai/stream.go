package openai

import (
	"context"
	"io"
	"log/slog"

	"github.com/LeoooDias/msgModel/internal/utils"
	"github.com/LeoooDias/msgModel/providers/ai"
)

// Stream implements ai.Provider for the chat completions endpoint with
// stream=true. It returns an ai.Stream that yields text deltas as SSE
// events arrive.
//
// Parsing is best-effort per record: an undecodable record is logged and
// skipped, never fatal — one bad line must not abort an otherwise healthy
// stream. Mid-stream read failures surface as *ai.StreamError through the
// iterator.
func (provider *OpenAIProvider) Stream(ctx context.Context, request ai.Request) (*ai.Stream, error) {
	if provider.apiKey == "" {
		return nil, &ai.ConfigurationError{Reason: "OPENAI_API_KEY is not set"}
	}

	payload := buildPayload(request, true)

	httpResponse, err := utils.DoPostStream(
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

	sseScanner := utils.NewSSEScanner(httpResponse.Body)

	iteratorFunc := func(yield func(string, error) bool) {
		// The body must be released on every exit path, including early
		// breaks by the consumer.
		defer utils.CloseWithLog(httpResponse.Body)

		chunksYielded := 0
		for {
			if ctx.Err() != nil {
				// Cancellation by the pipeline (timeout/abort) is the
				// pipeline's to report, not a stream failure.
				return
			}

			payloadLine, sseErr := sseScanner.Next()
			if sseErr == io.EOF {
				if chunksYielded == 0 {
					slog.Warn("stream completed without yielding any text chunks",
						"provider", "openai", "model", payload.Model)
				}
				return
			}
			if sseErr != nil {
				if ctx.Err() != nil {
					return
				}
				yield("", &ai.StreamError{Err: sseErr})
				return
			}

			chunk, parseErr := utils.DecodeLoose[chatCompletionStreamChunk](payloadLine)
			if parseErr != nil {
				slog.Debug("skipping undecodable stream record",
					"provider", "openai", "error", parseErr)
				continue
			}

			for _, choice := range chunk.Choices {
				if choice.Delta.Content == nil || *choice.Delta.Content == "" {
					continue
				}
				chunksYielded++
				if !yield(*choice.Delta.Content, nil) {
					return
				}
			}
		}
	}

	return ai.NewStream(iteratorFunc), nil
}
