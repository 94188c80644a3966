package gemini

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/LeoooDias/msgModel/internal/utils"
	"github.com/LeoooDias/msgModel/providers/ai"
)

// Stream implements ai.Provider using the streamGenerateContent endpoint
// with alt=sse. Each SSE event carries a generateContentResponse whose
// candidate text parts are the new delta for that event; non-empty deltas
// are yielded in arrival order.
//
// Parsing is best-effort per record: an undecodable record is logged and
// skipped, never fatal. Mid-stream read failures surface as
// *ai.StreamError through the iterator.
func (provider *GeminiProvider) Stream(ctx context.Context, request ai.Request) (*ai.Stream, error) {
	if provider.apiKey == "" {
		return nil, &ai.ConfigurationError{Reason: "GEMINI_API_KEY is not set"}
	}

	model := request.Model
	if model == "" {
		model = defaultModel
	}
	streamURL := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse", provider.baseURL, model)

	httpResponse, err := utils.DoPostStream(
		ctx,
		provider.client,
		streamURL,
		"", // Gemini authenticates via its own header, not Bearer auth
		buildPayload(request),
		utils.HeaderOption{Key: "x-goog-api-key", Value: provider.apiKey},
	)
	if err != nil {
		return nil, err
	}

	sseScanner := utils.NewSSEScanner(httpResponse.Body)

	iteratorFunc := func(yield func(string, error) bool) {
		defer utils.CloseWithLog(httpResponse.Body)

		chunksYielded := 0

		for {
			if ctx.Err() != nil {
				return
			}

			payloadLine, sseErr := sseScanner.Next()
			if sseErr == io.EOF {
				if chunksYielded == 0 {
					slog.Warn("stream completed without yielding any text chunks",
						"provider", "gemini", "model", model)
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

			response, parseErr := utils.DecodeLoose[generateContentResponse](payloadLine)
			if parseErr != nil {
				slog.Debug("skipping undecodable stream record",
					"provider", "gemini", "error", parseErr)
				continue
			}

			delta := extractDelta(response)
			if delta == "" {
				continue
			}
			chunksYielded++
			if !yield(delta, nil) {
				return
			}
		}
	}

	return ai.NewStream(iteratorFunc), nil
}

// extractDelta joins the text parts of a streaming record's first
// candidate. Records without candidates or text (safety metadata, finish
// markers) yield "".
func extractDelta(response *generateContentResponse) string {
	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return ""
	}

	var texts []string
	for _, candidatePart := range response.Candidates[0].Content.Parts {
		if candidatePart.Text != "" {
			texts = append(texts, candidatePart.Text)
		}
	}
	return strings.Join(texts, "")
}
