package openai

import "strings"

// completionTokensFamilies lists the model-name prefixes that reject the
// legacy max_tokens parameter and require max_completion_tokens instead.
// Everything from gpt-4o onward (including the reasoning o-series) is in
// this group; gpt-3.5 and plain gpt-4 deployments still take max_tokens.
var completionTokensFamilies = []string{
	"gpt-4o",
	"gpt-4.1",
	"gpt-5",
	"chatgpt-4o",
	"o1",
	"o3",
	"o4",
}

// usesMaxCompletionTokens classifies a model identifier by name and
// reports whether the token-limit parameter must be sent as
// max_completion_tokens. Pure string inspection — no network round-trip.
func usesMaxCompletionTokens(model string) bool {
	model = strings.ToLower(strings.TrimSpace(model))
	for _, family := range completionTokensFamilies {
		if model == family || strings.HasPrefix(model, family+"-") || strings.HasPrefix(model, family+".") {
			return true
		}
	}
	return false
}
