package openai

import (
	"fmt"

	"github.com/LeoooDias/msgModel/core/files"
	"github.com/LeoooDias/msgModel/internal/utils"
	"github.com/LeoooDias/msgModel/providers/ai"
)

// buildPayload converts an ai.Request into the chat completions wire
// format. The system instruction, when present, becomes the first message;
// the user message carries the attachment-derived content blocks with the
// prompt text always last.
func buildPayload(request ai.Request, stream bool) chatCompletionRequest {
	model := request.Model
	if model == "" {
		model = defaultModel
	}

	var messages []chatMessage
	if request.SystemInstruction != "" {
		messages = append(messages, chatMessage{Role: "system", Content: request.SystemInstruction})
	}
	messages = append(messages, chatMessage{Role: "user", Content: buildContent(request.Prompt, request.File)})

	payload := chatCompletionRequest{
		Model:    model,
		Messages: messages,
	}

	if generation := request.GenerationConfig; generation != nil {
		if generation.MaxTokens > 0 {
			if usesMaxCompletionTokens(model) {
				payload.MaxCompletionTokens = utils.Ptr(generation.MaxTokens)
			} else {
				payload.MaxTokens = utils.Ptr(generation.MaxTokens)
			}
		}
		if generation.Temperature > 0 {
			payload.Temperature = utils.Ptr(generation.Temperature)
		}
		if generation.TopP > 0 {
			payload.TopP = utils.Ptr(generation.TopP)
		}
	}

	if stream {
		payload.Stream = utils.Ptr(true)
	}

	return payload
}

// buildContent assembles the content blocks of the user message:
//
//   - image attachments are embedded as a data URI, never decoded
//   - textual attachments are decoded and inlined with a filename prefix;
//     if decoding fails or yields only whitespace the block is omitted
//     entirely (an empty content block is a hard API error)
//   - any other MIME category becomes a descriptive note so the model
//     knows binary content exists even though it cannot read it
//
// The prompt text is always the final block, keeping the instructions
// proximate to the model's generation point.
func buildContent(prompt string, file *ai.FileDescriptor) []contentPart {
	var content []contentPart

	if file != nil {
		switch {
		case files.IsImage(file):
			content = append(content, contentPart{
				Type: "image_url",
				ImageURL: &contentPartImage{
					URL: fmt.Sprintf("data:%s;base64,%s", file.MimeType, file.Data),
				},
			})

		case files.IsText(file):
			if text, ok := files.DecodeText(file); ok {
				content = append(content, contentPart{
					Type: "text",
					Text: fmt.Sprintf("(Contents of %s):\n\n%s", file.Filename, text),
				})
			}

		default:
			content = append(content, contentPart{
				Type: "text",
				Text: fmt.Sprintf(
					"[Note: A file named '%s' with MIME type '%s' was provided. "+
						"You may not be able to read it directly, but you can still "+
						"respond based on the description and prompt.]",
					file.Filename, file.MimeType,
				),
			})
		}
	}

	content = append(content, contentPart{Type: "text", Text: prompt})

	return content
}
