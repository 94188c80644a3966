package gemini

import (
	"fmt"

	"github.com/LeoooDias/msgModel/core/files"
	"github.com/LeoooDias/msgModel/internal/utils"
	"github.com/LeoooDias/msgModel/providers/ai"
)

// buildPayload converts an ai.Request into the generateContent wire
// format. The system instruction maps to the dedicated system_instruction
// block; the single user content carries the attachment-derived parts with
// the prompt text always last.
func buildPayload(request ai.Request) generateContentRequest {
	payload := generateContentRequest{}

	if request.SystemInstruction != "" {
		payload.SystemInstruction = &systemInstruction{
			Parts: []part{{Text: request.SystemInstruction}},
		}
	}

	payload.Contents = []content{{
		Role:  "user",
		Parts: buildParts(request.Prompt, request.File),
	}}

	if generation := request.GenerationConfig; generation != nil {
		config := &generationConfig{}
		if generation.MaxTokens > 0 {
			config.MaxOutputTokens = utils.Ptr(generation.MaxTokens)
		}
		if generation.Temperature > 0 {
			config.Temperature = utils.Ptr(generation.Temperature)
		}
		if generation.TopP > 0 {
			config.TopP = utils.Ptr(generation.TopP)
		}
		payload.GenerationConfig = config
	}

	return payload
}

// buildParts assembles the parts of the user content:
//
//   - textual attachments are decoded and inlined with a filename prefix;
//     if decoding fails or yields only whitespace the part is omitted
//   - images, PDFs, and every other specific binary type travel as
//     inline_data — Gemini consumes these natively
//   - application/octet-stream degrades to a descriptive note: the API
//     rejects the generic type outright, so a note beats a guaranteed 400
//
// The prompt text is always the final part.
func buildParts(prompt string, file *ai.FileDescriptor) []part {
	var parts []part

	if file != nil {
		switch {
		case files.IsText(file):
			if text, ok := files.DecodeText(file); ok {
				parts = append(parts, part{
					Text: fmt.Sprintf("(Contents of %s):\n\n%s", file.Filename, text),
				})
			}

		case file.MimeType == files.DefaultMimeType:
			parts = append(parts, part{
				Text: fmt.Sprintf(
					"[Note: A file named '%s' with MIME type '%s' was provided. "+
						"You may not be able to read it directly, but you can still "+
						"respond based on the description and prompt.]",
					file.Filename, file.MimeType,
				),
			})

		default:
			parts = append(parts, part{
				InlineData: &inlineData{
					MimeType: file.MimeType,
					Data:     file.Data,
				},
			})
		}
	}

	parts = append(parts, part{Text: prompt})

	return parts
}
