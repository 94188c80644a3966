package files

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/LeoooDias/msgModel/providers/ai"
)

// MaxAttachmentSize is the practical ceiling for inline base64 attachments.
// Providers accept roughly 15–20 MB of inline content before rejecting the
// request; beyond that the caller needs a different upload path entirely,
// so the failure is surfaced as ai.ErrPayloadTooLarge rather than letting
// the provider return an opaque transport-level error.
const MaxAttachmentSize = 20 * 1024 * 1024

// Encode base64-encodes content and pairs it with the given MIME type and
// filename into a provider-neutral descriptor. The only failure mode is
// content above MaxAttachmentSize, reported as ai.ErrPayloadTooLarge.
func Encode(content []byte, mimeType, filename string) (*ai.FileDescriptor, error) {
	if len(content) > MaxAttachmentSize {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ai.ErrPayloadTooLarge, len(content), MaxAttachmentSize)
	}
	if mimeType == "" {
		mimeType = DefaultMimeType
	}
	if filename == "" {
		filename = DefaultFilename
	}

	return &ai.FileDescriptor{
		MimeType: mimeType,
		Filename: filename,
		Data:     base64.StdEncoding.EncodeToString(content),
	}, nil
}

// FromPath reads the file at path and encodes it. The filename is derived
// from the path; magic-byte sniffing still applies as a secondary signal
// when the extension is unrecognized.
func FromPath(path string) (*ai.FileDescriptor, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading attachment %s: %w", path, err)
	}

	filename := filepath.Base(path)
	return Encode(content, Resolve(filename, "", content), filename)
}

// FromBytes encodes an in-memory byte source. explicitFilename is the
// caller-supplied override and wins over nameHint, the ambient name carried
// by the source container (callers whose byte-buffer abstraction has no
// such name simply pass ""). Both are optional; content sniffing fills the
// gap.
func FromBytes(data []byte, explicitFilename, nameHint string) (*ai.FileDescriptor, error) {
	filename := explicitFilename
	if filename == "" {
		filename = nameHint
	}
	if filename == "" {
		filename = DefaultFilename
	}

	return Encode(data, Resolve(explicitFilename, nameHint, data), filename)
}

// DecodeText decodes a textual descriptor back into plain text for inline
// payload blocks. HTML is converted to Markdown before inlining — models
// handle Markdown far better than raw markup, and it cuts the token cost.
// Returns ok == false when the data is not valid base64, not valid UTF-8,
// or decodes to only whitespace; callers must omit the block entirely in
// that case rather than emit an empty one.
func DecodeText(descriptor *ai.FileDescriptor) (text string, ok bool) {
	decoded, err := base64.StdEncoding.DecodeString(descriptor.Data)
	if err != nil {
		return "", false
	}
	if !utf8.Valid(decoded) {
		return "", false
	}

	text = string(decoded)
	if descriptor.MimeType == "text/html" {
		if markdown, convErr := htmltomarkdown.ConvertString(text); convErr == nil {
			text = markdown
		}
	}

	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

// IsText reports whether the descriptor should be inlined as decoded text.
// Covers the text/* family plus the structured-text application types that
// models read directly.
func IsText(descriptor *ai.FileDescriptor) bool {
	if strings.HasPrefix(descriptor.MimeType, "text/") {
		return true
	}
	switch descriptor.MimeType {
	case "application/json", "application/xml":
		return true
	}
	return false
}

// IsImage reports whether the descriptor is an image attachment.
func IsImage(descriptor *ai.FileDescriptor) bool {
	return strings.HasPrefix(descriptor.MimeType, "image/")
}
