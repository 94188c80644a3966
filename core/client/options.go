package client

import (
	"errors"
	"time"

	"github.com/LeoooDias/msgModel/providers/ai"
)

// StopStream is the sentinel a ChunkHandler returns to stop a stream
// gracefully: the transport is closed immediately, no further chunks are
// read, and the caller keeps exactly the chunks delivered before the stop.
var StopStream = errors.New("msgmodel: stop streaming")

// ChunkHandler is called after each chunk is delivered to the consumer.
// Three-way signal: nil continues the stream, StopStream aborts it
// gracefully, any other error aborts it and is surfaced through the
// iterator.
type ChunkHandler func(chunk string) error

// requestOptions accumulates the per-call settings applied by
// RequestOption values.
type requestOptions struct {
	systemInstruction string
	model             string
	generation        *ai.GenerationConfig

	filePath   string
	fileBytes  []byte
	fileSet    bool
	filename   string
	nameHint   string
	attachment *ai.FileDescriptor

	timeout    time.Duration
	timeoutSet bool
	onChunk    ChunkHandler
}

// RequestOption customizes a single Query or Stream call.
type RequestOption func(*requestOptions)

// WithSystemInstruction sets the system instruction for the call.
func WithSystemInstruction(instruction string) RequestOption {
	return func(options *requestOptions) {
		options.systemInstruction = instruction
	}
}

// WithModel overrides the configured model for the call.
func WithModel(model string) RequestOption {
	return func(options *requestOptions) {
		options.model = model
	}
}

// WithGenerationConfig overrides the configured sampling parameters.
func WithGenerationConfig(generation ai.GenerationConfig) RequestOption {
	return func(options *requestOptions) {
		options.generation = &generation
	}
}

// WithFilePath attaches the file at path. Mutually exclusive with
// WithFileBytes and WithAttachment — supplying more than one file source
// is a configuration error, not silently reconciled.
func WithFilePath(path string) RequestOption {
	return func(options *requestOptions) {
		options.filePath = path
	}
}

// WithFileBytes attaches an in-memory byte source. filename is the
// explicit override for MIME resolution and may be empty when the caller
// has no name; magic-byte sniffing fills the gap.
func WithFileBytes(data []byte, filename string) RequestOption {
	return func(options *requestOptions) {
		options.fileBytes = data
		options.fileSet = true
		options.filename = filename
	}
}

// WithNameHint supplies the ambient name carried by the caller's byte
// container (an uploaded file's original name, for example). Only
// meaningful together with WithFileBytes; an explicit filename wins over
// the hint.
func WithNameHint(name string) RequestOption {
	return func(options *requestOptions) {
		options.nameHint = name
	}
}

// WithAttachment attaches an already-encoded descriptor, skipping MIME
// resolution entirely.
func WithAttachment(descriptor *ai.FileDescriptor) RequestOption {
	return func(options *requestOptions) {
		options.attachment = descriptor
	}
}

// WithTimeout sets the streaming idle timeout: the stream fails with
// *ai.TimeoutError when no new chunk arrives within the window. The timer
// resets on every chunk, so a slow-but-steady stream is never killed.
// Zero disables the timeout. Ignored by Query.
func WithTimeout(timeout time.Duration) RequestOption {
	return func(options *requestOptions) {
		options.timeout = timeout
		options.timeoutSet = true
	}
}

// WithOnChunk registers the per-chunk callback. See ChunkHandler for the
// three-way continue/stop/error contract. Ignored by Query.
func WithOnChunk(handler ChunkHandler) RequestOption {
	return func(options *requestOptions) {
		options.onChunk = handler
	}
}
