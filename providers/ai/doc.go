// Package ai defines the provider-neutral request, response, and streaming
// types shared by every backend implementation, together with the error
// kinds surfaced to callers.
//
// A backend lives in its own subpackage (openai, gemini) and satisfies the
// [Provider] interface. Callers normally do not use providers directly;
// the core/client package selects one by name and drives it.
package ai
