// Package client is the entry point of the library: it selects a provider
// by name, prepares attachments, and drives synchronous and streaming
// calls. The streaming path adds an idle timeout and a cooperative abort
// callback on top of the provider's raw stream.
//
// Each Query/Stream invocation is an independent unit of work; nothing is
// shared across concurrent calls, so a single Client is safe for
// concurrent use once constructed.
package client
