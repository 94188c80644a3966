// Package files prepares in-memory attachments for provider payloads:
// MIME type resolution from filename hints and magic bytes, base64
// encoding into provider-neutral file descriptors, and textual decoding
// for inline content blocks.
//
// Everything here operates on bytes already in memory. Resolution never
// touches the filesystem or the platform MIME database, so results are
// deterministic across machines and the privacy guarantee (no disk
// spillover) holds.
package files
