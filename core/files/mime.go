package files

import (
	"bytes"
	"path/filepath"
	"strings"
)

// DefaultMimeType is the generic binary fallback used when no name or
// content signal resolves a more specific type.
const DefaultMimeType = "application/octet-stream"

// DefaultFilename is the placeholder filename paired with the fallback
// type when the caller supplied no usable name.
const DefaultFilename = "upload.bin"

// extensionTypes maps lowercase filename extensions to MIME types. A fixed
// in-package table is used instead of mime.TypeByExtension: the stdlib
// consults /etc/mime.types and friends, which makes results platform
// dependent and breaks the no-I/O contract of Resolve.
var extensionTypes = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".svg":  "image/svg+xml",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".csv":  "text/csv",
	".html": "text/html",
	".htm":  "text/html",
	".json": "application/json",
	".xml":  "application/xml",
	".yaml": "text/yaml",
	".yml":  "text/yaml",
	".zip":  "application/zip",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".mp4":  "video/mp4",
}

// magicSignature pairs a leading byte pattern with the MIME type it
// identifies. Order matters only for readability; prefixes are disjoint.
type magicSignature struct {
	prefix   []byte
	mimeType string
}

var magicSignatures = []magicSignature{
	{[]byte("%PDF"), "application/pdf"},
	{[]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, "image/png"},
	{[]byte{0xFF, 0xD8, 0xFF}, "image/jpeg"},
	{[]byte("GIF8"), "image/gif"},
	{[]byte{'P', 'K', 0x03, 0x04}, "application/zip"},
}

// sniffWindow is how many leading bytes Resolve inspects for magic
// signatures. The longest known signature is 12 bytes (RIFF/WEBP); 16
// leaves headroom.
const sniffWindow = 16

// Resolve determines the MIME type for an in-memory attachment. The first
// non-empty signal wins, in strict precedence order:
//
//  1. explicitFilename — extension mapped through the extension table
//  2. nameHint — an ambient name carried by the byte source, same mapping
//  3. magic-byte sniffing over the leading bytes of content
//  4. DefaultMimeType
//
// An extension that is present but unmapped counts as "no signal" and
// falls through to sniffing. Sniffing never overrides a successfully
// mapped extension — it is a fallback, not a verifier. Resolve is a pure
// function: no I/O, no system MIME database.
func Resolve(explicitFilename, nameHint string, content []byte) string {
	if mimeType := typeFromFilename(explicitFilename); mimeType != "" {
		return mimeType
	}
	if mimeType := typeFromFilename(nameHint); mimeType != "" {
		return mimeType
	}
	if mimeType := typeFromMagicBytes(content); mimeType != "" {
		return mimeType
	}
	return DefaultMimeType
}

// typeFromFilename maps a filename's extension through the extension
// table. Returns "" when the name is empty, has no extension, or the
// extension is unrecognized.
func typeFromFilename(filename string) string {
	if filename == "" {
		return ""
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return ""
	}
	return extensionTypes[ext]
}

// typeFromMagicBytes identifies the content type from its leading bytes.
// Returns "" when no known signature matches. WEBP needs a two-part check:
// a RIFF container whose format tag at offset 8 is "WEBP".
func typeFromMagicBytes(content []byte) string {
	if len(content) == 0 {
		return ""
	}
	window := content
	if len(window) > sniffWindow {
		window = window[:sniffWindow]
	}

	for _, signature := range magicSignatures {
		if bytes.HasPrefix(window, signature.prefix) {
			return signature.mimeType
		}
	}

	if len(window) >= 12 && bytes.HasPrefix(window, []byte("RIFF")) && bytes.Equal(window[8:12], []byte("WEBP")) {
		return "image/webp"
	}

	return ""
}
