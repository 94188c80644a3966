// Package utils provides shared low-level helpers used throughout the
// msgmodel internals. It covers HTTP request helpers for both synchronous
// and streaming (SSE) communication with provider APIs, loose JSON decoding
// for defective stream records, and generic pointer and string utilities.
//
// Key entry points: [DoPostSync] for synchronous JSON round-trips,
// [DoPostStream] together with [SSEScanner] for Server-Sent Events
// streaming, [DecodeLoose] for repair-and-retry JSON decoding, and [Ptr]
// for converting values to pointers.
package utils
