package ai

import (
	"iter"
	"strings"
)

// Stream wraps a streaming iterator over text fragments. Fragments arrive
// in network order; the sequence is finite (end marker, stream closure,
// timeout, or abort) and not restartable — each streaming call opens a
// fresh Stream.
//
// Important: callers must consume the stream, either by iterating with
// Iter() (breaking out of the loop early is fine) or by calling Collect().
// The underlying provider holds an open HTTP response body that is only
// released when the iterator completes or is abandoned via a loop break.
// Constructing a Stream and never iterating it will leak that connection.
type Stream struct {
	iterator iter.Seq2[string, error]
}

// NewStream creates a Stream from a raw iterator. The iterator yields text
// fragments (with nil error) for normal chunks, and may yield a non-nil
// error exactly once to signal a mid-stream failure, after which it stops.
func NewStream(iterator iter.Seq2[string, error]) *Stream {
	return &Stream{iterator: iterator}
}

// Iter returns the underlying iterator for use with range-over-func loops.
//
// Example:
//
//	for chunk, err := range stream.Iter() {
//	    if err != nil { handle error }
//	    fmt.Print(chunk)
//	}
func (stream *Stream) Iter() iter.Seq2[string, error] {
	return stream.iterator
}

// Collect consumes the entire stream and returns the concatenated text.
// A mid-stream error terminates collection and returns the partial text
// together with the error — chunks received before the failure are never
// discarded.
func (stream *Stream) Collect() (string, error) {
	var builder strings.Builder

	for chunk, err := range stream.iterator {
		if err != nil {
			return builder.String(), err
		}
		builder.WriteString(chunk)
	}

	return builder.String(), nil
}
