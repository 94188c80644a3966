package client

import (
	"context"
	"errors"
	"time"

	"github.com/LeoooDias/msgModel/providers/ai"
)

// pipeline wraps a provider stream with the caller-facing streaming
// semantics:
//
//   - idle timeout: a timer reset on every received chunk; expiry yields
//     *ai.TimeoutError and terminates. Chunks already yielded stay valid.
//   - cooperative abort: the per-chunk handler is invoked after each chunk
//     is delivered; StopStream terminates gracefully (no error yielded),
//     any other handler error terminates with that error.
//   - resource release: cancel is called on every exit path — completion,
//     timeout, abort, failure, or the consumer breaking out of the loop —
//     which closes the underlying transport connection.
//
// The provider's iterator runs in its own goroutine so a blocked network
// read cannot stall timeout detection; chunks still reach the consumer
// strictly in arrival order.
func pipeline(cancel context.CancelFunc, source *ai.Stream, idleTimeout time.Duration, onChunk ChunkHandler) *ai.Stream {
	return ai.NewStream(func(yield func(string, error) bool) {
		defer cancel()

		type item struct {
			chunk string
			err   error
		}
		items := make(chan item)
		consumerGone := make(chan struct{})
		defer close(consumerGone)

		go func() {
			defer close(items)
			for chunk, err := range source.Iter() {
				select {
				case items <- item{chunk: chunk, err: err}:
				case <-consumerGone:
					return
				}
				if err != nil {
					return
				}
			}
		}()

		// deliver hands one chunk to the consumer and the handler. Returns
		// false when iteration must stop (error, StopStream, or the consumer
		// breaking out of the range loop — the last has the same effect as
		// the handler requesting a stop).
		deliver := func(received item) bool {
			if received.err != nil {
				yield("", received.err)
				return false
			}
			if !yield(received.chunk, nil) {
				return false
			}
			if onChunk != nil {
				if err := onChunk(received.chunk); err != nil {
					if errors.Is(err, StopStream) {
						return false
					}
					yield("", err)
					return false
				}
			}
			return true
		}

		var timer *time.Timer
		var timeoutC <-chan time.Time
		if idleTimeout > 0 {
			timer = time.NewTimer(idleTimeout)
			defer timer.Stop()
			timeoutC = timer.C
		}

		for {
			select {
			case received, open := <-items:
				if !open {
					// Orderly end of stream.
					return
				}

				// Hold the timer while the consumer and handler run: the
				// idle window measures time waiting on the provider, not
				// time spent processing a chunk that already arrived.
				if timer != nil {
					if !timer.Stop() {
						select {
						case <-timer.C:
						default:
						}
					}
				}

				if !deliver(received) {
					return
				}

				if timer != nil {
					timer.Reset(idleTimeout)
				}

			case <-timeoutC:
				// The timer and a chunk can become ready in the same
				// instant and select picks arbitrarily. A chunk that made
				// it inside the window wins over the expiry.
				select {
				case received, open := <-items:
					if !open {
						return
					}
					if !deliver(received) {
						return
					}
					timer.Reset(idleTimeout)
				default:
					yield("", &ai.TimeoutError{Idle: idleTimeout})
					return
				}
			}
		}
	})
}
