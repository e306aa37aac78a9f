package ai

import (
	"context"
	"errors"
	"iter"
	"strings"
	"sync"
)

// streamBufferSize bounds the fragment channel between the network read loop
// and the consumer. The buffer absorbs consumer jitter; the read loop is
// paced by the consumer once it fills.
const streamBufferSize = 32

// fragment is one element of the stream: either a text delta or the single
// terminal error. The zero fragment is never sent.
type fragment struct {
	text string
	err  error
}

// CompletionStream is a lazy, finite, single-use sequence of text fragments
// produced by one streaming call. Fragments arrive in the exact order their
// source frames were decoded. The sequence terminates exactly once: the
// iterator either ends cleanly (the provider finished) or yields one
// classified error and then ends.
//
// Callers must consume the stream, either with [CompletionStream.Iter]
// (breaking out early is fine, and cancels the producing read loop) or with
// [CompletionStream.Collect]. A stream that is constructed and never
// iterated keeps its read loop alive until the call context ends or the
// transport timeout fires.
type CompletionStream struct {
	fragments <-chan fragment
	cancel    context.CancelFunc
	abandoned chan struct{}
	once      sync.Once
}

// Iter returns the fragment iterator for use with range-over-func loops.
//
//	for text, err := range stream.Iter() {
//	    if err != nil { // terminal; no further fragments follow
//	        return err
//	    }
//	    print(text)
//	}
//
// The stream is single-use: Iter must not be called twice.
func (stream *CompletionStream) Iter() iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		// Leaving the loop for any reason means no further fragment will be
		// read: stop the read loop and release anything blocked on a send.
		defer stream.cancel()
		defer stream.once.Do(func() { close(stream.abandoned) })

		for f := range stream.fragments {
			if f.err != nil {
				yield("", f.err)
				return
			}
			if !yield(f.text, nil) {
				return
			}
		}
	}
}

// Collect consumes the entire stream and returns the concatenated text.
// On failure the text accumulated before the terminal error is returned with
// it; fragments already emitted are never retracted.
func (stream *CompletionStream) Collect() (string, error) {
	var accumulated strings.Builder
	for text, err := range stream.Iter() {
		if err != nil {
			return accumulated.String(), err
		}
		accumulated.WriteString(text)
	}
	return accumulated.String(), nil
}

// StreamProducer is the adapter-side handle of a CompletionStream. The read
// loop goroutine pushes fragments through it; Close transitions the stream to
// its successful end. A producer feeds exactly one stream.
type StreamProducer struct {
	ctx       context.Context
	fragments chan fragment
	abandoned chan struct{}
}

// NewStreamProducer creates the producer for one streaming call. ctx must be
// the per-call context the adapter derived for its read loop; the matching
// cancel function is handed to [StreamProducer.Stream] so the consumer can
// stop the loop.
func NewStreamProducer(ctx context.Context) *StreamProducer {
	return &StreamProducer{
		ctx:       ctx,
		fragments: make(chan fragment, streamBufferSize),
		abandoned: make(chan struct{}),
	}
}

// Stream returns the consumer-side CompletionStream fed by this producer.
func (producer *StreamProducer) Stream(cancel context.CancelFunc) *CompletionStream {
	return &CompletionStream{
		fragments: producer.fragments,
		cancel:    cancel,
		abandoned: producer.abandoned,
	}
}

// Text emits one text fragment. It reports false when the call context was
// cancelled before the fragment could be handed off, in which case the read
// loop must emit its cancellation terminal via [StreamProducer.Fail] and stop.
func (producer *StreamProducer) Text(text string) bool {
	select {
	case producer.fragments <- fragment{text: text}:
		return true
	case <-producer.ctx.Done():
		return false
	}
}

// Fail emits the terminal error. Cancellation takes priority: when the call
// context was cancelled concurrently, the given error is replaced by the
// cancellation kind so callers never see a spurious transport failure for a
// stop they requested themselves. Delivery blocks until the consumer takes
// the terminal or walks away, so a consumer that keeps draining observes
// exactly one terminal signal. Fail must be followed by [StreamProducer.Close].
func (producer *StreamProducer) Fail(err error) {
	if producer.ctx.Err() != nil && !errors.Is(err, ErrCancelled) {
		err = Cancelled(producer.ctx)
	}
	select {
	case producer.fragments <- fragment{err: err}:
	case <-producer.abandoned:
		// Nobody is listening anymore; the terminal is dropped, not queued,
		// so a stream never carries more than one terminal signal.
	}
}

// Close ends the stream. After Close the consumer's iterator finishes; if no
// error was emitted before, the stream terminates successfully.
func (producer *StreamProducer) Close() {
	close(producer.fragments)
}
