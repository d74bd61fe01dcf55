package jsonl

import (
	"context"
	"iter"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Result is one item of the stream: a decoded value or an error
type Result[T any] struct {
	Value T
	Err   error
}

type iterState uint8

const (
	stateAwaiting iterState = iota
	stateDraining
	stateReportedIncomplete
	stateExhausted
)

// Iterator yields the decoded values of a file in order.
//
// It is single-pass. Callers must either iterate to exhaustion or call Close;
// an iterator that becomes unreachable is closed by the garbage collector.
type Iterator[T any] struct {
	results     <-chan processingStatus[[]Result[T]]
	pending     []Result[T]
	state       iterState
	didComplete bool

	path   string
	cancel context.CancelFunc
	group  *errgroup.Group
	stats  *stats
	log    zerolog.Logger
}

// Next returns the next result. The second return value is false once the
// stream is exhausted, and stays false.
//
// If the stream ends without the file being read completely, the last result
// before exhaustion carries ErrNotCompleted. It is reported only once.
func (it *Iterator[T]) Next() (Result[T], bool) {
	var zero Result[T]
	for {
		switch it.state {
		case stateDraining:
			if len(it.pending) > 0 {
				res := it.pending[0]
				it.pending[0] = zero
				it.pending = it.pending[1:]
				if res.Err != nil {
					it.log.Info().Err(res.Err).Msg("parsing error")
				}
				return res, true
			}
			it.pending = nil
			it.state = stateAwaiting

		case stateAwaiting:
			status, ok := <-it.results
			if !ok {
				if it.didComplete {
					it.finish()
					return zero, false
				}
				it.log.Warn().Msg("stream ended without completion")
				it.state = stateReportedIncomplete
				return Result[T]{Err: ErrNotCompleted}, true
			}
			switch status.kind {
			case statusData:
				it.pending = status.data
				it.state = stateDraining
			case statusCompleted:
				it.didComplete = true
			case statusError:
				return Result[T]{Err: status.err}, true
			}

		case stateReportedIncomplete:
			it.finish()
			return zero, false

		default:
			return zero, false
		}
	}
}

// All returns the remaining results as a sequence. Stopping the iteration
// early closes the iterator.
func (it *Iterator[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			res, ok := it.Next()
			if !ok {
				return
			}
			if !yield(res.Value, res.Err) {
				it.Close()
				return
			}
		}
	}
}

// Completed reports whether the reader confirmed that the whole file was read
// and parsed. It is only meaningful after the iterator is exhausted.
func (it *Iterator[T]) Completed() bool {
	return it.didComplete
}

// Close stops both stages and waits for them to exit. Further calls to Next
// report exhaustion.
func (it *Iterator[T]) Close() error {
	if it.state == stateExhausted {
		return nil
	}
	it.pending = nil
	return it.finish()
}

func (it *Iterator[T]) finish() error {
	it.state = stateExhausted
	it.cancel()
	return it.group.Wait()
}

// Path returns the path of the file being parsed
func (it *Iterator[T]) Path() string {
	return it.path
}

// Stats returns a snapshot of the pipeline counters
func (it *Iterator[T]) Stats() Stats {
	return it.stats.snapshot()
}
