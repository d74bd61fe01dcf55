package jsonl

import "context"

type statusKind uint8

const (
	statusData statusKind = iota
	statusCompleted
	statusError
)

// processingStatus is the only message type exchanged between stages.
// A channel carries at most one statusCompleted and nothing after it.
type processingStatus[B any] struct {
	kind statusKind
	data B
	err  error
}

func dataStatus[B any](data B) processingStatus[B] {
	return processingStatus[B]{kind: statusData, data: data}
}

func completedStatus[B any]() processingStatus[B] {
	return processingStatus[B]{kind: statusCompleted}
}

func errorStatus[B any](err error) processingStatus[B] {
	return processingStatus[B]{kind: statusError, err: err}
}

// send blocks until s is queued or ctx is done. It reports whether s was sent.
func send[B any](ctx context.Context, ch chan<- processingStatus[B], s processingStatus[B]) bool {
	select {
	case ch <- s:
		return true
	case <-ctx.Done():
		return false
	}
}
