package jsonl

import (
	"context"
	"runtime"

	"github.com/absfs/miscfs"
	"golang.org/x/sync/errgroup"
)

// Parse streams the JSON values of the file at path, reading batchSize lines
// at a time. Compressed files are decompressed transparently.
//
// The file is opened in the background; failures to open or read it are
// reported through the iterator. A missing or unreadable file yields one
// *IOError, then ErrNotCompleted, then the end of the stream.
func Parse[T any](path string, batchSize uint32) *Iterator[T] {
	return ParseContext[T](context.Background(), nil, path, batchSize)
}

// ParseContext is like Parse but reads path from fsys and stops when ctx is
// done. A nil fsys means miscfs.Default(). Open and read failures surface the
// same way as in Parse.
func ParseContext[T any](ctx context.Context, fsys *miscfs.FS, path string, batchSize uint32, opts ...Option) *Iterator[T] {
	if fsys == nil {
		fsys = miscfs.Default()
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if batchSize < MinBatchSize {
		batchSize = MinBatchSize
	}

	ctx, cancel := context.WithCancel(ctx)
	st := &stats{}

	lines := make(chan processingStatus[string], o.channelCapacity)
	results := make(chan processingStatus[[]Result[T]], o.channelCapacity)

	r := &lineReader{
		fsys:      fsys,
		path:      path,
		batchSize: int(batchSize),
		log:       o.logger,
		stats:     st,
	}
	p := &parser[T]{log: o.logger, stats: st}

	g := &errgroup.Group{}
	g.Go(func() error {
		r.run(ctx, lines)
		return nil
	})
	g.Go(func() error {
		p.run(ctx, lines, results)
		return nil
	})

	it := &Iterator[T]{
		results: results,
		path:    path,
		cancel:  cancel,
		group:   g,
		stats:   st,
		log:     o.logger.With().Str("file", path).Logger(),
	}
	runtime.AddCleanup(it, func(cancel context.CancelFunc) { cancel() }, cancel)

	o.logger.Debug().Str("file", path).Uint32("batch_size", batchSize).Msg("pipeline started")
	return it
}
