package jsonl

import (
	"sync/atomic"

	"github.com/rs/zerolog"
)

const (
	// DefaultBatchSize is the default number of lines per batch.
	DefaultBatchSize = 1024

	// MinBatchSize is the smallest batch size. Smaller values are raised to it.
	MinBatchSize = 1

	// DefaultChannelCapacity is the number of batches buffered between stages.
	DefaultChannelCapacity = 2
)

type options struct {
	channelCapacity int
	logger          zerolog.Logger
}

func defaultOptions() options {
	return options{
		channelCapacity: DefaultChannelCapacity,
		logger:          zerolog.Nop(),
	}
}

// Option configures a pipeline
type Option func(*options)

// WithChannelCapacity sets the number of batches buffered between the stages
// and between the parser and the iterator. Values below 1 are ignored.
func WithChannelCapacity(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.channelCapacity = n
		}
	}
}

// WithLogger sets the logger of both stages and the iterator
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Stats holds pipeline counters
type Stats struct {
	LinesRead     int64
	BatchesRead   int64
	BatchesParsed int64
	ValuesDecoded int64
	ParseErrors   int64
}

type stats struct {
	linesRead     atomic.Int64
	batchesRead   atomic.Int64
	batchesParsed atomic.Int64
	valuesDecoded atomic.Int64
	parseErrors   atomic.Int64
}

func (s *stats) snapshot() Stats {
	return Stats{
		LinesRead:     s.linesRead.Load(),
		BatchesRead:   s.batchesRead.Load(),
		BatchesParsed: s.batchesParsed.Load(),
		ValuesDecoded: s.valuesDecoded.Load(),
		ParseErrors:   s.parseErrors.Load(),
	}
}
