package jsonl

import (
	"context"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// parser is the second stage
type parser[T any] struct {
	log   zerolog.Logger
	stats *stats
}

// run decodes every batch from in and sends the results to out. Errors are
// passed through. A completed status is sent only after in is closed and only
// if the reader reported one. run closes out when it returns.
func (p *parser[T]) run(ctx context.Context, in <-chan processingStatus[string], out chan<- processingStatus[[]Result[T]]) {
	defer close(out)

	log := p.log.With().Str("stage", "parser").Logger()
	log.Info().Msg("start background parsing")

	completed := false
	for status := range in {
		switch status.kind {
		case statusError:
			log.Info().Err(status.err).Msg("pass through error")
			if !send(ctx, out, errorStatus[[]Result[T]](status.err)) {
				return
			}
		case statusCompleted:
			completed = true
		case statusData:
			batch := p.decodeBatch(status.data)
			if !send(ctx, out, dataStatus(batch)) {
				log.Debug().Msg("receiver is gone, stop parsing")
				return
			}
			p.stats.batchesParsed.Add(1)
			log.Debug().Int("values", len(batch)).Msg("batch parsed")
		}
	}

	if !completed {
		log.Warn().Msg("did not receive complete message from reader")
		return
	}
	if send(ctx, out, completedStatus[[]Result[T]]()) {
		log.Info().Msg("successfully completed")
	}
}

// decodeBatch decodes every JSON value in text, one result per value.
//
// A value that is not valid JSON yields one error and decoding resumes at the
// line after the one the broken value starts on. A valid value that does not
// fit T yields one error and does not disturb its neighbours.
func (p *parser[T]) decodeBatch(text string) []Result[T] {
	var results []Result[T]
	fail := func(err error) {
		results = append(results, Result[T]{Err: &ParsingError{Err: err}})
		p.stats.parseErrors.Add(1)
	}

	// base is the offset of the decoder's input within text
	base, pos := 0, 0
	dec := json.NewDecoder(strings.NewReader(text))
	for {
		start := skipSpace(text, pos)
		if start == len(text) {
			return results
		}

		var raw json.RawMessage
		err := dec.Decode(&raw)
		if err == nil {
			end := base + int(dec.InputOffset())
			if end <= start || end > len(text) {
				err = errors.Errorf("decoder stopped at offset %d outside the value at %d", end, start)
			} else {
				value := []byte(text[start:end])
				var v T
				if err = json.Unmarshal(value, &v); err == nil {
					results = append(results, Result[T]{Value: v})
					p.stats.valuesDecoded.Add(1)
					pos = end
					continue
				}
				if json.Valid(value) {
					fail(err)
					pos = end
					continue
				}
			}
		}

		// value boundaries are lost, skip to the next line
		fail(err)
		nl := strings.IndexByte(text[start:], '\n')
		if nl < 0 {
			return results
		}
		pos = start + nl + 1
		base = pos
		dec = json.NewDecoder(strings.NewReader(text[pos:]))
	}
}

func skipSpace(s string, i int) int {
	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\r', '\n':
			i++
		default:
			return i
		}
	}
	return i
}
