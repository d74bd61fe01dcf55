package jsonl

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/absfs/miscfs"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// lineReader is the first stage. It owns the file.
type lineReader struct {
	fsys      *miscfs.FS
	path      string
	batchSize int
	log       zerolog.Logger
	stats     *stats
}

// run sends batches of up to batchSize lines, followed by one completed
// status once the end of the file is reached. Any error is sent as the last
// message. run closes out when it returns.
func (r *lineReader) run(ctx context.Context, out chan<- processingStatus[string]) {
	defer close(out)

	log := r.log.With().Str("stage", "reader").Str("file", r.path).Logger()
	log.Info().Msg("start background reading")

	f, err := r.fsys.OpenRead(r.path)
	if err != nil {
		log.Warn().Err(err).Msg("background reading cannot open file")
		send(ctx, out, errorStatus[string](&IOError{
			Msg:  "cannot open file",
			Path: r.path,
			Err:  errors.WithStack(err),
		}))
		return
	}
	defer f.Close()

	rdr := bufio.NewReader(f)
	for eof := false; !eof; {
		if ctx.Err() != nil {
			return
		}

		var batch strings.Builder
		lines := 0
		for lines < r.batchSize {
			line, err := rdr.ReadString('\n')
			if len(line) > 0 {
				batch.WriteString(line)
				lines++
			}
			if err == io.EOF {
				eof = true
				break
			}
			if err != nil {
				log.Warn().Err(err).Int("lines", lines).Msg("background reading cannot read line")
				send(ctx, out, errorStatus[string](&IOError{
					Msg:  "cannot read line",
					Path: r.path,
					Err:  errors.WithStack(err),
				}))
				return
			}
		}
		if lines == 0 {
			break
		}

		r.stats.linesRead.Add(int64(lines))
		if !send(ctx, out, dataStatus(batch.String())) {
			log.Debug().Msg("receiver is gone, stop reading")
			return
		}
		r.stats.batchesRead.Add(1)
		log.Debug().Int("lines", lines).Msg("sent batch")
	}

	if send(ctx, out, completedStatus[string]()) {
		log.Info().Int64("lines", r.stats.linesRead.Load()).Msg("successfully read file")
	}
}
