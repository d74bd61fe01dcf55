// Package jsonl parses JSON lines files with a two stage pipeline.
//
// One goroutine reads lines from the file and groups them into batches of a
// fixed number of lines. A second goroutine decodes every batch into values of
// the caller's type. Both stages are connected by small bounded channels, so
// reading (and decompressing) overlaps with decoding while only a few batches
// are in flight at any time.
//
// Files are opened with miscfs.OpenRead, so compressed files are read
// transparently.
//
//	it := jsonl.Parse[Record]("./events.jsonl.xz", jsonl.DefaultBatchSize)
//	defer it.Close()
//	for rec, err := range it.All() {
//	    if err != nil {
//	        // *jsonl.IOError, *jsonl.ParsingError or jsonl.ErrNotCompleted
//	        continue
//	    }
//	    use(rec)
//	}
//	if !it.Completed() {
//	    // the file was not read completely
//	}
//
// A parsing error only affects the value it was reported for. An I/O error ends
// the stream. A stream that ends without the reader confirming that the whole
// file was read yields ErrNotCompleted exactly once as its last item, so a
// caller must treat anything other than clean exhaustion after completion as a
// partial read.
package jsonl
