package jsonl

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrNotCompleted is the last item of a stream that ended before the whole
// file was read and parsed.
var ErrNotCompleted = errors.New("jsonl: stream ended without completing the file")

// IOError reports a failure to open or read the file. It ends the stream.
type IOError struct {
	Msg  string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("jsonl: %s %s: %v", e.Msg, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParsingError reports a JSON value that could not be decoded. Decoding
// continues with the following values.
type ParsingError struct {
	Err error
}

func (e *ParsingError) Error() string {
	return "jsonl: cannot parse value: " + e.Err.Error()
}

func (e *ParsingError) Unwrap() error {
	return e.Err
}
