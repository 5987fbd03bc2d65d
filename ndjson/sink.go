package ndjson

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

// underlyingSink is the destination a BatchedSink ultimately flushes to:
// either an in-memory accumulator (string-sink variant) or a buffered file
// handle (file-sink variant).
type underlyingSink interface {
	io.Writer
	Close() error
	Label() string
}

// stringSink accumulates every flushed byte into an in-memory buffer,
// returned to the caller as the final NDJSON string.
type stringSink struct {
	buf bytes.Buffer
}

func newStringSink() *stringSink { return &stringSink{} }

func (s *stringSink) Write(p []byte) (int, error) { return s.buf.Write(p) }

func (s *stringSink) Close() error { return nil }

func (s *stringSink) Label() string { return "<string output>" }

func (s *stringSink) String() string { return s.buf.String() }

// fileSink is a buffered writable file handle, created or truncated at
// construction and closed once at pipeline end.
type fileSink struct {
	path string
	f    *os.File
	w    *bufio.Writer
}

func newFileSink(path string) (*fileSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, &Error{Kind: FileError, Offset: -1, Context: fmt.Sprintf("creating output file %s", path), Err: err}
	}
	return &fileSink{path: path, f: f, w: bufio.NewWriterSize(f, recommendedBufferSize)}, nil
}

func (s *fileSink) Write(p []byte) (int, error) { return s.w.Write(p) }

func (s *fileSink) Close() error {
	flushErr := s.w.Flush()
	closeErr := s.f.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

func (s *fileSink) Label() string { return s.path }

// BatchedSink buffers encoded NDJSON records in a growable byte buffer and
// flushes to the underlying writer whenever the record count reaches
// batchSize, at end-of-pipeline, or on error (best-effort). Writes go
// directly to the underlying io.Writer with no unnecessary intermediate
// allocation beyond the pending-batch buffer itself.
type BatchedSink struct {
	underlying   underlyingSink
	batchSize    int
	buf          bytes.Buffer
	pending      int
	totalFlushed int
	onFlush      func(recordsFlushed, totalRecords int)
}

func newBatchedSink(underlying underlyingSink, batchSize int, onFlush func(int, int)) *BatchedSink {
	return &BatchedSink{underlying: underlying, batchSize: batchSize, onFlush: onFlush}
}

// WriteRecord appends one already-encoded NDJSON line (including its
// trailing '\n') to the pending buffer, flushing if the batch size has been
// reached.
func (s *BatchedSink) WriteRecord(line []byte) error {
	s.buf.Write(line)
	s.pending++
	if s.pending >= s.batchSize {
		return s.Flush()
	}
	return nil
}

// Flush writes any pending bytes to the underlying sink and resets the
// pending counter. A no-op when nothing is pending.
func (s *BatchedSink) Flush() error {
	if s.buf.Len() == 0 {
		return nil
	}
	if _, err := s.underlying.Write(s.buf.Bytes()); err != nil {
		return &Error{Kind: IoError, Offset: -1, Context: fmt.Sprintf("writing to %s", s.underlying.Label()), Err: err}
	}
	s.totalFlushed += s.pending
	flushed := s.pending
	s.buf.Reset()
	s.pending = 0
	if s.onFlush != nil {
		s.onFlush(flushed, s.totalFlushed)
	}
	return nil
}

// Close flushes any remaining bytes (best-effort — a flush error is
// returned but the underlying sink is still closed) and closes the
// underlying sink.
func (s *BatchedSink) Close() error {
	flushErr := s.Flush()
	closeErr := s.underlying.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
