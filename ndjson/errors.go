package ndjson

import (
	"encoding/xml"
	"fmt"
)

// Kind classifies the failure modes an invocation of this package can
// produce: a contract violation, a configured resource ceiling, a
// filesystem failure, malformed XML, a mid-stream I/O failure, or an
// allocation failure.
type Kind int

const (
	// InvalidInput marks a contract violation on a public parameter
	// (empty target name, batch_size <= 0). Always raised before any I/O.
	InvalidInput Kind = iota
	// ResourceLimit marks a configured ceiling being exceeded: batch_size
	// above the maximum, or an encoded record exceeding the
	// WithMaxRecordBytes ceiling.
	ResourceLimit
	// FileError marks an input file that could not be opened or an output
	// file that could not be created. Always carries the offending path.
	FileError
	// ParseError marks malformed XML detected by the event iterator, or a
	// tag mismatch or unclosed element detected by the scope tracker.
	ParseError
	// IoError marks a read or write failure mid-stream.
	IoError
	// MemoryError marks an allocation failure for buffers or scratch.
	MemoryError
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "Invalid input"
	case ResourceLimit:
		return "Resource limit"
	case FileError:
		return "File error"
	case ParseError:
		return "XML parsing error"
	case IoError:
		return "I/O error"
	case MemoryError:
		return "Memory error"
	default:
		return "Error"
	}
}

// Error is the single error type every fallible operation in this package
// returns. It carries a Kind, a short stage-context string, a byte Offset
// when one is known (primarily for ParseError), and wraps the underlying
// cause so callers can still use errors.As/errors.Is against it.
type Error struct {
	Kind    Kind
	Context string
	Offset  int64 // -1 when unknown
	Err     error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Context != "" {
		msg += fmt.Sprintf(" (context: %s)", e.Context)
	}
	if e.Offset >= 0 {
		msg += fmt.Sprintf(" at byte offset %d", e.Offset)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, context string, err error) *Error {
	return &Error{Kind: kind, Context: context, Offset: -1, Err: err}
}

// withContext returns a copy of the error with Context set, unless Context
// is already populated (the innermost stage wins — the Driver only adds a
// stage string when one isn't already present).
func withContext(err error, context string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		if e.Context == "" {
			cp := *e
			cp.Context = context
			return &cp
		}
		return e
	}
	return newError(IoError, context, err)
}

// wrapParseError converts a raw decoding error (typically
// *encoding/xml.SyntaxError, but io errors and our own tag-mismatch errors
// pass through too) into a *Error of kind ParseError, attaching the byte
// offset reported by the decoder when available.
func wrapParseError(err error, offset int64) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	e := &Error{Kind: ParseError, Offset: offset, Err: err}
	if se, ok := err.(*xml.SyntaxError); ok {
		e.Err = se
	}
	return e
}
