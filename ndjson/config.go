package ndjson

import "github.com/rs/zerolog"

// Default and maximum batch sizes: the batch size controls how many encoded
// records the Batched Sink accumulates before flushing to the underlying
// writer.
const (
	DefaultBatchSize = 1000
	MaxBatchSize     = 1_000_000
)

// UnknownEntityPolicy controls how the XML Event Iterator handles a named
// entity reference it doesn't recognize (anything other than the five
// predefined entities and numeric character references). The reference
// contract requires a single consistent choice; PassThrough is the default.
type UnknownEntityPolicy int

const (
	// PassThroughUnknownEntities leaves an unrecognized entity reference in
	// the decoded text verbatim (including its "&...;" delimiters).
	PassThroughUnknownEntities UnknownEntityPolicy = iota
	// ErrorOnUnknownEntities surfaces a ParseError instead.
	ErrorOnUnknownEntities
)

// config holds every tunable of a pipeline invocation. Unexported and
// mutated only through Option functions passed variadically by callers.
type config struct {
	batchSize      int
	maxRecordBytes int64 // 0 means unlimited
	logger         zerolog.Logger
	entityPolicy   UnknownEntityPolicy
	legacyCharset  bool
	flushCallback  func(recordsFlushed, totalRecords int)
}

// Option mutates a pipeline's config. Constructed via the With* functions
// below and passed variadically to every public entry adapter.
type Option func(*config)

func defaultConfig() *config {
	return &config{
		batchSize:    DefaultBatchSize,
		logger:       zerolog.Nop(),
		entityPolicy: PassThroughUnknownEntities,
	}
}

// WithBatchSize overrides the number of records the sink accumulates before
// flushing. Must satisfy 1 <= batchSize <= MaxBatchSize; violations are
// caught by the Driver's input validation, not by this constructor.
func WithBatchSize(n int) Option {
	return func(c *config) { c.batchSize = n }
}

// WithMaxRecordBytes caps the encoded size of any single record; exceeding
// it surfaces a ResourceLimit error. Zero (the default) means unlimited.
func WithMaxRecordBytes(n int64) Option {
	return func(c *config) { c.maxRecordBytes = n }
}

// WithLogger attaches a zerolog.Logger the Driver uses for structured
// start/flush/completion/error diagnostics. Library calls that don't supply
// one get a no-op logger, so importing this package never produces
// unsolicited output.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithUnknownEntityPolicy selects how unrecognized named entity references
// are handled by the event iterator.
func WithUnknownEntityPolicy(p UnknownEntityPolicy) Option {
	return func(c *config) { c.entityPolicy = p }
}

// WithLegacyCharsets enables ISO-8859-1/Windows-1252 decoding for documents
// whose XML declaration names one of those encodings, by installing a
// CharsetReader on the underlying encoding/xml.Decoder.
func WithLegacyCharsets() Option {
	return func(c *config) { c.legacyCharset = true }
}

// WithFlushCallback registers a callback invoked after every sink flush
// with the number of records just flushed and the running total. The CLI
// uses this to drive a progress bar; library callers may leave it nil.
func WithFlushCallback(fn func(recordsFlushed, totalRecords int)) Option {
	return func(c *config) { c.flushCallback = fn }
}
