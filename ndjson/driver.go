package ndjson

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// buildConfig applies opts over the defaults and validates every input that
// does not require touching a Source or Sink. Called before any sink is
// constructed, so that an invalid target or batch size is reported before a
// file sink has a chance to create or truncate its output path.
func buildConfig(target string, opts []Option) (*config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if target == "" {
		return nil, newError(InvalidInput, "validating target element name", fmt.Errorf("target element name must not be empty"))
	}
	if cfg.batchSize <= 0 {
		return nil, newError(InvalidInput, "validating batch size", fmt.Errorf("batch_size must be >= 1, got %d", cfg.batchSize))
	}
	if cfg.batchSize > MaxBatchSize {
		return nil, newError(ResourceLimit, "validating batch size", fmt.Errorf("batch_size %d exceeds maximum %d", cfg.batchSize, MaxBatchSize))
	}

	return cfg, nil
}

// run wires the Source through the event iterator, scope tracker, record
// assembler and encoder into sink, and drives the event loop to EOF. cfg
// must already be validated by buildConfig. It returns the number of
// records emitted.
func run(src Source, target string, sink underlyingSink, cfg *config) (int, error) {
	runID := uuid.NewString()
	log := cfg.logger.With().Str("run_id", runID).Str("target", target).Logger()

	reader, err := src.Open()
	if err != nil {
		_ = sink.Close()
		return 0, withContext(err, fmt.Sprintf("opening source %s", src.Label()))
	}
	defer reader.Close()

	log.Debug().Str("source", src.Label()).Int("batch_size", cfg.batchSize).Msg("starting conversion")

	batched := newBatchedSink(sink, cfg.batchSize, func(flushed, total int) {
		log.Debug().Int("flushed", flushed).Int("total", total).Msg("flushed batch")
		if cfg.flushCallback != nil {
			cfg.flushCallback(flushed, total)
		}
	})

	count, err := drive(reader, target, cfg, batched)
	if err != nil {
		log.Error().Err(err).Msg("conversion failed")
		_ = batched.Close()
		return count, withContext(err, fmt.Sprintf("converting %s", src.Label()))
	}

	if closeErr := batched.Close(); closeErr != nil {
		log.Error().Err(closeErr).Msg("final flush failed")
		return count, withContext(closeErr, fmt.Sprintf("closing sink for %s", src.Label()))
	}

	log.Info().Int("records", count).Msg("conversion complete")
	return count, nil
}

// drive runs the single-threaded pull loop described by the Driver/Tracker/
// Assembler state machine: Outside until the target opens, Inside while a
// target subtree is open (tracking nesting via the scope tracker and
// building values via the assembler), back to Outside (and a flush trigger)
// on the matching close. The scope tracker validates tag matching and
// document termination for the whole document, not only inside the target.
func drive(r io.Reader, target string, cfg *config, sink *BatchedSink) (int, error) {
	it := newEventIterator(r, cfg.legacyCharset, cfg.entityPolicy)
	scope := newScopeTracker(target)
	asm := newAssembler()
	count := 0

	for {
		tok, offset, err := it.next()
		if err == io.EOF {
			if docErr := scope.atDocumentEnd(); docErr != nil {
				return count, wrapParseError(docErr, offset)
			}
			return count, nil
		}
		if err != nil {
			return count, wrapParseError(err, offset)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := qualifiedName(t.Name)
			scope.onStart(name)
			if scope.insideTarget() {
				asm.startElement(name, decodeAttrs(t.Attr))
			}

		case xml.CharData:
			if scope.insideTarget() && asm.depth() > 0 {
				asm.appendText(string(t))
			}

		case xml.EndElement:
			name := qualifiedName(t.Name)
			wasInside := scope.insideTarget()
			if _, err := scope.onEnd(name); err != nil {
				return count, wrapParseError(err, offset)
			}

			if wasInside {
				value, emitted := asm.endElement()
				if emitted {
					line := EncodeRecord(value)
					if cfg.maxRecordBytes > 0 && int64(len(line)) > cfg.maxRecordBytes {
						return count, newError(ResourceLimit, fmt.Sprintf("encoding record at byte offset %d", offset),
							fmt.Errorf("record size %d exceeds configured maximum %d bytes", len(line), cfg.maxRecordBytes))
					}
					if err := sink.WriteRecord(line); err != nil {
						return count, err
					}
					count++
				}
			}
		}
	}
}
