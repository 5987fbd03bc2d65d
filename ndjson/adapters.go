// Package ndjson streams XML documents into newline-delimited JSON by
// extracting every occurrence of a caller-named target element and
// emitting one compact JSON line per occurrence.
package ndjson

// ParseStringToString converts an in-memory XML document to an in-memory
// NDJSON string, extracting every occurrence of target.
func ParseStringToString(xmlText, target string, opts ...Option) (string, error) {
	cfg, err := buildConfig(target, opts)
	if err != nil {
		return "", err
	}
	src := NewStringSource(xmlText)
	sink := newStringSink()
	if _, err := run(src, target, sink, cfg); err != nil {
		return "", err
	}
	return sink.String(), nil
}

// ParseStringToFile converts an in-memory XML document to an NDJSON file at
// outputPath (created or truncated), returning the number of records
// emitted. Inputs are validated before outputPath is touched, so an invalid
// target or batch size never destroys existing content there.
func ParseStringToFile(xmlText, target, outputPath string, opts ...Option) (int, error) {
	cfg, err := buildConfig(target, opts)
	if err != nil {
		return 0, err
	}
	src := NewStringSource(xmlText)
	sink, err := newFileSink(outputPath)
	if err != nil {
		return 0, err
	}
	return run(src, target, sink, cfg)
}

// ParseFileToString converts the XML document at inputPath to an in-memory
// NDJSON string.
func ParseFileToString(inputPath, target string, opts ...Option) (string, error) {
	cfg, err := buildConfig(target, opts)
	if err != nil {
		return "", err
	}
	src := NewFileSource(inputPath)
	sink := newStringSink()
	if _, err := run(src, target, sink, cfg); err != nil {
		return "", err
	}
	return sink.String(), nil
}

// ParseFileToFile converts the XML document at inputPath to an NDJSON file
// at outputPath (created or truncated), returning the number of records
// emitted. Inputs are validated before outputPath is touched, so an invalid
// target or batch size never destroys existing content there.
func ParseFileToFile(inputPath, target, outputPath string, opts ...Option) (int, error) {
	cfg, err := buildConfig(target, opts)
	if err != nil {
		return 0, err
	}
	src := NewFileSource(inputPath)
	sink, err := newFileSink(outputPath)
	if err != nil {
		return 0, err
	}
	return run(src, target, sink, cfg)
}
