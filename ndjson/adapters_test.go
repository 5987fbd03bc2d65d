package ndjson

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStringToStringCountLawAndOrderLaw(t *testing.T) {
	xml := `<root>`
	for i := 0; i < 50; i++ {
		xml += `<x><n>` + string(rune('a'+i%26)) + `</n></x>`
	}
	xml += `</root>`

	out, err := ParseStringToString(xml, "x")
	require.NoError(t, err)

	lines := splitLines(out)
	require.Len(t, lines, 50)
	for i, line := range lines {
		require.True(t, len(line) > 0 && line[len(line)-1] != '\n')
		require.Equal(t, `{"n":["`+string(rune('a'+i%26))+`"]}`, line)
	}
}

func TestParseStringToStringBatchInvariance(t *testing.T) {
	xml := `<root>`
	for i := 0; i < 25; i++ {
		xml += `<x><n>i</n></x>`
	}
	xml += `</root>`

	small, err := ParseStringToString(xml, "x", WithBatchSize(1))
	require.NoError(t, err)
	large, err := ParseStringToString(xml, "x", WithBatchSize(1000))
	require.NoError(t, err)
	require.Equal(t, small, large)
}

func TestParseStringToFileAndParseFileToString(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.ndjson")

	count, err := ParseStringToFile(`<r><x><a>1</a></x><x><a>2</a></x></r>`, "x", outPath)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, "{\"a\":[\"1\"]}\n{\"a\":[\"2\"]}\n", string(data))

	inPath := filepath.Join(dir, "in.xml")
	require.NoError(t, os.WriteFile(inPath, []byte(`<r><x>hello</x></r>`), 0o644))
	out, err := ParseFileToString(inPath, "x")
	require.NoError(t, err)
	require.Equal(t, "\"hello\"\n", out)
}

func TestParseFileToFileMissingInputIsFileError(t *testing.T) {
	dir := t.TempDir()
	_, err := ParseFileToFile(filepath.Join(dir, "does-not-exist.xml"), "x", filepath.Join(dir, "out.ndjson"))
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, FileError, e.Kind)
}

func TestEmptyTargetNameIsInvalidInput(t *testing.T) {
	_, err := ParseStringToString("<r/>", "")
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, InvalidInput, e.Kind)
}

func TestBatchSizeValidation(t *testing.T) {
	_, err := ParseStringToString("<r/>", "x", WithBatchSize(0))
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, InvalidInput, e.Kind)

	_, err = ParseStringToString("<r/>", "x", WithBatchSize(MaxBatchSize+1))
	require.ErrorAs(t, err, &e)
	require.Equal(t, ResourceLimit, e.Kind)
}

func TestMismatchedCloseTagIsParseError(t *testing.T) {
	_, err := ParseStringToString(`<r><x><a>oops</b></x></r>`, "x")
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, ParseError, e.Kind)
}

func TestMismatchedCloseOutsideTargetIsParseError(t *testing.T) {
	// The mismatch is entirely outside the <x> subtree, so only a
	// document-wide check (not one scoped to the target) catches it.
	_, err := ParseStringToString(`<r><c></d><x>ok</x></r>`, "x")
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, ParseError, e.Kind)
}

func TestTruncatedDocumentIsParseError(t *testing.T) {
	_, err := ParseStringToString(`<r><x><a>hi</a>`, "x")
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, ParseError, e.Kind)
}

func TestParseStringToFileDoesNotTruncateOnInvalidInput(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.ndjson")
	require.NoError(t, os.WriteFile(outPath, []byte("preexisting content\n"), 0o644))

	_, err := ParseStringToFile("<r/>", "", outPath)
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, InvalidInput, e.Kind)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, "preexisting content\n", string(data))
}

func TestParseFileToFileDoesNotTruncateOnInvalidInput(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.xml")
	require.NoError(t, os.WriteFile(inPath, []byte(`<r><x>hi</x></r>`), 0o644))
	outPath := filepath.Join(dir, "out.ndjson")
	require.NoError(t, os.WriteFile(outPath, []byte("preexisting content\n"), 0o644))

	_, err := ParseFileToFile(inPath, "x", outPath, WithBatchSize(0))
	require.Error(t, err)
	var e *Error
	require.ErrorAs(t, err, &e)
	require.Equal(t, InvalidInput, e.Kind)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Equal(t, "preexisting content\n", string(data))
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return lines
}
