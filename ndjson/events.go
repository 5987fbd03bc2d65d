package ndjson

import (
	"encoding/xml"
	"io"
)

// eventIterator is a pull-style tokenizer yielding one XML event per call to
// next, ending in exactly one io.EOF. Built directly on
// encoding/xml.Decoder.RawToken: lazy, finite, decodes the five predefined
// entities and numeric character references in text and attribute values
// (CDATA content is passed through raw), silently skips comments/PI/Decl/DOCTYPE, and reports a
// self-closing element as a StartElement immediately followed by an
// EndElement. RawToken performs no tag matching of its own and never
// detects a document truncated with elements still open; the scope tracker
// takes over both checks for the whole document.
//
// encoding/xml already merges CDATA sections into CharData tokens (it does
// not preserve the CDATA/plain-text distinction at the token level), which
// matches this pipeline's requirement to concatenate CDATA and neighboring
// text into one string buffer per frame without any extra bookkeeping.
type eventIterator struct {
	decoder *xml.Decoder
}

func newEventIterator(r io.Reader, legacyCharset bool, entityPolicy UnknownEntityPolicy) *eventIterator {
	d := xml.NewDecoder(r)
	if legacyCharset {
		d.CharsetReader = charsetReader
	}
	if entityPolicy == PassThroughUnknownEntities {
		// Strict is encoding/xml's only exposed knob for tolerating an
		// unrecognized named entity reference; disabling it also relaxes a
		// few adjacent well-formedness checks (e.g. duplicate attribute
		// names), which is an accepted tradeoff of choosing pass-through.
		d.Strict = false
	}
	return &eventIterator{decoder: d}
}

// next returns the next token and the byte offset it started at. On
// end-of-document it returns a nil token and io.EOF. Any other error is a
// malformed document.
//
// Uses RawToken rather than Token deliberately: Token performs namespace
// resolution, rewriting a prefixed element's Name.Space from the literal
// prefix text to the URI it was declared against (and requires nesting to
// already be well-formed to do so). Element and attribute names here are
// opaque qualified-name strings compared byte-for-byte, with prefixes kept
// verbatim rather than resolved — so RawToken, which leaves Name.Space as
// the raw prefix string and performs no start/end matching of its own, is
// the right primitive; the scope tracker takes over the mismatch detection
// RawToken skips. Entity and numeric character reference
// decoding happens during RawToken's low-level text scanning, the same as
// with Token, so that part of the contract is unaffected.
func (it *eventIterator) next() (xml.Token, int64, error) {
	offset := it.decoder.InputOffset()
	tok, err := it.decoder.RawToken()
	if err != nil {
		return nil, offset, err
	}
	return xml.CopyToken(tok), offset, nil
}

// qualifiedName reconstructs the verbatim qualified name of an element or
// attribute from its RawToken-produced xml.Name: prefix and local part
// joined by ':' when a prefix is present. Names are compared byte-for-byte
// elsewhere in this package.
func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// attribute is one decoded (name, value) pair off a StartElement, with the
// name already reduced to its verbatim qualified-name string.
type attribute struct {
	Name  string
	Value string
}

// decodeAttrs converts a StartElement's raw xml.Attr slice to attributes
// with qualified names, preserving document order.
func decodeAttrs(attrs []xml.Attr) []attribute {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]attribute, len(attrs))
	for i, a := range attrs {
		out[i] = attribute{Name: qualifiedName(a.Name), Value: a.Value}
	}
	return out
}
