package ndjson

import (
	"bytes"
	"fmt"
)

// EncodeRecord serializes one assembled Value to a compact, single-line
// UTF-8 JSON fragment terminated by a single '\n'.
//
// Writes bytes directly to a buffer rather than building an intermediate
// tree for encoding/json to walk, and escapes strings with a hand-rolled
// loop instead of delegating to encoding/json.Marshal: encoding/json
// HTML-escapes '<', '>' and '&' by default, and every drop-in-compatible
// replacement preserves that behavior for compatibility. This pipeline's
// output must carry markup-looking characters through unescaped, so a
// general-purpose marshaler is the wrong tool — the escaper below is one
// string-escaping loop plus recursive Object/array emission.
func EncodeRecord(v *Value) []byte {
	var buf bytes.Buffer
	encodeValue(&buf, v)
	buf.WriteByte('\n')
	return buf.Bytes()
}

func encodeValue(buf *bytes.Buffer, v *Value) {
	switch {
	case v.IsNull():
		buf.WriteString("null")
	case v.IsString():
		encodeJSONString(buf, v.StringValue())
	case v.IsObject():
		encodeObject(buf, v.ObjectValue())
	default:
		buf.WriteString("null")
	}
}

func encodeObject(buf *bytes.Buffer, o *Object) {
	buf.WriteByte('{')
	for i, k := range o.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodeJSONString(buf, k)
		buf.WriteByte(':')
		if o.IsChildKey(k) {
			encodeArray(buf, o.ChildArray(k))
		} else {
			encodeValue(buf, o.Scalar(k))
		}
	}
	buf.WriteByte('}')
}

func encodeArray(buf *bytes.Buffer, items []*Value) {
	buf.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodeValue(buf, item)
	}
	buf.WriteByte(']')
}

// encodeJSONString writes s as a double-quoted JSON string, escaping '"',
// '\\', the \b \f \n \r \t shorthands, and any other control character
// (< 0x20) as \u00XX. Every other byte — including every continuation byte
// of a multi-byte UTF-8 sequence — is copied through verbatim, since none of
// them can collide with an ASCII control character or quote/backslash.
func encodeJSONString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if c < 0x20 {
				fmt.Fprintf(buf, `\u%04x`, c)
			} else {
				buf.WriteByte(c)
			}
		}
	}
	buf.WriteByte('"')
}
