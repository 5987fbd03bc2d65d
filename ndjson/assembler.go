package ndjson

import "strings"

// frame is the Assembler's per-open-element working state: an in-progress
// Object, a text buffer accumulating character data and CDATA as it arrives,
// and a flag recording whether any child element has been merged in yet.
type frame struct {
	name        string
	obj         *Object
	text        strings.Builder
	hasChildren bool
}

// assembler builds one Value per target-element occurrence from a stream of
// start/text/end events, operating only while a target scope is open. It
// holds a stack of frames, one per open descendant including the target
// itself; the stack is empty both before the target opens and immediately
// after a record is emitted.
type assembler struct {
	frames []*frame
}

func newAssembler() *assembler {
	return &assembler{}
}

// depth reports how many frames are currently open.
func (a *assembler) depth() int {
	return len(a.frames)
}

// startElement pushes a new frame for name, seeding its Object with one
// scalar per attribute.
func (a *assembler) startElement(name string, attrs []attribute) {
	obj := newObject()
	for _, attr := range attrs {
		obj.PutScalar("@"+attr.Name, stringValue(attr.Value))
	}
	a.frames = append(a.frames, &frame{name: name, obj: obj})
}

// appendText accumulates character data or CDATA content onto the
// currently open frame's pending text buffer. CDATA and neighboring text
// are concatenated into the same buffer; the distinction between them is
// not preserved.
func (a *assembler) appendText(s string) {
	if len(a.frames) == 0 {
		return
	}
	a.frames[len(a.frames)-1].text.WriteString(s)
}

// endElement pops the top frame without checking its name: the caller
// validates the closing tag against the scope tracker before calling, and
// the scope tracker and assembler always advance in lockstep.
//
// If the popped frame was the target itself (the stack is now empty), the
// assembled Value is returned for emission. Otherwise the Value is merged
// into the new top frame's child array under the popped frame's name, and
// (nil, false) is returned.
func (a *assembler) endElement() (emitted *Value, ok bool) {
	n := len(a.frames)
	f := a.frames[n-1]
	a.frames = a.frames[:n-1]

	value := frameValue(f)

	if len(a.frames) == 0 {
		return value, true
	}

	parent := a.frames[len(a.frames)-1]
	parent.obj.AppendChild(f.name, value)
	parent.hasChildren = true
	return nil, false
}

// frameValue derives the Value a closing frame contributes to its parent
// (or to the final emission, for the target frame itself):
//
//   - no keys, no text       -> Null
//   - no keys, text          -> String(trimmed text)
//   - only "@"-keys, no text -> Object(attrs)
//   - only "@"-keys, text    -> Object(attrs, "#text": trimmed text)
//   - any child entries      -> Object(...); text is discarded
func frameValue(f *frame) *Value {
	trimmed := strings.Trim(f.text.String(), " \t\r\n")
	hasText := trimmed != ""

	if f.obj.Len() == 0 {
		if !hasText {
			return nullValue()
		}
		return stringValue(trimmed)
	}

	if !f.hasChildren {
		if hasText {
			f.obj.PutScalar("#text", stringValue(trimmed))
		}
		return objectValue(f.obj)
	}

	return objectValue(f.obj)
}
