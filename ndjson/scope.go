package ndjson

import "fmt"

// scopeTracker maintains the full stack of currently open element names for
// the whole document — not only inside the target subtree — so that a
// mismatched close or a truncated document is caught no matter where it
// occurs, not only while a target is open. targetDepth is -1 when the
// target is not currently open; invariant: whenever targetDepth >= 0,
// targetDepth <= len(stack).
type scopeTracker struct {
	target      string
	stack       []string
	targetDepth int
}

func newScopeTracker(target string) *scopeTracker {
	return &scopeTracker{target: target, targetDepth: -1}
}

// insideTarget reports whether the target element is currently open.
func (s *scopeTracker) insideTarget() bool { return s.targetDepth >= 0 }

// onStart advances the tracker past a StartElement with the given name,
// entering the target scope the first time name matches at the current
// depth.
func (s *scopeTracker) onStart(name string) {
	s.stack = append(s.stack, name)
	if s.targetDepth < 0 && name == s.target {
		s.targetDepth = len(s.stack)
	}
}

// onEnd advances the tracker past an EndElement with the given name. It
// reports a fatal parse error if name does not match the innermost
// currently open element, anywhere in the document — this is the
// tag-matching check encoding/xml.Decoder.Token normally performs itself,
// which RawToken deliberately skips (see events.go). recordComplete is true
// exactly when this close matches the currently open target's depth, i.e.
// the target subtree has just finished.
func (s *scopeTracker) onEnd(name string) (recordComplete bool, err error) {
	depth := len(s.stack)
	if depth == 0 || s.stack[depth-1] != name {
		return false, fmt.Errorf("mismatched closing tag </%s>", name)
	}
	s.stack = s.stack[:depth-1]
	if depth == s.targetDepth {
		recordComplete = true
		s.targetDepth = -1
	}
	return recordComplete, nil
}

// atDocumentEnd reports an error if any element is still open when the
// document ends — an unterminated document must surface a parse error
// rather than silently behave as "zero records found."
func (s *scopeTracker) atDocumentEnd() error {
	if len(s.stack) == 0 {
		return nil
	}
	return fmt.Errorf("unexpected end of document: %d element(s) still open (innermost <%s>)", len(s.stack), s.stack[len(s.stack)-1])
}
