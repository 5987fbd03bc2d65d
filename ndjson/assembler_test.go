package ndjson

import "testing"

func TestAssemblerLeafWithAttributesOnly(t *testing.T) {
	a := newAssembler()
	a.startElement("x", []attribute{{Name: "id", Value: "1"}})
	value, emitted := a.endElement()
	if !emitted {
		t.Fatal("expected emission on closing the only open frame")
	}
	if !value.IsObject() {
		t.Fatal("expected an object for an attribute-only element")
	}
	if got := value.ObjectValue().Scalar("@id").StringValue(); got != "1" {
		t.Errorf("expected @id=1, got %q", got)
	}
}

func TestAssemblerLeafWithTextOnly(t *testing.T) {
	a := newAssembler()
	a.startElement("a", nil)
	a.appendText("  hi  ")
	value, _ := a.endElement()
	if !value.IsString() || value.StringValue() != "hi" {
		t.Errorf("expected trimmed string \"hi\", got %+v", value)
	}
}

func TestAssemblerEmptyLeafIsNull(t *testing.T) {
	a := newAssembler()
	a.startElement("a", nil)
	value, _ := a.endElement()
	if !value.IsNull() {
		t.Error("expected an empty leaf to encode as null")
	}
}

func TestAssemblerAttributesWithTextUsesTextConvention(t *testing.T) {
	a := newAssembler()
	a.startElement("t", []attribute{{Name: "lang", Value: "en"}})
	a.appendText("Hi")
	value, _ := a.endElement()
	obj := value.ObjectValue()
	if obj.Scalar("@lang").StringValue() != "en" {
		t.Error("expected @lang attribute preserved")
	}
	if obj.Scalar("#text").StringValue() != "Hi" {
		t.Error("expected #text convention key with trimmed text")
	}
}

func TestAssemblerChildrenDiscardMixedContentText(t *testing.T) {
	a := newAssembler()
	a.startElement("r", nil)
	a.appendText("before")
	a.startElement("y", nil)
	a.appendText("1")
	a.endElement()
	a.appendText("between")
	a.startElement("y", nil)
	a.appendText("2")
	a.endElement()
	a.appendText("after")
	value, emitted := a.endElement()
	if !emitted {
		t.Fatal("expected emission on closing the target frame")
	}
	obj := value.ObjectValue()
	if obj.Has("#text") {
		t.Error("text should be discarded once children are present")
	}
	arr := obj.ChildArray("y")
	if len(arr) != 2 || arr[0].StringValue() != "1" || arr[1].StringValue() != "2" {
		t.Errorf("expected [\"1\",\"2\"], got %+v", arr)
	}
}

func TestAssemblerRepeatedChildrenAccumulateInOrder(t *testing.T) {
	a := newAssembler()
	a.startElement("r", nil)
	for _, text := range []string{"1", "2", "3"} {
		a.startElement("y", nil)
		a.appendText(text)
		a.endElement()
	}
	value, _ := a.endElement()
	arr := value.ObjectValue().ChildArray("y")
	if len(arr) != 3 {
		t.Fatalf("expected 3 children, got %d", len(arr))
	}
	for i, want := range []string{"1", "2", "3"} {
		if arr[i].StringValue() != want {
			t.Errorf("entry %d: expected %q, got %q", i, want, arr[i].StringValue())
		}
	}
}

func TestAssemblerNestedChildBecomesObjectWithTextConvention(t *testing.T) {
	a := newAssembler()
	a.startElement("x", nil)
	a.startElement("t", []attribute{{Name: "lang", Value: "en"}})
	a.appendText("Hi")
	a.endElement()
	value, _ := a.endElement()
	arr := value.ObjectValue().ChildArray("t")
	if len(arr) != 1 {
		t.Fatalf("expected one t child, got %d", len(arr))
	}
	tObj := arr[0].ObjectValue()
	if tObj.Scalar("@lang").StringValue() != "en" || tObj.Scalar("#text").StringValue() != "Hi" {
		t.Errorf("expected {@lang:en,#text:Hi}, got %+v", tObj)
	}
}
