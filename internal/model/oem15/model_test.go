package oem15

import "testing"

func TestFieldEqual(t *testing.T) {
	a := &Field{
		Name:     "value",
		IsAbout:  []*IsAbout{{Name: "wind", Path: "oeo:1"}},
		Resource: "x",
	}
	b := &Field{
		Name:     "value",
		IsAbout:  []*IsAbout{{Name: "wind", Path: "oeo:1"}},
		Resource: "y",
	}
	if !a.Equal(b) {
		t.Fatalf("fields differing only in owner must be equal")
	}
	b.ValueReference = []*ValueReference{{Value: "onshore"}}
	if a.Equal(b) {
		t.Fatalf("value references must take part in equality")
	}
}

func TestKindNames(t *testing.T) {
	if got := KindValueReference.String(); got != "ValueReference" {
		t.Fatalf("KindValueReference = %q", got)
	}
	if got := (&Subject{}).Kind(); got != KindSubject {
		t.Fatalf("Subject kind = %v", got)
	}
}
