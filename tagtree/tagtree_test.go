package tagtree

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseChildrenIds(t *testing.T) {
	cases := []struct {
		in   string
		want []int
	}{
		{"{1,2,3}", []int{1, 2, 3}},
		{"{42}", []int{42}},
		{"{}", nil},
		{"", nil},
	}
	for _, c := range cases {
		got := ParseChildrenIds(c.in)
		if len(got) != len(c.want) {
			t.Errorf("ParseChildrenIds(%q) = %v, want %v", c.in, got, c.want)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("ParseChildrenIds(%q) = %v, want %v", c.in, got, c.want)
			}
		}
	}
}

func TestBuildStandoffHierarchy(t *testing.T) {
	tags := []Tag{
		{Id: 1, Abbrev: "Pron", Name: "Pronoun", EbeneId: 10, Generation: 0, ChildrenIds: "{2}"},
		{Id: 2, Abbrev: "ReflA", Name: "Reflexive (morph)", EbeneId: 10},
		{Id: 2, Abbrev: "ReflB", Name: "Reflexive (syntax)", EbeneId: 20},
	}

	doc := BuildStandoff(tags, "tags.json", nil)

	root := doc.StandOff.Fs[0]
	if root.Id != "dioe-tags-features" || root.Type != "feature-system" {
		t.Errorf("unexpected root fs: %+v", root)
	}
	if len(root.F) != 1 {
		t.Fatalf("expected 1 top-level tag, got %d", len(root.F))
	}

	parent := root.F[0]
	if parent.Name != "Pron" || parent.Id != "tag-1_1" || parent.String != "Pronoun" {
		t.Errorf("unexpected parent: %+v", parent)
	}
	if len(parent.Fs) != 1 || len(parent.Fs[0].F) != 1 {
		t.Fatalf("expected one child feature, got %+v", parent.Fs)
	}

	// The same-ebene row wins the ambiguous child id.
	child := parent.Fs[0].F[0]
	if child.Name != "ReflA" {
		t.Errorf("child = %q, want the same-ebene match ReflA", child.Name)
	}
	if child.Id != "tag-2_1" {
		t.Errorf("child id = %q", child.Id)
	}
}

func TestBuildStandoffOccurrenceIds(t *testing.T) {
	// Tag 2 is placed under two parents; ids must stay unique.
	tags := []Tag{
		{Id: 1, Abbrev: "A", Name: "A", Generation: 0, ChildrenIds: "{3}"},
		{Id: 2, Abbrev: "B", Name: "B", Generation: 0, ChildrenIds: "{3}"},
		{Id: 3, Abbrev: "C", Name: "C"},
	}

	doc := BuildStandoff(tags, "tags.json", nil)
	root := doc.StandOff.Fs[0]

	first := root.F[0].Fs[0].F[0]
	second := root.F[1].Fs[0].F[0]
	if first.Id != "tag-3_1" || second.Id != "tag-3_2" {
		t.Errorf("occurrence ids = %q, %q", first.Id, second.Id)
	}
}

func TestBuildStandoffMissingChild(t *testing.T) {
	tags := []Tag{
		{Id: 1, Abbrev: "A", Name: "A", Generation: 0, ChildrenIds: "{99}"},
	}

	var diag bytes.Buffer
	doc := BuildStandoff(tags, "tags.json", &diag)

	if !strings.Contains(diag.String(), "99") {
		t.Errorf("expected a diagnostic naming the missing child, got %q", diag.String())
	}
	if len(doc.StandOff.Fs[0].F[0].Fs) != 0 {
		t.Error("missing child must not produce a feature")
	}
}

func TestBuildStandoffCyclicChildren(t *testing.T) {
	tags := []Tag{
		{Id: 1, Abbrev: "A", Name: "A", Generation: 0, ChildrenIds: "{2}"},
		{Id: 2, Abbrev: "B", Name: "B", ChildrenIds: "{1}"},
	}

	var diag bytes.Buffer
	doc := BuildStandoff(tags, "tags.json", &diag)

	if !strings.Contains(diag.String(), "cyclic") {
		t.Errorf("expected a cycle diagnostic, got %q", diag.String())
	}
	// The walk must terminate with A > B and nothing below.
	parent := doc.StandOff.Fs[0].F[0]
	child := parent.Fs[0].F[0]
	if child.Name != "B" || len(child.Fs) != 0 {
		t.Errorf("unexpected cyclic expansion: %+v", child)
	}
}
