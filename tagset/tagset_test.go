package tagset

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

const declaration = `<?xml version="1.0"?>
<TEI xmlns="http://www.tei-c.org/ns/1.0">
  <standOff>
    <fs xml:id="dioe-tags-features" type="feature-system">
      <f name="Pron" xml:id="tag-1_1"><string>Pronoun</string>
        <fs type="tag">
          <f name="PronRefl" xml:id="tag-2_1"><string>Reflexive</string></f>
        </fs>
      </f>
    </fs>
  </standOff>
</TEI>`

func TestParseCollectsNestedNames(t *testing.T) {
	s, err := Parse(strings.NewReader(declaration))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(s) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(s))
	}
	if !s.Contains("pron") || !s.Contains("PRONREFL") {
		t.Errorf("lookups must be case-insensitive, set = %v", s)
	}
}

func TestLoadMissingFileYieldsEmptySet(t *testing.T) {
	var diag bytes.Buffer
	s := Load(filepath.Join(t.TempDir(), "nope.xml"), &diag)
	if len(s) != 0 {
		t.Errorf("expected empty set, got %v", s)
	}
	if diag.Len() == 0 {
		t.Error("expected a diagnostic for the missing file")
	}
	if s.Contains("anything") {
		t.Error("empty set must reject everything")
	}
}

func TestFilterDropsUnknownTags(t *testing.T) {
	s := Set{}
	s.Add("Pron")

	var diag bytes.Buffer
	kept := s.Filter([]string{"pron", "Bogus", "PRON"}, "token 9", &diag)
	if len(kept) != 2 || kept[0] != "pron" || kept[1] != "PRON" {
		t.Errorf("kept = %v, want [pron PRON]", kept)
	}
	if !strings.Contains(diag.String(), "token 9") {
		t.Errorf("diagnostic must name the owner, got %q", diag.String())
	}
}
