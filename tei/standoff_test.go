package tei

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lapis-corpus/teivert/corpus"
	"github.com/lapis-corpus/teivert/tagset"
)

func whitelist(tags ...string) tagset.Set {
	s := tagset.Set{}
	for _, tag := range tags {
		s.Add(tag)
	}
	return s
}

func TestBuildFeatureStandoffAllocatesPerBundle(t *testing.T) {
	tokens := []corpus.Token{
		{Id: 1, Tags: []string{"Pron", "Refl"}},
		{Id: 2},
	}
	tokensets := []corpus.Tokenset{
		{Id: 7, Tags: []string{"Refl"}},
	}

	var diag bytes.Buffer
	entries, idx := BuildFeatureStandoff(tokens, tokensets, whitelist("Pron", "Refl"), &diag)

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if idx.TokenFs[1] != "fs_1_dioe" {
		t.Errorf("token fs id = %q", idx.TokenFs[1])
	}
	if _, ok := idx.TokenFs[2]; ok {
		t.Error("token without tags must not allocate an entry")
	}
	if idx.TokensetFs[7] != "fs_tokenset_7" {
		t.Errorf("tokenset fs id = %q", idx.TokensetFs[7])
	}

	if entries[0].F[0].Name != TokenTagsCategory {
		t.Errorf("category = %q", entries[0].F[0].Name)
	}
	if entries[0].F[0].Fs[0].Feats != "#Pron #Refl" {
		t.Errorf("feats = %q", entries[0].F[0].Fs[0].Feats)
	}
	if entries[1].F[0].Name != TokensetTagsCategory {
		t.Errorf("tokenset category = %q", entries[1].F[0].Name)
	}
}

func TestBuildFeatureStandoffSkipsEmptyAfterFiltering(t *testing.T) {
	tokens := []corpus.Token{
		{Id: 1, Tags: []string{"Invalid"}},
	}
	tokensets := []corpus.Tokenset{
		{Id: 2, Tags: []string{"AlsoInvalid"}},
	}

	var diag bytes.Buffer
	entries, idx := BuildFeatureStandoff(tokens, tokensets, whitelist("Pron"), &diag)

	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
	if len(idx.TokenFs) != 0 || len(idx.TokensetFs) != 0 {
		t.Error("empty bundles must not allocate ids")
	}
	if !strings.Contains(diag.String(), "Invalid") {
		t.Errorf("expected diagnostics for dropped tags, got %q", diag.String())
	}
}

func TestBuildFeatureStandoffDeduplicates(t *testing.T) {
	// The same token appearing twice allocates one entry.
	tokens := []corpus.Token{
		{Id: 1, Tags: []string{"Pron"}},
		{Id: 1, Tags: []string{"Pron"}},
	}

	entries, _ := BuildFeatureStandoff(tokens, nil, whitelist("Pron"), nil)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}

func TestBuildInformantStandoff(t *testing.T) {
	informants := []corpus.Informant{
		{Id: 164, Sigle: "0239", Gender: "1", AgeGroup: "young"},
		{Id: 165, Sigle: "0240", Gender: "2", Comment: "second recording"},
		{Id: 166, Sigle: "0241"},
	}

	doc := BuildInformantStandoff(informants)

	list := doc.StandOff.ListPerson
	if list.Id != InformantsAnchor {
		t.Errorf("anchor = %q", list.Id)
	}
	if len(list.Persons) != 3 {
		t.Fatalf("expected 3 persons, got %d", len(list.Persons))
	}

	p := list.Persons[0]
	if p.Id != "spk_164" || p.Name != "Informant 0239" || p.Sex.Value != "male" || p.Age != "young" {
		t.Errorf("unexpected first person: %+v", p)
	}
	if list.Persons[1].Sex.Value != "female" || list.Persons[1].Note == nil || list.Persons[1].Note.P != "second recording" {
		t.Errorf("unexpected second person: %+v", list.Persons[1])
	}
	if list.Persons[2].Sex.Value != "not provided" || list.Persons[2].Note != nil {
		t.Errorf("unexpected third person: %+v", list.Persons[2])
	}
}
