package filesystem

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func newFixtureStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()

	writeFixture(t, dir, "0239.json", `{"queryresult": [
		{"tokenid": 2, "informantid": 164, "text": "welt", "sppos": "NOUN",
		 "splemma": ["welt"], "reihung": 2},
		{"tokenid": 1, "informantid": 164, "text": "hallo", "sppos": "ADJ",
		 "splemma": "hallo", "tags": ["Pron"], "tokensets": [9], "reihung": 1}
	]}`)
	writeFixture(t, dir, "0512.json", `{"queryresult": []}`)
	writeFixture(t, dir, "informants.json", `{"informants": [
		{"id": 164, "sigle": "0239", "gender": "1", "age_group": "jung (18-35)"}
	]}`)
	writeFixture(t, dir, "tokensets.json", `{"tokensets": [
		{"id": 9, "tags": ["Refl"]},
		{"id": 10, "tags": ["Dat"]}
	]}`)
	writeFixture(t, dir, "tags.json", `[{"tags": [
		{"tag_id": 1, "tag_abbrev": "Pron", "tag_name": "Pronoun", "tag_gene": 0}
	]}]`)
	writeFixture(t, dir, "notes.txt", "not a dump")

	s, err := NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewStoreRejectsMissingDir(t *testing.T) {
	if _, err := NewStore(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
	file := filepath.Join(t.TempDir(), "plain")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStore(file); err == nil {
		t.Fatal("expected an error for a plain file")
	}
}

func TestTranscripts(t *testing.T) {
	s := newFixtureStore(t)

	got, err := s.Transcripts()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"0239", "0512"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Transcripts() = %v, want %v", got, want)
	}
}

func TestTokensOrderedBySeq(t *testing.T) {
	s := newFixtureStore(t)

	tokens, err := s.Tokens("0239")
	if err != nil {
		t.Fatal(err)
	}
	if len(tokens) != 2 {
		t.Fatalf("expected 2 tokens, got %d", len(tokens))
	}
	if tokens[0].Id != 1 || tokens[1].Id != 2 {
		t.Errorf("tokens not in sequence order: %d, %d", tokens[0].Id, tokens[1].Id)
	}
	if got := tokens[0].Lemma(); got != "hallo" {
		t.Errorf("Lemma() = %q, want %q", got, "hallo")
	}
	if !reflect.DeepEqual(tokens[0].TokensetIds, []int{9}) {
		t.Errorf("TokensetIds = %v, want [9]", tokens[0].TokensetIds)
	}
}

func TestTokensUnknownTranscript(t *testing.T) {
	s := newFixtureStore(t)
	if _, err := s.Tokens("0000"); err == nil {
		t.Fatal("expected an error for an unknown transcript")
	}
}

func TestTokensetsFiltersByIds(t *testing.T) {
	s := newFixtureStore(t)

	sets, err := s.Tokensets([]int{9, 99})
	if err != nil {
		t.Fatal(err)
	}
	if len(sets) != 1 || sets[0].Id != 9 {
		t.Fatalf("Tokensets([9 99]) = %v, want the single set 9", sets)
	}

	if sets, err := s.Tokensets(nil); err != nil || sets != nil {
		t.Errorf("Tokensets(nil) = %v, %v, want nil, nil", sets, err)
	}
}

func TestTokensetsFileAbsent(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir, "0239.json", `{"queryresult": []}`)
	s, err := NewStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	sets, err := s.Tokensets([]int{9})
	if err != nil {
		t.Fatalf("absent tokensets file must not fail: %v", err)
	}
	if sets != nil {
		t.Errorf("expected no tokensets, got %v", sets)
	}
}

func TestInformants(t *testing.T) {
	s := newFixtureStore(t)

	informants, err := s.Informants()
	if err != nil {
		t.Fatal(err)
	}
	if len(informants) != 1 {
		t.Fatalf("expected 1 informant, got %d", len(informants))
	}
	inf := informants[0]
	if inf.Id != 164 || inf.Sigle != "0239" || inf.SexValue() != "male" {
		t.Errorf("unexpected informant record: %+v", inf)
	}
}

func TestTags(t *testing.T) {
	s := newFixtureStore(t)

	tags, err := s.Tags()
	if err != nil {
		t.Fatal(err)
	}
	if len(tags) != 1 || tags[0].Abbrev != "Pron" {
		t.Fatalf("Tags() = %v, want the single Pron row", tags)
	}
}
