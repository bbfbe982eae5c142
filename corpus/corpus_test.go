package corpus

import (
	"encoding/json"
	"testing"
)

func TestLemmaListUnmarshal(t *testing.T) {
	var tok Token

	if err := json.Unmarshal([]byte(`{"splemma": ["gehen", "gehn"]}`), &tok); err != nil {
		t.Fatalf("array form: %v", err)
	}
	if tok.Lemma() != "gehen" {
		t.Errorf("Lemma() = %q, want gehen", tok.Lemma())
	}

	tok = Token{}
	if err := json.Unmarshal([]byte(`{"splemma": "sein"}`), &tok); err != nil {
		t.Fatalf("string form: %v", err)
	}
	if tok.Lemma() != "sein" {
		t.Errorf("Lemma() = %q, want sein", tok.Lemma())
	}

	tok = Token{}
	if err := json.Unmarshal([]byte(`{"splemma": ""}`), &tok); err != nil {
		t.Fatalf("empty form: %v", err)
	}
	if tok.Lemma() != "" {
		t.Errorf("Lemma() = %q, want empty", tok.Lemma())
	}
}

func TestInformantSexValue(t *testing.T) {
	cases := []struct {
		gender string
		want   string
	}{
		{"1", "male"},
		{"2", "female"},
		{"male", "male"},
		{"Female", "female"},
		{"", "not provided"},
		{"3", "not provided"},
	}
	for _, c := range cases {
		inf := Informant{Gender: c.gender}
		if got := inf.SexValue(); got != c.want {
			t.Errorf("SexValue(%q) = %q, want %q", c.gender, got, c.want)
		}
	}
}

func TestRefs(t *testing.T) {
	if got := (Token{Id: 7}).Ref(); got != "t7" {
		t.Errorf("Token.Ref() = %q, want t7", got)
	}
	if got := (Informant{Id: 42}).Ref(); got != "spk_42" {
		t.Errorf("Informant.Ref() = %q, want spk_42", got)
	}
}
