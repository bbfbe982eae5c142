package token

import (
	"testing"

	"github.com/lapis-corpus/teivert/corpus"
)

func TestClassifyPriority(t *testing.T) {
	cases := []struct {
		display  string
		pos      string
		kind     Kind
		duration string
		desc     string
	}{
		{"((2s))", "", Pause, "2s", ""},
		{"((2.5s))", "NOUN", Pause, "2.5s", ""},
		{"((coughs))", "", Pause, "coughs", ""}, // the duration marker is just an 's'
		{"((lacht))", "", Incident, "", "lacht"},
		{"(?)", "", Unclear, "", ""},
		{"(?)", "PUNCT", Unclear, "", ""},
		{".", "PUNCT", PunctuationMark, "", ""},
		{"hello", "ADJ", Word, "", ""},
		{"", "", Word, "", ""},
		{"((", "", Word, "", ""},
	}

	for _, c := range cases {
		got := Classify(c.display, c.pos)
		if got.Kind != c.kind {
			t.Errorf("Classify(%q, %q) kind = %v, want %v", c.display, c.pos, got.Kind, c.kind)
		}
		if got.Duration != c.duration {
			t.Errorf("Classify(%q, %q) duration = %q, want %q", c.display, c.pos, got.Duration, c.duration)
		}
		if got.Desc != c.desc {
			t.Errorf("Classify(%q, %q) desc = %q, want %q", c.display, c.pos, got.Desc, c.desc)
		}
	}
}

func TestClassifyIsTotal(t *testing.T) {
	// Any display/pos pair selects exactly one kind.
	displays := []string{"", "a", "(?)", "((x))", "((1s))", "(())", "((", "))", "word"}
	poss := []string{"", "PUNCT", "NOUN"}
	for _, d := range displays {
		for _, p := range poss {
			got := Classify(d, p)
			switch got.Kind {
			case Word, PunctuationMark, Pause, Incident, Unclear:
			default:
				t.Errorf("Classify(%q, %q) returned unknown kind %v", d, p, got.Kind)
			}
		}
	}
}

func TestClassifyToken(t *testing.T) {
	tok := corpus.Token{TextOrtho: "((3s))", Ortho: "irrelevant", Pos: "NOUN"}
	got := ClassifyToken(tok)
	if got.Kind != Pause || got.Duration != "3s" {
		t.Errorf("ClassifyToken = %+v, want Pause 3s", got)
	}
}

func TestDisplayResolution(t *testing.T) {
	cases := []struct {
		tok  corpus.Token
		want string
	}{
		{corpus.Token{TextOrtho: "norm", Ortho: "raw"}, "norm"},
		{corpus.Token{Ortho: "raw"}, "raw"},
		{corpus.Token{}, ""},
	}
	for _, c := range cases {
		if got := c.tok.Display(); got != c.want {
			t.Errorf("Display() = %q, want %q", got, c.want)
		}
	}
}
