// Package token classifies transcript tokens into the element kinds of the
// output document.
package token

import (
	"strings"

	"github.com/lapis-corpus/teivert/corpus"
)

// Kind is the element kind a token renders as.
type Kind int

const (
	Word Kind = iota
	PunctuationMark
	Pause
	Incident
	Unclear
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case PunctuationMark:
		return "pc"
	case Pause:
		return "pause"
	case Incident:
		return "incident"
	case Unclear:
		return "unclear"
	}
	return "unknown"
}

// The unclear marker used by the transcription convention.
const unclearMarker = "(?)"

// PunctPos is the part-of-speech tag marking punctuation.
const PunctPos = "PUNCT"

// Class is the result of classifying one token. Duration is set for Pause,
// Desc for Incident; both are empty otherwise.
type Class struct {
	Kind     Kind
	Duration string
	Desc     string
}

// Classify decides how a token is rendered. Exactly one kind is selected for
// any display/pos pair, in this priority order:
//
//  1. ((...)) with a duration marker (an "s" in the content) is a Pause,
//     ((...)) without one is an Incident with the content as description.
//  2. the bare marker (?) is Unclear.
//  3. POS PUNCT is a PunctuationMark.
//  4. everything else is a Word.
func Classify(display, pos string) Class {
	if len(display) >= 4 && strings.HasPrefix(display, "((") && strings.HasSuffix(display, "))") {
		content := display[2 : len(display)-2]
		if strings.Contains(content, "s") {
			return Class{Kind: Pause, Duration: content}
		}
		return Class{Kind: Incident, Desc: content}
	}

	if display == unclearMarker {
		return Class{Kind: Unclear}
	}

	if pos == PunctPos {
		return Class{Kind: PunctuationMark}
	}

	return Class{Kind: Word}
}

// ClassifyToken classifies a token by its resolved display text.
func ClassifyToken(t corpus.Token) Class {
	return Classify(t.Display(), t.Pos)
}
