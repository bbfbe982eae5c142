package tei

import (
	"sort"

	"github.com/lapis-corpus/teivert/corpus"
)

// Utterance is an ordered, non-empty run of tokens sharing one speaker.
type Utterance struct {
	InformantId int
	Tokens      []corpus.Token
}

// Start is the start timestamp of the first contained token.
func (u Utterance) Start() string {
	return u.Tokens[0].Start
}

// End is the end timestamp of the last contained token.
func (u Utterance) End() string {
	return u.Tokens[len(u.Tokens)-1].End
}

// SortForReading puts tokens into final reading order: start time ascending,
// then sequence number, then informant id as a tie-break for simultaneous
// starts. The sort is stable.
func SortForReading(tokens []corpus.Token) {
	sort.SliceStable(tokens, func(i, j int) bool {
		si, sj := Seconds(tokens[i].Start), Seconds(tokens[j].Start)
		if si != sj {
			return si < sj
		}
		if tokens[i].Seq != tokens[j].Seq {
			return tokens[i].Seq < tokens[j].Seq
		}
		return tokens[i].InformantId < tokens[j].InformantId
	})
}

// Segment groups a token stream, already in reading order, into utterances
// by contiguous-speaker runs. Every speaker change starts a new utterance;
// returning to an earlier speaker never merges with the earlier run. No
// empty utterance is emitted, and concatenating the result reproduces the
// input exactly.
func Segment(tokens []corpus.Token) []Utterance {
	var out []Utterance
	for _, t := range tokens {
		if len(out) == 0 || out[len(out)-1].InformantId != t.InformantId {
			out = append(out, Utterance{InformantId: t.InformantId})
		}
		last := &out[len(out)-1]
		last.Tokens = append(last.Tokens, t)
	}
	return out
}
