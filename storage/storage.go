package storage

import (
	"github.com/lapis-corpus/teivert/corpus"
	"github.com/lapis-corpus/teivert/tagtree"
)

// TranscriptReader defines read operations for the token side of the
// relational source.
type TranscriptReader interface {
	// Transcripts returns the names of all transcripts, sorted.
	Transcripts() ([]string, error)

	// Tokens returns the token rows of one transcript in sequence order.
	Tokens(transcript string) ([]corpus.Token, error)

	// Tokensets returns the shared tag bundles for the given tokenset ids.
	// The ids of one transcript's tokens are passed as a unit, so the
	// feature registry can be completed before rendering starts.
	Tokensets(ids []int) ([]corpus.Tokenset, error)
}

// InformantReader defines read operations for speaker metadata.
type InformantReader interface {
	// Informants returns all informant records, sorted by id.
	Informants() ([]corpus.Informant, error)
}

// TagReader defines read operations for the annotation-tag hierarchy.
type TagReader interface {
	// Tags returns the flat rows of the tag hierarchy.
	Tags() ([]tagtree.Tag, error)
}

// CorpusRepository combines everything the generators consume.
type CorpusRepository interface {
	TranscriptReader
	InformantReader
	TagReader
}

// TokensetIds collects the distinct tokenset ids referenced by a token
// stream, in first-seen order.
func TokensetIds(tokens []corpus.Token) []int {
	seen := map[int]struct{}{}
	var ids []int
	for _, t := range tokens {
		for _, id := range t.TokensetIds {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
