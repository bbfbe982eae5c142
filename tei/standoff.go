package tei

import (
	"fmt"
	"io"
	"strings"

	"github.com/lapis-corpus/teivert/corpus"
	"github.com/lapis-corpus/teivert/tagset"
)

// Feature category names used by the standoff bundles. The flattener
// dispatches on them when resolving ana references.
const (
	TokenTagsCategory    = "dioe_tags"
	TokensetTagsCategory = "dioe_tokenset_tags"
)

// FsIndex resolves tokens and tokensets to the id of their allocated
// feature-structure entry. Bundles that were empty after whitelist filtering
// have no entry.
type FsIndex struct {
	TokenFs    map[int]string
	TokensetFs map[int]string
}

// BuildFeatureStandoff allocates one feature-structure entry per distinct
// non-empty tag bundle: one for every token with surviving tags, one for
// every tokenset with surviving tags. Tags not in the whitelist are dropped
// with a diagnostic; a bundle with nothing left allocates no id and is never
// referenced.
func BuildFeatureStandoff(tokens []corpus.Token, tokensets []corpus.Tokenset, wl tagset.Set, diag io.Writer) ([]Fs, FsIndex) {
	idx := FsIndex{
		TokenFs:    map[int]string{},
		TokensetFs: map[int]string{},
	}
	var entries []Fs

	for _, t := range tokens {
		if len(t.Tags) == 0 {
			continue
		}
		if _, ok := idx.TokenFs[t.Id]; ok {
			continue
		}
		kept := wl.Filter(t.Tags, fmt.Sprintf("token %d", t.Id), diag)
		if len(kept) == 0 {
			continue
		}
		id := fmt.Sprintf("fs_%d_dioe", t.Id)
		entries = append(entries, bundle(id, TokenTagsCategory, kept))
		idx.TokenFs[t.Id] = id
	}

	for _, ts := range tokensets {
		if _, ok := idx.TokensetFs[ts.Id]; ok {
			continue
		}
		kept := wl.Filter(ts.Tags, fmt.Sprintf("tokenset %d", ts.Id), diag)
		if len(kept) == 0 {
			continue
		}
		id := fmt.Sprintf("fs_tokenset_%d", ts.Id)
		entries = append(entries, bundle(id, TokensetTagsCategory, kept))
		idx.TokensetFs[ts.Id] = id
	}

	return entries, idx
}

func bundle(id, category string, tags []string) Fs {
	return Fs{
		Id: id,
		F: []F{{
			Name: category,
			Fs:   []Fs{{Feats: FeatsValue(tags)}},
		}},
	}
}

// FeatsValue renders a tag list as the feats attribute value: each name
// prefixed with '#', space separated.
func FeatsValue(tags []string) string {
	refs := make([]string, len(tags))
	for i, tag := range tags {
		refs[i] = "#" + tag
	}
	return strings.Join(refs, " ")
}

// BuildInformantStandoff renders the informant registry as a standalone
// personography document. Every person record appears exactly once, under the
// stable id spk_<id> that utterances reference.
func BuildInformantStandoff(informants []corpus.Informant) *Document {
	list := &ListPerson{Id: InformantsAnchor}
	for _, inf := range informants {
		p := Person{
			Id:   inf.Ref(),
			Name: fmt.Sprintf("Informant %s", inf.Sigle),
			Sex:  Sex{Value: inf.SexValue()},
			Age:  inf.AgeGroup,
		}
		if inf.Comment != "" {
			p.Note = &Note{P: inf.Comment}
		}
		list.Persons = append(list.Persons, p)
	}

	return &Document{
		Xmlns: NS,
		Header: Header{FileDesc: FileDesc{
			Title:       "Standoff Personography for Project",
			Publication: "Not for publication.",
			Source:      SourceDesc{P: "Data derived from project's informant database."},
		}},
		StandOff: &StandOff{ListPerson: list},
	}
}
