// Package filesystem reads the relational source from a directory of
// query-dump JSON files: one <transcript>.json per transcript plus
// informants.json, tokensets.json and tags.json.
package filesystem

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lapis-corpus/teivert/corpus"
	"github.com/lapis-corpus/teivert/storage"
	"github.com/lapis-corpus/teivert/tagtree"
)

const (
	informantsFile = "informants.json"
	tokensetsFile  = "tokensets.json"
	tagsFile       = "tags.json"
)

type Store struct {
	root string
}

var _ storage.CorpusRepository = (*Store)(nil)

func NewStore(root string) (*Store, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("source not found: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source is not a directory: %s", root)
	}
	return &Store{root: root}, nil
}

// Transcripts lists the transcript dump files, without the .json suffix.
func (s *Store) Transcripts() ([]string, error) {
	files, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, file := range files {
		name := file.Name()
		if filepath.Ext(name) != ".json" {
			continue
		}
		switch name {
		case informantsFile, tokensetsFile, tagsFile:
			continue
		}
		names = append(names, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) Tokens(transcript string) ([]corpus.Token, error) {
	var dump struct {
		QueryResult []corpus.Token `json:"queryresult"`
	}
	if err := s.readJSON(transcript+".json", &dump); err != nil {
		return nil, err
	}

	tokens := dump.QueryResult
	sort.SliceStable(tokens, func(i, j int) bool { return tokens[i].Seq < tokens[j].Seq })
	return tokens, nil
}

func (s *Store) Tokensets(ids []int) ([]corpus.Tokenset, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var dump struct {
		Tokensets []corpus.Tokenset `json:"tokensets"`
	}
	if err := s.readJSON(tokensetsFile, &dump); err != nil {
		// Not every dump directory carries tokensets.
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	wanted := map[int]struct{}{}
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	var out []corpus.Tokenset
	for _, ts := range dump.Tokensets {
		if _, ok := wanted[ts.Id]; ok {
			out = append(out, ts)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Id < out[j].Id })
	return out, nil
}

func (s *Store) Informants() ([]corpus.Informant, error) {
	var dump struct {
		Informants []corpus.Informant `json:"informants"`
	}
	if err := s.readJSON(informantsFile, &dump); err != nil {
		return nil, err
	}

	informants := dump.Informants
	sort.Slice(informants, func(i, j int) bool { return informants[i].Id < informants[j].Id })
	return informants, nil
}

// Tags reads the tag hierarchy dump: a list whose first element holds the
// rows under "tags".
func (s *Store) Tags() ([]tagtree.Tag, error) {
	var dump []struct {
		Tags []tagtree.Tag `json:"tags"`
	}
	if err := s.readJSON(tagsFile, &dump); err != nil {
		return nil, err
	}
	if len(dump) == 0 {
		return nil, fmt.Errorf("%s: no tag rows", tagsFile)
	}
	return dump[0].Tags, nil
}

func (s *Store) readJSON(name string, v any) error {
	data, err := os.ReadFile(filepath.Join(s.root, name))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: JSON decoding error: %w", name, err)
	}
	return nil
}
