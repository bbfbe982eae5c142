package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lapis-corpus/teivert/corpus"
	"github.com/lapis-corpus/teivert/tagtree"
	"zombiezen.com/go/sqlite/sqlitex"
)

// SchemaFile is the embedded script that creates the snapshot tables.
const SchemaFile = "corpus.sql"

// WriteTokens inserts the token rows of one transcript. Existing rows with
// the same token id are replaced, so re-importing a transcript is safe.
func (s *Store) WriteTokens(transcript string, tokens []corpus.Token) error {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	for _, t := range tokens {
		err := sqlitex.Execute(conn, `
			INSERT OR REPLACE INTO tokens
				(tokenid, transcriptname, informantid, text, ortho, text_ortho,
				 sppos, splemma, start_time, end_time, tags, tokensets, reihung)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, &sqlitex.ExecOptions{
			Args: []interface{}{
				t.Id, transcript, t.InformantId, t.Text, t.Ortho, t.TextOrtho,
				t.Pos, jsonValue([]string(t.Lemmas)), t.Start, t.End,
				jsonValue(t.Tags), jsonValue(t.TokensetIds), t.Seq,
			},
		})
		if err != nil {
			return fmt.Errorf("token %d: %w", t.Id, err)
		}
	}
	return nil
}

func (s *Store) WriteTokensets(sets []corpus.Tokenset) error {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	for _, ts := range sets {
		err := sqlitex.Execute(conn, "INSERT OR REPLACE INTO tokensets (id, tags) VALUES (?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{ts.Id, jsonValue(ts.Tags)},
		})
		if err != nil {
			return fmt.Errorf("tokenset %d: %w", ts.Id, err)
		}
	}
	return nil
}

func (s *Store) WriteInformants(informants []corpus.Informant) error {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	for _, inf := range informants {
		err := sqlitex.Execute(conn, `
			INSERT OR REPLACE INTO informants (id, sigle, gender, age_group, comment)
			VALUES (?, ?, ?, ?, ?)
		`, &sqlitex.ExecOptions{
			Args: []interface{}{inf.Id, inf.Sigle, inf.Gender, inf.AgeGroup, inf.Comment},
		})
		if err != nil {
			return fmt.Errorf("informant %d: %w", inf.Id, err)
		}
	}
	return nil
}

func (s *Store) WriteTags(tags []tagtree.Tag) error {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer s.pool.Put(conn)

	if err := sqlitex.Execute(conn, "DELETE FROM tags", nil); err != nil {
		return err
	}
	for _, tag := range tags {
		err := sqlitex.Execute(conn, `
			INSERT INTO tags (tag_id, tag_abbrev, tag_name, tag_ebene_id, tag_gene, children_ids)
			VALUES (?, ?, ?, ?, ?, ?)
		`, &sqlitex.ExecOptions{
			Args: []interface{}{tag.Id, tag.Abbrev, tag.Name, tag.EbeneId, tag.Generation, tag.ChildrenIds},
		})
		if err != nil {
			return fmt.Errorf("tag %d: %w", tag.Id, err)
		}
	}
	return nil
}

// jsonValue renders a slice column; empty slices become "[]", never "null".
func jsonValue[T any](v []T) string {
	if len(v) == 0 {
		return "[]"
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(data)
}
