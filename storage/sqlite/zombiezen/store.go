// Package zombiezen reads the relational source from a SQLite snapshot
// database. Multi-valued columns (lemmas, tags, tokenset ids) are stored as
// JSON arrays.
package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lapis-corpus/teivert/corpus"
	"github.com/lapis-corpus/teivert/storage"
	"github.com/lapis-corpus/teivert/tagtree"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

type Store struct {
	pool *sqlitex.Pool
}

var _ storage.CorpusRepository = (*Store)(nil)

func NewStore(pool *sqlitex.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Transcripts() ([]string, error) {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	var names []string
	err = sqlitex.Execute(conn, "SELECT DISTINCT transcriptname FROM tokens ORDER BY transcriptname", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			names = append(names, stmt.ColumnText(0))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (s *Store) Tokens(transcript string) ([]corpus.Token, error) {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	var tokens []corpus.Token
	err = sqlitex.Execute(conn, `
		SELECT tokenid, informantid, text, ortho, text_ortho, sppos,
		       splemma, start_time, end_time, tags, tokensets, reihung
		FROM tokens WHERE transcriptname = ? ORDER BY reihung
	`, &sqlitex.ExecOptions{
		Args: []interface{}{transcript},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			t := corpus.Token{
				Id:          stmt.ColumnInt(0),
				InformantId: stmt.ColumnInt(1),
				Transcript:  transcript,
				Text:        stmt.ColumnText(2),
				Ortho:       stmt.ColumnText(3),
				TextOrtho:   stmt.ColumnText(4),
				Pos:         stmt.ColumnText(5),
				Start:       stmt.ColumnText(7),
				End:         stmt.ColumnText(8),
				Seq:         stmt.ColumnInt(11),
			}
			var lemmas []string
			if err := jsonColumn(stmt.ColumnText(6), &lemmas); err != nil {
				return fmt.Errorf("token %d: splemma: %w", t.Id, err)
			}
			t.Lemmas = corpus.LemmaList(lemmas)
			if err := jsonColumn(stmt.ColumnText(9), &t.Tags); err != nil {
				return fmt.Errorf("token %d: tags: %w", t.Id, err)
			}
			if err := jsonColumn(stmt.ColumnText(10), &t.TokensetIds); err != nil {
				return fmt.Errorf("token %d: tokensets: %w", t.Id, err)
			}
			tokens = append(tokens, t)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

func (s *Store) Tokensets(ids []int) ([]corpus.Tokenset, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	var sets []corpus.Tokenset
	err = sqlitex.Execute(conn,
		fmt.Sprintf("SELECT id, tags FROM tokensets WHERE id IN (%s) ORDER BY id", placeholders),
		&sqlitex.ExecOptions{
			Args: args,
			ResultFunc: func(stmt *sqlite.Stmt) error {
				ts := corpus.Tokenset{Id: stmt.ColumnInt(0)}
				if err := jsonColumn(stmt.ColumnText(1), &ts.Tags); err != nil {
					return fmt.Errorf("tokenset %d: tags: %w", ts.Id, err)
				}
				sets = append(sets, ts)
				return nil
			},
		})
	if err != nil {
		return nil, err
	}
	return sets, nil
}

func (s *Store) Informants() ([]corpus.Informant, error) {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	var informants []corpus.Informant
	err = sqlitex.Execute(conn, "SELECT id, sigle, gender, age_group, comment FROM informants ORDER BY id", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			informants = append(informants, corpus.Informant{
				Id:       stmt.ColumnInt(0),
				Sigle:    stmt.ColumnText(1),
				Gender:   stmt.ColumnText(2),
				AgeGroup: stmt.ColumnText(3),
				Comment:  stmt.ColumnText(4),
			})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return informants, nil
}

func (s *Store) Tags() ([]tagtree.Tag, error) {
	conn, err := s.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer s.pool.Put(conn)

	var tags []tagtree.Tag
	err = sqlitex.Execute(conn, "SELECT tag_id, tag_abbrev, tag_name, tag_ebene_id, tag_gene, children_ids FROM tags ORDER BY rowid", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			tags = append(tags, tagtree.Tag{
				Id:          stmt.ColumnInt(0),
				Abbrev:      stmt.ColumnText(1),
				Name:        stmt.ColumnText(2),
				EbeneId:     stmt.ColumnInt(3),
				Generation:  stmt.ColumnInt(4),
				ChildrenIds: stmt.ColumnText(5),
			})
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func jsonColumn(raw string, v any) error {
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), v)
}
