// Package postgres reads the relational source from a live Postgres
// database, the native home of the corpus data. Multi-valued columns are
// real arrays; children id lists of the tag hierarchy stay in their raw
// array-literal form for tagtree to parse.
package postgres

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/lapis-corpus/teivert/corpus"
	"github.com/lapis-corpus/teivert/storage"
	"github.com/lapis-corpus/teivert/tagtree"
)

type Store struct {
	db *sql.DB
}

var _ storage.CorpusRepository = (*Store)(nil)

// Open connects with a lib/pq DSN (postgres://... or key=value form).
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres connect: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Transcripts() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT transcriptname FROM tokens ORDER BY transcriptname")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Store) Tokens(transcript string) ([]corpus.Token, error) {
	rows, err := s.db.Query(`
		SELECT tokenid, informantid, text, ortho, text_ortho, sppos,
		       splemma, start_time, end_time, tags, tokensets, reihung
		FROM tokens WHERE transcriptname = $1 ORDER BY reihung
	`, transcript)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []corpus.Token
	for rows.Next() {
		var (
			t           corpus.Token
			text, ortho sql.NullString
			textOrtho   sql.NullString
			pos         sql.NullString
			start, end  sql.NullString
			lemmas      pq.StringArray
			tags        pq.StringArray
			tokensets   pq.Int64Array
		)
		err := rows.Scan(&t.Id, &t.InformantId, &text, &ortho, &textOrtho, &pos,
			&lemmas, &start, &end, &tags, &tokensets, &t.Seq)
		if err != nil {
			return nil, err
		}
		t.Transcript = transcript
		t.Text = text.String
		t.Ortho = ortho.String
		t.TextOrtho = textOrtho.String
		t.Pos = pos.String
		t.Start = start.String
		t.End = end.String
		t.Lemmas = corpus.LemmaList(lemmas)
		t.Tags = tags
		for _, id := range tokensets {
			t.TokensetIds = append(t.TokensetIds, int(id))
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

func (s *Store) Tokensets(ids []int) ([]corpus.Tokenset, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := s.db.Query("SELECT id, tags FROM tokensets WHERE id = ANY($1) ORDER BY id", pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []corpus.Tokenset
	for rows.Next() {
		var (
			ts   corpus.Tokenset
			tags pq.StringArray
		)
		if err := rows.Scan(&ts.Id, &tags); err != nil {
			return nil, err
		}
		ts.Tags = tags
		sets = append(sets, ts)
	}
	return sets, rows.Err()
}

func (s *Store) Informants() ([]corpus.Informant, error) {
	rows, err := s.db.Query("SELECT id, sigle, gender, age_group, comment FROM informants ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var informants []corpus.Informant
	for rows.Next() {
		var (
			inf                      corpus.Informant
			gender, ageGroup, remark sql.NullString
		)
		if err := rows.Scan(&inf.Id, &inf.Sigle, &gender, &ageGroup, &remark); err != nil {
			return nil, err
		}
		inf.Gender = gender.String
		inf.AgeGroup = ageGroup.String
		inf.Comment = remark.String
		informants = append(informants, inf)
	}
	return informants, rows.Err()
}

func (s *Store) Tags() ([]tagtree.Tag, error) {
	rows, err := s.db.Query("SELECT tag_id, tag_abbrev, tag_name, tag_ebene_id, tag_gene, children_ids FROM tags ORDER BY tag_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []tagtree.Tag
	for rows.Next() {
		var (
			t            tagtree.Tag
			abbrev, name sql.NullString
			ebene, gene  sql.NullInt64
			children     sql.NullString
		)
		if err := rows.Scan(&t.Id, &abbrev, &name, &ebene, &gene, &children); err != nil {
			return nil, err
		}
		t.Abbrev = abbrev.String
		t.Name = name.String
		t.EbeneId = int(ebene.Int64)
		t.Generation = int(gene.Int64)
		t.ChildrenIds = children.String
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
