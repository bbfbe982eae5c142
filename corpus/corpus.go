package corpus

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Token is one row of the transcript token stream. All fields carry the
// values of the relational source verbatim; timestamps stay strings so the
// absolute values survive into the output unchanged.
type Token struct {
	Id          int    `json:"tokenid"`
	InformantId int    `json:"informantid"`
	Transcript  string `json:"transcriptname"`

	// The unmodified word
	Text string `json:"text"`

	// Orthographic forms. TextOrtho is the normalized one, Ortho the raw one.
	Ortho     string `json:"ortho"`
	TextOrtho string `json:"text_ortho"`

	Pos string `json:"sppos"`

	// Lemmas can come as a single string or a list in the source. The first
	// value wins everywhere a single lemma is needed.
	Lemmas LemmaList `json:"splemma"`

	Start string `json:"start"`
	End   string `json:"end"`

	// Annotation tag names attached directly to this token.
	Tags []string `json:"tags"`

	// Ids of the tokensets (shared tag bundles) this token belongs to.
	TokensetIds []int `json:"tokensets"`

	// Position of the token within the transcript.
	Seq int `json:"reihung"`
}

// Lemma returns the first lemma, or the empty string.
func (t Token) Lemma() string {
	if len(t.Lemmas) == 0 {
		return ""
	}
	return t.Lemmas[0]
}

// Display resolves the text to show for the token: the normalized
// orthographic form, falling back to the raw one.
func (t Token) Display() string {
	if t.TextOrtho != "" {
		return t.TextOrtho
	}
	return t.Ortho
}

// Ref is the stable element identifier of the token in a document.
func (t Token) Ref() string {
	return fmt.Sprintf("t%d", t.Id)
}

// LemmaList unmarshals from either a JSON string or a JSON array of strings,
// as both shapes occur in query dumps.
type LemmaList []string

func (l *LemmaList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one == "" {
			*l = nil
			return nil
		}
		*l = LemmaList{one}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = LemmaList(many)
	return nil
}

// Tokenset is a group of tokens sharing one annotation bundle. Distinct from
// the per-token bundles in Token.Tags.
type Tokenset struct {
	Id   int      `json:"id"`
	Tags []string `json:"tags"`
}

// Informant is a speaker record. Rendered exactly once per corpus into the
// standoff personography and referenced by every utterance.
type Informant struct {
	Id       int    `json:"id"`
	Sigle    string `json:"sigle"`
	Gender   string `json:"gender"`
	AgeGroup string `json:"age_group"`
	Comment  string `json:"comment"`
}

// Ref is the stable standoff identifier of the informant.
func (i Informant) Ref() string {
	return fmt.Sprintf("spk_%d", i.Id)
}

// SexValue normalizes the gender field. The relational source stores "1" for
// male and "2" for female; dumps sometimes carry the words instead.
func (i Informant) SexValue() string {
	switch strings.ToLower(strings.TrimSpace(i.Gender)) {
	case "1", "m", "male":
		return "male"
	case "2", "f", "female":
		return "female"
	}
	return "not provided"
}
