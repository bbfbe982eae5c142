package tei

import (
	"fmt"
	"io"
	"strings"

	"github.com/lapis-corpus/teivert/corpus"
	"github.com/lapis-corpus/teivert/tagset"
	"github.com/lapis-corpus/teivert/token"
)

// AssembleOptions carries the per-run inputs of document assembly. Whitelist
// and registries are threaded explicitly so several documents can be built
// independently.
type AssembleOptions struct {
	// StandoffFile is the filename of the external informant document
	// referenced from the header.
	StandoffFile string

	// Whitelist validates annotation tags. An empty set rejects everything.
	Whitelist tagset.Set

	// Diag receives human-readable diagnostics for recovered defects.
	Diag io.Writer
}

// Assemble builds the complete document for one transcript: header with the
// personography inclusion, feature-structure and timeline standoff sections,
// and the utterance body. Registries are materialized in full before any
// utterance is rendered, so every reference points backwards into a defined
// section.
//
// A transcript without any token is the one fatal case; everything else is
// recovered per bundle with a diagnostic.
func Assemble(name string, tokens []corpus.Token, tokensets []corpus.Tokenset, opts AssembleOptions) (*Document, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("transcript %s: no token data", name)
	}
	diag := opts.Diag
	if diag == nil {
		diag = io.Discard
	}

	SortForReading(tokens)

	// First pass: registries.
	timeline, timelineIds := BuildTimeline(tokens)
	entries, fsIdx := BuildFeatureStandoff(tokens, tokensets, opts.Whitelist, diag)

	// Second pass: the body, over fully materialized registries.
	div := Div{}
	for _, ut := range Segment(tokens) {
		u := &U{
			Who:   Ref(fmt.Sprintf("spk_%d", ut.InformantId)),
			Start: timelineRef(timelineIds, ut.Start()),
			End:   timelineRef(timelineIds, ut.End()),
		}
		for _, t := range ut.Tokens {
			u.Children = append(u.Children, renderToken(t, fsIdx, timelineIds))
		}
		div.Utterances = append(div.Utterances, u)
	}

	doc := &Document{
		Xmlns:   NS,
		XmlnsXI: XIncludeNS,
		Header: Header{FileDesc: FileDesc{
			Title:       fmt.Sprintf("Transcript: %s", name),
			Publication: "Digital Humanities Project",
			Source: SourceDesc{Include: &Include{
				Href:     opts.StandoffFile,
				XPointer: InformantsAnchor,
			}},
		}},
		StandOff: &StandOff{Fs: entries, Timeline: timeline},
		Text:     &Text{Body: Body{Div: div}},
	}
	return doc, nil
}

func renderToken(t corpus.Token, fsIdx FsIndex, timelineIds map[string]string) any {
	display := t.Display()
	start := timelineRef(timelineIds, t.Start)
	end := timelineRef(timelineIds, t.End)

	switch c := token.Classify(display, t.Pos); c.Kind {
	case token.Pause:
		return &PauseEl{Duration: c.Duration, Start: start, End: end}
	case token.Incident:
		return &IncidentEl{Desc: c.Desc, Start: start, End: end}
	case token.Unclear:
		return &UnclearEl{Start: start, End: end}
	case token.PunctuationMark:
		return &Pc{Id: t.Ref(), Start: start, End: end, Text: display}
	}

	w := &W{
		Id:    t.Ref(),
		Lemma: t.Lemma(),
		Type:  t.Pos,
		Ana:   anaValue(t, fsIdx),
		Start: start,
		End:   end,
		Text:  wordText(t, display),
	}
	return w
}

// anaValue concatenates the reference of the token's own bundle, when one was
// allocated, with the references of its tokenset bundles. Empty when no
// annotation survived filtering.
func anaValue(t corpus.Token, fsIdx FsIndex) string {
	var refs []string
	if id, ok := fsIdx.TokenFs[t.Id]; ok {
		refs = append(refs, Ref(id))
	}
	for _, tsId := range t.TokensetIds {
		if id, ok := fsIdx.TokensetFs[tsId]; ok {
			refs = append(refs, Ref(id))
		}
	}
	return strings.Join(refs, " ")
}

// wordText prefers the trimmed raw text and falls back to the display form.
func wordText(t corpus.Token, display string) string {
	if trimmed := strings.TrimSpace(t.Text); trimmed != "" {
		return trimmed
	}
	return display
}

func timelineRef(ids map[string]string, value string) string {
	if value == "" {
		return ""
	}
	id, ok := ids[value]
	if !ok {
		return ""
	}
	return Ref(id)
}
