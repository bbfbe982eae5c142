// Package vertical flattens a directory of assembled TEI documents into the
// tab-delimited one-token-per-line format of the corpus-query tool. It is the
// inverse of assembly: every inline cross-reference is resolved back through
// the standoff sections into flat per-token attribute tuples.
package vertical

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lapis-corpus/teivert/tei"
)

// DefaultDocId identifies the whole corpus in the output envelope.
const DefaultDocId = "lapis_corpus"

// Placeholder substitutes any token attribute that cannot be resolved.
const Placeholder = "-"

// Flattener writes the vertical rendition of a TEI directory. One Flattener
// serves one run; the speaker lookup is loaded once and shared by all files.
type Flattener struct {
	DocId    string
	Speakers map[string]Speaker

	out  io.Writer
	diag io.Writer
}

func New(out io.Writer, speakers map[string]Speaker, diag io.Writer) *Flattener {
	if diag == nil {
		diag = io.Discard
	}
	return &Flattener{
		DocId:    DefaultDocId,
		Speakers: speakers,
		out:      out,
		diag:     diag,
	}
}

// Flatten processes every .xml file under dir in filename-sorted order,
// skipping a co-located standoff informant document. A file that fails to
// parse is logged and skipped; the run continues. onFile, when not nil, is
// called once per processed file (progress reporting).
func (f *Flattener) Flatten(dir, standoffPath string, onFile func(name string)) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.xml"))
	if err != nil {
		return err
	}
	sort.Strings(files)

	absStandoff, _ := filepath.Abs(standoffPath)

	fmt.Fprintf(f.out, "<doc id=\"%s\">\n", f.DocId)
	for _, path := range files {
		if abs, err := filepath.Abs(path); err == nil && abs == absStandoff {
			continue
		}
		if onFile != nil {
			onFile(filepath.Base(path))
		}
		if err := f.flattenFile(path); err != nil {
			fmt.Fprintf(f.diag, "vertical: error %s: %v\n", path, err)
		}
	}
	_, err = fmt.Fprintf(f.out, "</doc>\n")
	return err
}

// Read model of an assembled document. Namespace-free tags match the TEI
// default namespace and the xml:id attributes alike.
type teiDoc struct {
	Title      string     `xml:"teiHeader>fileDesc>titleStmt>title"`
	StandOff   []standOff `xml:"standOff"`
	Utterances []utt      `xml:"text>body>div>u"`
}

type standOff struct {
	Fs       []fsDef `xml:"fs"`
	Timeline struct {
		When []whenDef `xml:"when"`
	} `xml:"timeline"`
}

type fsDef struct {
	Id string `xml:"id,attr"`
	F  []struct {
		Name string `xml:"name,attr"`
		Fs   []struct {
			Feats string `xml:"feats,attr"`
		} `xml:"fs"`
	} `xml:"f"`
}

type whenDef struct {
	Id       string `xml:"id,attr"`
	Absolute string `xml:"absolute,attr"`
}

type utt struct {
	Who   string `xml:"who,attr"`
	Start string `xml:"start,attr"`
	End   string `xml:"end,attr"`
	Nodes []node `xml:",any"`
}

type node struct {
	XMLName  xml.Name
	Lemma    string `xml:"lemma,attr"`
	Type     string `xml:"type,attr"`
	Ana      string `xml:"ana,attr"`
	Start    string `xml:"start,attr"`
	End      string `xml:"end,attr"`
	Duration string `xml:"duration,attr"`
	Text     string `xml:",chardata"`
}

// featureDef is one resolved standoff bundle: its category and the raw
// feature string.
type featureDef struct {
	Category string
	Feats    string
}

func (f *Flattener) flattenFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var doc teiDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return err
	}

	title := doc.Title
	if title == "" {
		title = filepath.Base(path)
	}

	features := map[string]featureDef{}
	timeline := map[string]string{}
	for _, so := range doc.StandOff {
		for _, fs := range so.Fs {
			if fs.Id == "" || len(fs.F) == 0 {
				continue
			}
			def := featureDef{Category: fs.F[0].Name}
			if len(fs.F[0].Fs) > 0 {
				def.Feats = fs.F[0].Fs[0].Feats
			}
			features[fs.Id] = def
		}
		for _, w := range so.Timeline.When {
			if w.Id != "" && w.Absolute != "" {
				timeline[w.Id] = w.Absolute
			}
		}
	}

	fmt.Fprintf(f.out, "<file id=\"%s\" title=\"%s\">\n", filepath.Base(path), sanitize(title))
	for _, u := range doc.Utterances {
		f.writeUtterance(u, features, timeline)
	}
	fmt.Fprintf(f.out, "</file>\n")
	return nil
}

func (f *Flattener) writeUtterance(u utt, features map[string]featureDef, timeline map[string]string) {
	who := strings.TrimPrefix(u.Who, "#")

	speaker, ok := f.Speakers[who]
	if !ok {
		if who != "" {
			fmt.Fprintf(f.diag, "vertical: unknown speaker reference %q\n", who)
		}
		speaker = unknownSpeaker
	}

	fmt.Fprintf(f.out, "<u who=\"%s\" sex=\"%s\" age=\"%s\" name=\"%s\" start=\"%s\" end=\"%s\">\n",
		who,
		sanitize(speaker.Sex), sanitize(speaker.Age), sanitize(speaker.Name),
		f.resolveTime(u.Start, timeline), f.resolveTime(u.End, timeline))

	for _, n := range u.Nodes {
		switch n.XMLName.Local {
		case "w", "pc":
			f.writeTokenRow(n, features, timeline)
		case "pause":
			fmt.Fprintf(f.out, "<pause duration=\"%s\"/>\n", n.Duration)
		}
		// incident, unclear and anything else are not part of the
		// vertical rendition.
	}

	fmt.Fprintf(f.out, "</u>\n")
}

func (f *Flattener) writeTokenRow(n node, features map[string]featureDef, timeline map[string]string) {
	text := strings.TrimSpace(n.Text)
	if text == "" {
		return
	}

	lemma := strings.TrimSpace(n.Lemma)
	if lemma == "" {
		lemma = Placeholder
	}
	pos := n.Type
	if pos == "" {
		pos = Placeholder
	}

	fmt.Fprintf(f.out, "%s\t%s\t%s\t%s\t%s\t%s\n",
		sanitize(text), sanitize(lemma), sanitize(pos),
		f.resolveTags(n.Ana, features),
		f.resolveTime(n.Start, timeline), f.resolveTime(n.End, timeline))
}

// resolveTags resolves every reference of an ana list through the standoff
// lookup into one tags column. Values are bucketed by category, per-token
// bundles before tokenset bundles, and joined with '|'. Unresolvable
// references are reported and skipped.
func (f *Flattener) resolveTags(ana string, features map[string]featureDef) string {
	var perToken, tokenset, other []string
	for _, ref := range strings.Fields(strings.ReplaceAll(ana, "#", "")) {
		def, ok := features[ref]
		if !ok {
			fmt.Fprintf(f.diag, "vertical: unresolvable ana reference %q\n", ref)
			continue
		}
		switch def.Category {
		case tei.TokenTagsCategory:
			perToken = append(perToken, def.Feats)
		case tei.TokensetTagsCategory:
			tokenset = append(tokenset, def.Feats)
		default:
			other = append(other, def.Feats)
		}
	}

	values := append(append(perToken, tokenset...), other...)
	if len(values) == 0 {
		return Placeholder
	}
	return strings.Join(values, "|")
}

func (f *Flattener) resolveTime(ref string, timeline map[string]string) string {
	ref = strings.TrimPrefix(ref, "#")
	if ref == "" {
		return Placeholder
	}
	v, ok := timeline[ref]
	if !ok {
		fmt.Fprintf(f.diag, "vertical: unresolvable timeline reference %q\n", ref)
		return Placeholder
	}
	return v
}
