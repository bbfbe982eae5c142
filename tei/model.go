// Package tei assembles transcript token streams into TEI documents: the
// standoff registries (personography, feature structures, timeline), the
// utterance body and the serialization.
package tei

import (
	"encoding/xml"
	"fmt"
	"io"
)

const (
	// Namespaces carried on every document root.
	NS         = "http://www.tei-c.org/ns/1.0"
	XIncludeNS = "http://www.w3.org/2001/XInclude"

	// InformantsAnchor is the xml:id of the person list in the standoff
	// personography, used as xpointer by including documents.
	InformantsAnchor = "project_informants"
)

// Document is a TEI document root.
type Document struct {
	XMLName xml.Name `xml:"TEI"`
	Xmlns   string   `xml:"xmlns,attr"`
	XmlnsXI string   `xml:"xmlns:xi,attr,omitempty"`

	Header   Header    `xml:"teiHeader"`
	StandOff *StandOff `xml:"standOff,omitempty"`
	Text     *Text     `xml:"text,omitempty"`
}

type Header struct {
	FileDesc FileDesc `xml:"fileDesc"`
}

type FileDesc struct {
	Title       string     `xml:"titleStmt>title"`
	Publication string     `xml:"publicationStmt>p"`
	Source      SourceDesc `xml:"sourceDesc"`
}

type SourceDesc struct {
	P       string   `xml:"p,omitempty"`
	Include *Include `xml:"xi:include,omitempty"`
}

// Include references an external standoff document by filename and anchor.
type Include struct {
	Href     string `xml:"href,attr"`
	XPointer string `xml:"xpointer,attr"`
}

type StandOff struct {
	ListPerson *ListPerson `xml:"listPerson,omitempty"`
	Fs         []Fs        `xml:"fs,omitempty"`
	Timeline   *Timeline   `xml:"timeline,omitempty"`
}

type ListPerson struct {
	Id      string   `xml:"xml:id,attr"`
	Persons []Person `xml:"person"`
}

type Person struct {
	Id   string `xml:"xml:id,attr"`
	Name string `xml:"persName"`
	Sex  Sex    `xml:"sex"`
	Age  string `xml:"age,omitempty"`
	Note *Note  `xml:"note,omitempty"`
}

type Sex struct {
	Value string `xml:"value,attr"`
}

type Note struct {
	P string `xml:"p"`
}

// Fs is a feature structure. At the top level of a standOff it is an
// identified bundle; nested under an F it carries the feats value.
type Fs struct {
	Id    string `xml:"xml:id,attr,omitempty"`
	Type  string `xml:"type,attr,omitempty"`
	Feats string `xml:"feats,attr,omitempty"`
	F     []F    `xml:"f,omitempty"`
}

type F struct {
	Name   string `xml:"name,attr"`
	Id     string `xml:"xml:id,attr,omitempty"`
	String string `xml:"string,omitempty"`
	Fs     []Fs   `xml:"fs,omitempty"`
}

type Timeline struct {
	Unit string `xml:"unit,attr,omitempty"`
	When []When `xml:"when"`
}

// When is one timeline entry; Absolute keeps the source value verbatim.
type When struct {
	Id       string `xml:"xml:id,attr"`
	Absolute string `xml:"absolute,attr"`
}

type Text struct {
	Body Body `xml:"body"`
}

type Body struct {
	Div Div `xml:"div"`
}

type Div struct {
	Utterances []*U `xml:"u"`
}

// U is one utterance: a contiguous same-speaker run of rendered tokens.
// Children are W, Pc, PauseEl, IncidentEl or UnclearEl values.
type U struct {
	Who      string
	Start    string
	End      string
	Children []any
}

// MarshalXML writes the utterance with a single space between consecutive
// children and none after the last.
func (u *U) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "u"}
	start.Attr = start.Attr[:0]
	start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "who"}, Value: u.Who})
	if u.Start != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "start"}, Value: u.Start})
	}
	if u.End != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "end"}, Value: u.End})
	}

	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for i, child := range u.Children {
		if err := e.Encode(child); err != nil {
			return err
		}
		if i < len(u.Children)-1 {
			if err := e.EncodeToken(xml.CharData(" ")); err != nil {
				return err
			}
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// W is a word element.
type W struct {
	XMLName xml.Name `xml:"w"`
	Id      string   `xml:"xml:id,attr"`
	Lemma   string   `xml:"lemma,attr,omitempty"`
	Type    string   `xml:"type,attr,omitempty"`
	Ana     string   `xml:"ana,attr,omitempty"`
	Start   string   `xml:"start,attr,omitempty"`
	End     string   `xml:"end,attr,omitempty"`
	Text    string   `xml:",chardata"`
}

// Pc is a punctuation mark.
type Pc struct {
	XMLName xml.Name `xml:"pc"`
	Id      string   `xml:"xml:id,attr"`
	Start   string   `xml:"start,attr,omitempty"`
	End     string   `xml:"end,attr,omitempty"`
	Text    string   `xml:",chardata"`
}

// PauseEl is a timed pause.
type PauseEl struct {
	XMLName  xml.Name `xml:"pause"`
	Duration string   `xml:"duration,attr"`
	Start    string   `xml:"start,attr,omitempty"`
	End      string   `xml:"end,attr,omitempty"`
}

// IncidentEl is a non-speech event with a free-text description.
type IncidentEl struct {
	XMLName xml.Name `xml:"incident"`
	Start   string   `xml:"start,attr,omitempty"`
	End     string   `xml:"end,attr,omitempty"`
	Desc    string   `xml:"desc"`
}

// UnclearEl marks an unintelligible stretch.
type UnclearEl struct {
	XMLName xml.Name `xml:"unclear"`
	Start   string   `xml:"start,attr,omitempty"`
	End     string   `xml:"end,attr,omitempty"`
}

// Encode serializes the document with an XML declaration. Output is
// deterministic for identical input.
func (d *Document) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	data, err := xml.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// Ref turns a standoff identifier into the reference form used by ana, who,
// start and end attributes.
func Ref(id string) string {
	return fmt.Sprintf("#%s", id)
}
