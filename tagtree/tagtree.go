// Package tagtree exports the annotation-tag hierarchy as a TEI
// feature-structure declaration. The flat rows reference children by id
// lists; the same id can occur on several hierarchy levels, so the tree is
// built over an arena of rows indexed by id with a same-ebene disambiguation
// heuristic, and a path guard stops the walk if the child references turn out
// to be cyclic.
package tagtree

import (
	"fmt"
	"io"
	"regexp"
	"strconv"

	"github.com/lapis-corpus/teivert/tei"
)

// Tag is one flat row of the tag hierarchy.
type Tag struct {
	Id         int    `json:"tag_id"`
	Abbrev     string `json:"tag_abbrev"`
	Name       string `json:"tag_name"`
	EbeneId    int    `json:"tag_ebene_id"`
	Generation int    `json:"tag_gene"`

	// ChildrenIds is the raw array literal of the source, e.g. "{1,2,3}".
	ChildrenIds string `json:"children_ids"`
}

var digits = regexp.MustCompile(`\d+`)

// ParseChildrenIds extracts the ids from an array literal like "{1,2,3}".
func ParseChildrenIds(s string) []int {
	var ids []int
	for _, m := range digits.FindAllString(s, -1) {
		id, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// Builder assembles the declaration document. The occurrence counter makes
// repeated placements of one tag id distinguishable (tag-<id>_<n>).
type Builder struct {
	arena      map[int][]Tag
	occurrence map[int]int
	diag       io.Writer
}

func NewBuilder(tags []Tag, diag io.Writer) *Builder {
	if diag == nil {
		diag = io.Discard
	}
	arena := map[int][]Tag{}
	for _, t := range tags {
		arena[t.Id] = append(arena[t.Id], t)
	}
	return &Builder{
		arena:      arena,
		occurrence: map[int]int{},
		diag:       diag,
	}
}

// BuildStandoff renders the hierarchy of tags into a declaration document.
// Top-level tags are the generation-0 rows, in input order.
func BuildStandoff(tags []Tag, source string, diag io.Writer) *tei.Document {
	b := NewBuilder(tags, diag)

	root := tei.Fs{Id: "dioe-tags-features", Type: "feature-system"}
	for _, t := range tags {
		if t.Generation != 0 {
			continue
		}
		root.F = append(root.F, b.feature(t, map[int]bool{}))
	}

	return &tei.Document{
		Xmlns: tei.NS,
		Header: tei.Header{FileDesc: tei.FileDesc{
			Title:       "Feature Structure Declaration for DiÖ Annotation Tags",
			Publication: fmt.Sprintf("Generated from %s.", source),
			Source:      tei.SourceDesc{P: fmt.Sprintf("Source data is: %s.", source)},
		}},
		StandOff: &tei.StandOff{Fs: []tei.Fs{root}},
	}
}

// feature renders one tag and, recursively, its children. path holds the tag
// ids on the current root-to-here walk.
func (b *Builder) feature(t Tag, path map[int]bool) tei.F {
	b.occurrence[t.Id]++
	f := tei.F{
		Name:   abbrevOrUnknown(t),
		Id:     fmt.Sprintf("tag-%d_%d", t.Id, b.occurrence[t.Id]),
		String: nameOrUnnamed(t),
	}

	childIds := ParseChildrenIds(t.ChildrenIds)
	if len(childIds) == 0 {
		return f
	}

	path[t.Id] = true
	defer delete(path, t.Id)

	children := tei.Fs{Type: "tag"}
	for _, id := range childIds {
		child, ok := b.resolve(id, t.EbeneId)
		if !ok {
			fmt.Fprintf(b.diag, "tagtree: child tag %d not found for parent %d\n", id, t.Id)
			continue
		}
		if path[child.Id] {
			fmt.Fprintf(b.diag, "tagtree: cyclic child reference %d under parent %d\n", child.Id, t.Id)
			continue
		}
		children.F = append(children.F, b.feature(child, path))
	}
	if len(children.F) > 0 {
		f.Fs = []tei.Fs{children}
	}
	return f
}

// resolve picks the row for a child id. When the id is ambiguous, a row on
// the parent's ebene wins; otherwise the first row does.
func (b *Builder) resolve(id, parentEbeneId int) (Tag, bool) {
	candidates := b.arena[id]
	if len(candidates) == 0 {
		return Tag{}, false
	}
	for _, c := range candidates {
		if c.EbeneId == parentEbeneId {
			return c, true
		}
	}
	return candidates[0], true
}

func abbrevOrUnknown(t Tag) string {
	if t.Abbrev == "" {
		return "UNKNOWN"
	}
	return t.Abbrev
}

func nameOrUnnamed(t Tag) string {
	if t.Name == "" {
		return "Unnamed Tag"
	}
	return t.Name
}
