// Package tagset loads the set of permitted annotation-tag names from the
// feature-structure declaration document of the annotation scheme.
package tagset

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// Set is a case-insensitive set of valid tag names. Members are stored
// lowercased.
type Set map[string]struct{}

// Load reads a tag declaration document and collects the name attribute of
// every feature element into a Set. A missing or malformed document yields an
// empty set and a diagnostic on diag; callers then run in reject-everything
// mode instead of failing the run.
func Load(path string, diag io.Writer) Set {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(diag, "tagset: cannot read declaration %s: %v\n", path, err)
		return Set{}
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		fmt.Fprintf(diag, "tagset: malformed declaration %s: %v\n", path, err)
		return Set{}
	}
	return s
}

// Parse collects tag names from a declaration document read from r.
func Parse(r io.Reader) (Set, error) {
	s := Set{}
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "f" {
			continue
		}
		for _, attr := range start.Attr {
			if attr.Name.Local == "name" && attr.Value != "" {
				s.Add(attr.Value)
			}
		}
	}
	return s, nil
}

func (s Set) Add(name string) {
	s[strings.ToLower(name)] = struct{}{}
}

func (s Set) Contains(name string) bool {
	_, ok := s[strings.ToLower(name)]
	return ok
}

// Filter keeps the tags present in the set, preserving order. Rejected tags
// are reported on diag with the id of the owning bundle; they are dropped,
// never substituted.
func (s Set) Filter(tags []string, owner string, diag io.Writer) []string {
	var kept []string
	for _, tag := range tags {
		if s.Contains(tag) {
			kept = append(kept, tag)
			continue
		}
		fmt.Fprintf(diag, "tagset: dropping unknown tag %q from %s\n", tag, owner)
	}
	return kept
}
