package vertical

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
)

// Speaker is the enrichment record for one informant, as read from the
// global standoff personography.
type Speaker struct {
	Sex  string
	Age  string
	Name string
}

// Unknown is the sentinel for any speaker field that cannot be resolved.
const Unknown = "UNK"

var unknownSpeaker = Speaker{Sex: Unknown, Age: Unknown, Name: Unknown}

type personography struct {
	Persons []struct {
		Id  string `xml:"id,attr"`
		Sex struct {
			Value string `xml:"value,attr"`
		} `xml:"sex"`
		Age  string `xml:"age"`
		Name string `xml:"persName"`
	} `xml:"standOff>listPerson>person"`
}

// LoadSpeakers parses the standoff informant document into a lookup keyed by
// person id (without the '#'). A missing file yields an empty lookup and a
// diagnostic; every later lookup then falls back to UNK fields.
func LoadSpeakers(path string, diag io.Writer) map[string]Speaker {
	speakers := map[string]Speaker{}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(diag, "vertical: standoff file not found at %s\n", path)
		return speakers
	}

	var p personography
	if err := xml.Unmarshal(data, &p); err != nil {
		fmt.Fprintf(diag, "vertical: error reading standoff file %s: %v\n", path, err)
		return speakers
	}

	for _, person := range p.Persons {
		if person.Id == "" {
			continue
		}
		speakers[person.Id] = Speaker{
			Sex:  orUnknown(person.Sex.Value),
			Age:  orUnknown(strings.TrimSpace(person.Age)),
			Name: orUnknown(strings.TrimSpace(person.Name)),
		}
	}
	return speakers
}

func orUnknown(v string) string {
	if v == "" {
		return Unknown
	}
	return v
}

// sanitize strips embedded tabs and newlines, which would break the
// line-oriented output.
var sanitizer = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

func sanitize(v string) string {
	return sanitizer.Replace(v)
}
