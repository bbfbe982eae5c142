package tei

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lapis-corpus/teivert/corpus"
)

// BuildTimeline collects the distinct start/end values of the token stream
// into an ordered timeline registry. Identifiers are assigned after sorting
// the distinct values by elapsed time, so the id of a value depends only on
// the sorted set, never on input order. The returned map resolves a raw
// value to its timeline id.
func BuildTimeline(tokens []corpus.Token) (*Timeline, map[string]string) {
	seen := map[string]struct{}{}
	var values []string
	for _, t := range tokens {
		for _, v := range []string{t.Start, t.End} {
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			values = append(values, v)
		}
	}

	sort.Slice(values, func(i, j int) bool {
		si, sj := Seconds(values[i]), Seconds(values[j])
		if si != sj {
			return si < sj
		}
		return values[i] < values[j]
	})

	tl := &Timeline{Unit: "s"}
	ids := make(map[string]string, len(values))
	for i, v := range values {
		id := fmt.Sprintf("TL_%d", i+1)
		tl.When = append(tl.When, When{Id: id, Absolute: v})
		ids[v] = id
	}
	return tl, ids
}

// Seconds converts a timestamp like "0:00:12.5" to elapsed seconds. Values
// are compared numerically, not lexically: "0:00:9" sorts before "0:00:12.5".
// Fields that do not parse count as zero; the caller breaks remaining ties on
// the raw string.
func Seconds(v string) float64 {
	var total float64
	for _, field := range strings.Split(v, ":") {
		f, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			f = 0
		}
		total = total*60 + f
	}
	return total
}
