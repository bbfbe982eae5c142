// Package shell is an interactive inspection prompt over a relational
// source: list transcripts and informants, preview utterance segmentation
// and tag filtering before committing to an export.
package shell

import (
	"fmt"
	"os"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/lapis-corpus/teivert/storage"
	"github.com/lapis-corpus/teivert/tagset"
	"github.com/lapis-corpus/teivert/tei"
	"github.com/lapis-corpus/teivert/token"
)

type Handler struct {
	Repo      storage.CorpusRepository
	Whitelist tagset.Set
}

func NewHandler(repo storage.CorpusRepository, wl tagset.Set) *Handler {
	return &Handler{Repo: repo, Whitelist: wl}
}

func (h *Handler) Run() error {
	fmt.Println("🔖 transcripts | informants | segments <transcript> | quit")

	transcripts, err := h.Repo.Transcripts()
	if err != nil {
		return err
	}

	history := []string{}
	for {
		in := prompt.Input("      🔎 ", h.completer(transcripts),
			prompt.OptionTitle("teivert shell"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(12),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
		)

		if in == "quit" {
			return nil
		}
		history = append(history, in)

		fields := strings.Fields(in)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "transcripts":
			for _, name := range transcripts {
				fmt.Println(name)
			}

		case "informants":
			h.printInformants()

		case "segments":
			if len(fields) < 2 {
				fmt.Println("segments needs a transcript name")
				continue
			}
			h.printSegments(fields[1])

		default:
			fmt.Printf("unknown command: %s\n", fields[0])
		}
	}
}

func (h *Handler) printInformants() {
	informants, err := h.Repo.Informants()
	if err != nil {
		fmt.Printf("Error listing informants: %v\n", err)
		return
	}
	for _, inf := range informants {
		fmt.Printf("%-8s %-6s %-12s %s\n", inf.Ref(), inf.SexValue(), inf.AgeGroup, inf.Sigle)
	}
}

func (h *Handler) printSegments(name string) {
	tokens, err := h.Repo.Tokens(name)
	if err != nil {
		fmt.Printf("Error reading transcript %s: %v\n", name, err)
		return
	}
	if len(tokens) == 0 {
		fmt.Printf("no token data for %s\n", name)
		return
	}

	tei.SortForReading(tokens)
	for _, u := range tei.Segment(tokens) {
		var words []string
		for _, t := range u.Tokens {
			display := t.Display()
			c := token.Classify(display, t.Pos)
			if c.Kind != token.Word && c.Kind != token.PunctuationMark {
				words = append(words, fmt.Sprintf("<%s>", c.Kind))
				continue
			}
			if len(t.Tags) > 0 {
				kept := h.Whitelist.Filter(t.Tags, fmt.Sprintf("token %d", t.Id), os.Stderr)
				if len(kept) > 0 {
					display = fmt.Sprintf("%s[%s]", display, strings.Join(kept, ","))
				}
			}
			words = append(words, display)
		}
		fmt.Printf("spk_%-4d %s..%s  %s\n", u.InformantId, u.Start(), u.End(), strings.Join(words, " "))
	}
}

func (h *Handler) completer(transcripts []string) func(d prompt.Document) []prompt.Suggest {
	commands := []prompt.Suggest{
		{Text: "transcripts", Description: "list transcript names"},
		{Text: "informants", Description: "list informant records"},
		{Text: "segments", Description: "preview utterance segmentation"},
		{Text: "quit", Description: "leave the shell"},
	}

	return func(d prompt.Document) []prompt.Suggest {
		text := d.TextBeforeCursor()
		if strings.HasPrefix(text, "segments ") {
			var sugg []prompt.Suggest
			for _, name := range transcripts {
				sugg = append(sugg, prompt.Suggest{Text: name})
			}
			return prompt.FilterHasPrefix(sugg, d.GetWordBeforeCursor(), true)
		}
		return prompt.FilterHasPrefix(commands, d.GetWordBeforeCursor(), true)
	}
}
