package sentences

import (
	"fmt"
	"regexp"
	"strings"
)

// Split modes.
const (
	ModeLines     = "lines"
	ModeSentences = "sentences"
)

// Splitter turns a text file into the sentences to embed.
type Splitter struct {
	mode     string
	splitter *regexp.Regexp
}

// NewSplitter returns a splitter for mode: "lines" treats every line as one
// sentence, "sentences" splits running text on terminal punctuation.
func NewSplitter(mode string) (*Splitter, error) {
	switch mode {
	case "", ModeLines:
		return &Splitter{mode: ModeLines}, nil
	case ModeSentences:
		return &Splitter{
			mode:     ModeSentences,
			splitter: regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`),
		}, nil
	}
	return nil, fmt.Errorf("unknown split mode %q", mode)
}

// Split returns the trimmed, non-empty sentences of text in order.
func (s *Splitter) Split(text string) []string {
	var parts []string
	if s.mode == ModeLines {
		parts = strings.Split(text, "\n")
	} else {
		parts = s.splitter.FindAllString(text, -1)
		if len(parts) == 0 {
			parts = []string{text}
		} else if rest := text[lastMatchEnd(s.splitter, text):]; strings.TrimSpace(rest) != "" {
			parts = append(parts, rest)
		}
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.Join(strings.Fields(p), " "))
		}
	}
	return out
}

func lastMatchEnd(re *regexp.Regexp, text string) int {
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return 0
	}
	return locs[len(locs)-1][1]
}
