package document

import "strings"

// SplitSentences cuts text after every 。 or '.'. Whitespace around sentences
// is trimmed and blank sentences are dropped. Text without any boundary is a
// single sentence.
func SplitSentences(text string) []string {
	var out []string
	start := 0
	for i, r := range text {
		if r != '。' && r != '.' {
			continue
		}
		end := i + len(string(r))
		if s := strings.TrimSpace(text[start:end]); s != "" && !onlyBoundaries(s) {
			out = append(out, s)
		}
		start = end
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		out = append(out, s)
	}
	return out
}

func onlyBoundaries(s string) bool {
	return strings.Trim(s, "。.") == ""
}
