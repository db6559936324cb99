package tokenize

import (
	"strings"

	"yomi/capability"
	"yomi/errs"
)

// Strategy names the segmentation path chosen at construction.
type Strategy string

const (
	// Primary segments with a morphological segmenter.
	Primary Strategy = "morphological"
	// Fallback segments with the script converter and keeps its readings.
	Fallback Strategy = "conversion"
	// Degraded returns the whole line as one token.
	Degraded Strategy = "passthrough"
)

// Token is one raw word of a line. HasReading is set when the segmenting
// capability already supplied the reading, in which case Reading is final
// (empty when identical to Text). Raw marks a line that was passed through
// without segmentation.
type Token struct {
	Text       string `json:"text"`
	Reading    string `json:"reading,omitempty"`
	HasReading bool   `json:"has_reading,omitempty"`
	Raw        bool   `json:"raw,omitempty"`
}

// Tokenizer splits lines into tokens using the strategy picked once by New.
type Tokenizer struct {
	seg      capability.Segmenter
	conv     capability.Converter
	strategy Strategy
}

// New picks the primary strategy when a segmenter is available, the fallback
// when only a converter is, and the degraded pass-through otherwise.
func New(seg capability.Segmenter, conv capability.Converter) *Tokenizer {
	t := &Tokenizer{seg: seg, conv: conv}
	switch {
	case seg != nil:
		t.strategy = Primary
	case conv != nil:
		t.strategy = Fallback
	default:
		t.strategy = Degraded
	}
	return t
}

// Strategy reports the active strategy.
func (t *Tokenizer) Strategy() Strategy {
	return t.strategy
}

// Tokenize splits line into non-empty tokens in order. If the capability
// fails, the whole line is returned as a single token together with a
// RESOLUTION_FAILURE error; callers may log it and carry on.
func (t *Tokenizer) Tokenize(line string) ([]Token, error) {
	if line == "" {
		return nil, nil
	}
	switch t.strategy {
	case Primary:
		words, err := t.seg.Segment(line)
		if err != nil {
			return passthrough(line), errs.Wrap(errs.ResolutionFailure, err, "segment line")
		}
		return fromWords(words), nil
	case Fallback:
		pairs, err := t.conv.Convert(line)
		if err != nil {
			return passthrough(line), errs.Wrap(errs.ResolutionFailure, err, "convert line")
		}
		return fromPairs(pairs), nil
	default:
		return passthrough(line), nil
	}
}

func passthrough(line string) []Token {
	return []Token{{Text: line, Raw: true}}
}

func fromWords(words []string) []Token {
	out := make([]Token, 0, len(words))
	for _, w := range words {
		// the segmenter may return whitespace-joined runs
		for _, f := range strings.Fields(w) {
			out = append(out, Token{Text: f})
		}
	}
	return out
}

func fromPairs(pairs []capability.Pair) []Token {
	out := make([]Token, 0, len(pairs))
	for _, p := range pairs {
		if strings.TrimSpace(p.Orig) == "" {
			continue
		}
		reading := p.Hira
		if reading == p.Orig {
			reading = ""
		}
		out = append(out, Token{Text: p.Orig, Reading: reading, HasReading: true})
	}
	return out
}
