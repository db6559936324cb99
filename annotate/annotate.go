// Package annotate turns one line of text into classified parts with
// readings and renders the inline furigana form.
package annotate

import (
	"strings"

	"yomi/model"
	"yomi/reading"
	"yomi/script"
	"yomi/tokenize"
)

// Result is the annotation of one line together with every reading
// resolution that did not succeed. Failures never abort the line.
type Result struct {
	Line     model.Line
	Failures []reading.Outcome
	Err      error
}

// Annotator combines a tokenizer and a reading resolver. Both are read-only
// after construction, so one Annotator serves any number of goroutines.
type Annotator struct {
	tok *tokenize.Tokenizer
	res *reading.Resolver
}

// New creates an annotator.
func New(tok *tokenize.Tokenizer, res *reading.Resolver) *Annotator {
	if res == nil {
		res = reading.New(nil)
	}
	return &Annotator{tok: tok, res: res}
}

// Strategy reports the tokenizer strategy in use.
func (a *Annotator) Strategy() tokenize.Strategy {
	return a.tok.Strategy()
}

// Annotate tokenizes, classifies and resolves line. The returned line has no
// provenance; callers attach it.
func (a *Annotator) Annotate(line string) Result {
	tokens, err := a.tok.Tokenize(line)
	res := Result{Err: err}

	parts := make([]model.Part, 0, len(tokens))
	for _, tk := range tokens {
		if tk.Raw {
			parts = append(parts, model.Part{Text: tk.Text, Kind: model.Unknown})
			continue
		}
		kind := script.Classify(tk.Text)
		var rd string
		if kind == model.Kanji {
			if tk.HasReading {
				rd = tk.Reading
			} else {
				out := a.res.Resolve(tk.Text)
				rd = out.Reading
				if out.Status == reading.Failed {
					res.Failures = append(res.Failures, out)
				}
			}
		}
		parts = append(parts, NewPart(tk.Text, rd, kind))
	}

	res.Line = model.Line{
		OriginalText: line,
		RenderedText: Render(parts),
		Parts:        parts,
	}
	return res
}

// NewPart builds a part, dropping readings on non-kanji parts and readings
// that repeat the surface text.
func NewPart(text, rd string, kind model.ScriptKind) model.Part {
	if kind != model.Kanji || rd == text {
		rd = ""
	}
	return model.Part{Text: text, Reading: rd, Kind: kind}
}

// Render concatenates parts, writing kanji parts that carry a reading as
// text(reading).
func Render(parts []model.Part) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.Text)
		if p.Kind == model.Kanji && p.Reading != "" {
			b.WriteByte('(')
			b.WriteString(p.Reading)
			b.WriteByte(')')
		}
	}
	return b.String()
}

// PlainText joins the surface text of parts.
func PlainText(parts []model.Part) string {
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
