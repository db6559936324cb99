// Package render turns annotated documents into HTML ruby markup.
package render

import (
	"html"
	"strconv"
	"strings"

	"yomi/kanji"
	"yomi/model"
)

// Stylesheet is prepended to the markup when Options.Stylesheet is set.
const Stylesheet = `<style>
.furigana-text {
    font-family: 'Noto Sans JP', 'Hiragino Sans', 'Yu Gothic', sans-serif;
    line-height: 2;
    font-size: 18px;
}
.page {
    margin-bottom: 20px;
    padding: 10px;
    border: 1px solid #ddd;
}
.line {
    margin-bottom: 10px;
}
ruby {
    ruby-align: center;
}
rt {
    font-size: 0.7em;
    color: #666;
}
</style>`

// Options controls HTML output.
type Options struct {
	// Stylesheet embeds the default CSS before the markup.
	Stylesheet bool
	// Kanji enables per-character ruby. Nil keeps one ruby per token.
	Kanji *kanji.Table
}

// HTML renders doc as nested page and line divs with ruby annotations.
func HTML(doc model.Document, opts Options) string {
	var b strings.Builder
	if opts.Stylesheet {
		b.WriteString(Stylesheet)
		b.WriteString("\n")
	}
	b.WriteString(`<div class="furigana-text">`)
	b.WriteString("\n")
	for _, p := range doc.Pages {
		b.WriteString(`<div class="page" data-page="`)
		b.WriteString(strconv.Itoa(p.PageNumber))
		b.WriteString(`">`)
		b.WriteString("\n")
		for _, l := range p.Lines {
			b.WriteString(`<div class="line">`)
			b.WriteString(Line(l.Parts, opts.Kanji))
			b.WriteString("</div>\n")
		}
		b.WriteString("</div>\n")
	}
	b.WriteString("</div>")
	return b.String()
}

// Line renders the parts of a single line.
func Line(parts []model.Part, table *kanji.Table) string {
	var b strings.Builder
	for _, p := range parts {
		writePart(&b, p, table)
	}
	return b.String()
}

func writePart(b *strings.Builder, p model.Part, table *kanji.Table) {
	if p.Kind != model.Kanji || p.Reading == "" {
		b.WriteString(html.EscapeString(p.Text))
		return
	}
	if table != nil {
		if segs := table.Align(p.Text, p.Reading); kanji.Complete(segs) {
			for _, s := range segs {
				if s.Kanji {
					writeRuby(b, s.Text, s.Reading)
				} else {
					b.WriteString(html.EscapeString(s.Text))
				}
			}
			return
		}
	}
	writeRuby(b, p.Text, p.Reading)
}

func writeRuby(b *strings.Builder, text, reading string) {
	b.WriteString("<ruby>")
	b.WriteString(html.EscapeString(text))
	b.WriteString("<rt>")
	b.WriteString(html.EscapeString(reading))
	b.WriteString("</rt></ruby>")
}
