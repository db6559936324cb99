package kanji

import (
	"strings"

	"yomi/script"
)

// Segment is one character of a surface with the reading assigned to it.
// Kana and other characters never carry a reading.
type Segment struct {
	Text    string `json:"text"`
	Reading string `json:"reading,omitempty"`
	Kanji   bool   `json:"kanji,omitempty"`
}

var rendaku = map[rune]rune{
	'か': 'が', 'き': 'ぎ', 'く': 'ぐ', 'け': 'げ', 'こ': 'ご',
	'さ': 'ざ', 'し': 'じ', 'す': 'ず', 'せ': 'ぜ', 'そ': 'ぞ',
	'た': 'だ', 'ち': 'ぢ', 'つ': 'づ', 'て': 'で', 'と': 'ど',
	'は': 'ば', 'ひ': 'び', 'ふ': 'ぶ', 'へ': 'べ', 'ほ': 'ぼ',
}

// NormalizeReading removes non-kana characters (like '.' or '-') and converts
// katakana to hiragana so Kanjidic2 readings like "い.り" match "いり".
func NormalizeReading(s string) string {
	var b strings.Builder
	for _, r := range script.KatakanaToHiragana(s) {
		if script.IsKana(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// RendakuForm voices the first kana of a reading (かわ -> がわ).
func RendakuForm(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	if v, ok := rendaku[runes[0]]; ok {
		runes[0] = v
	}
	return string(runes)
}

// variants returns the normalized forms of a Kanjidic2 reading worth trying.
// For dotted kun readings the stem comes first; the full reading is only
// tried when the okurigana is not written out in the surface.
func variants(kr string, okuriganaWritten bool) []string {
	var out []string
	add := func(v string) {
		if v == "" {
			return
		}
		for _, have := range out {
			if have == v {
				return
			}
		}
		out = append(out, v)
	}
	idx := strings.IndexRune(kr, '.')
	if idx < 0 {
		add(NormalizeReading(kr))
		return out
	}
	add(NormalizeReading(kr[:idx]))
	if !okuriganaWritten {
		add(NormalizeReading(kr))
	}
	return out
}

// Align splits a token reading over the characters of surface. Each kanji
// takes the longest Kanjidic2 reading (or its rendaku form past the first
// character) that matches at the current position; kana consume their own
// sound. An unmatched last kanji takes whatever reading is left.
func (t *Table) Align(surface, reading string) []Segment {
	surfaceRunes := []rune(surface)
	readingRunes := []rune(script.KatakanaToHiragana(reading))
	out := make([]Segment, 0, len(surfaceRunes))
	k := 0

	for j, s := range surfaceRunes {
		if !script.IsKanji(s) {
			out = append(out, Segment{Text: string(s)})
			if k < len(readingRunes) && readingRunes[k] == []rune(script.KatakanaToHiragana(string(s)))[0] {
				k++
			}
			continue
		}

		okurigana := j+1 < len(surfaceRunes) && script.IsKana(surfaceRunes[j+1])
		best := 0
		for _, kr := range t.Readings(s) {
			for _, v := range variants(kr, okurigana) {
				cands := []string{v}
				if j > 0 {
					cands = append(cands, RendakuForm(v))
				}
				for _, c := range cands {
					n := len([]rune(c))
					if n > best && k+n <= len(readingRunes) && string(readingRunes[k:k+n]) == c {
						best = n
					}
				}
			}
		}

		seg := Segment{Text: string(s), Kanji: true}
		switch {
		case best > 0:
			seg.Reading = string(readingRunes[k : k+best])
			k += best
		case lastKanji(surfaceRunes, j) && k < len(readingRunes):
			seg.Reading = string(readingRunes[k:trailingKanaStart(surfaceRunes, readingRunes, j, k)])
			k += len([]rune(seg.Reading))
		}
		out = append(out, seg)
	}
	return out
}

// Complete reports whether every kanji segment received a reading.
func Complete(segs []Segment) bool {
	for _, s := range segs {
		if s.Kanji && s.Reading == "" {
			return false
		}
	}
	return true
}

func lastKanji(surface []rune, j int) bool {
	for _, r := range surface[j+1:] {
		if script.IsKanji(r) {
			return false
		}
	}
	return true
}

// trailingKanaStart leaves room in the reading for kana that follow the last
// kanji (okurigana), so they are not swallowed by it.
func trailingKanaStart(surface, reading []rune, j, k int) int {
	tail := len(surface) - j - 1
	end := len(reading) - tail
	if end < k {
		return len(reading)
	}
	return end
}
