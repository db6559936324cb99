package script

import (
	"unicode"

	"yomi/model"
)

func IsKanji(r rune) bool {
	return unicode.Is(unicode.Han, r)
}

func IsHiragana(r rune) bool {
	return r >= 0x3040 && r <= 0x309F
}

func IsKatakana(r rune) bool {
	return r >= 0x30A0 && r <= 0x30FF
}

// IsKana returns true if rune is Hiragana or Katakana
func IsKana(r rune) bool {
	return IsHiragana(r) || IsKatakana(r)
}

// ContainsKanji reports whether s has at least one kanji.
func ContainsKanji(s string) bool {
	for _, r := range s {
		if IsKanji(r) {
			return true
		}
	}
	return false
}

// Classify returns the script kind of a run of text. The first matching
// category wins: any kanji makes the run Kanji, then hiragana, then katakana.
// Runs without any Japanese script are Other; empty input is Unknown.
func Classify(s string) model.ScriptKind {
	if s == "" {
		return model.Unknown
	}
	var kanji, hiragana, katakana int
	for _, r := range s {
		switch {
		case IsKanji(r):
			kanji++
		case IsHiragana(r):
			hiragana++
		case IsKatakana(r):
			katakana++
		}
	}
	switch {
	case kanji > 0:
		return model.Kanji
	case hiragana > 0:
		return model.Hiragana
	case katakana > 0:
		return model.Katakana
	default:
		return model.Other
	}
}

// KatakanaToHiragana converts katakana to hiragana, leaving everything else
// (including the prolonged sound mark) untouched.
func KatakanaToHiragana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 0x30A1 && r <= 0x30F6 {
			runes[i] = r - 0x60
		}
	}
	return string(runes)
}
