package capability

import (
	"fmt"
	"os"
	"strings"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"yomi/script"
)

// Dictionary names.
const (
	DictIPA = "ipa"
	DictUni = "uni"
)

// KagomeOptions configures the kagome backend.
type KagomeOptions struct {
	Dictionary string
	UserDict   string
}

// Kagome implements Segmenter and Converter on a kagome tokenizer.
type Kagome struct {
	t   *tokenizer.Tokenizer
	uni bool
}

// NewKagome loads the system dictionary (and an optional user dictionary)
// and builds the tokenizer with BOS/EOS omitted.
func NewKagome(opts KagomeOptions) (*Kagome, error) {
	d, err := systemDict(opts.Dictionary)
	if err != nil {
		return nil, err
	}
	tokOpts := []tokenizer.Option{tokenizer.OmitBosEos()}
	if opts.UserDict != "" {
		udict, err := loadUserDict(opts.UserDict)
		if err != nil {
			return nil, err
		}
		tokOpts = append(tokOpts, tokenizer.UserDict(udict))
	}
	t, err := tokenizer.New(d, tokOpts...)
	if err != nil {
		return nil, fmt.Errorf("init kagome tokenizer: %w", err)
	}
	return &Kagome{t: t, uni: opts.Dictionary == DictUni}, nil
}

func systemDict(name string) (*dict.Dict, error) {
	switch name {
	case "", DictIPA:
		return ipa.Dict(), nil
	case DictUni:
		return uni.Dict(), nil
	default:
		return nil, fmt.Errorf("unknown dictionary %q", name)
	}
}

// loadUserDict reads a kagome user dictionary CSV:
// surface,segments,readings,pos (segments and readings space separated).
func loadUserDict(path string) (*dict.UserDict, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open user dictionary: %w", err)
	}
	defer f.Close()
	recs, err := dict.NewUserDicRecords(f)
	if err != nil {
		return nil, fmt.Errorf("read user dictionary %s: %w", path, err)
	}
	udict, err := recs.NewUserDict()
	if err != nil {
		return nil, fmt.Errorf("load user dictionary %s: %w", path, err)
	}
	return udict, nil
}

func (k *Kagome) tokens(text string) []tokenizer.Token {
	var out []tokenizer.Token
	for _, kt := range k.t.Tokenize(text) {
		if kt.Class == tokenizer.DUMMY {
			continue
		}
		out = append(out, kt)
	}
	return out
}

// Segment returns the surface of every token.
func (k *Kagome) Segment(text string) ([]string, error) {
	ktoks := k.tokens(text)
	out := make([]string, 0, len(ktoks))
	for _, kt := range ktoks {
		out = append(out, kt.Surface)
	}
	return out, nil
}

// Convert returns one pair per token with the reading in hiragana. Tokens
// without a dictionary reading convert to the hiragana projection of their
// own surface.
func (k *Kagome) Convert(text string) ([]Pair, error) {
	ktoks := k.tokens(text)
	out := make([]Pair, 0, len(ktoks))
	for _, kt := range ktoks {
		reading, ok := k.reading(kt)
		if !ok {
			reading = kt.Surface
		}
		out = append(out, Pair{Orig: kt.Surface, Hira: script.KatakanaToHiragana(reading)})
	}
	return out, nil
}

// reading picks the kana reading of a token. IPA carries it as a feature.
// UniDic has no reading feature: uninflected words use the lemma reading
// (トウキョウ, not the pronunciation トーキョー) and inflected forms use the
// surface pronunciation (行っ → イッ). User entries carry their own readings.
func (k *Kagome) reading(kt tokenizer.Token) (string, bool) {
	if kt.Class == tokenizer.USER {
		if ex := kt.UserExtra(); ex != nil {
			return usable(strings.Join(ex.Readings, ""))
		}
		return "", false
	}
	if r, ok := kt.Reading(); ok {
		if r, ok := usable(r); ok {
			return r, true
		}
	}
	if k.uni {
		if form, ok := kt.FeatureAt(uni.CForm); ok && form == "*" {
			if r, ok := kt.FeatureAt(uni.LForm); ok {
				if r, ok := usable(r); ok {
					return r, true
				}
			}
		}
	}
	if r, ok := kt.Pronunciation(); ok {
		return usable(r)
	}
	return "", false
}

func usable(r string) (string, bool) {
	r = strings.TrimSpace(r)
	if r == "" || r == "*" {
		return "", false
	}
	return r, true
}
