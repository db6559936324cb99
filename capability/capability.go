// Package capability provides the segmentation and script-conversion
// backends the annotation engine is built on. Backends are chosen once at
// startup and are read-only afterwards.
package capability

import (
	"fmt"
	"log/slog"

	"yomi/errs"
)

// Segmenter splits text into surface tokens by morphological analysis.
type Segmenter interface {
	Segment(text string) ([]string, error)
}

// Pair is one segment produced by a Converter: the original substring and its
// hiragana reading.
type Pair struct {
	Orig string `json:"orig"`
	Hira string `json:"hira"`
}

// Converter converts text to hiragana, returning the segments it used.
type Converter interface {
	Convert(text string) ([]Pair, error)
}

// Backend names accepted in configuration.
const (
	BackendKagome = "kagome"
	BackendNone   = "none"
)

// Options selects the backends to build.
type Options struct {
	Segmenter  string
	Converter  string
	Dictionary string
	UserDict   string
	Logger     *slog.Logger
}

// Set holds the capabilities available to the engine. A nil field means the
// capability is unavailable.
type Set struct {
	Segmenter Segmenter
	Converter Converter
	Degraded  []error
}

// New builds the configured capability set. An unknown backend name is a
// configuration error; a disabled backend is recorded as degraded.
func New(opts Options) (Set, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	for _, b := range []string{opts.Segmenter, opts.Converter} {
		switch b {
		case "", BackendKagome, BackendNone:
		default:
			return Set{}, fmt.Errorf("unknown capability backend %q", b)
		}
	}

	var set Set
	var kg *Kagome
	if opts.Segmenter == BackendKagome || opts.Converter == BackendKagome {
		k, err := NewKagome(KagomeOptions{Dictionary: opts.Dictionary, UserDict: opts.UserDict})
		if err != nil {
			return Set{}, err
		}
		kg = k
	}

	if opts.Segmenter == BackendKagome {
		set.Segmenter = kg
	} else {
		set.Degraded = append(set.Degraded, errs.New(errs.DegradedCapability, "no segmenter configured"))
	}
	if opts.Converter == BackendKagome {
		set.Converter = kg
	} else {
		set.Degraded = append(set.Degraded, errs.New(errs.DegradedCapability, "no converter configured"))
	}

	for _, d := range set.Degraded {
		logger.Warn("capability unavailable", "error", d)
	}
	return set, nil
}
