// Package capabilitytest provides in-memory Segmenter and Converter test
// doubles.
package capabilitytest

import (
	"strings"
	"sync/atomic"

	"yomi/capability"
)

// MockSegmenter splits on whitespace, or returns Err when set.
type MockSegmenter struct {
	Err error
}

func (m *MockSegmenter) Segment(text string) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return strings.Fields(text), nil
}

// MockConverter answers from a fixed table. Text missing from the table is
// converted to itself as a single pair. FailOn makes Convert fail for the
// given inputs.
type MockConverter struct {
	Readings map[string]string
	Segments map[string][]capability.Pair
	FailOn   map[string]error

	calls atomic.Int64
}

func (m *MockConverter) Convert(text string) ([]capability.Pair, error) {
	m.calls.Add(1)
	if err, ok := m.FailOn[text]; ok {
		return nil, err
	}
	if pairs, ok := m.Segments[text]; ok {
		return pairs, nil
	}
	if r, ok := m.Readings[text]; ok {
		return []capability.Pair{{Orig: text, Hira: r}}, nil
	}
	return []capability.Pair{{Orig: text, Hira: text}}, nil
}

// Calls returns how many times Convert was called.
func (m *MockConverter) Calls() int64 {
	return m.calls.Load()
}
