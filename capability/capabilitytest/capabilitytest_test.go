package capabilitytest

import (
	"errors"
	"reflect"
	"testing"

	"yomi/capability"
)

var (
	_ capability.Segmenter = (*MockSegmenter)(nil)
	_ capability.Converter = (*MockConverter)(nil)
)

func TestMockConverter(t *testing.T) {
	boom := errors.New("boom")
	m := &MockConverter{
		Readings: map[string]string{"漢字": "かんじ"},
		FailOn:   map[string]error{"壊": boom},
	}

	got, err := m.Convert("漢字")
	if err != nil {
		t.Fatal(err)
	}
	if want := []capability.Pair{{Orig: "漢字", Hira: "かんじ"}}; !reflect.DeepEqual(got, want) {
		t.Errorf("Convert() = %v, want %v", got, want)
	}
	if _, err := m.Convert("壊"); !errors.Is(err, boom) {
		t.Errorf("Convert() error = %v, want %v", err, boom)
	}
	if m.Calls() != 2 {
		t.Errorf("Calls() = %d, want 2", m.Calls())
	}
}

func TestMockSegmenter(t *testing.T) {
	got, err := (&MockSegmenter{}).Segment("私 は 学生")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"私", "は", "学生"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Segment() = %v, want %v", got, want)
	}
}
