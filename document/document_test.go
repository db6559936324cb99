package document

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"yomi/annotate"
	"yomi/capability/capabilitytest"
	"yomi/errs"
	"yomi/model"
	"yomi/reading"
	"yomi/tokenize"
)

func newAssembler(opts ...Option) *Assembler {
	conv := &capabilitytest.MockConverter{Readings: map[string]string{
		"文":  "ぶん",
		"漢字": "かんじ",
		"質問": "しつもん",
	}}
	a := annotate.New(tokenize.New(&capabilitytest.MockSegmenter{}, conv), reading.New(conv))
	return New(a, opts...)
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"これは文です。これも文です。", []string{"これは文です。", "これも文です。"}},
		{"質問です", []string{"質問です"}},
		{"One. Two.", []string{"One.", "Two."}},
		{"最初。。次", []string{"最初。", "次"}},
		{"  前。  \n 後。 ", []string{"前。", "後。"}},
		{"終わりなし。残り", []string{"終わりなし。", "残り"}},
		{"。", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SplitSentences(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSentences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromText(t *testing.T) {
	asm := newAssembler()
	doc, err := asm.FromText(context.Background(), "文 です。 漢字 です。")
	if err != nil {
		t.Fatalf("FromText() error = %v", err)
	}
	if len(doc.Pages) != 1 || doc.Pages[0].PageNumber != 1 {
		t.Fatalf("expected a single page numbered 1, got %+v", doc.Pages)
	}
	page := doc.Pages[0]
	if page.Width != 0 || page.Height != 0 {
		t.Errorf("direct text pages have no dimensions: %dx%d", page.Width, page.Height)
	}
	if len(page.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(page.Lines))
	}
	for _, l := range page.Lines {
		if l.Provenance == nil || l.Provenance.Confidence != 1.0 || l.Provenance.BoundingBox != nil {
			t.Errorf("unexpected provenance %+v", l.Provenance)
		}
	}
	if doc.FullRenderedText != "文(ぶん)です。\n漢字(かんじ)です。" {
		t.Errorf("FullRenderedText = %q", doc.FullRenderedText)
	}
	if doc.OriginalText != "文 です。 漢字 です。" {
		t.Errorf("OriginalText = %q", doc.OriginalText)
	}
}

func TestFromOCRPreservesStructure(t *testing.T) {
	in := model.OCRDocument{
		FullText: "漢字\n\n質問",
		Pages: []model.OCRPage{
			{PageNumber: 1, Width: 800, Height: 600, Lines: []model.OCRLine{
				{Text: "漢字", BoundingBox: model.Polygon(1, 2, 3, 2, 3, 4, 1, 4), Confidence: 0.9},
				{Text: "", BoundingBox: model.Polygon(5, 6, 7, 6, 7, 8, 5, 8), Confidence: 0.1},
			}},
			{PageNumber: 2, Width: 640, Height: 480, Lines: []model.OCRLine{
				{Text: "質問", Confidence: 0.75},
			}},
			{PageNumber: 3, Width: 10, Height: 10},
		},
	}

	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			doc, err := newAssembler(WithWorkers(workers)).FromOCR(context.Background(), in)
			if err != nil {
				t.Fatalf("FromOCR() error = %v", err)
			}
			if len(doc.Pages) != len(in.Pages) {
				t.Fatalf("page count %d, want %d", len(doc.Pages), len(in.Pages))
			}
			for pi, p := range doc.Pages {
				src := in.Pages[pi]
				if p.PageNumber != src.PageNumber || p.Width != src.Width || p.Height != src.Height {
					t.Errorf("page %d metadata changed: %+v", pi, p)
				}
				if len(p.Lines) != len(src.Lines) {
					t.Fatalf("page %d: %d lines, want %d", pi, len(p.Lines), len(src.Lines))
				}
				for li, l := range p.Lines {
					if l.OriginalText != src.Lines[li].Text {
						t.Errorf("line %d.%d text %q, want %q", pi, li, l.OriginalText, src.Lines[li].Text)
					}
					if !reflect.DeepEqual(l.Provenance.BoundingBox, src.Lines[li].BoundingBox) {
						t.Errorf("line %d.%d bounding box changed", pi, li)
					}
					if l.Provenance.Confidence != src.Lines[li].Confidence {
						t.Errorf("line %d.%d confidence changed", pi, li)
					}
					if l.RenderedText != annotate.Render(l.Parts) {
						t.Errorf("line %d.%d violates render invariant", pi, li)
					}
				}
			}
			if doc.FullRenderedText != "漢字(かんじ)\n\n質問(しつもん)" {
				t.Errorf("FullRenderedText = %q", doc.FullRenderedText)
			}
			if doc.OriginalText != in.FullText {
				t.Errorf("OriginalText = %q", doc.OriginalText)
			}
		})
	}
}

func TestFromOCRManyLinesConcurrently(t *testing.T) {
	var lines []model.OCRLine
	for i := 0; i < 200; i++ {
		lines = append(lines, model.OCRLine{Text: fmt.Sprintf("漢字 %d", i), Confidence: 0.5})
	}
	in := model.OCRDocument{Pages: []model.OCRPage{{PageNumber: 1, Lines: lines}}}
	doc, err := newAssembler(WithWorkers(8)).FromOCR(context.Background(), in)
	if err != nil {
		t.Fatalf("FromOCR() error = %v", err)
	}
	for i, l := range doc.Pages[0].Lines {
		if want := fmt.Sprintf("漢字(かんじ)%d", i); l.RenderedText != want {
			t.Fatalf("line %d rendered %q, want %q", i, l.RenderedText, want)
		}
	}
}

func TestFromOCRValidation(t *testing.T) {
	tests := []struct {
		name string
		page model.OCRPage
	}{
		{"zero page number", model.OCRPage{PageNumber: 0}},
		{"negative page number", model.OCRPage{PageNumber: -1}},
		{"negative width", model.OCRPage{PageNumber: 1, Width: -5}},
		{"confidence above one", model.OCRPage{PageNumber: 1, Lines: []model.OCRLine{{Text: "x", Confidence: 1.5}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newAssembler().FromOCR(context.Background(), model.OCRDocument{Pages: []model.OCRPage{tt.page}})
			if !errs.Is(err, errs.MalformedInput) {
				t.Errorf("expected MALFORMED_INPUT, got %v", err)
			}
		})
	}
}

func TestFromOCRCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	in := model.OCRDocument{Pages: []model.OCRPage{{PageNumber: 1, Lines: []model.OCRLine{{Text: "a"}, {Text: "b"}}}}}
	if _, err := newAssembler().FromOCR(ctx, in); err == nil {
		t.Fatal("expected context error")
	}
}
