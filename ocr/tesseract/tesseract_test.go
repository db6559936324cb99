package tesseract

import (
	"image"
	"reflect"
	"testing"

	"github.com/otiai10/gosseract/v2"

	"yomi/model"
)

func TestLayout(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantLangs []string
		wantMode  gosseract.PageSegMode
	}{
		{"horizontal default", Config{}, []string{"jpn"}, gosseract.PSM_AUTO_OSD},
		{"vertical default", Config{Vertical: true}, []string{"jpn_vert"}, gosseract.PSM_SINGLE_COLUMN},
		{"explicit languages", Config{Languages: []string{"jpn", "eng"}}, []string{"jpn", "eng"}, gosseract.PSM_AUTO_OSD},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			langs, mode := Layout(tt.cfg)
			if !reflect.DeepEqual(langs, tt.wantLangs) || mode != tt.wantMode {
				t.Errorf("Layout() = %v, %v; want %v, %v", langs, mode, tt.wantLangs, tt.wantMode)
			}
		})
	}
}

func TestLines(t *testing.T) {
	boxes := []gosseract.BoundingBox{
		{Box: image.Rect(10, 20, 110, 40), Word: " 日本語 \n", Confidence: 87.5},
		{Box: image.Rect(0, 0, 5, 5), Word: "  ", Confidence: 12},
		{Box: image.Rect(10, 50, 90, 70), Word: "テスト", Confidence: 130},
	}
	got := Lines(boxes)
	want := []model.OCRLine{
		{Text: "日本語", BoundingBox: model.Polygon(10, 20, 110, 20, 110, 40, 10, 40), Confidence: 0.875},
		{Text: "テスト", BoundingBox: model.Polygon(10, 50, 90, 50, 90, 70, 10, 70), Confidence: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Lines() = %+v, want %+v", got, want)
	}
}

func TestLinesEmpty(t *testing.T) {
	if got := Lines(nil); got == nil || len(got) != 0 {
		t.Errorf("Lines(nil) = %#v, want empty slice", got)
	}
}
