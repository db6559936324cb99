package model

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestBoundingBoxPassThrough(t *testing.T) {
	tests := []struct {
		name string
		bbox string
	}{
		{"polygon", `[1,2,3,2,3,4,1,4]`},
		{"rectangle object", `{"x":10,"y":20,"w":100,"h":30}`},
		{"nested points", `[[1,2],[3,2],[3,4],[1,4]]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := `{"text":"漢字","bounding_box":` + tt.bbox + `,"confidence":0.5}`
			var line OCRLine
			if err := json.Unmarshal([]byte(in), &line); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if string(line.BoundingBox) != tt.bbox {
				t.Errorf("BoundingBox = %s, want %s", line.BoundingBox, tt.bbox)
			}

			out, err := json.Marshal(Provenance{BoundingBox: line.BoundingBox, Confidence: line.Confidence})
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if !strings.Contains(string(out), `"bounding_box":`+tt.bbox) {
				t.Errorf("Marshal() = %s, geometry not passed through", out)
			}
		})
	}
}

func TestBoundingBoxAbsent(t *testing.T) {
	var line OCRLine
	if err := json.Unmarshal([]byte(`{"text":"a","bounding_box":null}`), &line); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if line.BoundingBox != nil {
		t.Errorf("BoundingBox = %s, want nil", line.BoundingBox)
	}
	out, err := json.Marshal(Provenance{Confidence: 1})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), "bounding_box") {
		t.Errorf("empty geometry should be omitted: %s", out)
	}
}

func TestPolygonPoints(t *testing.T) {
	b := Polygon(0, 0, 10, 0, 10, 5, 0, 5)
	points, ok := b.Points()
	if !ok {
		t.Fatal("Points() not ok for a polygon")
	}
	if want := []float64{0, 0, 10, 0, 10, 5, 0, 5}; !reflect.DeepEqual(points, want) {
		t.Errorf("Points() = %v, want %v", points, want)
	}
	if Polygon() != nil {
		t.Error("Polygon() without points should be nil")
	}
	if _, ok := BoundingBox(`{"x":1}`).Points(); ok {
		t.Error("Points() should fail for non-array geometry")
	}
}
