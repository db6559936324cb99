package model

import "encoding/json"

// ScriptKind classifies a run of text by the Japanese script it is written in.
type ScriptKind string

const (
	Kanji    ScriptKind = "kanji"
	Hiragana ScriptKind = "hiragana"
	Katakana ScriptKind = "katakana"
	Mixed    ScriptKind = "mixed"
	Other    ScriptKind = "other"
	Unknown  ScriptKind = "unknown"
)

// Part is one classified token of a line. Reading is only set for kanji parts
// whose reading differs from the surface text.
type Part struct {
	Text    string     `json:"text"`
	Reading string     `json:"reading"`
	Kind    ScriptKind `json:"type"`
}

// BoundingBox is the OCR geometry of a line. The engine never interprets it:
// whatever JSON a provider sent is passed through byte for byte. Providers in
// this module build it with Polygon (x,y of the four corners, clockwise from
// top-left).
type BoundingBox json.RawMessage

// Polygon encodes points as a JSON number array. No points gives nil.
func Polygon(points ...float64) BoundingBox {
	if len(points) == 0 {
		return nil
	}
	data, err := json.Marshal(points)
	if err != nil {
		return nil
	}
	return BoundingBox(data)
}

// Points decodes the geometry as a flat number array. ok is false for any
// other shape.
func (b BoundingBox) Points() (points []float64, ok bool) {
	if len(b) == 0 {
		return nil, false
	}
	if err := json.Unmarshal(b, &points); err != nil {
		return nil, false
	}
	return points, true
}

func (b BoundingBox) MarshalJSON() ([]byte, error) {
	if len(b) == 0 {
		return []byte("null"), nil
	}
	return b, nil
}

func (b *BoundingBox) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*b = nil
		return nil
	}
	*b = append((*b)[:0], data...)
	return nil
}

// MarshalYAML writes point arrays as a sequence and other shapes as their
// JSON text.
func (b BoundingBox) MarshalYAML() (any, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if points, ok := b.Points(); ok {
		return points, nil
	}
	return string(b), nil
}

// Provenance carries OCR-derived metadata for a line.
type Provenance struct {
	BoundingBox BoundingBox `json:"bounding_box,omitempty"`
	Confidence  float64     `json:"confidence"`
}

// Line is an annotated line of text. RenderedText is always derived from Parts.
type Line struct {
	OriginalText string      `json:"original_text"`
	RenderedText string      `json:"rendered_text"`
	Parts        []Part      `json:"parts"`
	Provenance   *Provenance `json:"provenance,omitempty"`
}

// Page groups lines. Width and Height are zero when the page was not sourced
// from an image.
type Page struct {
	PageNumber int    `json:"page_number"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Lines      []Line `json:"lines"`
}

// Document is the assembled result for one request.
type Document struct {
	OriginalText     string `json:"original_text"`
	Pages            []Page `json:"pages"`
	FullRenderedText string `json:"full_rendered_text"`
}

// LineCount returns the number of lines across all pages.
func (d Document) LineCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Lines)
	}
	return n
}
