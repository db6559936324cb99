package model

// OCRDocument is the result handed over by an OCR provider.
type OCRDocument struct {
	FullText string    `json:"full_text"`
	Pages    []OCRPage `json:"pages"`
}

// OCRPage is one recognized page.
type OCRPage struct {
	PageNumber int       `json:"page_number"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Lines      []OCRLine `json:"lines"`
}

// OCRLine is one recognized line with its geometry and confidence in [0,1].
type OCRLine struct {
	Text        string      `json:"text"`
	BoundingBox BoundingBox `json:"bounding_box"`
	Confidence  float64     `json:"confidence"`
}

// LineTexts returns the text of every line in page order.
func (d OCRDocument) LineTexts() []string {
	var out []string
	for _, p := range d.Pages {
		for _, l := range p.Lines {
			out = append(out, l.Text)
		}
	}
	return out
}
