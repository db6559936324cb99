package model

// Response is the wire shape returned to API clients.
type Response struct {
	Success        bool           `json:"success"`
	RequestID      string         `json:"request_id,omitempty"`
	OriginalText   string         `json:"original_text"`
	FuriganaText   string         `json:"furigana_text"`
	TranslatedText *string        `json:"translated_text,omitempty"`
	Pages          []ResponsePage `json:"pages"`
}

// ResponsePage is a page in the response.
type ResponsePage struct {
	PageNumber int            `json:"page_number"`
	Width      int            `json:"width,omitempty"`
	Height     int            `json:"height,omitempty"`
	Lines      []ResponseLine `json:"lines"`
}

// ResponseLine is a line in the response.
type ResponseLine struct {
	Original    string      `json:"original"`
	Furigana    string      `json:"furigana"`
	Parts       []Part      `json:"parts"`
	Confidence  float64     `json:"confidence"`
	BoundingBox BoundingBox `json:"bounding_box,omitempty"`
}

// NewResponse converts an assembled document into its wire form. A nil
// translation is omitted from the output.
func NewResponse(doc Document, translated *string) Response {
	resp := Response{
		Success:        true,
		OriginalText:   doc.OriginalText,
		FuriganaText:   doc.FullRenderedText,
		TranslatedText: translated,
		Pages:          make([]ResponsePage, 0, len(doc.Pages)),
	}
	for _, p := range doc.Pages {
		rp := ResponsePage{
			PageNumber: p.PageNumber,
			Width:      p.Width,
			Height:     p.Height,
			Lines:      make([]ResponseLine, 0, len(p.Lines)),
		}
		for _, l := range p.Lines {
			parts := l.Parts
			if parts == nil {
				parts = []Part{}
			}
			rl := ResponseLine{
				Original: l.OriginalText,
				Furigana: l.RenderedText,
				Parts:    parts,
			}
			if l.Provenance != nil {
				rl.Confidence = l.Provenance.Confidence
				rl.BoundingBox = l.Provenance.BoundingBox
			}
			rp.Lines = append(rp.Lines, rl)
		}
		resp.Pages = append(resp.Pages, rp)
	}
	return resp
}
