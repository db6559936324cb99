// Package tesseract implements OCR with a local Tesseract installation via
// gosseract. Each recognized text line becomes one OCR line.
package tesseract

import (
	"context"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"yomi/errs"
	"yomi/model"
	"yomi/ocr"
)

// Language packs for horizontal and vertical Japanese.
const (
	LangHorizontal = "jpn"
	LangVertical   = "jpn_vert"
)

// Config configures the engine.
type Config struct {
	// Languages overrides the language packs. Empty selects jpn or jpn_vert.
	Languages []string
	// Vertical switches to vertical text layout analysis.
	Vertical bool
}

// Engine is a Tesseract-backed OCR provider.
type Engine struct {
	languages     []string
	mode          gosseract.PageSegMode
	clientFactory func() *gosseract.Client
}

// New constructs a Tesseract engine.
func New(cfg Config) *Engine {
	langs, mode := Layout(cfg)
	return &Engine{languages: langs, mode: mode, clientFactory: gosseract.NewClient}
}

// Layout picks the language packs and page segmentation mode: vertical text
// is read as a single column, horizontal text with automatic layout and
// orientation detection.
func Layout(cfg Config) ([]string, gosseract.PageSegMode) {
	langs := cfg.Languages
	if cfg.Vertical {
		if len(langs) == 0 {
			langs = []string{LangVertical}
		}
		return langs, gosseract.PSM_SINGLE_COLUMN
	}
	if len(langs) == 0 {
		langs = []string{LangHorizontal}
	}
	return langs, gosseract.PSM_AUTO_OSD
}

func (e *Engine) Name() string { return "tesseract" }

// Recognize runs OCR on one image and returns a single page.
func (e *Engine) Recognize(ctx context.Context, img ocr.Image) (model.OCRDocument, error) {
	if err := ctx.Err(); err != nil {
		return model.OCRDocument{}, err
	}
	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(img.Data); err != nil {
		return model.OCRDocument{}, errs.Wrap(errs.OCRFailed, err, "set image")
	}
	if err := c.SetLanguage(e.languages...); err != nil {
		return model.OCRDocument{}, errs.Wrap(errs.OCRFailed, err, "set languages")
	}
	if err := c.SetPageSegMode(e.mode); err != nil {
		return model.OCRDocument{}, errs.Wrap(errs.OCRFailed, err, "set page segmentation mode")
	}
	boxes, err := c.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return model.OCRDocument{}, errs.Wrap(errs.OCRFailed, err, "recognize %s", img.Name)
	}

	page := model.OCRPage{PageNumber: 1, Width: img.Width, Height: img.Height, Lines: Lines(boxes)}
	return ocr.Document([]model.OCRPage{page}), nil
}

// Lines converts Tesseract text-line boxes to OCR lines. Blank lines are
// dropped and the 0-100 confidence is scaled to [0,1].
func Lines(boxes []gosseract.BoundingBox) []model.OCRLine {
	lines := make([]model.OCRLine, 0, len(boxes))
	for _, b := range boxes {
		text := strings.TrimSpace(b.Word)
		if text == "" {
			continue
		}
		lines = append(lines, model.OCRLine{
			Text:        text,
			BoundingBox: Polygon(b.Box),
			Confidence:  min(max(b.Confidence/100.0, 0), 1),
		})
	}
	return lines
}

// Polygon expresses a rectangle as the clockwise 8-value polygon used by
// other providers, starting top-left.
func Polygon(r image.Rectangle) model.BoundingBox {
	x0, y0, x1, y1 := float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y)
	return model.Polygon(x0, y0, x1, y0, x1, y1, x0, y1)
}
