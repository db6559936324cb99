package server

import (
	"context"
	"log/slog"
	"sync/atomic"

	"yomi/document"
	"yomi/kanji"
	"yomi/logger"
	"yomi/model"
	"yomi/ocr"
	"yomi/translate"
)

// Deps are the collaborators the endpoints share.
type Deps struct {
	Assembler *document.Assembler
	// OCR may be nil, in which case uploads are refused.
	OCR ocr.Provider
	// Kanji enables per-character ruby on /api/render. May be nil.
	Kanji *kanji.Table
	// Degraded lists capabilities that were unavailable at startup.
	Degraded []string

	TranslateSource string
	TranslateTarget string

	MaxUploadBytes int64
	// DumpDir receives one JSON dump per processed document when set.
	DumpDir string
	Logger  *slog.Logger

	translator atomic.Pointer[translate.Chain]
}

// SetTranslator swaps the translation chain; nil disables translation.
func (d *Deps) SetTranslator(c *translate.Chain) {
	d.translator.Store(c)
}

// translate returns nil when translation is disabled or failed.
func (d *Deps) translate(ctx context.Context, text string) *string {
	c := d.translator.Load()
	if c == nil {
		return nil
	}
	return c.Translate(ctx, text, d.TranslateSource, d.TranslateTarget)
}

func (d *Deps) translationEnabled() bool {
	return d.translator.Load() != nil
}

func (d *Deps) dump(id string, doc model.Document) {
	if d.DumpDir == "" {
		return
	}
	if err := logger.LogJSON(d.DumpDir, id+"_document", doc); err != nil {
		d.Logger.Warn("failed to write document dump", "request_id", id, "error", err)
		return
	}
	d.Logger.Debug("document dumped", "request_id", id, "pages", len(doc.Pages), "lines", doc.LineCount())
}
