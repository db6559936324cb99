// Package document assembles annotated lines into the page/line hierarchy,
// either from an OCR result or from directly submitted text.
package document

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"yomi/annotate"
	"yomi/errs"
	"yomi/model"
	"yomi/tokenize"
)

// LineSeparator joins rendered lines in Document.FullRenderedText.
const LineSeparator = "\n"

// DirectConfidence is the confidence assigned to lines that did not come
// from OCR.
const DirectConfidence = 1.0

// Assembler builds documents. It is safe for concurrent use.
type Assembler struct {
	annotator *annotate.Annotator
	workers   int
	logger    *slog.Logger
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithWorkers annotates lines on n goroutines. n <= 1 annotates inline.
func WithWorkers(n int) Option {
	return func(a *Assembler) { a.workers = n }
}

// WithLogger sets the logger used for per-line degradations.
func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) { a.logger = l }
}

// New creates an assembler around an annotator.
func New(annotator *annotate.Annotator, opts ...Option) *Assembler {
	a := &Assembler{annotator: annotator, workers: 1, logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Strategy reports the tokenizer strategy lines are annotated with.
func (a *Assembler) Strategy() tokenize.Strategy {
	return a.annotator.Strategy()
}

// FromOCR annotates every OCR line and keeps page dimensions, line order and
// provenance exactly as received.
func (a *Assembler) FromOCR(ctx context.Context, in model.OCRDocument) (model.Document, error) {
	if err := Validate(in); err != nil {
		return model.Document{}, err
	}

	lines, err := a.annotateAll(ctx, in.LineTexts())
	if err != nil {
		return model.Document{}, err
	}

	doc := model.Document{OriginalText: in.FullText, Pages: make([]model.Page, 0, len(in.Pages))}
	i := 0
	for _, p := range in.Pages {
		page := model.Page{
			PageNumber: p.PageNumber,
			Width:      p.Width,
			Height:     p.Height,
			Lines:      make([]model.Line, 0, len(p.Lines)),
		}
		for _, l := range p.Lines {
			line := lines[i]
			line.Provenance = &model.Provenance{BoundingBox: l.BoundingBox, Confidence: l.Confidence}
			page.Lines = append(page.Lines, line)
			i++
		}
		doc.Pages = append(doc.Pages, page)
	}
	doc.FullRenderedText = FullRenderedText(doc.Pages)
	return doc, nil
}

// FromText splits text into sentences and places them, one line each, on a
// single page numbered 1.
func (a *Assembler) FromText(ctx context.Context, text string) (model.Document, error) {
	sentences := SplitSentences(text)
	lines, err := a.annotateAll(ctx, sentences)
	if err != nil {
		return model.Document{}, err
	}
	for i := range lines {
		lines[i].Provenance = &model.Provenance{Confidence: DirectConfidence}
	}
	if lines == nil {
		lines = []model.Line{}
	}
	pages := []model.Page{{PageNumber: 1, Lines: lines}}
	return model.Document{
		OriginalText:     text,
		Pages:            pages,
		FullRenderedText: FullRenderedText(pages),
	}, nil
}

// FullRenderedText joins the rendered text of all lines in page order.
func FullRenderedText(pages []model.Page) string {
	var rendered []string
	for _, p := range pages {
		for _, l := range p.Lines {
			rendered = append(rendered, l.RenderedText)
		}
	}
	return strings.Join(rendered, LineSeparator)
}

// Validate rejects structurally malformed OCR input.
func Validate(in model.OCRDocument) error {
	for pi, p := range in.Pages {
		if p.PageNumber < 1 {
			return errs.New(errs.MalformedInput, "page %d: page number %d is not positive", pi, p.PageNumber)
		}
		if p.Width < 0 || p.Height < 0 {
			return errs.New(errs.MalformedInput, "page %d: negative dimensions %dx%d", p.PageNumber, p.Width, p.Height)
		}
		for li, l := range p.Lines {
			if l.Confidence < 0 || l.Confidence > 1 {
				return errs.New(errs.MalformedInput, "page %d line %d: confidence %v outside [0,1]", p.PageNumber, li, l.Confidence)
			}
		}
	}
	return nil
}

func (a *Assembler) annotateOne(text string) model.Line {
	res := a.annotator.Annotate(text)
	if res.Err != nil {
		a.logger.Warn("line left unannotated", "error", res.Err)
	}
	for _, f := range res.Failures {
		a.logger.Debug("reading not resolved", "token", f.Token, "error", f.Err)
	}
	return res.Line
}

// annotateAll annotates texts, writing each result back at its own index.
func (a *Assembler) annotateAll(ctx context.Context, texts []string) ([]model.Line, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	out := make([]model.Line, len(texts))

	if a.workers <= 1 || len(texts) == 1 {
		for i, t := range texts {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out[i] = a.annotateOne(t)
		}
		return out, nil
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	workers := min(a.workers, len(texts))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = a.annotateOne(texts[i])
			}
		}()
	}

	var err error
send:
	for i := range texts {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break send
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	if err != nil {
		return nil, err
	}
	return out, nil
}
