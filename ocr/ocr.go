// Package ocr defines the OCR collaborator contract and upload validation.
// Providers live in subpackages.
package ocr

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"yomi/errs"
	"yomi/model"
)

// Provider recognizes text in an image.
type Provider interface {
	Name() string
	Recognize(ctx context.Context, img Image) (model.OCRDocument, error)
}

// AllowedExtensions lists the accepted upload file extensions.
var AllowedExtensions = []string{"png", "jpg", "jpeg", "gif", "bmp", "webp"}

// Image is a validated upload.
type Image struct {
	Name   string
	Data   []byte
	Format string // decoder name, e.g. "png"
	Width  int
	Height int
}

// Allowed reports whether filename has an accepted image extension.
func Allowed(filename string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	return ext != "" && slices.Contains(AllowedExtensions, ext)
}

// Load checks the file name and decodes the image header. Anything that is
// not a decodable image of an accepted type is UnsupportedFormat.
func Load(name string, data []byte) (Image, error) {
	if !Allowed(name) {
		return Image{}, errs.New(errs.UnsupportedFormat, "invalid file type %q, please upload an image", filepath.Ext(name))
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, errs.Wrap(errs.UnsupportedFormat, err, "decode %s", name)
	}
	return Image{Name: name, Data: data, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// Document builds an OCR document from pages, deriving FullText from the
// line texts in page order.
func Document(pages []model.OCRPage) model.OCRDocument {
	doc := model.OCRDocument{Pages: pages}
	doc.FullText = strings.Join(doc.LineTexts(), "\n")
	return doc
}
