// Package ingest validates submitted text before it reaches the engine.
package ingest

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"yomi/errs"
)

// Request is one accepted piece of input text and its metadata.
type Request struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Text trims and NFC-normalizes the input, rejecting it with EmptyInput when
// nothing but whitespace remains.
func Text(text string) (Request, error) {
	cleaned := Normalize(text)
	if cleaned == "" {
		return Request{}, errs.New(errs.EmptyInput, "no text provided")
	}
	return Request{
		ID:        NewID(),
		Text:      cleaned,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Normalize composes decomposed kana (か + U+3099 -> が) and strips
// surrounding whitespace, including the ideographic space.
func Normalize(text string) string {
	return strings.TrimSpace(norm.NFC.String(text))
}

// NewID returns a fresh request id.
func NewID() string {
	return uuid.NewString()
}
