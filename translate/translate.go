// Package translate provides best-effort translation of the recognized text.
// Translation never fails a request: when every service fails the result is
// simply absent.
package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"yomi/errs"
)

// Translator translates text between two languages.
type Translator interface {
	Name() string
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// statusError is a non-200 reply. 5xx and 429 are worth retrying.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}

func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 500 || se.code == http.StatusTooManyRequests
	}
	return !errors.Is(err, errUnusable)
}

// errUnusable marks a reply that decoded but carries no usable translation.
var errUnusable = errors.New("no usable translation")

// Chain tries translators in order and returns the first usable result.
type Chain struct {
	translators []Translator
	retries     int
	delay       time.Duration
	logger      *slog.Logger
}

// Option configures a Chain.
type Option func(*Chain)

// WithRetries sets how many times each translator is retried.
func WithRetries(n int) Option {
	return func(c *Chain) { c.retries = n }
}

// WithDelay sets the base delay between retries.
func WithDelay(d time.Duration) Option {
	return func(c *Chain) { c.delay = d }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Chain) { c.logger = l }
}

// NewChain creates a chain over translators.
func NewChain(translators []Translator, opts ...Option) *Chain {
	c := &Chain{translators: translators, delay: 200 * time.Millisecond, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Translate returns a pointer to the translation, or nil when the input is
// blank or no translator produced a result different from the input.
func (c *Chain) Translate(ctx context.Context, text, source, target string) *string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	for _, t := range c.translators {
		out, err := retry.DoWithData(
			func() (string, error) {
				out, err := t.Translate(ctx, text, source, target)
				if err != nil {
					return "", err
				}
				out = strings.TrimSpace(out)
				if out == "" || out == text {
					return "", errUnusable
				}
				return out, nil
			},
			retry.Context(ctx),
			retry.Attempts(uint(c.retries+1)),
			retry.Delay(c.delay),
			retry.LastErrorOnly(true),
			retry.RetryIf(retryable),
		)
		if err == nil {
			c.logger.Debug("translation succeeded", "service", t.Name())
			return &out
		}
		if ctx.Err() != nil {
			break
		}
		c.logger.Warn("translation service failed", "service", t.Name(),
			"error", errs.Wrap(errs.TranslationFailed, err, "%s", t.Name()))
	}
	c.logger.Warn("all translation services failed")
	return nil
}
