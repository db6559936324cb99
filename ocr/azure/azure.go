// Package azure implements OCR with the Azure Computer Vision Read API
// (v3.2): the image is submitted, then the operation is polled until it
// finishes.
package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"yomi/errs"
	"yomi/model"
	"yomi/ocr"
)

const analyzePath = "/vision/v3.2/read/analyze"

// Operation statuses reported by the Read API.
const (
	StatusNotStarted = "notStarted"
	StatusRunning    = "running"
	StatusSucceeded  = "succeeded"
	StatusFailed     = "failed"
)

var errPending = errors.New("read operation still running")

// Config configures the client.
type Config struct {
	Endpoint     string
	Key          string
	PollInterval time.Duration
	MaxPolls     int
	HTTPClient   *http.Client
	Logger       *slog.Logger
}

// Client is an Azure Read API client. It is safe for concurrent use.
type Client struct {
	endpoint     string
	key          string
	pollInterval time.Duration
	maxPolls     int
	http         *http.Client
	logger       *slog.Logger
}

// New creates a client. Endpoint and key are required.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" || cfg.Key == "" {
		return nil, errors.New("azure OCR endpoint and key must be set")
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.MaxPolls <= 0 {
		cfg.MaxPolls = 60
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Client{
		endpoint:     strings.TrimRight(cfg.Endpoint, "/"),
		key:          cfg.Key,
		pollInterval: cfg.PollInterval,
		maxPolls:     cfg.MaxPolls,
		http:         cfg.HTTPClient,
		logger:       cfg.Logger,
	}, nil
}

func (c *Client) Name() string { return "azure" }

// Recognize submits the image and waits for the read result.
func (c *Client) Recognize(ctx context.Context, img ocr.Image) (model.OCRDocument, error) {
	location, err := c.submit(ctx, img.Data)
	if err != nil {
		return model.OCRDocument{}, errs.Wrap(errs.OCRFailed, err, "submit %s", img.Name)
	}
	c.logger.Debug("azure read submitted", "image", img.Name, "operation", location)

	result, err := c.poll(ctx, location)
	if err != nil {
		return model.OCRDocument{}, errs.Wrap(errs.OCRFailed, err, "read %s", img.Name)
	}
	return parse(result), nil
}

func (c *Client) submit(ctx context.Context, data []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+analyzePath, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("OCR request failed: %d - %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	location := resp.Header.Get("Operation-Location")
	if location == "" {
		return "", errors.New("no operation location received")
	}
	return location, nil
}

func (c *Client) poll(ctx context.Context, location string) (readResponse, error) {
	return retry.DoWithData(
		func() (readResponse, error) {
			return c.fetch(ctx, location)
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.maxPolls)),
		retry.Delay(c.pollInterval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool { return errors.Is(err, errPending) }),
	)
}

func (c *Client) fetch(ctx context.Context, location string) (readResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return readResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)

	resp, err := c.http.Do(req)
	if err != nil {
		return readResponse{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return readResponse{}, fmt.Errorf("failed to get OCR result: %d", resp.StatusCode)
	}
	var rr readResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return readResponse{}, fmt.Errorf("failed to decode response: %w", err)
	}

	switch rr.Status {
	case StatusSucceeded:
		return rr, nil
	case StatusFailed:
		return readResponse{}, errors.New("OCR processing failed on Azure side")
	case StatusNotStarted, StatusRunning:
		return readResponse{}, errPending
	default:
		return readResponse{}, fmt.Errorf("unknown status: %q", rr.Status)
	}
}

type readResponse struct {
	Status        string `json:"status"`
	AnalyzeResult struct {
		ReadResults []readResult `json:"readResults"`
	} `json:"analyzeResult"`
}

type readResult struct {
	Page   int        `json:"page"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Unit   string     `json:"unit"`
	Lines  []readLine `json:"lines"`
}

type readLine struct {
	BoundingBox []float64 `json:"boundingBox"`
	Text        string    `json:"text"`
	Words       []struct {
		Text       string  `json:"text"`
		Confidence float64 `json:"confidence"`
	} `json:"words"`
}

// parse numbers pages by their position in the result.
func parse(rr readResponse) model.OCRDocument {
	pages := make([]model.OCRPage, 0, len(rr.AnalyzeResult.ReadResults))
	for i, p := range rr.AnalyzeResult.ReadResults {
		page := model.OCRPage{
			PageNumber: i + 1,
			Width:      int(math.Round(p.Width)),
			Height:     int(math.Round(p.Height)),
			Lines:      make([]model.OCRLine, 0, len(p.Lines)),
		}
		for _, l := range p.Lines {
			var bbox model.BoundingBox
			if len(l.BoundingBox) > 0 {
				bbox = model.Polygon(l.BoundingBox...)
			}
			page.Lines = append(page.Lines, model.OCRLine{
				Text:        l.Text,
				BoundingBox: bbox,
				Confidence:  lineConfidence(l),
			})
		}
		pages = append(pages, page)
	}
	return ocr.Document(pages)
}

// lineConfidence is the mean word confidence, or 0 for a line without words.
func lineConfidence(l readLine) float64 {
	if len(l.Words) == 0 {
		return 0
	}
	var sum float64
	for _, w := range l.Words {
		sum += w.Confidence
	}
	return min(max(sum/float64(len(l.Words)), 0), 1)
}
