package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// MyMemory calls the MyMemory GET API, which needs no key.
type MyMemory struct {
	URL    string
	Client *http.Client
}

// NewMyMemory creates a MyMemory client.
func NewMyMemory(endpoint string, timeout time.Duration) *MyMemory {
	return &MyMemory{URL: endpoint, Client: &http.Client{Timeout: timeout}}
}

func (m *MyMemory) Name() string { return "mymemory" }

type myMemoryResponse struct {
	ResponseStatus json.RawMessage `json:"responseStatus"`
	ResponseData   struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
}

// Translate requests text in the source|target language pair.
func (m *MyMemory) Translate(ctx context.Context, text, source, target string) (string, error) {
	q := url.Values{}
	q.Set("q", text)
	q.Set("langpair", source+"|"+target)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.URL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := m.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &statusError{code: resp.StatusCode}
	}

	var body myMemoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode response: %w: %w", errUnusable, err)
	}
	// responseStatus is a number on success and sometimes a string on errors
	if string(body.ResponseStatus) != "200" && string(body.ResponseStatus) != `"200"` {
		return "", fmt.Errorf("%w: responseStatus %s", errUnusable, body.ResponseStatus)
	}
	return body.ResponseData.TranslatedText, nil
}

// LibreTranslate calls a LibreTranslate instance.
type LibreTranslate struct {
	URL    string
	Client *http.Client
}

// NewLibreTranslate creates a LibreTranslate client.
func NewLibreTranslate(endpoint string, timeout time.Duration) *LibreTranslate {
	return &LibreTranslate{URL: endpoint, Client: &http.Client{Timeout: timeout}}
}

func (l *LibreTranslate) Name() string { return "libretranslate(" + l.URL + ")" }

type libreRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

// Translate posts the text as JSON.
func (l *LibreTranslate) Translate(ctx context.Context, text, source, target string) (string, error) {
	payload, err := json.Marshal(libreRequest{Q: text, Source: source, Target: target, Format: "text"})
	if err != nil {
		return "", fmt.Errorf("failed to marshal body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.URL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", &statusError{code: resp.StatusCode}
	}

	var body struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode response: %w: %w", errUnusable, err)
	}
	return body.TranslatedText, nil
}

// Services builds the default chain members: MyMemory first, then each
// LibreTranslate endpoint.
func Services(myMemoryURL string, libreURLs []string, timeout time.Duration) []Translator {
	var out []Translator
	if myMemoryURL != "" {
		out = append(out, NewMyMemory(myMemoryURL, timeout))
	}
	for _, u := range libreURLs {
		out = append(out, NewLibreTranslate(u, timeout))
	}
	return out
}
