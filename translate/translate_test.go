package translate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

type stubTranslator struct {
	name  string
	out   string
	errs  []error
	calls atomic.Int32
}

func (s *stubTranslator) Name() string { return s.name }

func (s *stubTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	n := int(s.calls.Add(1)) - 1
	if n < len(s.errs) && s.errs[n] != nil {
		return "", s.errs[n]
	}
	return s.out, nil
}

func newChain(ts ...Translator) *Chain {
	return NewChain(ts, WithRetries(2), WithDelay(time.Millisecond))
}

func TestChainFirstSuccess(t *testing.T) {
	a := &stubTranslator{name: "a", out: " Hello "}
	b := &stubTranslator{name: "b", out: "unused"}
	got := newChain(a, b).Translate(context.Background(), "こんにちは", "ja", "en")
	if got == nil || *got != "Hello" {
		t.Fatalf("Translate() = %v", got)
	}
	if b.calls.Load() != 0 {
		t.Error("second translator should not be called")
	}
}

func TestChainFallsThrough(t *testing.T) {
	a := &stubTranslator{name: "a", errs: []error{&statusError{code: 403}}}
	b := &stubTranslator{name: "b", out: "こんにちは"} // echo is unusable
	c := &stubTranslator{name: "c", out: "Hi"}
	got := newChain(a, b, c).Translate(context.Background(), "こんにちは", "ja", "en")
	if got == nil || *got != "Hi" {
		t.Fatalf("Translate() = %v", got)
	}
	if a.calls.Load() != 1 {
		t.Errorf("4xx should not be retried, got %d calls", a.calls.Load())
	}
	if b.calls.Load() != 1 {
		t.Errorf("unusable reply should not be retried, got %d calls", b.calls.Load())
	}
}

func TestChainRetriesTransientErrors(t *testing.T) {
	a := &stubTranslator{name: "a", out: "ok", errs: []error{&statusError{code: 503}, errors.New("connection reset")}}
	got := newChain(a).Translate(context.Background(), "テスト", "ja", "en")
	if got == nil || *got != "ok" {
		t.Fatalf("Translate() = %v", got)
	}
	if a.calls.Load() != 3 {
		t.Errorf("expected 3 calls, got %d", a.calls.Load())
	}
}

func TestChainAllFail(t *testing.T) {
	a := &stubTranslator{name: "a", errs: []error{&statusError{code: 500}, &statusError{code: 500}, &statusError{code: 500}}}
	if got := newChain(a).Translate(context.Background(), "テスト", "ja", "en"); got != nil {
		t.Errorf("expected nil, got %q", *got)
	}
	if a.calls.Load() != 3 {
		t.Errorf("expected retries+1 calls, got %d", a.calls.Load())
	}
}

func TestChainBlankInput(t *testing.T) {
	a := &stubTranslator{name: "a", out: "x"}
	if got := newChain(a).Translate(context.Background(), "  \n", "ja", "en"); got != nil {
		t.Error("blank input should not be translated")
	}
	if a.calls.Load() != 0 {
		t.Error("translator called for blank input")
	}
}

func TestMyMemory(t *testing.T) {
	var gotQuery, gotPair string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotPair = r.URL.Query().Get("langpair")
		w.Write([]byte(`{"responseStatus": 200, "responseData": {"translatedText": "Kanji"}}`))
	}))
	defer srv.Close()

	out, err := NewMyMemory(srv.URL, time.Second).Translate(context.Background(), "漢字", "ja", "en")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if out != "Kanji" || gotQuery != "漢字" || gotPair != "ja|en" {
		t.Errorf("out=%q q=%q langpair=%q", out, gotQuery, gotPair)
	}
}

func TestMyMemoryQuotaReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"responseStatus": "403", "responseData": {"translatedText": "QUOTA EXCEEDED"}}`))
	}))
	defer srv.Close()

	_, err := NewMyMemory(srv.URL, time.Second).Translate(context.Background(), "漢字", "ja", "en")
	if !errors.Is(err, errUnusable) {
		t.Errorf("expected unusable reply, got %v", err)
	}
}

func TestLibreTranslate(t *testing.T) {
	var got libreRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"translatedText": "Hello"}`))
	}))
	defer srv.Close()

	out, err := NewLibreTranslate(srv.URL, time.Second).Translate(context.Background(), "こんにちは", "ja", "en")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if out != "Hello" {
		t.Errorf("out = %q", out)
	}
	want := libreRequest{Q: "こんにちは", Source: "ja", Target: "en", Format: "text"}
	if got != want {
		t.Errorf("request = %+v, want %+v", got, want)
	}
}

func TestLibreTranslateStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewLibreTranslate(srv.URL, time.Second).Translate(context.Background(), "x", "ja", "en")
	var se *statusError
	if !errors.As(err, &se) || se.code != http.StatusBadGateway || !retryable(err) {
		t.Errorf("expected retryable 502, got %v", err)
	}
}

func TestServices(t *testing.T) {
	ts := Services("https://mm", []string{"https://lt1", "https://lt2"}, time.Second)
	if len(ts) != 3 || ts[0].Name() != "mymemory" || ts[2].Name() != "libretranslate(https://lt2)" {
		t.Errorf("Services() = %v", ts)
	}
	if len(Services("", nil, time.Second)) != 0 {
		t.Error("expected no services")
	}
}
