package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

type pingEndpoint struct{}

func (pingEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"pong": true}`))
	}
}

func (pingEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{Use: "ping"}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(pingEndpoint{})

	mux := http.NewServeMux()
	r.RegisterRoutes(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/ping", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("GET status = %d", rec.Code)
	}
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("POST", "/api/ping", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST status = %d, want 405", rec.Code)
	}

	cmd := r.BuildCommands(func() string { return "" })
	if len(cmd.Commands()) != 1 || cmd.Commands()[0].Use != "ping" {
		t.Errorf("commands = %v", cmd.Commands())
	}
	if len(r.Endpoints()) != 1 {
		t.Errorf("Endpoints() = %d", len(r.Endpoints()))
	}
}

func TestClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/echo":
			body, _ := io.ReadAll(r.Body)
			w.Write(body)
		case "/file":
			f, hdr, err := r.FormFile("file")
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			data, _ := io.ReadAll(f)
			json.NewEncoder(w).Encode(map[string]string{"name": hdr.Filename, "data": string(data)})
		case "/fail":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": "no text provided", "code": "EMPTY_INPUT"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("boom"))
		}
	}))
	defer srv.Close()
	c := NewClient(srv.URL)
	ctx := context.Background()

	var echoed map[string]string
	if err := c.Post(ctx, "/echo", map[string]string{"text": "漢字"}, &echoed); err != nil || echoed["text"] != "漢字" {
		t.Errorf("Post() = %v, %v", echoed, err)
	}

	raw, err := c.PostRaw(ctx, "/echo", map[string]string{"a": "b"})
	if err != nil || !strings.Contains(string(raw), `"a":"b"`) {
		t.Errorf("PostRaw() = %s, %v", raw, err)
	}

	var file map[string]string
	if err := c.PostFile(ctx, "/file", "file", "p.png", []byte("img"), &file); err != nil {
		t.Fatalf("PostFile() error = %v", err)
	}
	if file["name"] != "p.png" || file["data"] != "img" {
		t.Errorf("PostFile() = %v", file)
	}

	if err := c.Get(ctx, "/fail", nil); err == nil || !strings.Contains(err.Error(), "no text provided") {
		t.Errorf("expected decoded server error, got %v", err)
	}
	if err := c.Get(ctx, "/other", nil); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected raw server error, got %v", err)
	}
}

func TestOutputTo(t *testing.T) {
	data := map[string]string{"furigana": "漢字(かんじ)"}

	var buf bytes.Buffer
	if err := OutputTo(&buf, OutputFormatJSON, data); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"furigana": "漢字(かんじ)"`) {
		t.Errorf("json output = %s", buf.String())
	}

	buf.Reset()
	if err := OutputTo(&buf, OutputFormatYAML, data); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(buf.String()) != "furigana: 漢字(かんじ)" {
		t.Errorf("yaml output = %q", buf.String())
	}

	if err := OutputTo(&buf, "xml", data); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestSetOutputFormat(t *testing.T) {
	defer SetOutputFormat("yaml")
	SetOutputFormat("json")
	if GetOutputFormat() != OutputFormatJSON {
		t.Error("expected json")
	}
	SetOutputFormat("toml")
	if GetOutputFormat() != OutputFormatYAML {
		t.Error("unknown formats should fall back to yaml")
	}
}
