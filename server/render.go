package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"yomi/api"
	"yomi/ingest"
	"yomi/kanji"
	"yomi/render"
)

// RenderRequest is the body of POST /api/render.
type RenderRequest struct {
	Text       string `json:"text"`
	Stylesheet bool   `json:"stylesheet,omitempty"`
	// Split places one ruby per kanji when a Kanjidic2 table is loaded.
	Split bool `json:"split,omitempty"`
}

// RenderEndpoint handles POST /api/render and returns HTML ruby markup.
type RenderEndpoint struct {
	Deps *Deps
}

func (e *RenderEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/render", e.handler
}

func (e *RenderEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := decodeJSON(w, r, e.Deps.MaxUploadBytes, &req); err != nil {
		writeErr(w, err)
		return
	}
	in, err := ingest.Text(req.Text)
	if err != nil {
		writeErr(w, err)
		return
	}
	doc, err := e.Deps.Assembler.FromText(r.Context(), in.Text)
	if err != nil {
		writeErr(w, err)
		return
	}

	opts := render.Options{Stylesheet: req.Stylesheet}
	if req.Split {
		opts.Kanji = e.Deps.Kanji
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Request-Id", in.ID)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(render.HTML(doc, opts)))
}

func (e *RenderEndpoint) Command(getServerURL func() string) *cobra.Command {
	var req RenderRequest
	cmd := &cobra.Command{
		Use:   "render <text>",
		Short: "Render text as HTML ruby markup on the server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Text = strings.Join(args, " ")
			client := api.NewClient(getServerURL())
			body, err := client.PostRaw(cmd.Context(), "/api/render", req)
			if err != nil {
				return err
			}
			fmt.Println(string(body))
			return nil
		},
	}
	cmd.Flags().BoolVar(&req.Stylesheet, "stylesheet", false, "Embed the default stylesheet")
	cmd.Flags().BoolVar(&req.Split, "split", false, "One ruby per kanji (server needs engine.kanjidic)")
	return cmd
}

// splitAvailable reports whether per-kanji ruby can be produced.
func splitAvailable(t *kanji.Table) bool {
	return t.Len() > 0
}
