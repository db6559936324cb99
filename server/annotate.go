package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"yomi/api"
	"yomi/errs"
	"yomi/ingest"
	"yomi/model"
)

// AnnotateRequest is the body of POST /api/annotate.
type AnnotateRequest struct {
	Text string `json:"text"`
	// Translate asks for a translation of the whole text.
	Translate bool `json:"translate,omitempty"`
}

// AnnotateEndpoint handles POST /api/annotate.
type AnnotateEndpoint struct {
	Deps *Deps
}

func (e *AnnotateEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/annotate", e.handler
}

func (e *AnnotateEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req AnnotateRequest
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
	var translated *string
	if req.Translate {
		translated = e.Deps.translate(r.Context(), in.Text)
	}
	e.Deps.dump(in.ID, doc)

	resp := model.NewResponse(doc, translated)
	resp.RequestID = in.ID
	writeJSON(w, http.StatusOK, resp)
}

func (e *AnnotateEndpoint) Command(getServerURL func() string) *cobra.Command {
	var translate bool
	cmd := &cobra.Command{
		Use:   "annotate <text>",
		Short: "Annotate text on the server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp model.Response
			body := AnnotateRequest{Text: strings.Join(args, " "), Translate: translate}
			if err := client.Post(cmd.Context(), "/api/annotate", body, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().BoolVar(&translate, "translate", false, "Also translate the text")
	return cmd
}

// decodeJSON reads a size-limited JSON body. Syntax errors are MalformedInput.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	if limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return errs.New(errs.EmptyInput, "empty request body")
		}
		return errs.Wrap(errs.MalformedInput, err, "invalid JSON body")
	}
	return nil
}
