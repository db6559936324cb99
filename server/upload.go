package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"yomi/api"
	"yomi/ingest"
	"yomi/model"
	"yomi/ocr"
)

// UploadEndpoint handles POST /api/upload: OCR an image, annotate every
// recognized line and translate the full text.
type UploadEndpoint struct {
	Deps *Deps
}

func (e *UploadEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/upload", e.handler
}

func (e *UploadEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	logger := e.Deps.Logger
	if limit := e.Deps.MaxUploadBytes; limit > 0 {
		if r.ContentLength > limit {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File too large (max %d bytes)", limit))
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeErr(w, err)
			return
		}
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()
	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "No file selected")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeErr(w, err)
		return
	}
	img, err := ocr.Load(header.Filename, data)
	if err != nil {
		writeErr(w, err)
		return
	}
	if e.Deps.OCR == nil {
		writeError(w, http.StatusServiceUnavailable, "No OCR provider configured")
		return
	}

	id := ingest.NewID()
	logger.Info("recognizing upload", "request_id", id, "file", img.Name, "format", img.Format,
		"width", img.Width, "height", img.Height, "provider", e.Deps.OCR.Name())
	recognized, err := e.Deps.OCR.Recognize(r.Context(), img)
	if err != nil {
		logger.Error("OCR failed", "request_id", id, "error", err)
		writeErr(w, err)
		return
	}

	doc, err := e.Deps.Assembler.FromOCR(r.Context(), recognized)
	if err != nil {
		writeErr(w, err)
		return
	}
	translated := e.Deps.translate(r.Context(), doc.OriginalText)
	e.Deps.dump(id, doc)

	resp := model.NewResponse(doc, translated)
	resp.RequestID = id
	writeJSON(w, http.StatusOK, resp)
}

func (e *UploadEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <image>",
		Short: "OCR and annotate an image on the server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			client := api.NewClient(getServerURL())
			var resp model.Response
			if err := client.PostFile(cmd.Context(), "/api/upload", "file", filepath.Base(args[0]), data, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
